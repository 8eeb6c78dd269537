package types

import "time"

// NotificationType classifies a notification
type NotificationType string

const (
	NotificationSystem       NotificationType = "SYSTEM"
	NotificationClientUpdate NotificationType = "CLIENT_UPDATE"
	NotificationPlanUpdate   NotificationType = "PLAN_UPDATE"
)

// Notification is an in-app message for a user
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}
