package service

import (
	"context"
	"net/url"

	"github.com/pageza/vitality/web/internal/apiclient"
	"github.com/pageza/vitality/web/internal/types"
)

// NotificationService handles in-app notifications
type NotificationService struct {
	api *apiclient.Client
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(api *apiclient.Client) *NotificationService {
	return &NotificationService{api: api}
}

func (s *NotificationService) List(ctx context.Context, creds apiclient.Credentials) ([]types.Notification, error) {
	var items []types.Notification
	if err := s.api.Get(ctx, creds, "/notifications", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, creds apiclient.Credentials, id string) (*types.Notification, error) {
	var n types.Notification
	if err := s.api.Patch(ctx, creds, "/notifications/"+url.PathEscape(id)+"/read", nil, &n); err != nil {
		return nil, err
	}
	return entityOrNil(&n, n.ID), nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, creds apiclient.Credentials) error {
	return s.api.Patch(ctx, creds, "/notifications/read-all", nil, nil)
}
