package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/vitality/web/internal/middleware"
	"github.com/pageza/vitality/web/internal/types"
)

// NotificationHandler serves the in-app notifications
type NotificationHandler struct {
	svc    Services
	render *Responder
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(svc Services, render *Responder) *NotificationHandler {
	return &NotificationHandler{svc: svc, render: render}
}

// RegisterRoutes mounts the notification routes on a basename group
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.RequireRoles(signedInRoles...))
	{
		notifications.GET("", h.List)
		notifications.PATCH("/read-all", h.MarkAllRead)
		notifications.PATCH("/:id/read", h.MarkRead)
	}
}

type notificationsView struct {
	Items  []types.Notification `json:"items"`
	Unread int                  `json:"unread"`
}

// List shows the caller's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.svc.Notifications.List(c.Request.Context(), h.render.Creds(c))
	if err != nil {
		h.render.PageError(c, "notifications", err, "No se pudieron cargar las notificaciones")
		return
	}
	if items == nil {
		items = []types.Notification{}
	}

	view := notificationsView{Items: items}
	for _, n := range items {
		if !n.Read {
			view.Unread++
		}
	}
	h.render.Page(c, "notifications", view)
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	n, err := h.svc.Notifications.MarkRead(c.Request.Context(), h.render.Creds(c), c.Param("id"))
	if err != nil {
		h.render.Fail(c, err, "No se pudo marcar la notificación", "/notifications")
		return
	}
	h.render.Done(c, http.StatusOK, "Notificación marcada como leída", "/notifications", gin.H{"item": n, "id": c.Param("id")})
}

// MarkAllRead marks every notification of the caller as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.svc.Notifications.MarkAllRead(c.Request.Context(), h.render.Creds(c)); err != nil {
		h.render.Fail(c, err, "No se pudieron marcar las notificaciones", "/notifications")
		return
	}
	h.render.Done(c, http.StatusOK, "Todas las notificaciones marcadas como leídas", "/notifications", gin.H{"message": "ok"})
}
