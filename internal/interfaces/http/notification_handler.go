package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-inventory/internal/application/dto"
	"github.com/jhoicas/cafe-inventory/internal/application/notify"
)

// NotificationHandler entrega los avisos pendientes al navegador.
type NotificationHandler struct {
	hub *notify.Hub
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

// List GET /api/notifications?since= avisos posteriores a un ID.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	since := c.QueryInt("since", 0)
	if since < 0 {
		since = 0
	}
	return c.JSON(dto.NotificationListResponse{
		Items: toNotificationResponses(h.hub.Since(uint64(since))),
		Last:  h.hub.Last(),
	})
}

func toNotificationResponses(ns []notify.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			Level:     string(n.Level),
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}
