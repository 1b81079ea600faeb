package handler

import (
	"stocktrack-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: s}
}

// GetNotifications handles GET /notifications?unread=&limit=
func (h *NotificationHandler) GetNotifications(c *fiber.Ctx) error {
	unreadOnly := c.Query("unread") == "true"
	limit := c.QueryInt("limit", service.DefaultFeedLimit)

	notifications, err := h.service.List(unreadOnly, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// MarkRead handles PATCH /notifications with body {id, is_read}
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	var req struct {
		ID     uuid.UUID `json:"id"`
		IsRead *bool     `json:"is_read"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ID == uuid.Nil {
		return c.Status(400).JSON(fiber.Map{"error": "Notification ID is required"})
	}

	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}

	notification, err := h.service.MarkRead(req.ID, isRead)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notification)
}

// PurgeRead handles DELETE /notifications, removing every read entry.
func (h *NotificationHandler) PurgeRead(c *fiber.Ctx) error {
	if err := h.service.PurgeRead(); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Read notifications deleted successfully"})
}
