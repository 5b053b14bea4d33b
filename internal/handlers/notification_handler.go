package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/meowtown/backend/internal/repositories"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns the caller's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}
	notifications, total, err := h.notificationRepository.GetByUserID(c.Request().Context(), user.ID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, notifications, page, size, total)
}

// GetUnreadCount returns the caller's unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"count": count}, "")
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notificationRepository.MarkAsRead(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil, "Notification marked as read")
}

// MarkAllAsRead marks all of the caller's notifications as read and reports
// how many changed
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"updated": updated}, "")
}
