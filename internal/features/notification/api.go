package notification

import (
	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
}

func NewNotificationApi(controller *NotificationController) *NotificationApi {
	return &NotificationApi{controller: controller}
}

// Setup registers all notification-related routes
func (h *NotificationApi) Setup(app *fiber.App) {
	app.Post("/notifications", h.controller.CreateNotification)
}
