package channel

import (
	"github.com/gofiber/fiber/v2"
)

type ChannelApi struct {
	controller *ChannelController
}

func NewChannelApi(controller *ChannelController) *ChannelApi {
	return &ChannelApi{controller: controller}
}

// Setup registers all channel-related routes
func (h *ChannelApi) Setup(app *fiber.App) {
	channels := app.Group("/channels")

	channels.Post("/", h.controller.CreateChannel)
	channels.Get("/:id", h.controller.GetChannel)
	channels.Put("/:id", h.controller.UpdateChannel)
	channels.Delete("/:id", h.controller.DeleteChannel)
}
