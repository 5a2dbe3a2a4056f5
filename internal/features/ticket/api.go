package ticket

import (
	"github.com/gofiber/fiber/v2"
)

type TicketApi struct {
	controller *TicketController
}

func NewTicketApi(controller *TicketController) *TicketApi {
	return &TicketApi{controller: controller}
}

// Setup registers all ticket-related routes
func (h *TicketApi) Setup(app *fiber.App) {
	tickets := app.Group("/ticket")

	tickets.Post("/", h.controller.CreateTicket)
	tickets.Get("/", h.controller.ListTickets)
	tickets.Get("/:id", h.controller.GetTicket)
	tickets.Delete("/:id", h.controller.DeleteTicket)

	tickets.Put("/:ticket_id/message", h.controller.AddMessage)
	tickets.Put("/:ticket_id/message/:message_id", h.controller.UpdateMessage)
	tickets.Delete("/:ticket_id/message/:message_id", h.controller.DeleteMessage)
}
