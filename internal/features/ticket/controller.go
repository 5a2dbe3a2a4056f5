package ticket

import (
	"fmt"

	"go-support/internal/common/apperr"
	"go-support/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type TicketController struct {
	TicketService TicketService
}

func NewTicketController(ticketService TicketService) *TicketController {
	return &TicketController{
		TicketService: ticketService,
	}
}

// CreateTicket godoc
// @Summary      Create ticket
// @Router       /ticket [post]
func (ctrl *TicketController) CreateTicket(c *fiber.Ctx) error {
	var ticket Ticket
	if err := c.BodyParser(&ticket); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	created, err := ctrl.TicketService.Create(c.Context(), &ticket)
	if err != nil {
		return err
	}

	return response.Created(c, created, "Ticket created successfully")
}

// ListTickets godoc
// @Summary      List all tickets
// @Router       /ticket [get]
func (ctrl *TicketController) ListTickets(c *fiber.Ctx) error {
	tickets, err := ctrl.TicketService.List(c.Context())
	if err != nil {
		return err
	}

	return response.Success(c, tickets, "Tickets list.")
}

// GetTicket godoc
// @Summary      Get ticket by ID
// @Router       /ticket/{id} [get]
func (ctrl *TicketController) GetTicket(c *fiber.Ctx) error {
	id := c.Params("id")

	ticket, err := ctrl.TicketService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, ticket, fmt.Sprintf("Ticket with %s found.", id))
}

// DeleteTicket godoc
// @Summary      Delete ticket
// @Router       /ticket/{id} [delete]
func (ctrl *TicketController) DeleteTicket(c *fiber.Ctx) error {
	id := c.Params("id")

	deleted, err := ctrl.TicketService.Delete(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, deleted, fmt.Sprintf("Ticket with %s deleted.", id))
}

// AddMessage godoc
// @Summary      Append a message to a ticket
// @Router       /ticket/{ticket_id}/message [put]
func (ctrl *TicketController) AddMessage(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")

	var message TicketMessage
	if err := c.BodyParser(&message); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	ticket, err := ctrl.TicketService.AddMessage(c.Context(), ticketID, &message)
	if err != nil {
		return err
	}

	return response.Success(c, ticket, "Message added to ticket.")
}

// UpdateMessage godoc
// @Summary      Update an embedded message's content
// @Router       /ticket/{ticket_id}/message/{message_id} [put]
func (ctrl *TicketController) UpdateMessage(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")
	messageID := c.Params("message_id")

	var req UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	ticket, err := ctrl.TicketService.UpdateMessage(c.Context(), ticketID, messageID, req.Content)
	if err != nil {
		return err
	}

	return response.Success(c, ticket, "Message updated.")
}

// DeleteMessage godoc
// @Summary      Remove an embedded message
// @Router       /ticket/{ticket_id}/message/{message_id} [delete]
func (ctrl *TicketController) DeleteMessage(c *fiber.Ctx) error {
	ticketID := c.Params("ticket_id")
	messageID := c.Params("message_id")

	ticket, err := ctrl.TicketService.DeleteMessage(c.Context(), ticketID, messageID)
	if err != nil {
		return err
	}

	return response.Success(c, ticket, "Message deleted.")
}
