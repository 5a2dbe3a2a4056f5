package ticket

import (
	"context"
	"errors"
	"time"

	"go-support/internal/common/apperr"
	"go-support/internal/features/customer"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CustomerFinder is the slice of the customer service the ticket service
// needs for the creation-time existence check. The composition root
// adapts customer.CustomerService to it.
type CustomerFinder interface {
	Get(ctx context.Context, id string) (*customer.Customer, error)
}

// TicketService owns the ticket and embedded-message lifecycle.
type TicketService interface {
	Create(ctx context.Context, ticket *Ticket) (*Ticket, error)
	Get(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context) ([]Ticket, error)
	Delete(ctx context.Context, id string) (bool, error)

	AddMessage(ctx context.Context, ticketID string, message *TicketMessage) (*Ticket, error)
	UpdateMessage(ctx context.Context, ticketID, messageID, content string) (*Ticket, error)
	DeleteMessage(ctx context.Context, ticketID, messageID string) (*Ticket, error)
}

type TicketServiceImpl struct {
	Repo      TicketRepository
	Customers CustomerFinder
}

func NewTicketService(repo TicketRepository, customers CustomerFinder) TicketService {
	return &TicketServiceImpl{
		Repo:      repo,
		Customers: customers,
	}
}

// Create persists a new ticket after verifying its customer reference.
// The existence check and the insert are two separate round trips: a
// customer deleted in between is not detected.
func (s *TicketServiceImpl) Create(ctx context.Context, t *Ticket) (*Ticket, error) {
	if t.CustomerID.IsZero() {
		return nil, apperr.Validation("customer_id", "customer_id is required")
	}
	if t.Subject == "" {
		return nil, apperr.Validation("subject", "subject is required")
	}

	if _, err := s.Customers.Get(ctx, t.CustomerID.Hex()); err != nil {
		return nil, err
	}

	if t.Status == "" {
		t.Status = TicketStatusOpen
	}
	if t.Priority == "" {
		t.Priority = TicketPriorityMedium
	}
	if t.Messages == nil {
		t.Messages = []TicketMessage{}
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := s.Repo.Insert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketServiceImpl) Get(ctx context.Context, id string) (*Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.InvalidID("id", id)
	}

	ticket, err := s.Repo.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("ticket", id)
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketServiceImpl) List(ctx context.Context) ([]Ticket, error) {
	return s.Repo.FindAll(ctx)
}

func (s *TicketServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, apperr.InvalidID("id", id)
	}

	deleted, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return false, err
	}
	return deleted == 1, nil
}

// AddMessage assigns the message its identifier, appends it atomically
// and returns the full updated ticket.
func (s *TicketServiceImpl) AddMessage(ctx context.Context, ticketID string, message *TicketMessage) (*Ticket, error) {
	oid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, apperr.InvalidID("ticket_id", ticketID)
	}
	if message.Content == "" {
		return nil, apperr.Validation("content", "content is required")
	}

	if message.ID.IsZero() {
		message.ID = primitive.NewObjectID()
	}
	now := time.Now()
	if message.Timestamp.IsZero() {
		message.Timestamp = now
	}
	message.UpdatedAt = now

	ticket, err := s.Repo.PushMessage(ctx, oid, *message)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("ticket", ticketID)
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// UpdateMessage rewrites a single embedded message's content in place.
// A combined ticket+message match failure surfaces as the same coarse
// ticket-not-found error: the store cannot tell which half missed.
func (s *TicketServiceImpl) UpdateMessage(ctx context.Context, ticketID, messageID, content string) (*Ticket, error) {
	tid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, apperr.InvalidID("ticket_id", ticketID)
	}
	mid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, apperr.InvalidID("message_id", messageID)
	}
	if content == "" {
		return nil, apperr.Validation("content", "content is required")
	}

	ticket, err := s.Repo.SetMessageContent(ctx, tid, mid, content)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("ticket", ticketID)
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteMessage removes a single embedded message, with the same coarse
// not-found semantics as UpdateMessage.
func (s *TicketServiceImpl) DeleteMessage(ctx context.Context, ticketID, messageID string) (*Ticket, error) {
	tid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, apperr.InvalidID("ticket_id", ticketID)
	}
	mid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, apperr.InvalidID("message_id", messageID)
	}

	ticket, err := s.Repo.PullMessage(ctx, tid, mid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("ticket", ticketID)
	}
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
