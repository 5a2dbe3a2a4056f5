package notification

import (
	"context"
	"time"

	"go-support/internal/common/apperr"
	"go-support/internal/features/channel"
	"go-support/internal/features/customer"
	"go-support/internal/features/ticket"

	"go.uber.org/zap"
)

type NotificationService interface {
	// Dispatch persists the notification, evaluates the decision table
	// against the referenced interaction and customer, and sends when the
	// decision is positive. The stored notification is returned either way.
	Dispatch(ctx context.Context, n *Notification) (*Notification, error)

	// Send resolves the customer's preferred contact method, finds a
	// channel of the matching type and invokes its notify capability.
	Send(ctx context.Context, n *Notification) error
}

type NotificationServiceImpl struct {
	Repo      NotificationRepository
	Customers customer.CustomerService
	Channels  channel.ChannelService
	Tickets   ticket.TicketService
	Logger    *zap.Logger
}

func NewNotificationService(
	repo NotificationRepository,
	customers customer.CustomerService,
	channels channel.ChannelService,
	tickets ticket.TicketService,
	logger *zap.Logger,
) NotificationService {
	return &NotificationServiceImpl{
		Repo:      repo,
		Customers: customers,
		Channels:  channels,
		Tickets:   tickets,
		Logger:    logger,
	}
}

func (s *NotificationServiceImpl) Dispatch(ctx context.Context, n *Notification) (*Notification, error) {
	if n.Message == "" {
		return nil, apperr.Validation("message", "message is required")
	}
	n.CreatedAt = time.Now()
	n.Sent = false

	if err := s.Repo.Insert(ctx, n); err != nil {
		return nil, err
	}

	interaction, err := s.Tickets.Get(ctx, n.InteractionID.Hex())
	if err != nil {
		// The interaction reference is not validated at creation: a
		// dangling one just means no immediate send.
		return n, nil
	}
	cust, err := s.Customers.Get(ctx, n.CustomerID.Hex())
	if err != nil {
		return n, nil
	}

	if ShouldNotify(interaction, cust, n.Type) {
		if err := s.Send(ctx, n); err != nil {
			s.Logger.Warn("notification send failed",
				zap.String("notification_id", n.ID.Hex()),
				zap.Error(err))
		}
	}
	return n, nil
}

// Send is fire-and-forget: no retry, no delivery confirmation. The sent
// flag is set on the in-memory value only and is never written back to
// the store on this path.
func (s *NotificationServiceImpl) Send(ctx context.Context, n *Notification) error {
	cust, err := s.Customers.Get(ctx, n.CustomerID.Hex())
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}
	if len(cust.ContactMethods) == 0 {
		return nil
	}

	contact := preferredContact(cust.ContactMethods)

	// The contact method's type tag is compared verbatim against the
	// channel type field, as stored.
	ch, err := s.Channels.FindBy(ctx, "type", string(contact.Type))
	if err != nil {
		return err
	}
	if ch != nil && ch.Config != nil {
		if err := ch.Config.Notify(ctx, contact.Value, n.Message); err != nil {
			return err
		}
	}

	n.Sent = true
	return nil
}

func preferredContact(methods []customer.ContactMethod) customer.ContactMethod {
	for _, m := range methods {
		if m.IsPreferred {
			return m
		}
	}
	return methods[0]
}
