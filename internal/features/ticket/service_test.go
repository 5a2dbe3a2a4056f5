package ticket

import (
	"context"
	"testing"
	"time"

	"go-support/internal/common/apperr"
	"go-support/internal/features/customer"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockCustomerFinder struct {
	customers map[string]*customer.Customer
}

func (m *mockCustomerFinder) Get(ctx context.Context, id string) (*customer.Customer, error) {
	if c, ok := m.customers[id]; ok {
		return c, nil
	}
	return nil, apperr.NotFound("customer", id)
}

// mockTicketRepo keeps tickets in memory and mirrors the store-side
// semantics of the atomic message operations.
type mockTicketRepo struct {
	tickets     map[primitive.ObjectID]*Ticket
	insertCalls int
}

func newMockTicketRepo() *mockTicketRepo {
	return &mockTicketRepo{tickets: make(map[primitive.ObjectID]*Ticket)}
}

func (m *mockTicketRepo) Insert(ctx context.Context, t *Ticket) error {
	m.insertCalls++
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	stored := *t
	stored.Messages = append([]TicketMessage(nil), t.Messages...)
	m.tickets[t.ID] = &stored
	return nil
}

func (m *mockTicketRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *t
	copied.Messages = append([]TicketMessage(nil), t.Messages...)
	return &copied, nil
}

func (m *mockTicketRepo) FindAll(ctx context.Context) ([]Ticket, error) {
	var out []Ticket
	for _, t := range m.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTicketRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if _, ok := m.tickets[id]; !ok {
		return 0, nil
	}
	delete(m.tickets, id)
	return 1, nil
}

func (m *mockTicketRepo) PushMessage(ctx context.Context, ticketID primitive.ObjectID, message TicketMessage) (*Ticket, error) {
	t, ok := m.tickets[ticketID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	t.Messages = append(t.Messages, message)
	t.UpdatedAt = time.Now()
	return m.FindByID(ctx, ticketID)
}

func (m *mockTicketRepo) SetMessageContent(ctx context.Context, ticketID, messageID primitive.ObjectID, content string) (*Ticket, error) {
	t, ok := m.tickets[ticketID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for i := range t.Messages {
		if t.Messages[i].ID == messageID {
			now := time.Now()
			t.Messages[i].Content = content
			t.Messages[i].UpdatedAt = now
			t.UpdatedAt = now
			return m.FindByID(ctx, ticketID)
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTicketRepo) PullMessage(ctx context.Context, ticketID, messageID primitive.ObjectID) (*Ticket, error) {
	t, ok := m.tickets[ticketID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	for i := range t.Messages {
		if t.Messages[i].ID == messageID {
			t.Messages = append(t.Messages[:i], t.Messages[i+1:]...)
			t.UpdatedAt = time.Now()
			return m.FindByID(ctx, ticketID)
		}
	}
	return nil, mongo.ErrNoDocuments
}

func newServiceWithCustomer(t *testing.T) (TicketService, *mockTicketRepo, primitive.ObjectID) {
	t.Helper()
	repo := newMockTicketRepo()
	customerID := primitive.NewObjectID()
	finder := &mockCustomerFinder{
		customers: map[string]*customer.Customer{
			customerID.Hex(): {ID: customerID, Name: "John Doe"},
		},
	}
	return NewTicketService(repo, finder), repo, customerID
}

func TestCreateTicketUnknownCustomer(t *testing.T) {
	repo := newMockTicketRepo()
	finder := &mockCustomerFinder{customers: map[string]*customer.Customer{}}
	service := NewTicketService(repo, finder)

	_, err := service.Create(context.Background(), &Ticket{
		CustomerID: primitive.NewObjectID(),
		Subject:    "cannot log in",
		Category:   TicketCategoryTechnical,
	})

	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if repo.insertCalls != 0 {
		t.Fatalf("expected no insert after failed existence check, got %d", repo.insertCalls)
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)

	created, err := service.Create(context.Background(), &Ticket{
		CustomerID: customerID,
		Subject:    "billing question",
		Category:   TicketCategoryBilling,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if created.ID.IsZero() {
		t.Error("expected assigned ticket id")
	}
	if created.Status != TicketStatusOpen {
		t.Errorf("Status = %q, want %q", created.Status, TicketStatusOpen)
	}
	if created.Priority != TicketPriorityMedium {
		t.Errorf("Priority = %q, want %q", created.Priority, TicketPriorityMedium)
	}
	if created.Messages == nil || len(created.Messages) != 0 {
		t.Errorf("Messages = %v, want empty sequence", created.Messages)
	}
}

func TestAddMessageAppends(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "slow dashboard",
		Category:   TicketCategoryTechnical,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	first := TicketMessage{Content: "hi", Sender: "customer", ChannelID: primitive.NewObjectID()}
	updated, err := service.AddMessage(ctx, created.ID.Hex(), &first)
	if err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}
	if len(updated.Messages) != 1 {
		t.Fatalf("len(Messages) = %d, want 1", len(updated.Messages))
	}
	if updated.Messages[0].ID.IsZero() {
		t.Error("expected generated message id")
	}

	firstStored := updated.Messages[0]

	second := TicketMessage{Content: "any update?", Sender: "customer", ChannelID: first.ChannelID}
	updated, err = service.AddMessage(ctx, created.ID.Hex(), &second)
	if err != nil {
		t.Fatalf("AddMessage() error = %v", err)
	}
	if len(updated.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(updated.Messages))
	}
	if updated.Messages[1].Content != "any update?" {
		t.Errorf("new message not appended at the end: %+v", updated.Messages)
	}
	if updated.Messages[0] != firstStored {
		t.Errorf("prior message changed by append: %+v != %+v", updated.Messages[0], firstStored)
	}
}

func TestAddMessageMissingTicket(t *testing.T) {
	service, _, _ := newServiceWithCustomer(t)

	msg := TicketMessage{Content: "hi", Sender: "customer"}
	_, err := service.AddMessage(context.Background(), primitive.NewObjectID().Hex(), &msg)
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateMessageTargetsOneMessage(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, _ := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "export broken",
		Category:   TicketCategoryTechnical,
	})

	channelID := primitive.NewObjectID()
	ticketWithMsgs, _ := service.AddMessage(ctx, created.ID.Hex(), &TicketMessage{Content: "hi", Sender: "customer", ChannelID: channelID})
	ticketWithMsgs, _ = service.AddMessage(ctx, created.ID.Hex(), &TicketMessage{Content: "still broken", Sender: "customer", ChannelID: channelID})

	firstBefore := ticketWithMsgs.Messages[0]
	target := ticketWithMsgs.Messages[1]

	updated, err := service.UpdateMessage(ctx, created.ID.Hex(), target.ID.Hex(), "hello")
	if err != nil {
		t.Fatalf("UpdateMessage() error = %v", err)
	}

	if updated.Messages[1].Content != "hello" {
		t.Errorf("Messages[1].Content = %q, want %q", updated.Messages[1].Content, "hello")
	}
	if updated.Messages[0] != firstBefore {
		t.Errorf("untargeted message changed: %+v != %+v", updated.Messages[0], firstBefore)
	}
	if updated.UpdatedAt.Before(ticketWithMsgs.UpdatedAt) {
		t.Error("expected ticket updated_at bump")
	}
}

func TestUpdateMessageMissingPair(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, _ := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "no audio",
		Category:   TicketCategoryTechnical,
	})

	// ticket exists, message does not: same coarse ticket-not-found error
	_, err := service.UpdateMessage(ctx, created.ID.Hex(), primitive.NewObjectID().Hex(), "hello")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	// ticket missing entirely
	_, err = service.UpdateMessage(ctx, primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), "hello")
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestDeleteMessagePreservesOrder(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, _ := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "refund",
		Category:   TicketCategoryBilling,
	})

	channelID := primitive.NewObjectID()
	var withMsgs *Ticket
	for _, content := range []string{"a", "b", "c"} {
		withMsgs, _ = service.AddMessage(ctx, created.ID.Hex(), &TicketMessage{Content: content, Sender: "customer", ChannelID: channelID})
	}

	target := withMsgs.Messages[1]
	updated, err := service.DeleteMessage(ctx, created.ID.Hex(), target.ID.Hex())
	if err != nil {
		t.Fatalf("DeleteMessage() error = %v", err)
	}

	if len(updated.Messages) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(updated.Messages))
	}
	if updated.Messages[0].Content != "a" || updated.Messages[1].Content != "c" {
		t.Errorf("remaining order wrong: %q, %q", updated.Messages[0].Content, updated.Messages[1].Content)
	}
}

func TestDeleteTicketIdempotentView(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, _ := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "close me",
		Category:   TicketCategoryGeneral,
	})

	deleted, err := service.Delete(ctx, created.ID.Hex())
	if err != nil || !deleted {
		t.Fatalf("first Delete() = %v, %v; want true, nil", deleted, err)
	}

	deleted, err = service.Delete(ctx, created.ID.Hex())
	if err != nil || deleted {
		t.Fatalf("second Delete() = %v, %v; want false, nil", deleted, err)
	}

	if _, err := service.Get(ctx, created.ID.Hex()); !apperr.IsNotFound(err) {
		t.Fatalf("Get() after delete = %v, want not-found", err)
	}
}

func TestMalformedIDsRejected(t *testing.T) {
	service, repo, _ := newServiceWithCustomer(t)
	ctx := context.Background()

	if _, err := service.Get(ctx, "not-an-id"); err == nil {
		t.Error("Get: expected error for malformed id")
	}
	if _, err := service.UpdateMessage(ctx, "nope", primitive.NewObjectID().Hex(), "x"); err == nil {
		t.Error("UpdateMessage: expected error for malformed ticket id")
	}
	if _, err := service.UpdateMessage(ctx, primitive.NewObjectID().Hex(), "nope", "x"); err == nil {
		t.Error("UpdateMessage: expected error for malformed message id")
	}
	if repo.insertCalls != 0 {
		t.Errorf("unexpected writes: %d", repo.insertCalls)
	}
}

// Full lifecycle from the scenario every release is smoke-tested against.
func TestTicketMessageLifecycle(t *testing.T) {
	service, _, customerID := newServiceWithCustomer(t)
	ctx := context.Background()

	created, err := service.Create(ctx, &Ticket{
		CustomerID: customerID,
		Subject:    "greeting",
		Category:   TicketCategoryGeneral,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created.Messages) != 0 {
		t.Fatalf("new ticket should have an empty message sequence")
	}

	withMsg, err := service.AddMessage(ctx, created.ID.Hex(), &TicketMessage{
		Content: "hi", Sender: "customer", ChannelID: primitive.NewObjectID(),
	})
	if err != nil || len(withMsg.Messages) != 1 {
		t.Fatalf("AddMessage() = %v, %v; want one message", withMsg, err)
	}

	msgID := withMsg.Messages[0].ID.Hex()

	updated, err := service.UpdateMessage(ctx, created.ID.Hex(), msgID, "hello")
	if err != nil || updated.Messages[0].Content != "hello" {
		t.Fatalf("UpdateMessage() content = %v, err = %v", updated.Messages, err)
	}

	emptied, err := service.DeleteMessage(ctx, created.ID.Hex(), msgID)
	if err != nil || len(emptied.Messages) != 0 {
		t.Fatalf("DeleteMessage() = %v, %v; want empty sequence", emptied.Messages, err)
	}

	deleted, err := service.Delete(ctx, created.ID.Hex())
	if err != nil || !deleted {
		t.Fatalf("Delete() = %v, %v; want true", deleted, err)
	}

	if _, err := service.Get(ctx, created.ID.Hex()); !apperr.IsNotFound(err) {
		t.Fatalf("Get() = %v, want not-found", err)
	}
}
