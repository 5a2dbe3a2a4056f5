package ticket

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketStatus represents the status of a ticket
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority represents the priority level of a ticket
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// TicketCategory classifies the ticket's subject area
type TicketCategory string

const (
	TicketCategoryBilling        TicketCategory = "billing"
	TicketCategoryTechnical      TicketCategory = "technical"
	TicketCategoryGeneral        TicketCategory = "general"
	TicketCategoryFeatureRequest TicketCategory = "feature_request"
)

// TicketMessage is a message embedded in a ticket's conversation. It has
// no top-level existence: it is created, updated and removed only through
// its parent ticket, and its identifier is unique within that ticket.
type TicketMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Content   string             `json:"content" bson:"content"`
	Sender    string             `json:"sender" bson:"sender"`
	ChannelID primitive.ObjectID `json:"channel_id" bson:"channel_id"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Ticket represents a customer support ticket with its embedded message
// conversation.
type Ticket struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CustomerID      primitive.ObjectID  `json:"customer_id" bson:"customer_id"`
	AssignedAgentID *primitive.ObjectID `json:"assigned_agent_id,omitempty" bson:"assigned_agent_id,omitempty"`
	Status          TicketStatus        `json:"status" bson:"status"`
	Priority        TicketPriority      `json:"priority" bson:"priority"`
	Category        TicketCategory      `json:"category" bson:"category"`
	Subject         string              `json:"subject" bson:"subject"`
	Messages        []TicketMessage     `json:"messages" bson:"messages"`
	Tags            []string            `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
	ResolvedAt      *time.Time          `json:"resolved_at,omitempty" bson:"resolved_at,omitempty"`
}

// UpdateMessageRequest is the payload for updating an embedded message.
// Only the content field is applied.
type UpdateMessageRequest struct {
	Content   string `json:"content"`
	ChannelID string `json:"channel_id,omitempty"`
}
