package ticket

import (
	"context"
	"time"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketRepository is the store-level contract for tickets and their
// embedded messages. Every message mutation is a single atomic filtered
// update, never a read-modify-write, so concurrent mutations of
// different messages within one ticket do not conflict.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error)
	FindAll(ctx context.Context) ([]Ticket, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)

	PushMessage(ctx context.Context, ticketID primitive.ObjectID, message TicketMessage) (*Ticket, error)
	SetMessageContent(ctx context.Context, ticketID, messageID primitive.ObjectID, content string) (*Ticket, error)
	PullMessage(ctx context.Context, ticketID, messageID primitive.ObjectID) (*Ticket, error)
}

type TicketRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewTicketRepository(mongodb *database.MongodbDB) TicketRepository {
	return &TicketRepositoryImpl{
		Collection: mongodb.DB.Collection("tickets"),
	}
}

func (r *TicketRepositoryImpl) Insert(ctx context.Context, ticket *Ticket) error {
	result, err := r.Collection.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	ticket.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error) {
	var ticket Ticket
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindAll returns the full unfiltered collection. Known scale
// limitation: no pagination, no sort key.
func (r *TicketRepositoryImpl) FindAll(ctx context.Context) ([]Ticket, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// PushMessage atomically appends a message to the ticket's embedded
// sequence and returns the updated document.
func (r *TicketRepositoryImpl) PushMessage(ctx context.Context, ticketID primitive.ObjectID, message TicketMessage) (*Ticket, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ticket Ticket
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": ticketID},
		bson.M{
			"$push": bson.M{"messages": message},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// SetMessageContent matches the ticket by _id AND the embedded message
// by its _id, then rewrites only that element's content via the
// positional operator. A no-match (missing ticket or missing message,
// indistinguishable here) surfaces as mongo.ErrNoDocuments.
func (r *TicketRepositoryImpl) SetMessageContent(ctx context.Context, ticketID, messageID primitive.ObjectID, content string) (*Ticket, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	now := time.Now()

	var ticket Ticket
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{
			"_id":          ticketID,
			"messages._id": messageID,
		},
		bson.M{
			"$set": bson.M{
				"messages.$.content":    content,
				"messages.$.updated_at": now,
				"updated_at":            now,
			},
		},
		opts,
	).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// PullMessage atomically removes the embedded message matching
// messageID, leaving the order of the remaining messages unchanged. The
// filter requires the ticket+message pair, so a missing message fails
// the same way as a missing ticket.
func (r *TicketRepositoryImpl) PullMessage(ctx context.Context, ticketID, messageID primitive.ObjectID) (*Ticket, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ticket Ticket
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{
			"_id":          ticketID,
			"messages._id": messageID,
		},
		bson.M{
			"$pull": bson.M{"messages": bson.M{"_id": messageID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
