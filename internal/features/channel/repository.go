package channel

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ChannelRepository interface {
	Insert(ctx context.Context, channel *Channel) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Channel, error)
	FindBy(ctx context.Context, key, value string) (*Channel, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Channel, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type ChannelRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewChannelRepository(mongodb *database.MongodbDB) ChannelRepository {
	return &ChannelRepositoryImpl{
		Collection: mongodb.DB.Collection("channels"),
	}
}

func (r *ChannelRepositoryImpl) Insert(ctx context.Context, channel *Channel) error {
	result, err := r.Collection.InsertOne(ctx, channel)
	if err != nil {
		return err
	}
	channel.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ChannelRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Channel, error) {
	var channel Channel
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

// FindBy matches on an arbitrary field/value pair, e.g. ("type", "email").
func (r *ChannelRepositoryImpl) FindBy(ctx context.Context, key, value string) (*Channel, error) {
	var channel Channel
	if err := r.Collection.FindOne(ctx, bson.M{key: value}).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Channel, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var channel Channel
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&channel)
	if err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *ChannelRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
