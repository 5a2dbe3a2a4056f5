package customer

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CustomerRepository interface {
	Insert(ctx context.Context, customer *Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Customer, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	List(ctx context.Context, filter bson.M, skip, limit int64) ([]Customer, error)
	EnsureIndexes(ctx context.Context) error
}

type CustomerRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewCustomerRepository(mongodb *database.MongodbDB) CustomerRepository {
	return &CustomerRepositoryImpl{
		Collection: mongodb.DB.Collection("customers"),
	}
}

func (r *CustomerRepositoryImpl) Insert(ctx context.Context, customer *Customer) error {
	result, err := r.Collection.InsertOne(ctx, customer)
	if err != nil {
		return err
	}
	customer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *CustomerRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Customer, error) {
	var customer Customer
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Customer, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var customer Customer
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&customer)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *CustomerRepositoryImpl) List(ctx context.Context, filter bson.M, skip, limit int64) ([]Customer, error) {
	opts := options.Find().SetSkip(skip)
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}
