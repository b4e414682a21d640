package order

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("orders"),
	}
}

func (r *MongoRepo) Create(order *Order) error {
	ctx := context.TODO()

	if len(order.Items) == 0 {
		return ErrEmptyCart
	}

	result, err := r.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.MongoID = oid
		order.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) Delete(orderID string) error {
	ctx := context.TODO()

	objectID, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return errors.New("invalid ID format")
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("order %s not found", orderID)
	}

	return nil
}

func (r *MongoRepo) GetByUser(userID string) ([]*Order, error) {
	return r.find(bson.M{"user_id": userID})
}

func (r *MongoRepo) GetAll() ([]*Order, error) {
	return r.find(bson.D{})
}

/* пустая история и упавшее хранилище — разные ответы */
func (r *MongoRepo) find(filter any) ([]*Order, error) {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*Order
	for cursor.Next(ctx) {
		var order Order
		if cursor.Decode(&order) == nil {
			order.ID = order.MongoID.Hex()
			orders = append(orders, &order)
		}
	}

	return orders, cursor.Err()
}
