package product

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("products"),
	}
}

func (r *MongoRepo) Create(product *Product) error {
	ctx := context.TODO()

	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("product already exists")
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.MongoID = oid
		product.ID = oid.Hex()
	} else {
		return errors.New("failed to convert inserted ID to ObjectID")
	}

	return nil
}

func (r *MongoRepo) Update(id string, product *Product) (*Product, error) {
	ctx := context.TODO()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid ID format")
	}

	product.MongoID = objectID

	var updated Product
	err = r.collection.FindOneAndReplace(
		ctx,
		bson.M{"_id": objectID},
		product,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated.ID = updated.MongoID.Hex()
	return &updated, nil
}

func (r *MongoRepo) GetByID(id string) (*Product, error) {
	ctx := context.TODO()
	var product Product

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		/* кривой id — такого товара точно нет */
		return nil, ErrNotFound
	}

	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	product.ID = product.MongoID.Hex()
	return &product, nil
}

func (r *MongoRepo) GetAll() []*Product {
	return r.find(bson.D{})
}

func (r *MongoRepo) GetOnSale() []*Product {
	return r.find(bson.M{"sell": true})
}

func (r *MongoRepo) find(filter any) []*Product {
	ctx := context.TODO()
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var products []*Product
	for cursor.Next(ctx) {
		var product Product
		if cursor.Decode(&product) == nil {
			product.ID = product.MongoID.Hex()
			products = append(products, &product)
		}
	}

	return products
}
