package product_test

import (
	"testing"

	"motoshop/pkg/product"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGetProductByIDRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	productID := primitive.NewObjectID()

	mt.Run("success", func(mt *mtest.T) {
		doc := bson.D{
			{Key: "_id", Value: productID},
			{Key: "name", Value: "CB650R"},
			{Key: "category", Value: "HONDA"},
			{Key: "sell", Value: true},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "motoshop.products", mtest.FirstBatch, doc))
		repo := product.NewMongoRepo(mt.DB)

		p, err := repo.GetByID(productID.Hex())

		assert.NoError(mt, err)
		assert.Equal(mt, "CB650R", p.Name)
		assert.True(mt, p.Sell)
		assert.Equal(mt, productID.Hex(), p.ID)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "motoshop.products", mtest.FirstBatch))
		repo := product.NewMongoRepo(mt.DB)

		p, err := repo.GetByID(productID.Hex())

		assert.Nil(mt, p)
		assert.ErrorIs(mt, err, product.ErrNotFound)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		repo := product.NewMongoRepo(mt.DB)

		_, err := repo.GetByID("oops")

		assert.Error(mt, err)
	})
}

func TestGetOnSaleRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		docs := []bson.D{
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "CB650R"}, {Key: "sell", Value: true}},
			{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "MT-07"}, {Key: "sell", Value: true}},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "motoshop.products", mtest.FirstBatch, docs...))
		repo := product.NewMongoRepo(mt.DB)

		results := repo.GetOnSale()

		assert.Len(mt, results, 2)
		assert.Equal(mt, "CB650R", results[0].Name)
	})

	mt.Run("find error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    123,
			Message: "some error",
		}))
		repo := product.NewMongoRepo(mt.DB)

		assert.Nil(mt, repo.GetOnSale())
	})
}

func TestCreateProductRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := product.NewMongoRepo(mt.DB)

		p := &product.Product{Name: "CB650R", Category: "HONDA", Sell: true}
		err := repo.Create(p)

		assert.NoError(mt, err)
		assert.NotEmpty(mt, p.ID)
	})
}
