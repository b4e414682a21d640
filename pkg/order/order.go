package order

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"motoshop/pkg/cart"
	"motoshop/pkg/product"
	"motoshop/pkg/user"
)

var ErrEmptyCart = errors.New("cart is empty")

// Item is a by-value snapshot of one cart line at checkout time. It is
// never updated when the cart or the catalog changes afterwards.
type Item struct {
	ProductID string `json:"product_id" bson:"product_id"`
	Quantity  int    `json:"quantity" bson:"quantity"`
}

type Order struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID      string             `json:"id" bson:"-"`
	UserID  string             `json:"user_id" bson:"user_id"`
	Created time.Time          `json:"created" bson:"created"`
	Items   []Item             `json:"items" bson:"items"`
}

// ItemView joins a snapshot item with the current catalog document.
type ItemView struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

type View struct {
	ID      string     `json:"id"`
	Account string     `json:"account,omitempty"`
	Created time.Time  `json:"created"`
	Items   []ItemView `json:"items"`
}

type Repository interface {
	Create(order *Order) error
	// Delete exists for the compensating rollback only; orders are
	// append-only otherwise.
	Delete(orderID string) error
	GetByUser(userID string) ([]*Order, error)
	GetAll() ([]*Order, error)
}

// CartStore is the slice of the cart repository checkout needs.
type CartStore interface {
	List(userID string) ([]cart.Line, error)
	Clear(userID string) error
}

type Catalog interface {
	GetByID(id string) (*product.Product, error)
}

type Accounts interface {
	FindByID(id string) (*user.User, error)
}
