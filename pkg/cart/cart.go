package cart

import (
	"errors"

	"motoshop/pkg/product"
)

var ErrLineNotFound = errors.New("cart line not found")

// Line is one product in a user's cart. Quantity is always positive: a
// line that would drop to zero or below is deleted instead.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LineView joins a line with the current catalog document for display.
type LineView struct {
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

type Repository interface {
	// Adjust merges delta into an existing line inside one transaction.
	// Reports the resulting quantity and whether a line existed; when no
	// line exists nothing is written and the caller decides about the
	// insert path.
	Adjust(userID, productID string, delta int) (int, bool, error)
	Insert(userID, productID string, quantity int) error
	Delete(userID, productID string) (bool, error)
	List(userID string) ([]Line, error)
	Total(userID string) (int, error)
	Clear(userID string) error
}

// Catalog is the read-only product lookup consumed on the insert path.
type Catalog interface {
	GetByID(id string) (*product.Product, error)
}
