package product

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrUnavailable covers both a missing product and one taken off sale.
	ErrUnavailable = errors.New("product unavailable")
)

// Category не валидируется здесь, список магазинный
const Categories = "HONDA|YAMAHA|KAWASAKI"

type Product struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `json:"id" bson:"-"`
	Name        string             `json:"name" bson:"name"`
	Model       string             `json:"model" bson:"model"`
	Image       string             `json:"image" bson:"image"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	Sell        bool               `json:"sell" bson:"sell"`

	EngineForm       string `json:"engineform" bson:"engineform"`
	Dimensions       string `json:"dimensions" bson:"dimensions"`
	SeatHeight       string `json:"seatHeight" bson:"seat_height"`
	Weight           string `json:"weight" bson:"weight"`
	Displacement     string `json:"displacement" bson:"displacement"`
	MaxHorsepower    string `json:"maxHorsepower" bson:"max_horsepower"`
	MaxTorque        string `json:"maxTorque" bson:"max_torque"`
	FrontSuspension  string `json:"frontSuspension" bson:"front_suspension"`
	RearSuspension   string `json:"rearSuspension" bson:"rear_suspension"`
	FrontTire        string `json:"frontTire" bson:"front_tire"`
	RearTire         string `json:"rearTire" bson:"rear_tire"`
	FrontBrakeSystem string `json:"frontBrakeSystem" bson:"front_brake_system"`
	RearBrakeSystem  string `json:"rearBrakeSystem" bson:"rear_brake_system"`
}

type Repository interface {
	Create(product *Product) error
	Update(id string, product *Product) (*Product, error)
	GetByID(id string) (*Product, error)
	GetAll() []*Product
	GetOnSale() []*Product
}
