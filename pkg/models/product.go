package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductType string

const (
	ProductTypeSoil       ProductType = "Soil"
	ProductTypeNutrients  ProductType = "Nutrients"
	ProductTypeTools      ProductType = "Tools"
	ProductTypeIrrigation ProductType = "Irrigation"
)

func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeSoil, ProductTypeNutrients, ProductTypeTools, ProductTypeIrrigation:
		return true
	}
	return false
}

// Product is a catalog record. Quantity is the live stock level.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Type        ProductType        `bson:"type" json:"type"`
	SKU         string             `bson:"sku,omitempty" json:"sku,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Product) InStock() bool {
	return p.Quantity > 0
}
