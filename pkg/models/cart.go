package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is the stored per-user cart. Version guards concurrent writers.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string             `bson:"userId" json:"userId"`
	Items     []CartItem         `bson:"items" json:"items"`
	Version   int64              `bson:"version" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Quantity returns the quantity held for productID, zero when absent.
func (c *Cart) Quantity(productID primitive.ObjectID) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// SetQuantity overwrites the line for productID, appending one if needed.
func (c *Cart) SetQuantity(productID primitive.ObjectID, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})
}

// Remove drops the whole line for productID and reports whether it existed.
func (c *Cart) Remove(productID primitive.ObjectID) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// CartProduct is the live catalog view joined onto a cart line.
type CartProduct struct {
	ID       primitive.ObjectID `json:"_id"`
	Name     string             `json:"name"`
	Price    decimal.Decimal    `json:"price"`
	Type     ProductType        `json:"type"`
	Photo    string             `json:"photo,omitempty"`
	Quantity int                `json:"quantity"`
}

func NewCartProduct(p *Product) *CartProduct {
	return &CartProduct{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Type:     p.Type,
		Photo:    p.Photo,
		Quantity: p.Quantity,
	}
}

// CartLine is a cart item with its product resolved. Product is nil when the
// catalog record no longer exists.
type CartLine struct {
	ProductID primitive.ObjectID `json:"productId"`
	Quantity  int                `json:"quantity"`
	Product   *CartProduct       `json:"product"`
}

type CartView struct {
	UserID      string          `json:"userId"`
	Items       []CartLine      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func EmptyCart(userID string) *CartView {
	return &CartView{UserID: userID, Items: []CartLine{}, TotalAmount: decimal.Zero}
}

// Quantity returns the quantity of productID in the view, zero when absent.
func (v *CartView) Quantity(productID primitive.ObjectID) int {
	for _, line := range v.Items {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}
