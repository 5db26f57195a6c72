package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Wishlist struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    string               `bson:"userId" json:"userId"`
	Products  []primitive.ObjectID `bson:"products" json:"products"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

func (w *Wishlist) Contains(productID primitive.ObjectID) bool {
	for _, id := range w.Products {
		if id == productID {
			return true
		}
	}
	return false
}

type WishlistView struct {
	UserID   string    `json:"userId"`
	Products []Product `json:"products"`
}

func EmptyWishlist(userID string) *WishlistView {
	return &WishlistView{UserID: userID, Products: []Product{}}
}

func (v *WishlistView) Contains(productID primitive.ObjectID) bool {
	for _, p := range v.Products {
		if p.ID == productID {
			return true
		}
	}
	return false
}
