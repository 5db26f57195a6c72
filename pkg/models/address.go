package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery address. At most one per user has IsDefault set.
type Address struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    string             `bson:"userId" json:"userId"`
	Label     string             `bson:"label" json:"label"`
	Name      string             `bson:"name" json:"name"`
	Phone     string             `bson:"phone" json:"phone"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Address   string             `bson:"address" json:"address"`
	City      string             `bson:"city" json:"city"`
	Pincode   string             `bson:"pincode" json:"pincode"`
	IsDefault bool               `bson:"isDefault" json:"isDefault"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
