package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the payment.status of an order.
type OrderStatus string

const (
	StatusPendingVerification OrderStatus = "Pending Verification"
	StatusPaid                OrderStatus = "Paid"
	StatusShipped             OrderStatus = "Shipped"
	StatusDelivered           OrderStatus = "Delivered"
	StatusFailed              OrderStatus = "Failed"
	StatusCancelled           OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPendingVerification, StatusPaid, StatusShipped, StatusDelivered, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed || s == StatusCancelled
}

// OrderItem is captured at purchase time and never re-read from the catalog.
type OrderItem struct {
	ProductID *primitive.ObjectID `bson:"productId,omitempty" json:"productId,omitempty"`
	Name      string              `bson:"name" json:"name"`
	Price     decimal.Decimal     `bson:"price" json:"price"`
	Quantity  int                 `bson:"quantity" json:"quantity"`
	Photo     string              `bson:"photo,omitempty" json:"photo,omitempty"`
}

type DeliveryDetails struct {
	Name    string `bson:"name" json:"name"`
	Phone   string `bson:"phone" json:"phone"`
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	Pincode string `bson:"pincode" json:"pincode"`
	Email   string `bson:"email,omitempty" json:"email,omitempty"`
}

type Payment struct {
	TxnID  string      `bson:"txnId" json:"txnId"`
	UtrID  string      `bson:"utrId" json:"utrId"`
	Status OrderStatus `bson:"status" json:"status"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          string             `bson:"userId" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	DeliveryDetails DeliveryDetails    `bson:"deliveryDetails" json:"deliveryDetails"`
	TotalAmount     decimal.Decimal    `bson:"totalAmount" json:"totalAmount"`
	Payment         Payment            `bson:"payment" json:"payment"`
	ShippedAt       *time.Time         `bson:"shippedAt" json:"shippedAt"`
	CancelledAt     *time.Time         `bson:"cancelledAt" json:"cancelledAt"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StatusChange is a compare-and-set of payment.status: it only applies while
// the stored status still equals From.
type StatusChange struct {
	From        OrderStatus
	To          OrderStatus
	At          time.Time
	ShippedAt   *time.Time
	CancelledAt *time.Time
}
