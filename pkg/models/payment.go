package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerStatusSubmitted is the status recorded with every new ledger entry.
const LedgerStatusSubmitted = "success"

// LedgerProduct is one free-form product line as submitted by the client.
type LedgerProduct map[string]interface{}

// LedgerEntry is one submitted payment attempt, reviewed by admins. It is not
// linked to any order.
type LedgerEntry struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Phone    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Address  string             `bson:"address,omitempty" json:"address,omitempty"`
	City     string             `bson:"city,omitempty" json:"city,omitempty"`
	Pincode  string             `bson:"pincode,omitempty" json:"pincode,omitempty"`
	TxnID    string             `bson:"txnId" json:"txnId"`
	UtrID    string             `bson:"utrId" json:"utrId"`
	Amount   decimal.Decimal    `bson:"amount" json:"amount"`
	Products []LedgerProduct    `bson:"products" json:"products"`
	Status   string             `bson:"status" json:"status"`
	Date     time.Time          `bson:"date" json:"date"`
}
