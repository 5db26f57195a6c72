package events

import (
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/shopspring/decimal"
)

// Events are published as pointers after the change they describe has been
// stored.

type OrderPlaced struct {
	OrderID   string
	UserID    string
	Email     string
	Total     decimal.Decimal
	ItemCount int
	At        time.Time
}

type OrderStatusChanged struct {
	OrderID string
	UserID  string
	Email   string
	From    models.OrderStatus
	To      models.OrderStatus
	At      time.Time
}

type PaymentSubmitted struct {
	EntryID string
	TxnID   string
	Email   string
	Amount  decimal.Decimal
	At      time.Time
}

type PaymentStatusChanged struct {
	EntryID string
	Status  string
	At      time.Time
}
