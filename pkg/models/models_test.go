package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderStatus(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		valid    bool
		terminal bool
	}{
		{StatusPendingVerification, true, false},
		{StatusPaid, true, false},
		{StatusShipped, true, false},
		{StatusDelivered, true, true},
		{StatusFailed, true, true},
		{StatusCancelled, true, true},
		{"Refunded", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestProductTypeValid(t *testing.T) {
	assert.True(t, ProductTypeIrrigation.Valid())
	assert.False(t, ProductType("Seeds").Valid())
}

func TestCartLineOperations(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	cart := &Cart{UserID: "u1"}

	cart.SetQuantity(a, 2)
	cart.SetQuantity(b, 1)
	cart.SetQuantity(a, 5)

	require.Len(t, cart.Items, 2, "setting an existing product must not duplicate the line")
	assert.Equal(t, 5, cart.Quantity(a))
	assert.Equal(t, 1, cart.Quantity(b))

	assert.True(t, cart.Remove(a))
	assert.False(t, cart.Remove(a))
	assert.Equal(t, 0, cart.Quantity(a))
	assert.Len(t, cart.Items, 1)
}

func TestWishlistContains(t *testing.T) {
	a := primitive.NewObjectID()
	w := &Wishlist{Products: []primitive.ObjectID{a}}
	assert.True(t, w.Contains(a))
	assert.False(t, w.Contains(primitive.NewObjectID()))
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(OrderItem{Name: "Hoe", Price: decimal.RequireFromString("12.50"), Quantity: 1})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":12.5`)
}
