package service

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_FetchWithoutCartIsEmpty(t *testing.T) {
	f := newFixture()
	user := newUserID()

	view, err := f.cart.Fetch(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, view.UserID)
	assert.Empty(t, view.Items)
	assert.True(t, view.TotalAmount.IsZero())
}

func TestCart_AddMergesLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 2)
	require.NoError(t, err)
	view, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 0)
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	require.NotNil(t, view.Items[0].Product)
	assert.Equal(t, "hoe", view.Items[0].Product.Name)
	assert.Equal(t, "750", view.TotalAmount.String())
}

func TestCart_AddBeyondStockLeavesCartUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	soil := f.addProduct(t, "soil", "99.5", 5)

	view, err := f.cart.AddItem(ctx, user, soil.ID.Hex(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Quantity(soil.ID))

	for _, qty := range []int{3, math.MaxInt} {
		_, err = f.cart.AddItem(ctx, user, soil.ID.Hex(), qty)
		svcErr := requireKind(t, err, KindOutOfStock)
		assert.Equal(t, 5, svcErr.MaxQuantity)
	}

	view, err = f.cart.Fetch(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Quantity(soil.ID))
	assert.Equal(t, "298.5", view.TotalAmount.String())
}

func TestCart_AddRejectsBadInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	hoe := f.addProduct(t, "hoe", "250", 10)

	tests := []struct {
		name      string
		userID    string
		productID string
		quantity  int
		kind      ErrorKind
	}{
		{"negative quantity", newUserID(), hoe.ID.Hex(), -1, KindInvalidInput},
		{"malformed product", newUserID(), "not-an-id", 1, KindInvalidInput},
		{"unknown product", newUserID(), "65b121e780d603417855f70a", 1, KindNotFound},
		{"malformed user", "user-1", hoe.ID.Hex(), 1, KindInvalidInput},
		{"missing user", "", hoe.ID.Hex(), 1, KindMissingFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.cart.AddItem(ctx, tt.userID, tt.productID, tt.quantity)
			requireKind(t, err, tt.kind)
		})
	}
	assert.Equal(t, 0, f.carts.Len())
}

func TestCart_RemoveDropsWholeLineAndDeletesEmptyCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 7)
	require.NoError(t, err)

	view, removed, err := f.cart.RemoveItem(ctx, user, hoe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, view.Items)
	assert.Equal(t, 0, f.carts.Len(), "an emptied cart must not be stored")

	// second removal is a no-op, not an error
	view, removed, err = f.cart.RemoveItem(ctx, user, hoe.ID.Hex())
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, view.Items)
}

func TestCart_RemoveKeepsOtherLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)
	rake := f.addProduct(t, "rake", "300", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, user, rake.ID.Hex(), 2)
	require.NoError(t, err)

	view, removed, err := f.cart.RemoveItem(ctx, user, hoe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, removed)
	require.Len(t, view.Items, 1)
	assert.Equal(t, rake.ID, view.Items[0].ProductID)
	assert.Equal(t, 1, f.carts.Len())
}

func TestCart_SetQuantity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 4)

	view, err := f.cart.SetQuantity(ctx, user, hoe.ID.Hex(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Quantity(hoe.ID))

	view, err = f.cart.SetQuantity(ctx, user, hoe.ID.Hex(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Quantity(hoe.ID))

	_, err = f.cart.SetQuantity(ctx, user, hoe.ID.Hex(), 0)
	requireKind(t, err, KindInvalidInput)

	_, err = f.cart.SetQuantity(ctx, user, hoe.ID.Hex(), 5)
	svcErr := requireKind(t, err, KindOutOfStock)
	assert.Equal(t, 4, svcErr.MaxQuantity)

	view, err = f.cart.Fetch(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 4, view.Quantity(hoe.ID))
}

func TestCart_ChecksLiveStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 2)
	require.NoError(t, err)

	f.products.SetQuantity(hoe.ID, 2)
	_, err = f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	svcErr := requireKind(t, err, KindOutOfStock)
	assert.Equal(t, 2, svcErr.MaxQuantity)
}

func TestCart_RetriesVersionConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	require.NoError(t, err)

	f.carts.InjectConflicts(maxWriteAttempts - 1)
	view, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Quantity(hoe.ID))

	f.carts.InjectConflicts(maxWriteAttempts)
	_, err = f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	requireKind(t, err, KindConflict)

	view, err = f.cart.Fetch(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Quantity(hoe.ID))
}

// Stock is checked per cart, never reserved: two shoppers may each hold the
// whole stock at once.
func TestCart_StockIsNotReservedAcrossUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	kit := f.addProduct(t, "drip-kit", "349", 3)

	for i := 0; i < 2; i++ {
		view, err := f.cart.AddItem(ctx, newUserID(), kit.ID.Hex(), 3)
		require.NoError(t, err)
		assert.Equal(t, 3, view.Quantity(kit.ID))
	}
	assert.Equal(t, 2, f.carts.Len())
}

func TestCart_DeletedProductStaysAsUnresolvedLine(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	hoe := f.addProduct(t, "hoe", "250", 10)
	rake := f.addProduct(t, "rake", "100", 10)

	_, err := f.cart.AddItem(ctx, user, hoe.ID.Hex(), 1)
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, user, rake.ID.Hex(), 1)
	require.NoError(t, err)
	require.NoError(t, f.products.Delete(ctx, hoe.ID))

	view, err := f.cart.Fetch(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Nil(t, view.Items[0].Product)
	assert.Equal(t, "100", view.TotalAmount.String())
}
