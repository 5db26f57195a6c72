package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_ToggleOscillates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	seeds := f.addProduct(t, "compost", "120", 3)

	action, view, err := f.wishlist.Toggle(ctx, user, seeds.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, WishlistAdded, action)
	assert.True(t, view.Contains(seeds.ID))

	action, view, err = f.wishlist.Toggle(ctx, user, seeds.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, WishlistRemoved, action)
	assert.False(t, view.Contains(seeds.ID))

	action, view, err = f.wishlist.Toggle(ctx, user, seeds.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, WishlistAdded, action)
	assert.True(t, view.Contains(seeds.ID))
}

func TestWishlist_EmptiedWishlistIsDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	a := f.addProduct(t, "compost", "120", 3)
	b := f.addProduct(t, "sprayer", "560", 3)

	for _, p := range []string{a.ID.Hex(), b.ID.Hex(), a.ID.Hex()} {
		_, _, err := f.wishlist.Toggle(ctx, user, p)
		require.NoError(t, err)
	}
	_, err := f.wishlists.FindByUser(ctx, user)
	require.NoError(t, err, "one product left, wishlist must remain")

	_, view, err := f.wishlist.Toggle(ctx, user, b.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, view.Products)

	_, err = f.wishlists.FindByUser(ctx, user)
	assert.Error(t, err, "empty wishlist must be deleted")

	view, err = f.wishlist.Fetch(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user, view.UserID)
	assert.Empty(t, view.Products)
}

func TestWishlist_ToggleRejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, _, err := f.wishlist.Toggle(ctx, newUserID(), "xyz")
	requireKind(t, err, KindInvalidInput)

	_, _, err = f.wishlist.Toggle(ctx, "nope", "65b121e780d603417855f70a")
	requireKind(t, err, KindInvalidInput)

	_, _, err = f.wishlist.Toggle(ctx, newUserID(), "65b121e780d603417855f70a")
	requireKind(t, err, KindNotFound)
}

func TestWishlist_FetchResolvesProducts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()
	a := f.addProduct(t, "compost", "120", 3)

	_, _, err := f.wishlist.Toggle(ctx, user, a.ID.Hex())
	require.NoError(t, err)

	view, err := f.wishlist.Fetch(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "compost", view.Products[0].Name)
	assert.Equal(t, "120", view.Products[0].Price.String())
}
