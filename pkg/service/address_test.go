package service

import (
	"context"
	"testing"

	"github.com/example/agrigrow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func homeInput() AddressInput {
	return AddressInput{
		Name:    ptr("Asha"),
		Phone:   ptr("9876543210"),
		Address: ptr("12 Canal Road"),
		City:    ptr("Nashik"),
		Pincode: ptr("422001"),
	}
}

func countDefaults(list []models.Address) int {
	n := 0
	for _, a := range list {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestAddress_AddDefaultsLabel(t *testing.T) {
	f := newFixture()
	a, err := f.addressBook.Add(context.Background(), newUserID(), homeInput())
	require.NoError(t, err)
	assert.Equal(t, "Nashik, 422001", a.Label)
	assert.False(t, a.IsDefault)
}

func TestAddress_AddRequiresFields(t *testing.T) {
	f := newFixture()
	in := homeInput()
	in.Phone = nil

	_, err := f.addressBook.Add(context.Background(), newUserID(), in)
	requireKind(t, err, KindMissingFields)
}

func TestAddress_SingleDefault(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()

	var last *models.Address
	for i := 0; i < 4; i++ {
		in := homeInput()
		in.IsDefault = ptr(true)
		a, err := f.addressBook.Add(ctx, user, in)
		require.NoError(t, err)
		last = a

		list, err := f.addressBook.List(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, 1, countDefaults(list))
		assert.Equal(t, a.ID, list[0].ID, "default address is listed first")
	}

	first, err := f.addressBook.List(ctx, user)
	require.NoError(t, err)
	oldest := first[1]

	_, err = f.addressBook.Update(ctx, user, oldest.ID.Hex(), AddressInput{IsDefault: ptr(true)})
	require.NoError(t, err)

	list, err := f.addressBook.List(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, countDefaults(list))
	assert.Equal(t, oldest.ID, list[0].ID)
	assert.NotEqual(t, last.ID, list[0].ID)
}

func TestAddress_UpdateLabelRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := newUserID()

	in := homeInput()
	in.Label = ptr("Farm")
	a, err := f.addressBook.Add(ctx, user, in)
	require.NoError(t, err)

	updated, err := f.addressBook.Update(ctx, user, a.ID.Hex(), AddressInput{Phone: ptr("111")})
	require.NoError(t, err)
	assert.Equal(t, "Farm", updated.Label)

	updated, err = f.addressBook.Update(ctx, user, a.ID.Hex(), AddressInput{City: ptr("Pune")})
	require.NoError(t, err)
	assert.Equal(t, "Pune, 422001", updated.Label)

	updated, err = f.addressBook.Update(ctx, user, a.ID.Hex(), AddressInput{Label: ptr("Office"), Pincode: ptr("411001")})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Label)
	assert.Equal(t, user, updated.UserID)
}

func TestAddress_UpdateRejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := newUserID()
	a, err := f.addressBook.Add(ctx, owner, homeInput())
	require.NoError(t, err)

	_, err = f.addressBook.Update(ctx, newUserID(), a.ID.Hex(), AddressInput{City: ptr("Pune")})
	requireKind(t, err, KindNotFound)

	_, err = f.addressBook.Update(ctx, owner, "bad-id", AddressInput{})
	requireKind(t, err, KindInvalidInput)

	_, err = f.addressBook.Update(ctx, owner, a.ID.Hex(), AddressInput{City: ptr("")})
	requireKind(t, err, KindInvalidInput)
}
