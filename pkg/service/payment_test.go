package service

import (
	"context"
	"testing"

	"github.com/example/agrigrow/pkg/events"
	"github.com/example/agrigrow/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentInput() SubmitPaymentInput {
	return SubmitPaymentInput{
		Delivery:    &models.DeliveryDetails{Name: "Asha", Email: "asha@example.com", City: "Nashik"},
		Products:    []models.LedgerProduct{{"name": "hoe", "quantity": 1}},
		TotalAmount: ptr(decimal.RequireFromString("250.00")),
		TxnID:       "TXN-9",
		UtrID:       "UTR-9",
	}
}

func TestPayment_SubmitAndReview(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	entry, err := f.payment.Submit(ctx, paymentInput())
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusSubmitted, entry.Status)
	assert.False(t, entry.Date.IsZero())
	assert.Equal(t, "Asha", entry.Name)

	list, err := f.payment.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := f.payment.SetStatus(ctx, entry.ID.Hex(), "Verified")
	require.NoError(t, err)
	assert.Equal(t, "Verified", updated.Status)

	require.Len(t, f.publisher.events, 2)
	assert.IsType(t, &events.PaymentSubmitted{}, f.publisher.events[0])
	assert.IsType(t, &events.PaymentStatusChanged{}, f.publisher.events[1])
}

func TestPayment_Rejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := paymentInput()
	in.UtrID = ""
	_, err := f.payment.Submit(ctx, in)
	requireKind(t, err, KindMissingFields)

	in = paymentInput()
	in.TotalAmount = ptr(decimal.Zero)
	_, err = f.payment.Submit(ctx, in)
	requireKind(t, err, KindMissingFields)

	_, err = f.payment.SetStatus(ctx, "65b121e780d603417855f70a", "")
	requireKind(t, err, KindMissingFields)
	_, err = f.payment.SetStatus(ctx, "nope", "Verified")
	requireKind(t, err, KindInvalidInput)
	_, err = f.payment.SetStatus(ctx, "65b121e780d603417855f70a", "Verified")
	requireKind(t, err, KindNotFound)
}
