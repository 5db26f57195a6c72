package service

import (
	"context"
	"errors"
	"time"

	"github.com/example/agrigrow/pkg/events"
	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SubmitPaymentInput struct {
	Delivery    *models.DeliveryDetails `json:"delivery"`
	Products    []models.LedgerProduct  `json:"products"`
	TotalAmount *decimal.Decimal        `json:"totalAmount"`
	TxnID       string                  `json:"txnId"`
	UtrID       string                  `json:"utrId"`
}

// PaymentService keeps the payment ledger that admins review. Entries are
// independent of orders.
type PaymentService struct {
	ledger    LedgerStore
	publisher Publisher
	logger    *zap.Logger
}

func NewPaymentService(ledger LedgerStore, publisher Publisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{ledger: ledger, publisher: publisherOrNop(publisher), logger: logger}
}

func (s *PaymentService) Submit(ctx context.Context, in SubmitPaymentInput) (*models.LedgerEntry, error) {
	if in.Delivery == nil || in.Products == nil || in.TotalAmount == nil || in.TotalAmount.IsZero() ||
		in.TxnID == "" || in.UtrID == "" {
		return nil, NewMissingFields("All fields are required")
	}
	if in.Delivery.Name == "" {
		return nil, NewValidationFailed("Payment validation failed.", "name: required")
	}

	entry := &models.LedgerEntry{
		Name:     in.Delivery.Name,
		Phone:    in.Delivery.Phone,
		Email:    in.Delivery.Email,
		Address:  in.Delivery.Address,
		City:     in.Delivery.City,
		Pincode:  in.Delivery.Pincode,
		TxnID:    in.TxnID,
		UtrID:    in.UtrID,
		Amount:   *in.TotalAmount,
		Products: in.Products,
		Status:   models.LedgerStatusSubmitted,
		Date:     time.Now(),
	}
	if err := s.ledger.Create(ctx, entry); err != nil {
		return nil, NewStoreFailure("Failed to save payment.", err)
	}

	s.publisher.Publish(&events.PaymentSubmitted{
		EntryID: entry.ID.Hex(),
		TxnID:   entry.TxnID,
		Email:   entry.Email,
		Amount:  entry.Amount,
		At:      entry.Date,
	})
	return entry, nil
}

// List returns ledger entries newest first.
func (s *PaymentService) List(ctx context.Context) ([]models.LedgerEntry, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, NewStoreFailure("Failed to fetch payments.", err)
	}
	return entries, nil
}

func (s *PaymentService) SetStatus(ctx context.Context, rawID, status string) (*models.LedgerEntry, error) {
	if status == "" {
		return nil, NewMissingFields("Status is required.")
	}
	id, err := parseObjectID(rawID, "payment ID")
	if err != nil {
		return nil, err
	}

	entry, err := s.ledger.SetStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Payment not found.")
	}
	if err != nil {
		return nil, NewStoreFailure("Failed to update payment status.", err)
	}

	s.logger.Info("Payment status updated", zap.String("payment_id", rawID), zap.String("status", status))
	s.publisher.Publish(&events.PaymentStatusChanged{EntryID: rawID, Status: status, At: time.Now()})
	return entry, nil
}
