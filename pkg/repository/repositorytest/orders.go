package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStore struct {
	mu     sync.Mutex
	orders []models.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

func (s *OrderStore) Create(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	o.ID = primitive.NewObjectID()
	o.CreatedAt, o.UpdatedAt = now, now
	s.orders = append(s.orders, cloneOrder(*o))
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.orders {
		if o.ID == id {
			o = cloneOrder(o)
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *OrderStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	return s.list(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (s *OrderStore) ListAll(_ context.Context) ([]models.Order, error) {
	return s.list(func(models.Order) bool { return true }), nil
}

// list returns matching orders newest first.
func (s *OrderStore) list(match func(models.Order) bool) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Order{}
	for i := len(s.orders) - 1; i >= 0; i-- {
		if match(s.orders[i]) {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	return out
}

func (s *OrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, change models.StatusChange) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		o := &s.orders[i]
		if o.ID != id {
			continue
		}
		if o.Payment.Status != change.From {
			return nil, repository.ErrVersionConflict
		}
		o.Payment.Status = change.To
		o.UpdatedAt = change.At
		if change.ShippedAt != nil {
			t := *change.ShippedAt
			o.ShippedAt = &t
		}
		if change.CancelledAt != nil {
			t := *change.CancelledAt
			o.CancelledAt = &t
		}
		out := cloneOrder(*o)
		return &out, nil
	}
	return nil, repository.ErrVersionConflict
}
