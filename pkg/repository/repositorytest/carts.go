package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore enforces the same version checks as the MongoDB repository.
type CartStore struct {
	mu        sync.Mutex
	carts     map[string]models.Cart
	conflicts int
}

func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]models.Cart)}
}

func cloneCart(c models.Cart) models.Cart {
	c.Items = append([]models.CartItem(nil), c.Items...)
	return c
}

// InjectConflicts makes the next n writes fail with ErrVersionConflict, as
// if another writer got there first.
func (s *CartStore) InjectConflicts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conflicts = n
}

func (s *CartStore) takeConflict() bool {
	if s.conflicts > 0 {
		s.conflicts--
		return true
	}
	return false
}

func (s *CartStore) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c = cloneCart(c)
	return &c, nil
}

func (s *CartStore) Create(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.carts[cart.UserID]; ok || s.takeConflict() {
		return repository.ErrVersionConflict
	}
	now := time.Now()
	cart.ID = primitive.NewObjectID()
	cart.Version = 1
	cart.CreatedAt, cart.UpdatedAt = now, now
	s.carts[cart.UserID] = cloneCart(*cart)
	return nil
}

func (s *CartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[cart.UserID]
	if !ok || stored.ID != cart.ID || stored.Version != cart.Version || s.takeConflict() {
		return repository.ErrVersionConflict
	}
	cart.Version++
	cart.UpdatedAt = time.Now()
	s.carts[cart.UserID] = cloneCart(*cart)
	return nil
}

func (s *CartStore) Delete(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.carts[cart.UserID]
	if !ok || stored.ID != cart.ID || stored.Version != cart.Version || s.takeConflict() {
		return repository.ErrVersionConflict
	}
	delete(s.carts, cart.UserID)
	return nil
}

// Len reports how many carts are stored.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
