// Package repositorytest holds in-process stores with the same contracts as
// the MongoDB, Redis and MySQL repositories, for use in tests only. Every
// read and write copies, so callers never share state with the store.
package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStore struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Product
	order []primitive.ObjectID
}

func NewProductStore() *ProductStore {
	return &ProductStore{items: make(map[primitive.ObjectID]models.Product)}
}

func (s *ProductStore) Create(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt, p.UpdatedAt = now, now
	s.items[p.ID] = *p
	s.order = append(s.order, p.ID)
	return nil
}

func (s *ProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *ProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[primitive.ObjectID]*models.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.items[id]; ok {
			found[id] = &p
		}
	}
	return found, nil
}

// List returns products newest first.
func (s *ProductStore) List(_ context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.items))
	for i := len(s.order) - 1; i >= 0; i-- {
		if p, ok := s.items[s.order[i]]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *ProductStore) Replace(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[p.ID]; !ok {
		return repository.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	s.items[p.ID] = *p
	return nil
}

func (s *ProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// SetQuantity changes the stock level directly, as an admin edit would.
func (s *ProductStore) SetQuantity(id primitive.ObjectID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.items[id]; ok {
		p.Quantity = quantity
		s.items[id] = p
	}
}

// ProductCache stands in for the Redis catalog listing cache.
type ProductCache struct {
	mu       sync.Mutex
	products []models.Product
	cached   bool
	Hits     int
}

func NewProductCache() *ProductCache {
	return &ProductCache{}
}

func (c *ProductCache) GetProducts(_ context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cached {
		return nil, repository.ErrNotFound
	}
	c.Hits++
	return append([]models.Product(nil), c.products...), nil
}

func (c *ProductCache) SetProducts(_ context.Context, products []models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products = append([]models.Product(nil), products...)
	c.cached = true
	return nil
}

func (c *ProductCache) InvalidateProducts(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.products, c.cached = nil, false
	return nil
}
