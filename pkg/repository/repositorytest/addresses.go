package repositorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AddressStore struct {
	mu        sync.Mutex
	addresses []models.Address
}

func NewAddressStore() *AddressStore {
	return &AddressStore{}
}

func (s *AddressStore) Create(_ context.Context, a *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	a.ID = primitive.NewObjectID()
	a.CreatedAt, a.UpdatedAt = now, now
	s.addresses = append(s.addresses, *a)
	return nil
}

func (s *AddressStore) find(match func(models.Address) bool) (*models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.addresses {
		if match(a) {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *AddressStore) FindOwned(_ context.Context, id primitive.ObjectID, userID string) (*models.Address, error) {
	return s.find(func(a models.Address) bool { return a.ID == id && a.UserID == userID })
}

func (s *AddressStore) FindByLocation(_ context.Context, userID, address, pincode string) (*models.Address, error) {
	return s.find(func(a models.Address) bool {
		return a.UserID == userID && a.Address == address && a.Pincode == pincode
	})
}

func (s *AddressStore) ListByUser(_ context.Context, userID string) ([]models.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []models.Address{}
	for _, a := range s.addresses {
		if a.UserID == userID {
			list = append(list, a)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].IsDefault && !list[j].IsDefault
	})
	return list, nil
}

func (s *AddressStore) UnsetDefault(_ context.Context, userID string, except primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.addresses {
		a := &s.addresses[i]
		if a.UserID == userID && a.ID != except && a.IsDefault {
			a.IsDefault = false
			a.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (s *AddressStore) Replace(_ context.Context, a *models.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.addresses {
		if s.addresses[i].ID == a.ID && s.addresses[i].UserID == a.UserID {
			a.UpdatedAt = time.Now()
			s.addresses[i] = *a
			return nil
		}
	}
	return repository.ErrNotFound
}
