package repositorytest

import (
	"context"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistStore struct {
	mu        sync.Mutex
	wishlists map[string]models.Wishlist
}

func NewWishlistStore() *WishlistStore {
	return &WishlistStore{wishlists: make(map[string]models.Wishlist)}
}

func cloneWishlist(w models.Wishlist) *models.Wishlist {
	w.Products = append([]primitive.ObjectID{}, w.Products...)
	return &w
}

func (s *WishlistStore) FindByUser(_ context.Context, userID string) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wishlists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneWishlist(w), nil
}

func (s *WishlistStore) AddProduct(_ context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.wishlists[userID]
	if !ok {
		w = models.Wishlist{ID: primitive.NewObjectID(), UserID: userID, CreatedAt: now}
	}
	w = *cloneWishlist(w)
	if !w.Contains(productID) {
		w.Products = append(w.Products, productID)
	}
	w.UpdatedAt = now
	s.wishlists[userID] = w
	return cloneWishlist(w), nil
}

func (s *WishlistStore) RemoveProduct(_ context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wishlists[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := make([]primitive.ObjectID, 0, len(w.Products))
	for _, id := range w.Products {
		if id != productID {
			kept = append(kept, id)
		}
	}
	w.Products = kept
	w.UpdatedAt = time.Now()
	s.wishlists[userID] = w
	return cloneWishlist(w), nil
}

func (s *WishlistStore) DeleteIfEmpty(_ context.Context, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wishlists[userID]
	if !ok || len(w.Products) > 0 {
		return false, nil
	}
	delete(s.wishlists, userID)
	return true, nil
}
