package service

import (
	"context"
	"errors"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.uber.org/zap"
)

const (
	WishlistAdded   = "added"
	WishlistRemoved = "removed"
)

// WishlistService keeps one product set per user. Toggling flips membership;
// it is deliberately not idempotent.
type WishlistService struct {
	wishlists WishlistStore
	products  ProductStore
	logger    *zap.Logger
}

func NewWishlistService(wishlists WishlistStore, products ProductStore, logger *zap.Logger) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, logger: logger}
}

func (s *WishlistService) Fetch(ctx context.Context, userID string) (*models.WishlistView, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	w, err := s.wishlists.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.EmptyWishlist(userID), nil
	}
	if err != nil {
		return nil, NewStoreFailure("Error fetching wishlist", err)
	}
	return s.resolve(ctx, w)
}

// Toggle adds the product when absent and removes it when present. The
// returned action is WishlistAdded or WishlistRemoved.
func (s *WishlistService) Toggle(ctx context.Context, userID, rawProductID string) (string, *models.WishlistView, error) {
	if err := validateUserID(userID); err != nil {
		return "", nil, err
	}
	productID, err := parseObjectID(rawProductID, "product ID")
	if err != nil {
		return "", nil, err
	}

	current, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", nil, NewStoreFailure("Error updating wishlist", err)
	}

	if current != nil && current.Contains(productID) {
		w, err := s.wishlists.RemoveProduct(ctx, userID, productID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return "", nil, NewStoreFailure("Error updating wishlist", err)
		}
		if w == nil || len(w.Products) == 0 {
			if _, err := s.wishlists.DeleteIfEmpty(ctx, userID); err != nil {
				return "", nil, NewStoreFailure("Error updating wishlist", err)
			}
		}
		view, err := s.Fetch(ctx, userID)
		return WishlistRemoved, view, err
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, NewNotFound("Product not found")
		}
		return "", nil, NewStoreFailure("Error updating wishlist", err)
	}
	w, err := s.wishlists.AddProduct(ctx, userID, productID)
	if err != nil {
		return "", nil, NewStoreFailure("Error updating wishlist", err)
	}
	view, err := s.resolve(ctx, w)
	return WishlistAdded, view, err
}

// resolve joins product ids with full catalog records, skipping products
// that no longer exist.
func (s *WishlistService) resolve(ctx context.Context, w *models.Wishlist) (*models.WishlistView, error) {
	products, err := s.products.FindByIDs(ctx, w.Products)
	if err != nil {
		return nil, NewStoreFailure("Error fetching wishlist", err)
	}
	view := models.EmptyWishlist(w.UserID)
	for _, id := range w.Products {
		if p, ok := products[id]; ok {
			view.Products = append(view.Products, *p)
		}
	}
	return view, nil
}
