package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// maxWriteAttempts bounds the re-read and retry loop of version-checked writes.
const maxWriteAttempts = 3

// errUnchanged tells mutate that the cart needs no write.
var errUnchanged = errors.New("cart unchanged")

// CartService is the cart engine. Stock is always checked against the live
// catalog; writes are version-checked per cart and retried on conflict. Two
// different users can still over-commit the same product's stock.
type CartService struct {
	carts    CartStore
	products ProductStore
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func validateUserID(userID string) error {
	if userID == "" {
		return NewMissingFields("User ID is required.")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return NewInvalidInput("Invalid user ID.")
	}
	return nil
}

// Fetch returns the user's cart resolved against the catalog. A user without
// a cart gets an empty view.
func (s *CartService) Fetch(ctx context.Context, userID string) (*models.CartView, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.EmptyCart(userID), nil
	}
	if err != nil {
		return nil, NewStoreFailure("Error fetching cart", err)
	}
	return s.resolve(ctx, cart)
}

// AddItem adds quantity of a product to the cart, merging with any existing
// line. A zero quantity means one.
func (s *CartService) AddItem(ctx context.Context, userID, rawProductID string, quantity int) (*models.CartView, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, NewInvalidInput("Quantity must be at least 1.")
	}
	productID, err := parseObjectID(rawProductID, "product ID")
	if err != nil {
		return nil, err
	}

	err = s.mutate(ctx, userID, func(cart *models.Cart) error {
		product, err := s.liveProduct(ctx, productID)
		if err != nil {
			return err
		}
		held := cart.Quantity(productID)
		if quantity > product.Quantity-held {
			return outOfStock(product)
		}
		cart.SetQuantity(productID, held+quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx, userID)
}

// RemoveItem drops the whole line for a product. A missing cart or line is
// not an error: removed is false and the current cart is returned.
func (s *CartService) RemoveItem(ctx context.Context, userID, rawProductID string) (view *models.CartView, removed bool, err error) {
	productID, err := parseObjectID(rawProductID, "product ID")
	if err != nil {
		return nil, false, err
	}

	err = s.mutate(ctx, userID, func(cart *models.Cart) error {
		removed = cart.Remove(productID)
		if !removed {
			return errUnchanged
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	view, err = s.Fetch(ctx, userID)
	return view, removed, err
}

// SetQuantity sets the exact quantity of a product, adding the line if needed.
func (s *CartService) SetQuantity(ctx context.Context, userID, rawProductID string, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, NewInvalidInput("Quantity must be at least 1.")
	}
	productID, err := parseObjectID(rawProductID, "product ID")
	if err != nil {
		return nil, err
	}

	err = s.mutate(ctx, userID, func(cart *models.Cart) error {
		product, err := s.liveProduct(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > product.Quantity {
			return outOfStock(product)
		}
		cart.SetQuantity(productID, quantity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Fetch(ctx, userID)
}

// mutate reads the user's cart, applies fn and writes the result guarded by
// the version that was read. A cart that ends up empty is deleted. On a
// version conflict the whole read-apply-write is repeated.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(cart *models.Cart) error) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		cart, err := s.carts.FindByUser(ctx, userID)
		exists := err == nil
		if errors.Is(err, repository.ErrNotFound) {
			cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
		} else if err != nil {
			return NewStoreFailure("Error updating cart", err)
		}

		if err := fn(cart); err != nil {
			if errors.Is(err, errUnchanged) {
				return nil
			}
			return err
		}

		switch {
		case len(cart.Items) == 0 && !exists:
			return nil
		case len(cart.Items) == 0:
			err = s.carts.Delete(ctx, cart)
		case !exists:
			err = s.carts.Create(ctx, cart)
		default:
			err = s.carts.Save(ctx, cart)
		}
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return NewStoreFailure("Error updating cart", err)
		}
		s.logger.Debug("Cart write conflict, retrying",
			zap.String("user_id", userID), zap.Int("attempt", attempt))
	}
	return NewConflict("Cart was modified concurrently, please retry.")
}

func (s *CartService) liveProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Product not found")
	}
	if err != nil {
		return nil, NewStoreFailure("Error fetching product", err)
	}
	return product, nil
}

func outOfStock(p *models.Product) error {
	return NewOutOfStock(fmt.Sprintf("Only %d of %s available in stock.", p.Quantity, p.Name), p.Quantity)
}

// resolve joins each line with the live product. Lines whose product was
// deleted keep a nil product and do not count toward the total.
func (s *CartService) resolve(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, NewStoreFailure("Error fetching cart", err)
	}

	view := models.EmptyCart(cart.UserID)
	total := decimal.Zero
	for _, item := range cart.Items {
		line := models.CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
		if p, ok := products[item.ProductID]; ok {
			line.Product = models.NewCartProduct(p)
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		view.Items = append(view.Items, line)
	}
	view.TotalAmount = total
	return view, nil
}
