package service

import (
	"context"

	"github.com/example/agrigrow/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store interfaces below are satisfied by pkg/repository (MongoDB, Redis,
// MySQL) and by the test doubles in pkg/repository/repositorytest.

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Replace(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ProductCache interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
	InvalidateProducts(ctx context.Context) error
}

type CartStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cart *models.Cart) error
}

type WishlistStore interface {
	FindByUser(ctx context.Context, userID string) (*models.Wishlist, error)
	AddProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error)
	RemoveProduct(ctx context.Context, userID string, productID primitive.ObjectID) (*models.Wishlist, error)
	DeleteIfEmpty(ctx context.Context, userID string) (bool, error)
}

type AddressStore interface {
	Create(ctx context.Context, a *models.Address) error
	FindOwned(ctx context.Context, id primitive.ObjectID, userID string) (*models.Address, error)
	FindByLocation(ctx context.Context, userID, address, pincode string) (*models.Address, error)
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	UnsetDefault(ctx context.Context, userID string, except primitive.ObjectID) error
	Replace(ctx context.Context, a *models.Address) error
}

type OrderStore interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, change models.StatusChange) (*models.Order, error)
}

type LedgerStore interface {
	Create(ctx context.Context, e *models.LedgerEntry) error
	List(ctx context.Context) ([]models.LedgerEntry, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.LedgerEntry, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type ProfileCache interface {
	GetProfile(ctx context.Context, email string) (*models.UserProfile, error)
	SetProfile(ctx context.Context, profile *models.UserProfile) error
}

// Publisher receives domain events after they are committed. Publish must
// not block on slow consumers.
type Publisher interface {
	Publish(event interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(interface{}) {}

func publisherOrNop(p Publisher) Publisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// parseObjectID converts a client supplied id, reporting malformed input as
// InvalidInput.
func parseObjectID(raw, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, NewInvalidInputf("Invalid %s.", what)
	}
	return id, nil
}
