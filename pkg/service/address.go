package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AddressInput carries address fields. Nil fields are left unchanged by
// Update.
type AddressInput struct {
	Label     *string `json:"label"`
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	Pincode   *string `json:"pincode"`
	IsDefault *bool   `json:"isDefault"`
}

// AddressService is the address book. At most one address per user carries
// the default flag: setting it clears the flag everywhere else first.
type AddressService struct {
	addresses AddressStore
	logger    *zap.Logger
}

func NewAddressService(addresses AddressStore, logger *zap.Logger) *AddressService {
	return &AddressService{addresses: addresses, logger: logger}
}

// List returns the default address first, then the rest oldest first.
func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	addresses, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewStoreFailure("Error fetching saved addresses.", err)
	}
	return addresses, nil
}

func (s *AddressService) Add(ctx context.Context, userID string, in AddressInput) (*models.Address, error) {
	a := &models.Address{UserID: userID}
	in.apply(a)
	if a.Name == "" || a.Phone == "" || a.Address == "" || a.City == "" || a.Pincode == "" {
		return nil, NewMissingFields("Missing required address fields.")
	}
	if a.Label == "" {
		a.Label = fmt.Sprintf("%s, %s", a.City, a.Pincode)
	}

	if a.IsDefault {
		if err := s.addresses.UnsetDefault(ctx, userID, primitive.NilObjectID); err != nil {
			return nil, NewStoreFailure("Failed to add new address.", err)
		}
	}
	if err := s.addresses.Create(ctx, a); err != nil {
		return nil, NewStoreFailure("Failed to add new address.", err)
	}
	return a, nil
}

// Update edits an address owned by userID. The owner never changes. The
// label follows city and pincode unless one is given explicitly.
func (s *AddressService) Update(ctx context.Context, userID, rawID string, in AddressInput) (*models.Address, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, NewInvalidInput("Invalid address ID format.")
	}

	a, err := s.addresses.FindOwned(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Address not found or unauthorized.")
	}
	if err != nil {
		return nil, NewStoreFailure("Failed to update address.", err)
	}

	label := a.Label
	in.apply(a)
	switch {
	case in.Label != nil && *in.Label != "":
	case in.City != nil || in.Pincode != nil:
		a.Label = fmt.Sprintf("%s, %s", a.City, a.Pincode)
	default:
		a.Label = label
	}
	if err := validateAddress(a); err != nil {
		return nil, err
	}

	if a.IsDefault {
		if err := s.addresses.UnsetDefault(ctx, userID, a.ID); err != nil {
			return nil, NewStoreFailure("Failed to update address.", err)
		}
	}
	err = s.addresses.Replace(ctx, a)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Address not found or unauthorized.")
	}
	if err != nil {
		return nil, NewStoreFailure("Failed to update address.", err)
	}
	return a, nil
}

// saveFromDelivery stores the delivery details of an order as an address,
// unless the user already has one at the same address and pincode.
func (s *AddressService) saveFromDelivery(ctx context.Context, userID string, d models.DeliveryDetails) error {
	if d.Address == "" || d.Pincode == "" {
		return nil
	}
	_, err := s.addresses.FindByLocation(ctx, userID, d.Address, d.Pincode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return s.addresses.Create(ctx, &models.Address{
		UserID:  userID,
		Label:   fmt.Sprintf("%s (%s)", d.City, d.Pincode),
		Name:    d.Name,
		Phone:   d.Phone,
		Email:   d.Email,
		Address: d.Address,
		City:    d.City,
		Pincode: d.Pincode,
	})
}

func (in AddressInput) apply(a *models.Address) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&a.Label, in.Label)
	set(&a.Name, in.Name)
	set(&a.Phone, in.Phone)
	set(&a.Email, in.Email)
	set(&a.Address, in.Address)
	set(&a.City, in.City)
	set(&a.Pincode, in.Pincode)
	if in.IsDefault != nil {
		a.IsDefault = *in.IsDefault
	}
}

func validateAddress(a *models.Address) error {
	var problems []string
	for _, f := range []struct{ name, value string }{
		{"name", a.Name}, {"address", a.Address}, {"city", a.City}, {"pincode", a.Pincode},
	} {
		if f.value == "" {
			problems = append(problems, f.name+": required")
		}
	}
	if len(problems) > 0 {
		return NewValidationFailed("Address validation failed.", strings.Join(problems, "; "))
	}
	return nil
}
