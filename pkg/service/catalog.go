package service

import (
	"context"
	"errors"
	"strings"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductInput carries catalog fields from a create or update request. Nil
// fields are left unchanged by Update.
type ProductInput struct {
	Name        *string          `json:"name"`
	Photo       *string          `json:"photo"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Rating      *float64         `json:"rating"`
	Quantity    *int             `json:"quantity"`
	Brand       *string          `json:"brand"`
	Type        *string          `json:"type"`
	SKU         *string          `json:"sku"`
}

type CatalogService struct {
	products ProductStore
	cache    ProductCache
	logger   *zap.Logger
}

// NewCatalogService builds the catalog. cache may be nil.
func NewCatalogService(products ProductStore, cache ProductCache, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, cache: cache, logger: logger}
}

// List returns every product, newest first. The listing is served from the
// cache when possible; stock checks never read it.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Failed to read product cache", zap.Error(err))
		}
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, NewStoreFailure("Error fetching products", err)
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			s.logger.Warn("Failed to cache products", zap.Error(err))
		}
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, rawID string) (*models.Product, error) {
	id, err := parseObjectID(rawID, "product ID")
	if err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Product not found")
	}
	if err != nil {
		return nil, NewStoreFailure("Error fetching product", err)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{Type: models.ProductTypeSoil}
	in.apply(p)

	if p.Name == "" || in.Price == nil {
		return nil, NewMissingFields("Product name and price are required")
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, NewStoreFailure("Error adding product", err)
	}
	s.invalidate(ctx)
	s.logger.Info("Product created", zap.String("product_id", p.ID.Hex()), zap.String("name", p.Name))
	return p, nil
}

func (s *CatalogService) Update(ctx context.Context, rawID string, in ProductInput) (*models.Product, error) {
	p, err := s.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if p.Name == "" {
		return nil, NewValidationFailed("Product validation failed.", "name: required")
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	err = s.products.Replace(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, NewNotFound("Product not found")
	}
	if err != nil {
		return nil, NewStoreFailure("Error updating product", err)
	}
	s.invalidate(ctx)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, rawID string) error {
	id, err := parseObjectID(rawID, "product ID")
	if err != nil {
		return err
	}
	err = s.products.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return NewNotFound("Product not found")
	}
	if err != nil {
		return NewStoreFailure("Error deleting product", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProducts(ctx); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}

func (in ProductInput) apply(p *models.Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Photo != nil {
		p.Photo = *in.Photo
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Type != nil {
		p.Type = models.ProductType(*in.Type)
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
}

func validateProduct(p *models.Product) error {
	var problems []string
	if !p.Price.IsPositive() {
		problems = append(problems, "price: must be greater than 0")
	}
	if p.Quantity < 0 {
		problems = append(problems, "quantity: must not be negative")
	}
	if !p.Type.Valid() {
		problems = append(problems, "type: `"+string(p.Type)+"` is not a valid enum value")
	}
	if p.Rating < 0 || p.Rating > 5 {
		problems = append(problems, "rating: must be between 0 and 5")
	}
	if len(problems) > 0 {
		return NewValidationFailed("Product validation failed.", strings.Join(problems, "; "))
	}
	return nil
}
