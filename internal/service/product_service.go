package service

import (
	"context"
	"fmt"
	"time"

	"rhea-commerce/internal/model"
	"rhea-commerce/internal/repository"
	"rhea-commerce/internal/slug"
	"rhea-commerce/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the given filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", filter.CategorySlug).
		Msg("retrieved products")

	return products, nil
}

// GetBySlug retrieves a single product by its URL slug.
func (s *productService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	if productSlug == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", productSlug).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// ListCategories retrieves all categories in display order.
func (s *productService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

func (s *productService) applyRequest(p *model.Product, req *model.ProductRequest) {
	p.Name = req.Name
	p.Slug = slug.Make(req.Name)
	p.Description = req.Description
	p.ShortDesc = req.ShortDesc
	p.Price = req.Price
	p.SalePrice = req.SalePrice
	p.SKU = req.SKU
	p.Stock = req.Stock
	p.Weight = req.Weight
	p.RoastLevel = req.RoastLevel
	p.Origin = req.Origin
	p.FlavorNotes = req.FlavorNotes
	p.CategoryID = req.CategoryID
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	now := time.Now()
	product := &model.Product{
		ID:        uuid.NewString(),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.applyRequest(product, req)

	if product.FlavorNotes == nil {
		product.FlavorNotes = []string{}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	return product, nil
}

// Update overwrites an existing product.
func (s *productService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	if err := validation.Struct(req); err != nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.applyRequest(product, req)
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

// Delete removes a product from the catalogue.
func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}
