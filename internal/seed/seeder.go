package seed

import (
	"context"
	"fmt"
	"time"

	"rhea-commerce/internal/auth"
	"rhea-commerce/internal/model"
	"rhea-commerce/internal/repository"
	"rhea-commerce/internal/slug"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Seeder upserts a seed document into the catalogue. Seeding is idempotent:
// categories and products match on slug, the admin account on email, so
// re-running against a populated database updates rather than duplicates.
type Seeder struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(productRepo repository.ProductRepository, userRepo repository.UserRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("component", "seeder").Logger(),
	}
}

// Run applies the seed document.
func (s *Seeder) Run(ctx context.Context, doc *Document) error {
	now := time.Now()

	for _, c := range doc.Categories {
		category := &model.Category{
			ID:          uuid.NewString(),
			Name:        c.Name,
			Slug:        slug.Make(c.Name),
			Description: c.Description,
			SortOrder:   c.SortOrder,
			CreatedAt:   now,
		}
		if err := s.productRepo.UpsertCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}

	// Re-read categories so products reference the persisted IDs, not the
	// throwaway ones generated above when the slug already existed.
	categories, err := s.productRepo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}
	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[c.Slug] = c.ID
	}

	for _, p := range doc.Products {
		categoryID, ok := categoryIDs[p.CategorySlug]
		if !ok {
			return fmt.Errorf("failed to seed product %q: unknown category %q", p.Name, p.CategorySlug)
		}

		flavorNotes := p.FlavorNotes
		if flavorNotes == nil {
			flavorNotes = []string{}
		}

		product := &model.Product{
			ID:          uuid.NewString(),
			Name:        p.Name,
			Slug:        slug.Make(p.Name),
			Description: p.Description,
			ShortDesc:   p.ShortDesc,
			Price:       p.Price,
			SalePrice:   p.SalePrice,
			SKU:         p.SKU,
			Stock:       p.Stock,
			Weight:      p.Weight,
			RoastLevel:  p.RoastLevel,
			Origin:      p.Origin,
			FlavorNotes: flavorNotes,
			CategoryID:  categoryID,
			IsActive:    true,
			IsFeatured:  p.IsFeatured,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.productRepo.UpsertProduct(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.Name, err)
		}
	}

	if doc.Admin != nil {
		hash, err := auth.HashPassword(doc.Admin.Password)
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		admin := &model.User{
			ID:           uuid.New(),
			Email:        doc.Admin.Email,
			Name:         doc.Admin.Name,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
			CreatedAt:    now,
		}
		if err := s.userRepo.Upsert(ctx, admin); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	s.logger.Info().
		Int("categories", len(doc.Categories)).
		Int("products", len(doc.Products)).
		Bool("admin", doc.Admin != nil).
		Msg("catalogue seeded")

	return nil
}
