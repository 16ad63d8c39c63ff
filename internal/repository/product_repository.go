package repository

import (
	"context"
	"fmt"

	"rhea-commerce/internal/database"
	"rhea-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const productColumns = `
	id, name, slug, description, short_desc, price, sale_price, sku, stock,
	weight, roast_level, origin, flavor_notes, category_id, is_active,
	is_featured, created_at, updated_at`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     database.DBTX
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db database.DBTX, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDesc, &p.Price,
		&p.SalePrice, &p.SKU, &p.Stock, &p.Weight, &p.RoastLevel, &p.Origin,
		&p.FlavorNotes, &p.CategoryID, &p.IsActive, &p.IsFeatured,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// List retrieves products matching the given filter.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE ($1 = '' OR p.category_id = (SELECT id FROM categories WHERE slug = $1))
		  AND (NOT $2 OR p.is_active)
		  AND (NOT $3 OR p.is_featured)
		ORDER BY p.name
		LIMIT $4 OFFSET $5
	`

	rows, err := r.db.Query(ctx, query, filter.CategorySlug, filter.ActiveOnly, filter.FeaturedOnly, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	return collectProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE id = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetBySlug retrieves a single product by its URL slug.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE slug = $1`

	p, err := scanProduct(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("slug", slug).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetActiveByIDs retrieves the active products among the given IDs.
func (r *productRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE id = ANY($1) AND is_active
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}

	return collectProducts(rows)
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, description, short_desc, price, sale_price, sku,
			stock, weight, roast_level, origin, flavor_notes, category_id,
			is_active, is_featured, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.ShortDesc, p.Price, p.SalePrice,
		p.SKU, p.Stock, p.Weight, p.RoastLevel, p.Origin, p.FlavorNotes,
		p.CategoryID, p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("product_id", p.ID).Str("slug", p.Slug).Msg("product created")
	return nil
}

// Update overwrites an existing product.
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, short_desc = $5, price = $6,
			sale_price = $7, sku = $8, stock = $9, weight = $10, roast_level = $11,
			origin = $12, flavor_notes = $13, category_id = $14, is_active = $15,
			is_featured = $16, updated_at = $17
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.ShortDesc, p.Price, p.SalePrice,
		p.SKU, p.Stock, p.Weight, p.RoastLevel, p.Origin, p.FlavorNotes,
		p.CategoryID, p.IsActive, p.IsFeatured, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("product_id", id).Msg("product deleted")
	return nil
}

// DecrementStock reduces a product's stock within the provided transaction.
// The stock >= quantity guard makes the decrement fail rather than drive
// stock negative; callers treat zero affected rows as insufficient stock.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, productID, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Warn().
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("stock decrement rejected")
		return model.NewDomainError(model.ErrCodeInsufficientStock, "Yeterli stok yok")
	}

	return nil
}

// Count returns the number of products in the catalogue.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// ListCategories retrieves all categories in display order.
func (r *productRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	query := `
		SELECT id, name, slug, description, sort_order, created_at
		FROM categories
		ORDER BY sort_order, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.SortOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// UpsertCategory inserts a category or updates it by slug.
func (r *productRepository) UpsertCategory(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, sort_order = EXCLUDED.sort_order
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.SortOrder, c.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", c.Slug).Msg("failed to upsert category")
		return fmt.Errorf("failed to upsert category: %w", err)
	}

	return nil
}

// UpsertProduct inserts a product or updates it by slug.
func (r *productRepository) UpsertProduct(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, description, short_desc, price, sale_price, sku,
			stock, weight, roast_level, origin, flavor_notes, category_id,
			is_active, is_featured, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
			short_desc = EXCLUDED.short_desc, price = EXCLUDED.price,
			sale_price = EXCLUDED.sale_price, sku = EXCLUDED.sku,
			weight = EXCLUDED.weight, roast_level = EXCLUDED.roast_level,
			origin = EXCLUDED.origin, flavor_notes = EXCLUDED.flavor_notes,
			category_id = EXCLUDED.category_id, is_featured = EXCLUDED.is_featured,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.ShortDesc, p.Price, p.SalePrice,
		p.SKU, p.Stock, p.Weight, p.RoastLevel, p.Origin, p.FlavorNotes,
		p.CategoryID, p.IsActive, p.IsFeatured, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", p.Slug).Msg("failed to upsert product")
		return fmt.Errorf("failed to upsert product: %w", err)
	}

	return nil
}
