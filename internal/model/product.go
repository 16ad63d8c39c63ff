package model

import "time"

// Product represents a coffee product in the catalogue.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	ShortDesc   *string   `json:"shortDesc,omitempty" db:"short_desc"`
	Price       float64   `json:"price" db:"price"`
	SalePrice   *float64  `json:"salePrice,omitempty" db:"sale_price"`
	SKU         string    `json:"sku" db:"sku"`
	Stock       int       `json:"stock" db:"stock"`
	Weight      *int      `json:"weight,omitempty" db:"weight"`
	RoastLevel  *string   `json:"roastLevel,omitempty" db:"roast_level"`
	Origin      *string   `json:"origin,omitempty" db:"origin"`
	FlavorNotes []string  `json:"flavorNotes" db:"flavor_notes"`
	CategoryID  string    `json:"categoryId" db:"category_id"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	IsFeatured  bool      `json:"isFeatured" db:"is_featured"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// EffectivePrice returns the sale price if set, otherwise the list price.
func (p *Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Category represents a product category.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	SortOrder   int       `json:"order" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductRequest represents the payload for creating or updating a product.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=2"`
	Description string   `json:"description" validate:"required,min=10"`
	ShortDesc   *string  `json:"shortDesc,omitempty"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	SalePrice   *float64 `json:"salePrice,omitempty" validate:"omitempty,gt=0"`
	SKU         string   `json:"sku" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Weight      *int     `json:"weight,omitempty" validate:"omitempty,gt=0"`
	RoastLevel  *string  `json:"roastLevel,omitempty"`
	Origin      *string  `json:"origin,omitempty"`
	FlavorNotes []string `json:"flavorNotes,omitempty"`
	CategoryID  string   `json:"categoryId" validate:"required"`
	IsActive    *bool    `json:"isActive,omitempty"`
	IsFeatured  *bool    `json:"isFeatured,omitempty"`
}

// ProductFilter holds optional filters for catalogue listings.
type ProductFilter struct {
	CategorySlug string
	ActiveOnly   bool
	FeaturedOnly bool
	Limit        int
	Offset       int
}
