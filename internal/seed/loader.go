package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Document is the catalogue seed format: categories, products and an
// optional administrator account. Products reference their category by slug.
type Document struct {
	Admin      *AdminSeed     `json:"admin,omitempty"`
	Categories []CategorySeed `json:"categories"`
	Products   []ProductSeed  `json:"products"`
}

// AdminSeed describes the initial administrator account.
type AdminSeed struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// CategorySeed describes one category entry.
type CategorySeed struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"order"`
}

// ProductSeed describes one product entry.
type ProductSeed struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ShortDesc    *string  `json:"shortDesc,omitempty"`
	Price        float64  `json:"price"`
	SalePrice    *float64 `json:"salePrice,omitempty"`
	SKU          string   `json:"sku"`
	Stock        int      `json:"stock"`
	Weight       *int     `json:"weight,omitempty"`
	RoastLevel   *string  `json:"roastLevel,omitempty"`
	Origin       *string  `json:"origin,omitempty"`
	FlavorNotes  []string `json:"flavorNotes,omitempty"`
	CategorySlug string   `json:"category"`
	IsFeatured   bool     `json:"isFeatured,omitempty"`
}

// Loader reads a seed document from some storage backend.
type Loader interface {
	// Load reads and parses the seed document at the given path or key.
	Load(ctx context.Context, path string) (*Document, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed document from the local file system.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Document, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	doc, err := parseDocument(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categories", len(doc.Categories)).
		Int("products", len(doc.Products)).
		Msg("seed file loaded successfully")

	return doc, nil
}

// parseDocument decodes and sanity-checks a seed document.
func parseDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid seed document: %w", err)
	}

	for _, c := range doc.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("invalid seed document: category without a name")
		}
	}
	for _, p := range doc.Products {
		if p.Name == "" || p.SKU == "" {
			return nil, fmt.Errorf("invalid seed document: product without name or SKU")
		}
		if p.CategorySlug == "" {
			return nil, fmt.Errorf("invalid seed document: product %q without category", p.Name)
		}
	}

	return &doc, nil
}
