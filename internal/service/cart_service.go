package service

import (
	"context"
	"fmt"

	"rhea-commerce/internal/cart"
	"rhea-commerce/internal/model"
	"rhea-commerce/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService on top of the cart key-value store.
// Every mutation loads the cart, applies the change in memory and writes the
// whole cart back; carts have a single writer so this is safe.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// load fetches the user's cart, creating an empty one when none exists.
func (s *cartService) load(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.cartRepo.Get(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to load cart")
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if c == nil {
		c = cart.New(userID)
	}
	return c, nil
}

// Get retrieves the user's cart, or an empty one if none exists.
func (s *cartService) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	return s.load(ctx, userID)
}

// AddItem snapshots the product's current name, price and stock into the
// cart. Additions that would exceed the snapshotted stock are silently
// ignored; the returned cart reflects whatever actually happened.
func (s *cartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, model.ErrProductNotFound
	}

	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.AddItem(cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		Price:     product.Price,
		SalePrice: product.SalePrice,
		Quantity:  quantity,
		Stock:     product.Stock,
	})

	if err := s.cartRepo.Save(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("product_id", productID).
		Int("item_count", c.ItemCount()).
		Msg("item added to cart")

	return c, nil
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.UpdateQuantity(productID, quantity)

	if err := s.cartRepo.Save(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}

// RemoveItem deletes a line from the cart.
func (s *cartService) RemoveItem(ctx context.Context, userID, productID string) (*cart.Cart, error) {
	c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(productID)

	if err := s.cartRepo.Save(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, userID string) error {
	if err := s.cartRepo.Delete(ctx, userID); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
