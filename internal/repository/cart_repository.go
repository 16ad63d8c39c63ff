package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rhea-commerce/internal/cart"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cartKeyPrefix = "cart:"

// cartRepository implements the CartRepository interface using Redis.
type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCartRepository creates a new Redis-backed cart repository. Carts expire
// after the given TTL without activity.
func NewCartRepository(client *redis.Client, ttl time.Duration, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Get retrieves a user's cart. Returns nil when no cart exists.
func (r *cartRepository) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+userID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &c, nil
}

// Save persists a cart, refreshing its TTL.
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKeyPrefix+c.UserID, data, r.ttl).Err(); err != nil {
		r.logger.Error().Err(err).Str("user_id", c.UserID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Delete removes a user's cart.
func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKeyPrefix+userID).Err(); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
