package repository

import (
	"context"
	"fmt"

	"rhea-commerce/internal/database"
	"rhea-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	db     database.DBTX
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(db database.DBTX, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		db:     db,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetByCode retrieves a coupon by its code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT id, code, description, discount_type, discount_value,
			min_order_value, max_uses, used_count, is_active, starts_at,
			expires_at, created_at
		FROM coupons
		WHERE code = $1
	`

	var c model.Coupon
	err := r.db.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.MinOrderValue, &c.MaxUses, &c.UsedCount, &c.IsActive, &c.StartsAt,
		&c.ExpiresAt, &c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// IncrementUsage bumps a coupon's use count within the provided transaction.
func (r *couponRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, couponID string) error {
	query := `UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`

	_, err := tx.Exec(ctx, query, couponID)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID).Msg("failed to increment coupon usage")
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	return nil
}
