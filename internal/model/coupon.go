package model

import "time"

// Coupon discount types.
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

// Coupon represents a discount code redeemable at checkout.
type Coupon struct {
	ID            string     `json:"id" db:"id"`
	Code          string     `json:"code" db:"code"`
	Description   *string    `json:"description,omitempty" db:"description"`
	DiscountType  string     `json:"discountType" db:"discount_type"`
	DiscountValue float64    `json:"discountValue" db:"discount_value"`
	MinOrderValue *float64   `json:"minOrderValue,omitempty" db:"min_order_value"`
	MaxUses       *int       `json:"maxUses,omitempty" db:"max_uses"`
	UsedCount     int        `json:"usedCount" db:"used_count"`
	IsActive      bool       `json:"isActive" db:"is_active"`
	StartsAt      *time.Time `json:"startsAt,omitempty" db:"starts_at"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
}

// DiscountFor returns the discount a coupon yields on the given subtotal.
// A fixed discount never exceeds the subtotal itself.
func (c *Coupon) DiscountFor(subtotal float64) float64 {
	switch c.DiscountType {
	case DiscountTypePercentage:
		return subtotal * c.DiscountValue / 100
	case DiscountTypeFixed:
		if c.DiscountValue > subtotal {
			return subtotal
		}
		return c.DiscountValue
	default:
		return 0
	}
}

// Redeemable reports whether the coupon can be applied to an order with the
// given subtotal at the given time.
func (c *Coupon) Redeemable(subtotal float64, now time.Time) error {
	if !c.IsActive {
		return ErrInvalidCoupon
	}
	if c.StartsAt != nil && now.Before(*c.StartsAt) {
		return ErrInvalidCoupon
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return ErrInvalidCoupon
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return ErrInvalidCoupon
	}
	if c.MinOrderValue != nil && subtotal < *c.MinOrderValue {
		return NewDomainError(ErrCodeInvalidCoupon, "Kupon için minimum sepet tutarına ulaşılmadı")
	}
	return nil
}
