package model

import (
	"time"

	"github.com/google/uuid"
)

// Order status values. An order starts PENDING and is only mutated through
// status transitions made by administrative action.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// Payment status values.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusFailed   = "FAILED"
	PaymentStatusRefunded = "REFUNDED"
)

// Order represents a customer order.
type Order struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OrderNumber   string    `json:"orderNumber" db:"order_number"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	AddressID     uuid.UUID `json:"addressId" db:"address_id"`
	CouponCode    *string   `json:"couponCode,omitempty" db:"coupon_code"`
	Subtotal      float64   `json:"subtotal" db:"subtotal"`
	Discount      float64   `json:"discount" db:"discount"`
	ShippingCost  float64   `json:"shippingCost" db:"shipping_cost"`
	Total         float64   `json:"total" db:"total"`
	Status        string    `json:"status" db:"status"`
	PaymentStatus string    `json:"paymentStatus" db:"payment_status"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Name and price are snapshots
// taken at checkout so historical orders stay stable if the product record
// later changes or is deleted.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// CheckoutRequest represents the request payload for placing an order.
type CheckoutRequest struct {
	Address    AddressRequest        `json:"address"`
	Items      []CheckoutItemRequest `json:"items"`
	CouponCode *string               `json:"couponCode,omitempty"`
}

// CheckoutItemRequest references a product and a desired quantity. Any
// client-supplied price is ignored; pricing is recomputed at checkout.
type CheckoutItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutResponse represents the response payload for a placed order.
type CheckoutResponse struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
}

// OrderDetail bundles an order with its line items for listings.
type OrderDetail struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// OrderStatusRequest represents an admin status transition.
type OrderStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}
