package service

import (
	"context"

	"rhea-commerce/internal/cart"
	"rhea-commerce/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue browsing and management.
type ProductService interface {
	// List retrieves products matching the given filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetBySlug retrieves a single product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// ListCategories retrieves all categories in display order.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// Create adds a new product to the catalogue (admin).
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update overwrites an existing product (admin).
	Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product from the catalogue (admin).
	Delete(ctx context.Context, id string) error
}

// CartService defines operations on a user's shopping cart. The cart is a
// working set with display-time price snapshots; nothing here is
// authoritative for the final charge.
type CartService interface {
	// Get retrieves the user's cart, or an empty one if none exists.
	Get(ctx context.Context, userID string) (*cart.Cart, error)

	// AddItem adds a product to the cart, snapshotting its current price
	// and stock.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)

	// UpdateQuantity sets a line's quantity; zero or less removes the line.
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*cart.Cart, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, userID, productID string) (*cart.Cart, error)

	// Clear empties the cart.
	Clear(ctx context.Context, userID string) error
}

// OrderService defines checkout and order management operations.
type OrderService interface {
	// Checkout validates the submitted items against current catalogue
	// state, computes authoritative pricing and persists the order
	// atomically. See CreateOrder for the full contract.
	Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// GetByID retrieves an order with its items. Orders are only visible to
	// their owner unless the caller is an administrator.
	GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*model.OrderDetail, error)

	// ListByUser retrieves the caller's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error)

	// ListAll retrieves all orders with pagination (admin).
	ListAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error)

	// UpdateStatus applies an administrative status transition (admin).
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderStatusRequest) error
}

// UserService defines registration, login and account operations.
type UserService interface {
	// Register creates a new account and returns an access token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and returns an access token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// List retrieves users with pagination (admin).
	List(ctx context.Context, limit, offset int) ([]model.User, error)
}

// AdminService aggregates dashboard statistics.
type AdminService interface {
	// Stats returns storefront totals for the admin dashboard.
	Stats(ctx context.Context) (*model.DashboardStats, error)
}
