package repository

import (
	"context"

	"rhea-commerce/internal/cart"
	"rhea-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// List retrieves products matching the given filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetBySlug retrieves a single product by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// GetActiveByIDs retrieves the active products among the given IDs.
	// Deactivated or deleted products are simply absent from the result.
	GetActiveByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites an existing product.
	Update(ctx context.Context, p *model.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id string) error

	// DecrementStock reduces a product's stock by the given quantity within
	// the provided transaction. It fails if the decrement would drive stock
	// below zero.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID string, quantity int) error

	// Count returns the number of products in the catalogue.
	Count(ctx context.Context) (int, error)

	// ListCategories retrieves all categories in display order.
	ListCategories(ctx context.Context) ([]model.Category, error)

	// UpsertCategory inserts a category or updates it by slug. Used by seeding.
	UpsertCategory(ctx context.Context, c *model.Category) error

	// UpsertProduct inserts a product or updates it by slug. Used by seeding.
	UpsertProduct(ctx context.Context, p *model.Product) error
}

// OrderRepository defines the interface for order data access. Address,
// order, item creation and stock decrement all run inside one transaction
// started with BeginTx; the transaction boundary is the sole consistency
// mechanism for checkout.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateAddress inserts a shipping address within the provided transaction.
	CreateAddress(ctx context.Context, tx pgx.Tx, address *model.Address) error

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// MarkPaid records a successful (stubbed) payment after checkout commits.
	MarkPaid(ctx context.Context, orderID uuid.UUID) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser retrieves a user's orders, newest first, with items.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error)

	// ListAll retrieves all orders with pagination, newest first.
	ListAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error)

	// UpdateStatus applies an administrative status transition.
	UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus *string) error

	// Stats returns the order count and total revenue of paid orders.
	Stats(ctx context.Context) (count int, revenue float64, err error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email address.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// List retrieves users with pagination.
	List(ctx context.Context, limit, offset int) ([]model.User, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (int, error)

	// Upsert inserts a user or updates it by email. Used by seeding.
	Upsert(ctx context.Context, user *model.User) error
}

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its code.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// IncrementUsage bumps a coupon's use count within the provided transaction.
	IncrementUsage(ctx context.Context, tx pgx.Tx, couponID string) error
}

// CartRepository defines the key-value persistence surface for carts. A cart
// survives across sessions until its TTL lapses; it is not synchronised with
// catalogue stock changes until checkout.
type CartRepository interface {
	// Get retrieves a user's cart. Returns nil when no cart exists.
	Get(ctx context.Context, userID string) (*cart.Cart, error)

	// Save persists a cart, refreshing its TTL.
	Save(ctx context.Context, c *cart.Cart) error

	// Delete removes a user's cart.
	Delete(ctx context.Context, userID string) error
}
