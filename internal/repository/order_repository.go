package repository

import (
	"context"
	"fmt"

	"rhea-commerce/internal/database"
	"rhea-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const orderColumns = `
	id, order_number, user_id, address_id, coupon_code, subtotal, discount,
	shipping_cost, total, status, payment_status, created_at, updated_at`

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	db     database.DBTX
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		db:     db,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateAddress inserts a shipping address within the provided transaction.
func (r *orderRepository) CreateAddress(ctx context.Context, tx pgx.Tx, address *model.Address) error {
	query := `
		INSERT INTO addresses (
			id, user_id, title, first_name, last_name, phone, address, city,
			district, postal_code, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := tx.Exec(ctx, query,
		address.ID, address.UserID, address.Title, address.FirstName,
		address.LastName, address.Phone, address.Address, address.City,
		address.District, address.PostalCode, address.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("address_id", address.ID.String()).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	return nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, user_id, address_id, coupon_code, subtotal,
			discount, shipping_cost, total, status, payment_status, created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.OrderNumber, order.UserID, order.AddressID,
		order.CouponCode, order.Subtotal, order.Discount, order.ShippingCost,
		order.Total, order.Status, order.PaymentStatus, order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, name, price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// MarkPaid records the stubbed payment result after the checkout transaction
// has committed.
func (r *orderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID) error {
	query := `
		UPDATE orders
		SET payment_status = $2, status = $3, updated_at = now()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, orderID, model.PaymentStatusPaid, model.OrderStatusConfirmed)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to mark order paid")
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.AddressID, &o.CouponCode,
		&o.Subtotal, &o.Discount, &o.ShippingCost, &o.Total, &o.Status,
		&o.PaymentStatus, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, orderQuery, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Price, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

func (r *orderRepository) collectOrders(ctx context.Context, rows pgx.Rows) ([]model.OrderDetail, error) {
	var orders []model.OrderDetail
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, model.OrderDetail{Order: *order})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	rows.Close()

	for i := range orders {
		items, err := r.itemsForOrder(ctx, orders[i].Order.ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ListByUser retrieves a user's orders, newest first, with items.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collectOrders(ctx, rows)
}

// ListAll retrieves all orders with pagination, newest first.
func (r *orderRepository) ListAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return r.collectOrders(ctx, rows)
}

// UpdateStatus applies an administrative status transition.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus *string) error {
	query := `
		UPDATE orders
		SET status = COALESCE($2, status),
			payment_status = COALESCE($3, payment_status),
			updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, paymentStatus)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// Stats returns the order count and total revenue of paid orders.
func (r *orderRepository) Stats(ctx context.Context) (int, float64, error) {
	query := `
		SELECT count(*), COALESCE(sum(total) FILTER (WHERE payment_status = $1), 0)
		FROM orders
	`

	var count int
	var revenue float64
	if err := r.db.QueryRow(ctx, query, model.PaymentStatusPaid).Scan(&count, &revenue); err != nil {
		return 0, 0, fmt.Errorf("failed to query order stats: %w", err)
	}

	return count, revenue, nil
}
