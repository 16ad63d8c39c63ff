package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"rhea-commerce/internal/config"
	"rhea-commerce/internal/model"
	"rhea-commerce/internal/repository"
	"rhea-commerce/internal/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	cartRepo    repository.CartRepository
	shipping    config.ShippingConfig
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	cartRepo repository.CartRepository,
	shipping config.ShippingConfig,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		cartRepo:    cartRepo,
		shipping:    shipping,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNumber produces a customer-facing order reference. Timestamp
// plus a random suffix keeps the collision probability low enough for a
// human-referenceable number; uniqueness is additionally enforced by the
// database constraint.
func generateOrderNumber() string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderNumberAlphabet[rand.Intn(len(orderNumberAlphabet))]
	}
	return fmt.Sprintf("RHE-%d-%s", time.Now().UnixMilli(), suffix)
}

// Checkout converts a submitted cart into a persisted order.
//
// Everything that can be rejected is rejected before the transaction
// begins: address validation, the empty-cart check, product availability
// and the stock comparison. Inside the transaction the address, order,
// items, stock decrements and coupon usage commit or roll back as one
// unit; the transaction boundary is the sole consistency mechanism.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if userID == uuid.Nil {
		return nil, model.ErrUnauthorised
	}
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "istek gövdesi boş")
	}

	if err := validation.Struct(req.Address); err != nil {
		s.logger.Warn().Err(err).Msg("address validation failed")
		return nil, model.NewDomainError(model.ErrCodeValidation, err.Error())
	}

	if len(req.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			return nil, model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("item %d: product ID is required", i))
		}
		if item.Quantity <= 0 {
			return nil, model.ErrInvalidQuantity
		}
	}

	// Re-read the catalogue: client-side prices and stock snapshots are
	// stale by design and never trusted.
	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetActiveByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch products for checkout")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// A missing product means it was deactivated or deleted after it was
	// added to the cart.
	if len(products) != len(req.Items) {
		s.logger.Warn().
			Int("requested", len(req.Items)).
			Int("found", len(products)).
			Msg("checkout references unavailable products")
		return nil, model.ErrProductUnavailable
	}

	productsByID := make(map[string]*model.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}

	var subtotal float64
	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			return nil, model.ErrProductUnavailable
		}

		if product.Stock < item.Quantity {
			s.logger.Warn().
				Str("product_id", product.ID).
				Int("requested", item.Quantity).
				Int("stock", product.Stock).
				Msg("insufficient stock for checkout")
			return nil, model.NewDomainError(
				model.ErrCodeInsufficientStock,
				fmt.Sprintf("%s için yeterli stok yok", product.Name),
			)
		}

		price := product.EffectivePrice()
		subtotal += price * float64(item.Quantity)

		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  item.Quantity,
		})
	}

	var discount float64
	var coupon *model.Coupon
	if req.CouponCode != nil && *req.CouponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.CouponCode))
		coupon, err = s.couponRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if coupon == nil {
			return nil, model.ErrInvalidCoupon
		}
		if err := coupon.Redeemable(subtotal, time.Now()); err != nil {
			s.logger.Warn().Str("coupon_code", code).Err(err).Msg("coupon not redeemable")
			return nil, err
		}
		discount = coupon.DiscountFor(subtotal)
	}

	var shippingCost float64
	if subtotal < s.shipping.FreeThreshold {
		shippingCost = s.shipping.Cost
	}
	total := subtotal - discount + shippingCost

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	address := &model.Address{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      req.Address.Title,
		FirstName:  req.Address.FirstName,
		LastName:   req.Address.LastName,
		Phone:      req.Address.Phone,
		Address:    req.Address.Address,
		City:       req.Address.City,
		District:   req.Address.District,
		PostalCode: req.Address.PostalCode,
		CreatedAt:  now,
	}

	if err = s.orderRepo.CreateAddress(ctx, tx, address); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order := &model.Order{
		ID:            uuid.New(),
		OrderNumber:   generateOrderNumber(),
		UserID:        userID,
		AddressID:     address.ID,
		Subtotal:      subtotal,
		Discount:      discount,
		ShippingCost:  shippingCost,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if coupon != nil {
		order.CouponCode = &coupon.Code
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range orderItems {
		orderItems[i].ID = uuid.New()
		orderItems[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	for _, item := range req.Items {
		if err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return nil, err
		}
	}

	if coupon != nil {
		if err = s.couponRepo.IncrementUsage(ctx, tx, coupon.ID); err != nil {
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Payment integration is stubbed: every committed order is immediately
	// marked paid and confirmed.
	if err := s.orderRepo.MarkPaid(ctx, order.ID); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to mark order paid")
	}

	// The submitted cart has been converted; clear the stored one. Failure
	// here does not affect the placed order.
	if s.cartRepo != nil {
		if err := s.cartRepo.Delete(ctx, userID.String()); err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart after checkout")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Int("item_count", len(orderItems)).
		Float64("total", total).
		Msg("order created successfully")

	return &model.CheckoutResponse{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}, nil
}

// GetByID retrieves an order with its items, enforcing ownership.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID, userID uuid.UUID, isAdmin bool) (*model.OrderDetail, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if !isAdmin && order.UserID != userID {
		// Hide other users' orders rather than confirming their existence.
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderDetail{Order: *order, Items: items}, nil
}

// ListByUser retrieves the caller's orders, newest first.
func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll retrieves all orders with pagination.
func (s *orderService) ListAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orderRepo.ListAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

var validOrderStatuses = map[string]bool{
	model.OrderStatusPending:   true,
	model.OrderStatusConfirmed: true,
	model.OrderStatusShipped:   true,
	model.OrderStatusDelivered: true,
	model.OrderStatusCancelled: true,
}

var validPaymentStatuses = map[string]bool{
	model.PaymentStatusPending:  true,
	model.PaymentStatusPaid:     true,
	model.PaymentStatusFailed:   true,
	model.PaymentStatusRefunded: true,
}

// UpdateStatus applies an administrative status transition.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.OrderStatusRequest) error {
	if req == nil || (req.Status == nil && req.PaymentStatus == nil) {
		return model.NewDomainError(model.ErrCodeValidation, "no status transition provided")
	}

	if req.Status != nil && !validOrderStatuses[*req.Status] {
		return model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("invalid order status: %s", *req.Status))
	}
	if req.PaymentStatus != nil && !validPaymentStatuses[*req.PaymentStatus] {
		return model.NewDomainError(model.ErrCodeValidation, fmt.Sprintf("invalid payment status: %s", *req.PaymentStatus))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, req.Status, req.PaymentStatus); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order status updated")
	return nil
}
