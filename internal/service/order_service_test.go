package service

import (
	"context"
	"errors"
	"testing"

	"rhea-commerce/internal/cart"
	"rhea-commerce/internal/config"
	"rhea-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CreateAddress(ctx context.Context, tx pgx.Tx, address *model.Address) error {
	args := m.Called(ctx, tx, address)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, limit, offset int) ([]model.OrderDetail, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderDetail), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status, paymentStatus *string) error {
	args := m.Called(ctx, id, status, paymentStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Stats(ctx context.Context) (int, float64, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) IncrementUsage(ctx context.Context, tx pgx.Tx, couponID string) error {
	args := m.Called(ctx, tx, couponID)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }

var testShipping = config.ShippingConfig{Cost: 20, FreeThreshold: 250}

func validAddress() model.AddressRequest {
	return model.AddressRequest{
		Title:      "Ev",
		FirstName:  "Ayşe",
		LastName:   "Yılmaz",
		Phone:      "05321234567",
		Address:    "Atatürk Cad. No:12 D:4",
		City:       "İstanbul",
		District:   "Kadıköy",
		PostalCode: "34710",
	}
}

func newCheckoutMocks() (*MockOrderRepository, *MockProductRepository, *MockCouponRepository, *MockCartRepository, *MockTx, OrderService) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	couponRepo := new(MockCouponRepository)
	cartRepo := new(MockCartRepository)
	tx := new(MockTx)
	svc := NewOrderService(orderRepo, productRepo, couponRepo, cartRepo, testShipping, zerolog.Nop())
	return orderRepo, productRepo, couponRepo, cartRepo, tx, svc
}

func TestOrderService_Checkout_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	salePrice := 90.0
	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, SalePrice: &salePrice, Stock: 10, IsActive: true},
		{ID: "P002", Name: "Filtre Kahve", Price: 120.00, Stock: 5, IsActive: true},
	}

	req := &model.CheckoutRequest{
		Address: validAddress(),
		Items: []model.CheckoutItemRequest{
			{ProductID: "P001", Quantity: 2},
			{ProductID: "P002", Quantity: 1},
		},
	}

	orderRepo, productRepo, couponRepo, cartRepo, tx, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001", "P002"}).Return(products, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	orderRepo.On("CreateAddress", ctx, tx, mock.AnythingOfType("*model.Address")).Return(nil)
	orderRepo.On("CreateOrder", ctx, tx, mock.MatchedBy(func(o *model.Order) bool {
		// 2×90 (sale price) + 1×120 = 300, over the free-shipping threshold
		return o.Subtotal == 300 && o.ShippingCost == 0 && o.Total == 300 &&
			o.Status == model.OrderStatusPending && o.PaymentStatus == model.PaymentStatusPending
	})).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, tx, mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].Price == 90 && items[0].Name == "Türk Kahvesi"
	})).Return(nil)
	productRepo.On("DecrementStock", ctx, tx, "P001", 2).Return(nil)
	productRepo.On("DecrementStock", ctx, tx, "P002", 1).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	orderRepo.On("MarkPaid", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	cartRepo.On("Delete", ctx, userID.String()).Return(nil)

	resp, err := svc.Checkout(ctx, userID, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEqual(t, uuid.Nil, resp.OrderID)
	assert.Contains(t, resp.OrderNumber, "RHE-")

	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
	tx.AssertExpectations(t)
	couponRepo.AssertNotCalled(t, "GetByCode")
}

func TestOrderService_Checkout_ShippingFeeBelowThreshold(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 10, IsActive: true},
	}

	req := &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
	}

	orderRepo, productRepo, _, cartRepo, tx, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	orderRepo.On("CreateAddress", ctx, tx, mock.AnythingOfType("*model.Address")).Return(nil)
	orderRepo.On("CreateOrder", ctx, tx, mock.MatchedBy(func(o *model.Order) bool {
		return o.Subtotal == 100 && o.ShippingCost == 20 && o.Total == 120
	})).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	productRepo.On("DecrementStock", ctx, tx, "P001", 1).Return(nil)
	tx.On("Commit", ctx).Return(nil)
	orderRepo.On("MarkPaid", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	cartRepo.On("Delete", ctx, userID.String()).Return(nil)

	resp, err := svc.Checkout(ctx, userID, req)

	require.NoError(t, err)
	require.NotNil(t, resp)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_Unauthorised(t *testing.T) {
	ctx := context.Background()
	_, productRepo, _, _, _, svc := newCheckoutMocks()

	resp, err := svc.Checkout(ctx, uuid.Nil, &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrUnauthorised, err)
	assert.Nil(t, resp)
	productRepo.AssertNotCalled(t, "GetActiveByIDs")
}

func TestOrderService_Checkout_InvalidAddress(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	addr := validAddress()
	addr.Phone = "12345" // not a Turkish mobile number

	_, productRepo, _, _, _, svc := newCheckoutMocks()

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: addr,
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, resp)

	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeValidation, de.Code)
	productRepo.AssertNotCalled(t, "GetActiveByIDs")
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	_, productRepo, _, _, _, svc := newCheckoutMocks()

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{},
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrEmptyCart, err)
	assert.Nil(t, resp)
	productRepo.AssertNotCalled(t, "GetActiveByIDs")
}

func TestOrderService_Checkout_ProductUnavailable(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	// Only one of the two requested products is still active.
	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 10, IsActive: true},
	}

	orderRepo, productRepo, _, _, _, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001", "P002"}).Return(products, nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: validAddress(),
		Items: []model.CheckoutItemRequest{
			{ProductID: "P001", Quantity: 1},
			{ProductID: "P002", Quantity: 1},
		},
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrProductUnavailable, err)
	assert.Nil(t, resp)
	orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Damla Sakızlı Türk Kahvesi", Price: 100.00, Stock: 2, IsActive: true},
	}

	orderRepo, productRepo, _, _, _, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 3}},
	})

	require.Error(t, err)
	assert.Nil(t, resp)

	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeInsufficientStock, de.Code)
	assert.Contains(t, de.Message, "Damla Sakızlı Türk Kahvesi")
	orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Checkout_WithCoupon(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 10, IsActive: true},
	}

	couponCode := "kahve10"
	coupon := &model.Coupon{
		ID:            "C001",
		Code:          "KAHVE10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
	}

	orderRepo, productRepo, couponRepo, cartRepo, tx, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)
	couponRepo.On("GetByCode", ctx, "KAHVE10").Return(coupon, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	orderRepo.On("CreateAddress", ctx, tx, mock.AnythingOfType("*model.Address")).Return(nil)
	orderRepo.On("CreateOrder", ctx, tx, mock.MatchedBy(func(o *model.Order) bool {
		// 200 − 10% + 20 shipping
		return o.Subtotal == 200 && o.Discount == 20 && o.ShippingCost == 20 && o.Total == 200 &&
			o.CouponCode != nil && *o.CouponCode == "KAHVE10"
	})).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	productRepo.On("DecrementStock", ctx, tx, "P001", 2).Return(nil)
	couponRepo.On("IncrementUsage", ctx, tx, "C001").Return(nil)
	tx.On("Commit", ctx).Return(nil)
	orderRepo.On("MarkPaid", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)
	cartRepo.On("Delete", ctx, userID.String()).Return(nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address:    validAddress(),
		Items:      []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 2}},
		CouponCode: &couponCode,
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	couponRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestOrderService_Checkout_UnknownCoupon(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 10, IsActive: true},
	}

	couponCode := "NOPE"

	orderRepo, productRepo, couponRepo, _, _, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)
	couponRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address:    validAddress(),
		Items:      []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
		CouponCode: &couponCode,
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrInvalidCoupon, err)
	assert.Nil(t, resp)
	orderRepo.AssertNotCalled(t, "BeginTx")
}

func TestOrderService_Checkout_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 10, IsActive: true},
	}

	orderRepo, productRepo, _, cartRepo, tx, svc := newCheckoutMocks()

	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	orderRepo.On("CreateAddress", ctx, tx, mock.AnythingOfType("*model.Address")).Return(nil)
	orderRepo.On("CreateOrder", ctx, tx, mock.AnythingOfType("*model.Order")).
		Return(errors.New("database error"))
	tx.On("Rollback", ctx).Return(nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, tx.rolledBack)
	orderRepo.AssertExpectations(t)
	cartRepo.AssertNotCalled(t, "Delete")
}

func TestOrderService_Checkout_StockRaceRollsBack(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Price: 100.00, Stock: 1, IsActive: true},
	}

	orderRepo, productRepo, _, _, tx, svc := newCheckoutMocks()

	// Pre-check passes but the guarded decrement loses the race.
	productRepo.On("GetActiveByIDs", ctx, []string{"P001"}).Return(products, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	orderRepo.On("CreateAddress", ctx, tx, mock.AnythingOfType("*model.Address")).Return(nil)
	orderRepo.On("CreateOrder", ctx, tx, mock.AnythingOfType("*model.Order")).Return(nil)
	orderRepo.On("CreateOrderItems", ctx, tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	productRepo.On("DecrementStock", ctx, tx, "P001", 1).
		Return(model.NewDomainError(model.ErrCodeInsufficientStock, "Yeterli stok yok"))
	tx.On("Rollback", ctx).Return(nil)

	resp, err := svc.Checkout(ctx, userID, &model.CheckoutRequest{
		Address: validAddress(),
		Items:   []model.CheckoutItemRequest{{ProductID: "P001", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, tx.rolledBack)
}

func TestOrderService_GetByID_Ownership(t *testing.T) {
	ctx := context.Background()

	ownerID := uuid.New()
	otherID := uuid.New()
	orderID := uuid.New()

	order := &model.Order{ID: orderID, UserID: ownerID, OrderNumber: "RHE-1-AAAA"}
	items := []model.OrderItem{{ProductID: "P001", Quantity: 1}}

	tests := []struct {
		name      string
		callerID  uuid.UUID
		isAdmin   bool
		expectErr error
	}{
		{"owner can read", ownerID, false, nil},
		{"admin can read", otherID, true, nil},
		{"stranger gets not found", otherID, false, model.ErrOrderNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo, _, _, _, _, svc := newCheckoutMocks()

			orderRepo.On("GetByID", ctx, orderID).Return(order, items, nil)

			detail, err := svc.GetByID(ctx, orderID, tt.callerID, tt.isAdmin)

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectErr, err)
				assert.Nil(t, detail)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, detail)
			assert.Equal(t, orderID, detail.Order.ID)
			assert.Equal(t, items, detail.Items)
		})
	}
}

func TestOrderService_UpdateStatus_Validation(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	orderRepo, _, _, _, _, svc := newCheckoutMocks()

	bogus := "SOMEWHERE"
	err := svc.UpdateStatus(ctx, orderID, &model.OrderStatusRequest{Status: &bogus})
	require.Error(t, err)

	err = svc.UpdateStatus(ctx, orderID, &model.OrderStatusRequest{})
	require.Error(t, err)

	shipped := model.OrderStatusShipped
	orderRepo.On("UpdateStatus", ctx, orderID, &shipped, (*string)(nil)).Return(nil)
	err = svc.UpdateStatus(ctx, orderID, &model.OrderStatusRequest{Status: &shipped})
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
}
