package service

import (
	"context"
	"errors"
	"testing"

	"rhea-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) GetActiveByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID string, quantity int) error {
	args := m.Called(ctx, tx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockProductRepository) UpsertCategory(ctx context.Context, c *model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockProductRepository) UpsertProduct(ctx context.Context, p *model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	filter := model.ProductFilter{CategorySlug: "turk-kahvesi", ActiveOnly: true}
	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Slug: "turk-kahvesi", Price: 100},
		{ID: "P002", Name: "Dibek Kahvesi", Slug: "dibek-kahvesi", Price: 120},
	}

	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	repo.On("List", ctx, filter).Return(products, nil)

	got, err := svc.List(ctx, filter)

	require.NoError(t, err)
	assert.Equal(t, products, got)
	repo.AssertExpectations(t)
}

func TestProductService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	product := &model.Product{ID: "P001", Name: "Türk Kahvesi", Slug: "turk-kahvesi"}

	tests := []struct {
		name      string
		slug      string
		mockProd  *model.Product
		mockErr   error
		expectErr error
	}{
		{"found", "turk-kahvesi", product, nil, nil},
		{"not found", "yok-boyle-kahve", nil, nil, model.ErrProductNotFound},
		{"empty slug", "", nil, nil, model.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockProductRepository)
			svc := NewProductService(repo, zerolog.Nop())

			if tt.slug != "" {
				repo.On("GetBySlug", ctx, tt.slug).Return(tt.mockProd, tt.mockErr)
			}

			got, err := svc.GetBySlug(ctx, tt.slug)

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectErr, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.mockProd, got)
		})
	}
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	req := &model.ProductRequest{
		Name:        "Rhea Özel Harman",
		Description: "Yoğun gövdeli, çikolata notalı özel harman.",
		Price:       185.50,
		SKU:         "RHE-OZL-250",
		Stock:       40,
		CategoryID:  "CAT-1",
	}

	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Product) bool {
		return p.Name == req.Name && p.Slug == "rhea-ozel-harman" &&
			p.IsActive && p.ID != "" && p.FlavorNotes != nil
	})).Return(nil)

	got, err := svc.Create(ctx, req)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rhea-ozel-harman", got.Slug)
	repo.AssertExpectations(t)
}

func TestProductService_Create_ValidationError(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	// Missing price and SKU.
	got, err := svc.Create(ctx, &model.ProductRequest{
		Name:        "Eksik Ürün",
		Description: "Alanları eksik bırakılmış ürün kaydı.",
		CategoryID:  "CAT-1",
	})

	require.Error(t, err)
	assert.Nil(t, got)

	var de *model.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, model.ErrCodeValidation, de.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestProductService_Update_NotFound(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	repo.On("GetByID", ctx, "P404").Return(nil, nil)

	got, err := svc.Update(ctx, "P404", &model.ProductRequest{
		Name:        "Güncel Ürün",
		Description: "Var olmayan ürünün güncellenme denemesi.",
		Price:       100,
		SKU:         "SKU-1",
		CategoryID:  "CAT-1",
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrProductNotFound, err)
	assert.Nil(t, got)
	repo.AssertNotCalled(t, "Update")
}

func TestProductService_List_RepositoryError(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProductRepository)
	svc := NewProductService(repo, zerolog.Nop())

	repo.On("List", ctx, model.ProductFilter{}).Return(nil, errors.New("database error"))

	got, err := svc.List(ctx, model.ProductFilter{})

	require.Error(t, err)
	assert.Nil(t, got)
}
