package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rhea-commerce/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, req *model.ProductRequest) (*model.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	products := []model.Product{
		{ID: "P001", Name: "Türk Kahvesi", Slug: "turk-kahvesi", Price: 100},
		{ID: "P002", Name: "Dibek Kahvesi", Slug: "dibek-kahvesi", Price: 120},
	}

	tests := []struct {
		name           string
		url            string
		filter         model.ProductFilter
		expectedStatus int
	}{
		{
			name:           "All products",
			url:            "/api/products",
			filter:         model.ProductFilter{ActiveOnly: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Filtered by category",
			url:            "/api/products?category=turk-kahvesi",
			filter:         model.ProductFilter{CategorySlug: "turk-kahvesi", ActiveOnly: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Featured only",
			url:            "/api/products?featured=true",
			filter:         model.ProductFilter{ActiveOnly: true, FeaturedOnly: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Paginated",
			url:            "/api/products?limit=10&offset=20",
			filter:         model.ProductFilter{ActiveOnly: true, Limit: 10, Offset: 20},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			svc.On("List", mock.Anything, tt.filter).Return(products, nil)

			h := NewProductHandler(svc, logger)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			h.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var got []model.Product
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Len(t, got, 2)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_List_BadLimit(t *testing.T) {
	logger := zerolog.Nop()

	h := NewProductHandler(new(MockProductService), logger)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=abc", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_GetBySlug(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		slug           string
		mockProduct    *model.Product
		mockErr        error
		expectedStatus int
	}{
		{
			name:           "Found",
			slug:           "turk-kahvesi",
			mockProduct:    &model.Product{ID: "P001", Name: "Türk Kahvesi", Slug: "turk-kahvesi"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			slug:           "yok-boyle-kahve",
			mockErr:        model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockProductService)
			svc.On("GetBySlug", mock.Anything, tt.slug).Return(tt.mockProduct, tt.mockErr)

			h := NewProductHandler(svc, logger)

			r := chi.NewRouter()
			r.Get("/api/products/{slug}", h.GetBySlug)

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.slug, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestProductHandler_ListCategories(t *testing.T) {
	logger := zerolog.Nop()

	categories := []model.Category{
		{ID: "C1", Name: "Türk Kahvesi", Slug: "turk-kahvesi", SortOrder: 1},
		{ID: "C2", Name: "Filtre Kahve", Slug: "filtre-kahve", SortOrder: 2},
	}

	svc := new(MockProductService)
	svc.On("ListCategories", mock.Anything).Return(categories, nil)

	h := NewProductHandler(svc, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()

	h.ListCategories(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []model.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}
