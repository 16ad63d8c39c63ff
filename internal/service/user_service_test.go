package service

import (
	"context"
	"testing"
	"time"

	"rhea-commerce/internal/auth"
	"rhea-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newUserService(repo *MockUserRepository) UserService {
	tokens := auth.NewJWTManager("test-secret-key-32-characters!!!", time.Hour)
	return NewUserService(repo, tokens, zerolog.Nop())
}

func TestUserService_Register_Success(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := newUserService(repo)

	repo.On("GetByEmail", ctx, "ayse@example.com").Return(nil, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "ayse@example.com" &&
			u.Role == model.RoleUser &&
			u.PasswordHash != "" &&
			u.PasswordHash != "Parola123"
	})).Return(nil)

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "Ayse@Example.com",
		Password: "Parola123",
	})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ayse@example.com", resp.User.Email)
	repo.AssertExpectations(t)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := newUserService(repo)

	tests := []string{
		"kisa1A",     // too short
		"parolasiz1", // no uppercase
		"Parolasiz",  // no digit
	}

	for _, password := range tests {
		resp, err := svc.Register(ctx, &model.RegisterRequest{
			Name:     "Ayşe Yılmaz",
			Email:    "ayse@example.com",
			Password: password,
		})

		require.Error(t, err, "password %q should be rejected", password)
		assert.Nil(t, resp)
	}
	repo.AssertNotCalled(t, "Create")
}

func TestUserService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := newUserService(repo)

	existing := &model.User{ID: uuid.New(), Email: "ayse@example.com"}
	repo.On("GetByEmail", ctx, "ayse@example.com").Return(existing, nil)

	resp, err := svc.Register(ctx, &model.RegisterRequest{
		Name:     "Ayşe Yılmaz",
		Email:    "ayse@example.com",
		Password: "Parola123",
	})

	require.Error(t, err)
	assert.Equal(t, model.ErrEmailTaken, err)
	assert.Nil(t, resp)
	repo.AssertNotCalled(t, "Create")
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashPassword("Parola123")
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Email:        "ayse@example.com",
		Name:         "Ayşe Yılmaz",
		PasswordHash: hash,
		Role:         model.RoleUser,
	}

	tests := []struct {
		name      string
		email     string
		password  string
		mockUser  *model.User
		expectErr error
	}{
		{"valid credentials", "ayse@example.com", "Parola123", user, nil},
		{"wrong password", "ayse@example.com", "Yanlis123", user, model.ErrInvalidCredentials},
		{"unknown email", "yok@example.com", "Parola123", nil, model.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			svc := newUserService(repo)

			repo.On("GetByEmail", ctx, tt.email).Return(tt.mockUser, nil)

			resp, err := svc.Login(ctx, &model.LoginRequest{Email: tt.email, Password: tt.password})

			if tt.expectErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectErr, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, tt.mockUser.Email, resp.User.Email)
		})
	}
}

func TestAdminService_Stats(t *testing.T) {
	ctx := context.Background()

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	userRepo := new(MockUserRepository)
	svc := NewAdminService(orderRepo, productRepo, userRepo, zerolog.Nop())

	orderRepo.On("Stats", ctx).Return(12, 3450.75, nil)
	productRepo.On("Count", ctx).Return(8, nil)
	userRepo.On("Count", ctx).Return(25, nil)

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, &model.DashboardStats{Products: 8, Orders: 12, Users: 25, Revenue: 3450.75}, stats)
}
