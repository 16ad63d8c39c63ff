package repository

import (
	"context"
	"testing"
	"time"

	"rhea-commerce/internal/model"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCouponRepo(t *testing.T) (CouponRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	repo := NewCouponRepository(mock, zerolog.Nop())
	return repo, mock
}

func couponCols() []string {
	return []string{
		"id", "code", "description", "discount_type", "discount_value",
		"min_order_value", "max_uses", "used_count", "is_active", "starts_at",
		"expires_at", "created_at",
	}
}

func TestCouponRepository_GetByCode(t *testing.T) {
	repo, mock := setupCouponRepo(t)
	defer mock.Close()

	minOrder := 150.0
	mock.ExpectQuery("FROM coupons\\s+WHERE code = \\$1").
		WithArgs("KAHVE10").
		WillReturnRows(pgxmock.NewRows(couponCols()).AddRow(
			"C001", "KAHVE10", (*string)(nil), model.DiscountTypePercentage, 10.0,
			&minOrder, (*int)(nil), 3, true, (*time.Time)(nil), (*time.Time)(nil),
			time.Now(),
		))

	got, err := repo.GetByCode(context.Background(), "KAHVE10")

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "C001", got.ID)
	assert.Equal(t, model.DiscountTypePercentage, got.DiscountType)
	require.NotNil(t, got.MinOrderValue)
	assert.Equal(t, 150.0, *got.MinOrderValue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_GetByCode_NotFound(t *testing.T) {
	repo, mock := setupCouponRepo(t)
	defer mock.Close()

	mock.ExpectQuery("FROM coupons\\s+WHERE code = \\$1").
		WithArgs("YOK").
		WillReturnRows(pgxmock.NewRows(couponCols()))

	got, err := repo.GetByCode(context.Background(), "YOK")

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCouponRepository_IncrementUsage(t *testing.T) {
	repo, mock := setupCouponRepo(t)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE coupons SET used_count = used_count \\+ 1").
		WithArgs("C001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.IncrementUsage(context.Background(), tx, "C001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
