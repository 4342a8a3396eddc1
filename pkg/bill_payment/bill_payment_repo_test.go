package bill_payment

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/RichardMcSorley/breather/internal/test_utils"
	"github.com/RichardMcSorley/breather/pkg/bill"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}
	var cleanup func()
	db, cleanup = test_utils.TestWithDB()
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, *bill.RepositoryImpl, int) {
	if db == nil {
		t.Skip("database tests are disabled in short mode")
	}
	ctx := context.Background()
	require.NoError(t, test_utils.TruncateAll(ctx, db))
	userId, err := test_utils.CreateUser(ctx, db, "driver")
	require.NoError(t, err)
	return ctx, NewBillPaymentRepo(db), bill.NewBillRepo(db), userId
}

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRepositoryImpl_StoreAndGetForBill(t *testing.T) {
	// given
	ctx, repo, billRepo, userId := setupTestRepository(t)
	billId, err := billRepo.Store(ctx, userId, bill.Bill{Name: "Rent", Amount: decimal.RequireFromString("800.50"), DueDate: 1, UseInPlan: true, IsActive: true})
	require.NoError(t, err)

	// when
	id, err := repo.Store(ctx, userId, BillPayment{BillId: billId, Amount: decimal.RequireFromString("300.25"), PaymentDate: date(6, 14), Notes: "first half"})
	require.NoError(t, err)

	// then
	payments, err := repo.GetForBill(ctx, userId, billId)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, id, payments[0].Id)
	assert.True(t, decimal.RequireFromString("300.25").Equal(payments[0].Amount))
	assert.Equal(t, "2024-06-14", payments[0].PaymentDate.Format(time.DateOnly))
	assert.Equal(t, "first half", payments[0].Notes)

	storedBill, err := billRepo.Get(ctx, userId, billId)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("800.50").Equal(storedBill.Amount))
}

func TestRepositoryImpl_GetInRange(t *testing.T) {
	// given
	ctx, repo, billRepo, userId := setupTestRepository(t)
	billId, err := billRepo.Store(ctx, userId, bill.Bill{Name: "Phone", Amount: decimal.NewFromInt(100), DueDate: 20, IsActive: true})
	require.NoError(t, err)
	for _, d := range []time.Time{date(5, 31), date(6, 1), date(6, 30), date(7, 1)} {
		_, err := repo.Store(ctx, userId, BillPayment{BillId: billId, Amount: decimal.NewFromInt(10), PaymentDate: d})
		require.NoError(t, err)
	}

	// when
	payments, err := repo.GetInRange(ctx, userId, date(6, 1), date(6, 30))

	// then
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2024-06-01", payments[0].PaymentDate.Format(time.DateOnly))
	assert.Equal(t, "2024-06-30", payments[1].PaymentDate.Format(time.DateOnly))
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx, repo, billRepo, userId := setupTestRepository(t)
	billId, err := billRepo.Store(ctx, userId, bill.Bill{Name: "Phone", Amount: decimal.NewFromInt(100), DueDate: 20, IsActive: true})
	require.NoError(t, err)
	id, err := repo.Store(ctx, userId, BillPayment{BillId: billId, Amount: decimal.NewFromInt(10), PaymentDate: date(6, 1)})
	require.NoError(t, err)

	t.Run("should not delete payment of another user", func(t *testing.T) {
		otherId, err := test_utils.CreateUser(ctx, db, "other")
		require.NoError(t, err)

		deleted, err := repo.Delete(ctx, otherId, billId, id)

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("should cascade when bill is deleted", func(t *testing.T) {
		deleted, err := billRepo.Delete(ctx, userId, billId)
		require.NoError(t, err)
		require.True(t, deleted)

		payments, err := repo.GetInRange(ctx, userId, date(1, 1), date(12, 31))

		require.NoError(t, err)
		assert.Empty(t, payments)
	})
}
