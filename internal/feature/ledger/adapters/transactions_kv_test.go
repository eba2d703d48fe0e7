package adapters

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"budget_backend/internal/feature/ledger/domain"
	"budget_backend/internal/feature/ledger/domain/entity"
	"budget_backend/internal/platform/kvstore"
)

func setupRepo(t *testing.T) *transactionsKV {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&kvstore.Entry{}))
	return NewTransactionsKV(kvstore.NewGormStore(db))
}

func TestTransactionsKV_LoadMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Load(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestTransactionsKV_RoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	txs := []entity.Transaction{
		{ID: "tx-1", Date: "2025-03-01", Amount: decimal.RequireFromString("42.50"), Type: entity.TypeExpense, Category: "Food/Dining", Note: "Lunch"},
		{ID: "tx-2", Date: "2025-03-02", Amount: decimal.RequireFromString("2800"), Type: entity.TypeIncome, Category: "Income"},
	}
	require.NoError(t, repo.Save(ctx, "u1", txs))

	got, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "tx-1", got[0].ID)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, entity.TypeExpense, got[0].Type)
}

// 取引コレクションはユーザーIDごとに独立したキーへ保存される。
func TestTransactionsKV_KeyIsolation(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "u1", []entity.Transaction{{ID: "tx-1"}}))
	require.NoError(t, repo.Save(ctx, "u2", []entity.Transaction{{ID: "tx-2"}}))

	u1, err := repo.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, u1, 1)
	assert.Equal(t, "tx-1", u1[0].ID)

	u2, err := repo.Load(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, u2, 1)
	assert.Equal(t, "tx-2", u2[0].ID)
}

func TestTransactionsKV_Purge(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "u1", []entity.Transaction{{ID: "tx-1"}}))
	require.NoError(t, repo.Purge(ctx, "u1"))

	_, err := repo.Load(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

	// 二重パージはエラーにならない
	assert.NoError(t, repo.Purge(ctx, "u1"))
}
