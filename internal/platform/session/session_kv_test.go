package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/platform/kvstore"
)

func setupSession(t *testing.T) *SessionKV {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&kvstore.Entry{}))
	return NewSessionKV(kvstore.NewGormStore(db))
}

func TestSessionKV_LoadWithoutLogin(t *testing.T) {
	repo := setupSession(t)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionKV_SaveAndLoad(t *testing.T) {
	repo := setupSession(t)
	ctx := context.Background()

	u := &entity.User{
		ID:        "u1",
		Name:      "Taro",
		Email:     "taro@example.com",
		CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)
}

// 2人目のログインは前のセッションを上書きする。同時セッションは1つだけ。
func TestSessionKV_SecondLoginOverwrites(t *testing.T) {
	repo := setupSession(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.User{ID: "u1"}))
	require.NoError(t, repo.Save(ctx, &entity.User{ID: "u2"}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.ID)
}

func TestSessionKV_Clear(t *testing.T) {
	repo := setupSession(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.User{ID: "u1"}))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	// 二重クリアはエラーにならない
	assert.NoError(t, repo.Clear(ctx))
}
