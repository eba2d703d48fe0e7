package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupStore はインメモリSQLiteを使ったGormStoreを生成します。
func setupStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))
	return NewGormStore(db)
}

func TestGormStore_GetMissingKey(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(context.Background(), "users")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGormStore_SetAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "settings_u1", []byte(`{"plan":"base"}`)))

	got, err := store.Get(ctx, "settings_u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"plan":"base"}`), got)
}

func TestGormStore_SetOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "users", []byte(`[{"id":"u1"}]`)))

	got, err := store.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"u1"}]`), got)
}

func TestGormStore_SetMulti(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	// 既存キーの上書きと新規キーの作成が混在しても全件反映される
	require.NoError(t, store.Set(ctx, "users", []byte(`[]`)))
	err := store.SetMulti(ctx, map[string][]byte{
		"users":           []byte(`[{"id":"u1"}]`),
		"settings_u1":     []byte(`{}`),
		"transactions_u1": []byte(`[]`),
	})
	require.NoError(t, err)

	for key, want := range map[string]string{
		"users":           `[{"id":"u1"}]`,
		"settings_u1":     `{}`,
		"transactions_u1": `[]`,
	} {
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, string(got), "key %s", key)
	}
}

func TestGormStore_Delete(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "settings_u1", []byte(`{}`)))
	require.NoError(t, store.Set(ctx, "transactions_u1", []byte(`[]`)))

	require.NoError(t, store.Delete(ctx, "settings_u1", "transactions_u1"))

	_, err := store.Get(ctx, "settings_u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = store.Get(ctx, "transactions_u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGormStore_DeleteNoKeys(t *testing.T) {
	store := setupStore(t)

	// キー指定なしはno-op
	assert.NoError(t, store.Delete(context.Background()))
}
