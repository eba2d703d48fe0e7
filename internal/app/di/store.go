// Package di provides dependency injection factories for creating application components.
package di

import (
	"budget_backend/internal/platform/kvstore"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewKVStore creates the key-value Store implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the relational database.
func NewKVStore(rdb *redis.Client, db *gorm.DB) kvstore.Store {
	if rdb != nil {
		return kvstore.NewRedisStore(rdb, "budget")
	}
	return kvstore.NewGormStore(db)
}
