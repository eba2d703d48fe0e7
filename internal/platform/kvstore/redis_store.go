package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the Store interface using Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreがStoreを実装していることをコンパイル時に検証します。
var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a new RedisStore instance.
// All keys are namespaced under the given prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

// redisKey returns the namespaced Redis key.
func (s *RedisStore) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

// Get retrieves the value stored under key.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set writes value under key without expiration.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.redisKey(key), value, 0).Err()
}

// SetMulti writes all entries inside a single MULTI/EXEC transaction.
func (s *RedisStore) SetMulti(ctx context.Context, entries map[string][]byte) error {
	pipe := s.client.TxPipeline()
	for key, value := range entries {
		pipe.Set(ctx, s.redisKey(key), value, 0)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Delete removes the given keys. Missing keys are not an error.
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	namespaced := make([]string, 0, len(keys))
	for _, key := range keys {
		namespaced = append(namespaced, s.redisKey(key))
	}
	return s.client.Del(ctx, namespaced...).Err()
}
