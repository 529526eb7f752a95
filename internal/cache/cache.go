package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// QueryCache stores serialized query results grouped by table so a write to a
// table can drop every cached result for it at once.
//
// Every InvalidateTable bumps the table's generation. Callers fold the
// generation read before a query into the key they store its result under, so
// a result loaded across an invalidation is never served afterwards.
type QueryCache interface {
	Get(ctx context.Context, table, key string) ([]byte, bool)
	Set(ctx context.Context, table, key string, value []byte)
	InvalidateTable(ctx context.Context, table string)
	// Generation reports false when it cannot be read; the caller must then
	// skip the cache.
	Generation(ctx context.Context, table string) (int64, bool)
}

// New returns a Redis-backed cache when redisURL is set, an in-process one otherwise.
func New(redisURL string, ttl time.Duration, log *zap.Logger) (QueryCache, error) {
	if redisURL == "" {
		return NewMemoryQueryCache(ttl), nil
	}

	client, err := OpenRedis(redisURL)
	if err != nil {
		return nil, err
	}
	return NewRedisQueryCache(client, ttl, log), nil
}

// OpenRedis builds a client from a redis:// URL. The connection is lazy.
func OpenRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}
