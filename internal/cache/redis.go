package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "towerup:query:"
	redisGenPrefix = "towerup:gen:"
)

// RedisQueryCache keeps one hash per table. The hash expires as a whole, so
// the TTL counts from the most recent write to that table.
type RedisQueryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisQueryCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisQueryCache {
	return &RedisQueryCache{client: client, ttl: ttl, log: log.Named("query-cache")}
}

// Client exposes the connection for other Redis users such as chat history.
func (c *RedisQueryCache) Client() *redis.Client {
	return c.client
}

func (c *RedisQueryCache) Get(ctx context.Context, table, key string) ([]byte, bool) {
	value, err := c.client.HGet(ctx, redisKeyPrefix+table, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", zap.String("table", table), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

func (c *RedisQueryCache) Set(ctx context.Context, table, key string, value []byte) {
	hash := redisKeyPrefix + table
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, hash, key, value)
	pipe.Expire(ctx, hash, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn("cache write failed", zap.String("table", table), zap.Error(err))
	}
}

func (c *RedisQueryCache) InvalidateTable(ctx context.Context, table string) {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, redisGenPrefix+table)
	pipe.Del(ctx, redisKeyPrefix+table)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Error("cache invalidation failed", zap.String("table", table), zap.Error(err))
	}
}

func (c *RedisQueryCache) Generation(ctx context.Context, table string) (int64, bool) {
	gen, err := c.client.Get(ctx, redisGenPrefix+table).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		c.log.Warn("cache generation read failed", zap.String("table", table), zap.Error(err))
		return 0, false
	}
	return gen, true
}
