package store

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"towerup-backend/internal/cache"
)

// CachedRepository serves List, FindOne and Count from the query cache and
// drops the table's cached results after every successful write.
type CachedRepository[T any] struct {
	inner Repository[T]
	cache cache.QueryCache
	log   *zap.Logger
}

func NewCachedRepository[T any](inner Repository[T], qc cache.QueryCache, log *zap.Logger) *CachedRepository[T] {
	return &CachedRepository[T]{inner: inner, cache: qc, log: log}
}

func (r *CachedRepository[T]) Table() string {
	return r.inner.Table()
}

func cached[V any](ctx context.Context, qc cache.QueryCache, log *zap.Logger, table, key string, load func() (V, error)) (V, error) {
	gen, ok := qc.Generation(ctx, table)
	if !ok {
		return load()
	}
	key = strconv.FormatInt(gen, 10) + ":" + key

	if raw, ok := qc.Get(ctx, table, key); ok {
		var v V
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		log.Warn("discarding undecodable cache entry", zap.String("table", table), zap.String("key", key))
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		qc.Set(ctx, table, key, raw)
	}
	return v, nil
}

func (r *CachedRepository[T]) List(ctx context.Context, q Query) ([]T, error) {
	return cached(ctx, r.cache, r.log, r.Table(), "list:"+q.Key(), func() ([]T, error) {
		return r.inner.List(ctx, q)
	})
}

func (r *CachedRepository[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	return cached(ctx, r.cache, r.log, r.Table(), "one:"+q.Key(), func() (*T, error) {
		return r.inner.FindOne(ctx, q)
	})
}

// Get always reads through, admin edits start from it.
func (r *CachedRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.inner.Get(ctx, id)
}

func (r *CachedRepository[T]) Count(ctx context.Context, q Query) (int64, error) {
	return cached(ctx, r.cache, r.log, r.Table(), "count:"+q.Key(), func() (int64, error) {
		return r.inner.Count(ctx, q)
	})
}

func (r *CachedRepository[T]) invalidate(ctx context.Context, err error) error {
	if err == nil {
		r.cache.InvalidateTable(ctx, r.inner.Table())
	}
	return err
}

func (r *CachedRepository[T]) Create(ctx context.Context, row *T) error {
	return r.invalidate(ctx, r.inner.Create(ctx, row))
}

func (r *CachedRepository[T]) CreateMany(ctx context.Context, rows []T) error {
	return r.invalidate(ctx, r.inner.CreateMany(ctx, rows))
}

func (r *CachedRepository[T]) Update(ctx context.Context, row *T) error {
	return r.invalidate(ctx, r.inner.Update(ctx, row))
}

func (r *CachedRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.invalidate(ctx, r.inner.Delete(ctx, id))
}

// Uncached returns the repository behind the query cache, or r itself when it
// is not cached.
func Uncached[T any](r Repository[T]) Repository[T] {
	if c, ok := r.(*CachedRepository[T]); ok {
		return c.inner
	}
	return r
}
