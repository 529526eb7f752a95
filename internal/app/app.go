// Package app opens the backends shared by the server and the ops CLI.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"towerup-backend/internal/cache"
	"towerup-backend/internal/config"
	"towerup-backend/internal/database"
	"towerup-backend/internal/storage"
	"towerup-backend/internal/store"
	"towerup-backend/internal/supabase"
)

// Backends holds the long-lived connections behind the API. Redis is nil
// without REDIS_URL.
type Backends struct {
	Repos *store.Repositories
	Cache cache.QueryCache
	Redis *redis.Client

	db *gorm.DB
}

// Open connects the query cache and the repositories. A direct Postgres
// connection is preferred; PostgREST is the fallback.
func Open(cfg *config.Config, log *zap.Logger) (*Backends, error) {
	b := &Backends{}

	qc, err := cache.New(cfg.RedisURL, cfg.CacheTTL, log)
	if err != nil {
		return nil, err
	}
	b.Cache = qc
	if rc, ok := qc.(*cache.RedisQueryCache); ok {
		b.Redis = rc.Client()
		log.Info("Query cache backed by redis")
	}

	if cfg.DatabaseURL != "" {
		db, err := store.OpenPostgres(cfg.DatabaseURL, log, cfg.LogLevel)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.db = db
		b.Repos = store.NewGormRepositories(db, b.Cache, log)
		log.Info("Repositories backed by postgres")
		return b, nil
	}

	client, err := supabase.NewClient(cfg)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}
	b.Repos = store.NewRestRepositories(client.Supabase, b.Cache, log)
	log.Info("Repositories backed by postgrest", zap.String("url", cfg.SupabaseURL))
	return b, nil
}

func (b *Backends) Close() {
	if b.db != nil {
		if sqlDB, err := b.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if b.Redis != nil {
		_ = b.Redis.Close()
	}
}

// Migrate applies pending migrations. It needs DATABASE_URL.
func Migrate(ctx context.Context, cfg *config.Config, log *zap.Logger) ([]string, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required to run migrations")
	}
	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}
	defer migrator.Close()
	return migrator.Run(ctx)
}

// OpenObjectStorage returns nil, nil when the selected backend has no
// credentials; uploads then answer 503.
func OpenObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.ObjectStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		objects, err := storage.NewS3ObjectStorage(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		}, storage.WithLogger(log))
		if err != nil {
			return nil, err
		}
		return objects, nil
	default:
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceKey == "" {
			log.Warn("Object storage not configured, uploads are disabled")
			return nil, nil
		}
		objects, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
		if err != nil {
			return nil, err
		}
		return objects, nil
	}
}
