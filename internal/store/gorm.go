package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"towerup-backend/internal/logger"
)

// OpenPostgres connects gorm to the database behind DATABASE_URL.
func OpenPostgres(dsn string, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.NewGormLogger(log, logger.GormLevel(logLevel)),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

type GormRepository[T any] struct {
	db    *gorm.DB
	table string
}

func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db, table: tableOf[T]()}
}

func (r *GormRepository[T]) Table() string {
	return r.table
}

func (r *GormRepository[T]) scoped(ctx context.Context, q Query) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(new(T))
	for _, f := range q.Filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

func (r *GormRepository[T]) List(ctx context.Context, q Query) ([]T, error) {
	rows := []T{}
	if err := r.scoped(ctx, q).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return rows, nil
}

func (r *GormRepository[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	rows, err := r.List(ctx, q.Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *GormRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.FindOne(ctx, Query{}.Where("id", id))
}

func (r *GormRepository[T]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	if err := r.scoped(ctx, Query{Filters: q.Filters}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return n, nil
}

func (r *GormRepository[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *GormRepository[T]) CreateMany(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to bulk insert into %s: %w", r.table, err)
	}
	return nil
}

// Update writes every column of row, zero values included.
func (r *GormRepository[T]) Update(ctx context.Context, row *T) error {
	id, err := idOf(row)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(row).
		Where("id = ?", id).
		Select("*").Omit("id", "created_at").
		Updates(row)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
