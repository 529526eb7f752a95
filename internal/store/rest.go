package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

// RestRepository talks to the Supabase REST endpoint. postgrest-go has no
// context support, so ctx is only checked before the request goes out.
type RestRepository[T any] struct {
	client *supabase.Client
	table  string
	now    func() time.Time
}

func NewRestRepository[T any](client *supabase.Client) *RestRepository[T] {
	return &RestRepository[T]{client: client, table: tableOf[T](), now: time.Now}
}

func (r *RestRepository[T]) Table() string {
	return r.table
}

func applyQuery(fb *postgrest.FilterBuilder, q Query) *postgrest.FilterBuilder {
	for _, f := range q.Filters {
		fb = fb.Eq(f.Column, fmt.Sprint(f.Value))
	}
	for _, o := range q.Order {
		fb = fb.Order(o.Column, &postgrest.OrderOpts{Ascending: !o.Desc})
	}
	if q.Limit > 0 {
		fb = fb.Limit(q.Limit, "")
	}
	return fb
}

func (r *RestRepository[T]) List(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := []T{}
	fb := applyQuery(r.client.From(r.table).Select("*", "", false), q)
	if _, err := fb.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.table, err)
	}
	return rows, nil
}

func (r *RestRepository[T]) FindOne(ctx context.Context, q Query) (*T, error) {
	rows, err := r.List(ctx, q.Take(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *RestRepository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return r.FindOne(ctx, Query{}.Where("id", id))
}

func (r *RestRepository[T]) Count(ctx context.Context, q Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	fb := applyQuery(r.client.From(r.table).Select("id", "exact", true), Query{Filters: q.Filters})
	_, count, err := fb.Execute()
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.table, err)
	}
	return count, nil
}

func (r *RestRepository[T]) prepare(row *T) {
	if p, ok := any(row).(preparer); ok {
		p.Prepare(r.now().UTC())
	}
}

func (r *RestRepository[T]) Create(ctx context.Context, row *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.prepare(row)

	var created []T
	if _, err := r.client.From(r.table).Insert(row, false, "", "representation", "").ExecuteTo(&created); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	if len(created) > 0 {
		*row = created[0]
	}
	return nil
}

func (r *RestRepository[T]) CreateMany(ctx context.Context, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range rows {
		r.prepare(&rows[i])
	}
	if _, _, err := r.client.From(r.table).Insert(rows, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to bulk insert into %s: %w", r.table, err)
	}
	return nil
}

func (r *RestRepository[T]) Update(ctx context.Context, row *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := idOf(row)
	if err != nil {
		return err
	}
	r.prepare(row)

	var updated []T
	if _, err := r.client.From(r.table).Update(row, "representation", "").Eq("id", id.String()).ExecuteTo(&updated); err != nil {
		return fmt.Errorf("failed to update %s: %w", r.table, err)
	}
	if len(updated) == 0 {
		return ErrNotFound
	}
	*row = updated[0]
	return nil
}

func (r *RestRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var deleted []T
	if _, err := r.client.From(r.table).Delete("representation", "").Eq("id", id.String()).ExecuteTo(&deleted); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", r.table, err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}
