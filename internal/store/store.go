package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// Repository is the typed data access contract for one table. Implementations
// make exactly one round trip per call and do not retry.
type Repository[T any] interface {
	Table() string
	List(ctx context.Context, q Query) ([]T, error)
	FindOne(ctx context.Context, q Query) (*T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Count(ctx context.Context, q Query) (int64, error)
	Create(ctx context.Context, row *T) error
	CreateMany(ctx context.Context, rows []T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Filter struct {
	Column string
	Value  any
}

type Order struct {
	Column string
	Desc   bool
}

// Query is an equality-filtered, ordered, optionally limited selection.
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
}

func (q Query) Where(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = append(append([]Order(nil), q.Order...), Order{Column: column, Desc: desc})
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}

// Key renders the query canonically for use as a cache key.
func (q Query) Key() string {
	var b strings.Builder
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "%s=%v;", f.Column, f.Value)
	}
	b.WriteString("|")
	for _, o := range q.Order {
		dir := "asc"
		if o.Desc {
			dir = "desc"
		}
		fmt.Fprintf(&b, "%s.%s;", o.Column, dir)
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, "|%d", q.Limit)
	}
	return b.String()
}

type tabler interface {
	TableName() string
}

type identified interface {
	GetID() uuid.UUID
}

type preparer interface {
	Prepare(now time.Time)
}

func tableOf[T any]() string {
	var row T
	if t, ok := any(row).(tabler); ok {
		return t.TableName()
	}
	if t, ok := any(&row).(tabler); ok {
		return t.TableName()
	}
	panic(fmt.Sprintf("store: %T has no TableName", row))
}

func idOf[T any](row *T) (uuid.UUID, error) {
	r, ok := any(row).(identified)
	if !ok {
		return uuid.Nil, fmt.Errorf("store: %T has no id", row)
	}
	if r.GetID() == uuid.Nil {
		return uuid.Nil, fmt.Errorf("store: %T id is empty", row)
	}
	return r.GetID(), nil
}
