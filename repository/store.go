package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("document not found")

// Document is implemented by every stored model. Assign is called once,
// right before insert, with the new object id and the insert time.
type Document interface {
	Assign(id primitive.ObjectID, now time.Time)
}

// Query is a one-shot or live collection query. Filter holds equality
// matches only. PerPage of zero returns every match.
type Query struct {
	Filter  bson.M
	Sort    bson.D
	Page    int
	PerPage int
}

// skip saturates at math.MaxInt64 so a huge page reads as past the end.
func (q Query) skip() int64 {
	if q.PerPage <= 0 || q.Page <= 1 {
		return 0
	}
	pages, per := int64(q.Page-1), int64(q.PerPage)
	if pages > math.MaxInt64/per {
		return math.MaxInt64
	}
	return pages * per
}

// Store is a single collection of T addressed by a string key field.
type Store[T any] interface {
	List(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	Get(ctx context.Context, key string) (T, error)
	Insert(ctx context.Context, doc Document) error
	Update(ctx context.Context, key string, set bson.M) (T, error)
	Delete(ctx context.Context, key string) (T, error)

	// Watch calls fn with the current result of q, then again with a fresh
	// result after every change to the collection, until ctx is done.
	Watch(ctx context.Context, q Query, fn func([]T)) error
}
