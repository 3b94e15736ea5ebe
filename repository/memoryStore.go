package repository

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents as encoded BSON in process memory. It honours
// the same Query semantics as MongoStore (equality filters, sort, paging)
// and is what the handler tests and `serve --memory` run against.
type MemoryStore[T any] struct {
	mu   sync.RWMutex
	key  string
	docs []bson.Raw
	subs map[int]chan struct{}
	next int
}

func NewMemoryStore[T any](keyField string) *MemoryStore[T] {
	return &MemoryStore[T]{key: keyField, subs: map[int]chan struct{}{}}
}

func (s *MemoryStore[T]) List(ctx context.Context, q Query) ([]T, error) {
	s.mu.RLock()
	matched := make([]bson.Raw, 0, len(s.docs))
	for _, raw := range s.docs {
		if matches(raw, q.Filter) {
			matched = append(matched, raw)
		}
	}
	s.mu.RUnlock()

	if len(q.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			for _, e := range q.Sort {
				c := compareRaw(matched[i].Lookup(e.Key), matched[j].Lookup(e.Key))
				if c == 0 {
					continue
				}
				if direction(e.Value) < 0 {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if q.PerPage > 0 {
		start := len(matched)
		if skip := q.skip(); skip < int64(len(matched)) {
			start = int(skip)
		}
		end := len(matched)
		if q.PerPage < end-start {
			end = start + q.PerPage
		}
		matched = matched[start:end]
	}

	out := make([]T, 0, len(matched))
	for _, raw := range matched {
		var doc T
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *MemoryStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, raw := range s.docs {
		if matches(raw, filter) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore[T]) Get(ctx context.Context, key string) (T, error) {
	var doc T
	s.mu.RLock()
	i := s.indexOf(key)
	var raw bson.Raw
	if i >= 0 {
		raw = s.docs[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		return doc, ErrNotFound
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func (s *MemoryStore[T]) Insert(ctx context.Context, doc Document) error {
	doc.Assign(primitive.NewObjectID(), now())
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	s.mu.Lock()
	s.docs = append(s.docs, raw)
	s.mu.Unlock()

	s.broadcast()
	return nil
}

func (s *MemoryStore[T]) Update(ctx context.Context, key string, set bson.M) (T, error) {
	var doc T

	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return doc, ErrNotFound
	}

	var m bson.M
	if err := bson.Unmarshal(s.docs[i], &m); err != nil {
		s.mu.Unlock()
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	for k, v := range set {
		m[k] = v
	}
	m["updated_at"] = now()

	raw, err := bson.Marshal(m)
	if err != nil {
		s.mu.Unlock()
		return doc, fmt.Errorf("encode %s: %w", key, err)
	}
	s.docs[i] = raw
	s.mu.Unlock()

	s.broadcast()

	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, key string) (T, error) {
	var doc T

	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return doc, ErrNotFound
	}
	raw := s.docs[i]
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	s.mu.Unlock()

	s.broadcast()

	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", key, err)
	}
	return doc, nil
}

func (s *MemoryStore[T]) Watch(ctx context.Context, q Query, fn func([]T)) error {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}()

	for {
		snapshot, err := s.List(ctx, q)
		if err != nil {
			return err
		}
		fn(snapshot)

		select {
		case <-ctx.Done():
			return nil
		case <-ch:
		}
	}
}

func (s *MemoryStore[T]) indexOf(key string) int {
	for i, raw := range s.docs {
		if v, ok := raw.Lookup(s.key).StringValueOK(); ok && v == key {
			return i
		}
	}
	return -1
}

func (s *MemoryStore[T]) broadcast() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// BSON datetimes carry millisecond precision.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func matches(raw bson.Raw, filter bson.M) bool {
	for k, want := range filter {
		got, err := raw.LookupErr(strings.Split(k, ".")...)
		if err != nil {
			return false
		}
		t, data, err := bson.MarshalValue(want)
		if err != nil {
			return false
		}
		wantRaw := bson.RawValue{Type: t, Value: data}

		if a, ok := number(got); ok {
			if b, ok := number(wantRaw); ok && a == b {
				continue
			}
			return false
		}
		if got.Type != wantRaw.Type || !bytes.Equal(got.Value, wantRaw.Value) {
			return false
		}
	}
	return true
}

func number(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bson.TypeDouble:
		return v.Double(), true
	case bson.TypeInt32:
		return float64(v.Int32()), true
	case bson.TypeInt64:
		return float64(v.Int64()), true
	case bson.TypeDateTime:
		return float64(v.DateTime()), true
	}
	return 0, false
}

func compareRaw(a, b bson.RawValue) int {
	if a.Type == 0 || b.Type == 0 {
		switch {
		case a.Type == b.Type:
			return 0
		case a.Type == 0:
			return -1
		default:
			return 1
		}
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	if x, ok := a.StringValueOK(); ok {
		if y, ok := b.StringValueOK(); ok {
			return strings.Compare(x, y)
		}
	}
	return 0
}

func direction(v any) int {
	switch d := v.(type) {
	case int:
		return d
	case int32:
		return int(d)
	case int64:
		return int(d)
	}
	return 1
}
