package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore[T any] struct {
	coll *mongo.Collection
	key  string
}

func NewMongoStore[T any](coll *mongo.Collection, keyField string) *MongoStore[T] {
	return &MongoStore[T]{coll: coll, key: keyField}
}

func (s *MongoStore[T]) List(ctx context.Context, q Query) ([]T, error) {
	filter := q.Filter
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(q.Sort)
	}
	if q.PerPage > 0 {
		opts.SetSkip(q.skip()).SetLimit(int64(q.PerPage))
	}

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.coll.Name(), err)
	}
	return out, nil
}

func (s *MongoStore[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.coll.Name(), err)
	}
	return n, nil
}

func (s *MongoStore[T]) Get(ctx context.Context, key string) (T, error) {
	var doc T
	err := s.coll.FindOne(ctx, bson.M{s.key: key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find %s %s: %w", s.coll.Name(), key, err)
	}
	return doc, nil
}

func (s *MongoStore[T]) Insert(ctx context.Context, doc Document) error {
	doc.Assign(primitive.NewObjectID(), time.Now().UTC())
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s: %w", s.coll.Name(), err)
	}
	return nil
}

func (s *MongoStore[T]) Update(ctx context.Context, key string, set bson.M) (T, error) {
	var doc T

	updateObj := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range set {
		updateObj[k] = v
	}

	opt := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)
	err := s.coll.FindOneAndUpdate(ctx, bson.M{s.key: key}, bson.M{"$set": updateObj}, opt).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("update %s %s: %w", s.coll.Name(), key, err)
	}
	return doc, nil
}

func (s *MongoStore[T]) Delete(ctx context.Context, key string) (T, error) {
	var doc T
	err := s.coll.FindOneAndDelete(ctx, bson.M{s.key: key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("delete %s %s: %w", s.coll.Name(), key, err)
	}
	return doc, nil
}

// Watch needs a replica set or sharded cluster; change streams are not
// available on a standalone mongod.
func (s *MongoStore[T]) Watch(ctx context.Context, q Query, fn func([]T)) error {
	stream, err := s.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.coll.Name(), err)
	}
	defer stream.Close(context.Background())

	snapshot, err := s.List(ctx, q)
	if err != nil {
		return err
	}
	fn(snapshot)

	for stream.Next(ctx) {
		snapshot, err := s.List(ctx, q)
		if err != nil {
			return err
		}
		fn(snapshot)
	}

	if ctx.Err() != nil {
		return nil
	}
	return stream.Err()
}
