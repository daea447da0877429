// File: database/repository/counter/counter.go
package counterRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"furcare/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedFunc supplies the starting value of a counter the first time it is used.
type SeedFunc func(ctx context.Context) (int64, error)

// CounterRepository hands out monotonically increasing values per key.
type CounterRepository interface {
	// Next atomically increments key and returns the new value. When the counter does not
	// exist yet it is first created with the value returned by seed (nil seeds zero).
	Next(ctx context.Context, key string, seed SeedFunc) (int64, error)
}

type counterDoc struct {
	Key       string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoCounterRepo struct {
	coll *mongo.Collection
}

// NewMongoCounterRepo constructs a counter repository over the counters collection.
func NewMongoCounterRepo() CounterRepository {
	return &mongoCounterRepo{
		coll: database.DB().Collection(database.CountersCollection),
	}
}

func (r *mongoCounterRepo) Next(ctx context.Context, key string, seed SeedFunc) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	seq, err := r.increment(ctx, key, false)
	if err == nil {
		return seq, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return 0, err
	}

	var start int64
	if seed != nil {
		if start, err = seed(ctx); err != nil {
			return 0, fmt.Errorf("seed counter %s: %w", key, err)
		}
	}
	// Losing the insert race to another writer is fine: their seed is as good as ours.
	_, err = r.coll.InsertOne(ctx, counterDoc{Key: key, Seq: start, UpdatedAt: time.Now()})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, fmt.Errorf("create counter %s: %w", key, err)
	}

	return r.increment(ctx, key, true)
}

func (r *mongoCounterRepo) increment(ctx context.Context, key string, upsert bool) (int64, error) {
	update := bson.M{
		"$inc": bson.M{"seq": 1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(upsert).
		SetReturnDocument(options.After)

	var doc counterDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": key}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, err
		}
		return 0, fmt.Errorf("increment counter %s: %w", key, err)
	}
	return doc.Seq, nil
}
