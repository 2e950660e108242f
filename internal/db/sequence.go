package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sequence hands out increasing numeric ids from a counters collection,
// one counter document per name.
type Sequence struct {
	Collection *mongo.Collection
}

// Next increments the named counter and returns its new value.
func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	if s == nil || s.Collection == nil {
		return 0, errors.New("mongo collection is nil")
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return counter.Seq, nil
}
