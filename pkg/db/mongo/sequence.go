package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CountersCollection = "Counters"

// Sequence hands out monotonically increasing identities for one collection.
// Each call to Next atomically increments a counter document.
type Sequence struct {
	counters *mongo.Collection
	name     string
}

func NewSequence(db *mongo.Database, name string) *Sequence {
	return &Sequence{
		counters: db.Collection(CountersCollection),
		name:     name,
	}
}

type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func (s *Sequence) Next(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter counterDocument
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance %s sequence: %w", s.name, err)
	}

	return counter.Seq, nil
}
