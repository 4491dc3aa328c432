package mongo

import (
	"context"
	"fmt"

	"novusarc/placement/internal/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

type counterDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// SequenceRepo keeps one document per sequence and bumps it with $inc.
type SequenceRepo struct {
	col *mongo.Collection
}

func NewSequenceRepo(db *mongo.Database) *SequenceRepo {
	return &SequenceRepo{col: db.Collection(countersCollection)}
}

// Next upserts the counter and returns the post-increment value.
func (r *SequenceRepo) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		metrics.SequenceAllocations.WithLabelValues("mongo", "error").Inc()
		return 0, fmt.Errorf("next %s: %w", name, err)
	}
	metrics.SequenceAllocations.WithLabelValues("mongo", "ok").Inc()
	return doc.Seq, nil
}
