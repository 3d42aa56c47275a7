package mongo

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const counterCollectionName = "counters"

// mongoCounterRepository implements repository.CounterRepository using MongoDB.
type mongoCounterRepository struct {
	collection *mongo.Collection
}

// NewMongoCounterRepository creates a new Counter repository backed by MongoDB.
func NewMongoCounterRepository(db *mongo.Database) repository.CounterRepository {
	return &mongoCounterRepository{
		collection: db.Collection(counterCollectionName),
	}
}

// Next atomically increments and returns the named sequence. The upsert
// creates the counter on first use, so no seeding step is needed.
func (r *mongoCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, errors.New("counter name is required")
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter domain.Counter
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequence": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Sequence, nil
}
