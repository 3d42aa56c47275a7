package mongo

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const placementCollectionName = "placements"

// mongoPlacementRepository implements repository.PlacementRepository using MongoDB.
type mongoPlacementRepository struct {
	collection *mongo.Collection
}

// NewMongoPlacementRepository creates a new Placement repository backed by MongoDB.
func NewMongoPlacementRepository(db *mongo.Database) repository.PlacementRepository {
	return &mongoPlacementRepository{
		collection: db.Collection(placementCollectionName),
	}
}

// Create inserts a new placement drive.
func (r *mongoPlacementRepository) Create(ctx context.Context, placement *domain.Placement) (primitive.ObjectID, error) {
	if placement.CompanyID == primitive.NilObjectID || placement.CompanyName == "" {
		return primitive.NilObjectID, errors.New("placement requires companyId and companyName")
	}

	placement.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	placement.CreatedAt = now
	placement.UpdatedAt = now
	if placement.PlacementDate.IsZero() {
		placement.PlacementDate = now
	}

	result, err := r.collection.InsertOne(ctx, placement)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a placement drive by its ID.
func (r *mongoPlacementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Placement, error) {
	var placement domain.Placement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&placement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &placement, nil
}

// ListFrom returns drives scheduled at or after start.
func (r *mongoPlacementRepository) ListFrom(ctx context.Context, start time.Time) ([]domain.Placement, error) {
	return r.list(ctx, bson.M{"placementDate": bson.M{"$gte": start}})
}

// ListBefore returns drives scheduled strictly before end.
func (r *mongoPlacementRepository) ListBefore(ctx context.Context, end time.Time) ([]domain.Placement, error) {
	return r.list(ctx, bson.M{"placementDate": bson.M{"$lt": end}})
}

// ListBetween returns drives scheduled in [start, end].
func (r *mongoPlacementRepository) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Placement, error) {
	return r.list(ctx, bson.M{"placementDate": bson.M{"$gte": start, "$lte": end}})
}

func (r *mongoPlacementRepository) list(ctx context.Context, filter bson.M) ([]domain.Placement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "placementDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	placements := []domain.Placement{}
	if err = cursor.All(ctx, &placements); err != nil {
		return nil, err
	}
	return placements, nil
}

// EnsurePlacementIndexes creates necessary indexes for the placements collection.
func EnsurePlacementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "placementDate", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "companyId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; listing queries run without the index, just slower.
	}
}
