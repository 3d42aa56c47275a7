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

const applicationCollectionName = "applications"

// mongoApplicationRepository implements repository.ApplicationRepository using MongoDB.
type mongoApplicationRepository struct {
	collection *mongo.Collection
}

// NewMongoApplicationRepository creates a new Application repository backed by MongoDB.
func NewMongoApplicationRepository(db *mongo.Database) repository.ApplicationRepository {
	return &mongoApplicationRepository{
		collection: db.Collection(applicationCollectionName),
	}
}

// Create inserts a new application. The (placementId, studentId) unique
// index rejects a second application to the same drive.
func (r *mongoApplicationRepository) Create(ctx context.Context, application *domain.Application) (primitive.ObjectID, error) {
	if application.PlacementID == primitive.NilObjectID || application.StudentID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("application requires placementId and studentId")
	}

	application.ID = primitive.NewObjectID()
	application.AppliedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, application)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByPlacementAndStudent finds the application a student filed for a drive.
func (r *mongoApplicationRepository) GetByPlacementAndStudent(ctx context.Context, placementID, studentID primitive.ObjectID) (*domain.Application, error) {
	var application domain.Application
	filter := bson.M{"placementId": placementID, "studentId": studentID}

	err := r.collection.FindOne(ctx, filter).Decode(&application)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &application, nil
}

// ListByStudent returns a student's applications, newest first.
func (r *mongoApplicationRepository) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "appliedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"studentId": studentID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	applications := []domain.Application{}
	if err = cursor.All(ctx, &applications); err != nil {
		return nil, err
	}
	return applications, nil
}

// EnsureApplicationIndexes creates necessary indexes for the applications collection.
func EnsureApplicationIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "placementId", Value: 1}, {Key: "studentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; duplicate applications are also caught in the service.
	}
}
