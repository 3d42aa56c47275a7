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

const resumeCollectionName = "resumes"

// mongoResumeRepository implements repository.ResumeRepository using MongoDB.
type mongoResumeRepository struct {
	collection *mongo.Collection
}

// NewMongoResumeRepository creates a new Resume repository backed by MongoDB.
func NewMongoResumeRepository(db *mongo.Database) repository.ResumeRepository {
	return &mongoResumeRepository{
		collection: db.Collection(resumeCollectionName),
	}
}

// Create inserts a new resume record.
func (r *mongoResumeRepository) Create(ctx context.Context, resume *domain.Resume) (primitive.ObjectID, error) {
	if resume.USN == "" || resume.FilePath == "" || resume.ContentHash == "" || resume.OriginalFileName == "" {
		return primitive.NilObjectID, errors.New("resume requires usn, filePath, contentHash, and originalFileName")
	}
	if resume.Format == "" {
		resume.Format = domain.FormatCustom
	}

	resume.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	resume.CreatedAt = now
	resume.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, resume)
	if err != nil {
		// The (usn, contentHash) unique index catches a duplicate upload
		// that raced past the service-level dedupe check.
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

// GetByID retrieves a resume record by its ID.
func (r *mongoResumeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Resume, error) {
	var resume domain.Resume
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// GetByUSN retrieves all resumes for a USN, most-recently-updated first.
func (r *mongoResumeRepository) GetByUSN(ctx context.Context, usn string) ([]domain.Resume, error) {
	filter := bson.M{"usn": usn}
	findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	resumes := []domain.Resume{}
	if err = cursor.All(ctx, &resumes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return resumes, nil
}

// GetByUSNAndHash finds a resume whose content matches the given digest for
// this owner. Used for dedupe; identical bytes under a different USN are a
// different document.
func (r *mongoResumeRepository) GetByUSNAndHash(ctx context.Context, usn, contentHash string) (*domain.Resume, error) {
	var resume domain.Resume
	filter := bson.M{"usn": usn, "contentHash": contentHash}

	err := r.collection.FindOne(ctx, filter).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// GetActiveByUSN returns the single active resume for a USN.
func (r *mongoResumeRepository) GetActiveByUSN(ctx context.Context, usn string) (*domain.Resume, error) {
	var resume domain.Resume
	filter := bson.M{"usn": usn, "isActive": true}

	err := r.collection.FindOne(ctx, filter).Decode(&resume)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &resume, nil
}

// CountByUSN counts resumes stored for a USN, used for quota enforcement.
func (r *mongoResumeRepository) CountByUSN(ctx context.Context, usn string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"usn": usn})
}

// SetActiveExclusive clears isActive on all other resumes for usn, then
// sets it on id. Both steps are single-collection updates; the clear runs
// first so a reader between the steps sees at most zero active resumes,
// never two.
func (r *mongoResumeRepository) SetActiveExclusive(ctx context.Context, usn string, id primitive.ObjectID) error {
	now := time.Now().UTC()

	_, err := r.collection.UpdateMany(ctx,
		bson.M{"usn": usn, "_id": bson.M{"$ne": id}, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}},
	)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "usn": usn},
		bson.M{"$set": bson.M{"isActive": true, "updatedAt": now}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a resume record.
func (r *mongoResumeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureResumeIndexes creates necessary indexes for the resumes collection.
func EnsureResumeIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usn", Value: 1}},
			Options: options.Index(),
		},
		{
			// Backs the per-owner dedupe check and makes it race-proof.
			Keys:    bson.D{{Key: "usn", Value: 1}, {Key: "contentHash", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "usn", Value: 1}, {Key: "isActive", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Non-fatal; dedupe still works through the service-level check.
	}
}
