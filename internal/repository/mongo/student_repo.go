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

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository using MongoDB.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

// NewMongoStudentRepository creates a new instance of mongoStudentRepository.
// It expects a connected *mongo.Database instance.
func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(studentCollectionName),
	}
}

// Create inserts a new student into the database.
func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error) {
	if student.USN == "" || student.Email == "" || student.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("student usn, email, and password hash are required")
	}

	student.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, student)
	if err != nil {
		// usn and email carry unique indexes
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

// GetByID retrieves a student by their MongoDB ObjectID.
func (r *mongoStudentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error) {
	var student domain.Student
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByUSN retrieves a student by their university serial number.
func (r *mongoStudentRepository) GetByUSN(ctx context.Context, usn string) (*domain.Student, error) {
	var student domain.Student
	filter := bson.M{"usn": usn}

	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByEmail retrieves a student by their email address.
func (r *mongoStudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var student domain.Student
	filter := bson.M{"email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// UpdateProfile applies a partial update to the student's mutable profile
// fields and returns the refreshed document.
func (r *mongoStudentRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*domain.Student, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var student domain.Student
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// SetPasswordHash replaces the stored bcrypt hash for the given USN.
func (r *mongoStudentRepository) SetPasswordHash(ctx context.Context, usn string, passwordHash string) error {
	filter := bson.M{"usn": usn}
	update := bson.M{
		"$set": bson.M{
			"passwordHash": passwordHash,
			"updatedAt":    time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureStudentIndexes creates necessary indexes for the students collection.
// Call this once during application startup.
func EnsureStudentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "usn", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Index creation failure is non-fatal at startup; unique constraints
		// are still enforced once the index exists.
	}
}
