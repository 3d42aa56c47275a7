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
)

const questionBankCollectionName = "question_banks"

// mongoQuestionBankRepository implements repository.QuestionBankRepository using MongoDB.
type mongoQuestionBankRepository struct {
	collection *mongo.Collection
}

// NewMongoQuestionBankRepository creates a new QuestionBank repository backed by MongoDB.
func NewMongoQuestionBankRepository(db *mongo.Database) repository.QuestionBankRepository {
	return &mongoQuestionBankRepository{
		collection: db.Collection(questionBankCollectionName),
	}
}

// Create inserts a question bank for one company and round category.
func (r *mongoQuestionBankRepository) Create(ctx context.Context, bank *domain.QuestionBank) (primitive.ObjectID, error) {
	if bank.Category == "" || bank.CompanyName == "" {
		return primitive.NilObjectID, errors.New("question bank requires category and companyName")
	}

	bank.ID = primitive.NewObjectID()
	bank.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, bank)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// ListGroupedByCategory groups question banks by round category via an
// aggregation pipeline, sorted by category name.
func (r *mongoQuestionBankRepository) ListGroupedByCategory(ctx context.Context) ([]domain.QuestionBankCategory, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id": "$category",
			"companies": bson.M{
				"$push": bson.M{
					"companyId": "$companyId",
					"name":      "$companyName",
					"questions": "$questions",
				},
			},
		}}},
		{{Key: "$project", Value: bson.M{
			"category":  "$_id",
			"companies": 1,
			"_id":       0,
		}}},
		{{Key: "$sort", Value: bson.M{"category": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []domain.QuestionBankCategory{}
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
