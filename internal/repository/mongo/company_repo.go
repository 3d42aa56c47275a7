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

const companyCollectionName = "companies"

// mongoCompanyRepository implements repository.CompanyRepository using MongoDB.
type mongoCompanyRepository struct {
	collection *mongo.Collection
}

// NewMongoCompanyRepository creates a new Company repository backed by MongoDB.
func NewMongoCompanyRepository(db *mongo.Database) repository.CompanyRepository {
	return &mongoCompanyRepository{
		collection: db.Collection(companyCollectionName),
	}
}

// Create inserts a new company.
func (r *mongoCompanyRepository) Create(ctx context.Context, company *domain.Company) (primitive.ObjectID, error) {
	if company.Name == "" {
		return primitive.NilObjectID, errors.New("company name is required")
	}

	company.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, company)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a company by its ID.
func (r *mongoCompanyRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error) {
	var company domain.Company
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&company)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// GetByIDs fetches a batch of companies keyed by ID. Missing IDs are simply
// absent from the result map; placement listings render them with empty
// branding rather than failing.
func (r *mongoCompanyRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Company, error) {
	companies := make(map[primitive.ObjectID]domain.Company, len(ids))
	if len(ids) == 0 {
		return companies, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []domain.Company
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	for _, c := range results {
		companies[c.ID] = c
	}
	return companies, nil
}
