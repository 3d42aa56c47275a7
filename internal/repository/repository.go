package repository

import (
	"campusconnect/placement-app/internal/domain"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// StudentRepository defines the interface for interacting with student data.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Student, error)
	GetByUSN(ctx context.Context, usn string) (*domain.Student, error)
	GetByEmail(ctx context.Context, email string) (*domain.Student, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) (*domain.Student, error)
	SetPasswordHash(ctx context.Context, usn string, passwordHash string) error
}

// ResumeRepository defines the interface for interacting with resume
// records. Blob bytes live in storage.FileStorage; this store owns only
// the metadata and the active flag.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Resume, error)
	GetByUSN(ctx context.Context, usn string) ([]domain.Resume, error) // most-recently-updated first
	GetByUSNAndHash(ctx context.Context, usn, contentHash string) (*domain.Resume, error)
	GetActiveByUSN(ctx context.Context, usn string) (*domain.Resume, error)
	CountByUSN(ctx context.Context, usn string) (int64, error)
	// SetActiveExclusive clears isActive on every other resume of usn,
	// then sets it on id. ErrNotFound when id does not belong to usn.
	SetActiveExclusive(ctx context.Context, usn string, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CompanyRepository defines the interface for interacting with company data.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Company, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Company, error)
}

// PlacementRepository defines the interface for interacting with placement
// drive data. List methods return drives ordered by placement date.
type PlacementRepository interface {
	Create(ctx context.Context, placement *domain.Placement) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Placement, error)
	ListFrom(ctx context.Context, start time.Time) ([]domain.Placement, error)
	ListBefore(ctx context.Context, end time.Time) ([]domain.Placement, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.Placement, error)
}

// ApplicationRepository defines the interface for interacting with
// placement applications.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.Application) (primitive.ObjectID, error)
	GetByPlacementAndStudent(ctx context.Context, placementID, studentID primitive.ObjectID) (*domain.Application, error)
	ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error)
}

// QuestionBankRepository defines the interface for question bank browsing.
type QuestionBankRepository interface {
	Create(ctx context.Context, bank *domain.QuestionBank) (primitive.ObjectID, error)
	ListGroupedByCategory(ctx context.Context) ([]domain.QuestionBankCategory, error)
}

// CounterRepository hands out sequential values for display identifiers.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}
