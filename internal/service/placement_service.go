package service

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlacementNotFound = errors.New("placement not found")
	ErrAlreadyApplied    = errors.New("already applied to this placement")
)

// DriveStatus labels a placement listing window.
type DriveStatus string

const (
	StatusFeatured  DriveStatus = "Featured"
	StatusOngoing   DriveStatus = "Ongoing"
	StatusUpcoming  DriveStatus = "Upcoming"
	StatusCompleted DriveStatus = "Completed"
)

// PlacementCard is the listing view of a drive, enriched with company
// branding for the mobile home screens.
type PlacementCard struct {
	ID          string      `json:"id"`
	Company     string      `json:"company"`
	BannerImage string      `json:"bannerImage"`
	Logo        string      `json:"logo"`
	Status      DriveStatus `json:"status"`
	DriveDate   string      `json:"driveDate"` // YYYY-MM-DD
}

// PlacementService lists drives by schedule window and records applications.
type PlacementService interface {
	Featured(ctx context.Context) ([]PlacementCard, error)
	Ongoing(ctx context.Context) ([]PlacementCard, error)
	Upcoming(ctx context.Context) ([]PlacementCard, error)
	Completed(ctx context.Context) ([]PlacementCard, error)
	Apply(ctx context.Context, studentID, placementID primitive.ObjectID, activeResumeID *primitive.ObjectID) (*domain.Application, error)
	Applied(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error)
}

// placementService implements the PlacementService interface.
type placementService struct {
	placementRepo   repository.PlacementRepository
	companyRepo     repository.CompanyRepository
	applicationRepo repository.ApplicationRepository
	now             func() time.Time
}

// NewPlacementService creates a new instance of placementService.
func NewPlacementService(
	placementRepo repository.PlacementRepository,
	companyRepo repository.CompanyRepository,
	applicationRepo repository.ApplicationRepository,
) PlacementService {
	return &placementService{
		placementRepo:   placementRepo,
		companyRepo:     companyRepo,
		applicationRepo: applicationRepo,
		now:             time.Now,
	}
}

// Featured lists drives scheduled from today onward.
func (s *placementService) Featured(ctx context.Context) ([]PlacementCard, error) {
	placements, err := s.placementRepo.ListFrom(ctx, s.today())
	if err != nil {
		return nil, err
	}
	return s.toCards(ctx, placements, StatusFeatured)
}

// Ongoing lists drives falling inside the current calendar month.
func (s *placementService) Ongoing(ctx context.Context) ([]PlacementCard, error) {
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)

	placements, err := s.placementRepo.ListBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}
	return s.toCards(ctx, placements, StatusOngoing)
}

// Upcoming lists drives scheduled from now onward.
func (s *placementService) Upcoming(ctx context.Context) ([]PlacementCard, error) {
	placements, err := s.placementRepo.ListFrom(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.toCards(ctx, placements, StatusUpcoming)
}

// Completed lists drives whose date has passed.
func (s *placementService) Completed(ctx context.Context) ([]PlacementCard, error) {
	placements, err := s.placementRepo.ListBefore(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.toCards(ctx, placements, StatusCompleted)
}

// Apply records a student's application to a drive, once.
func (s *placementService) Apply(ctx context.Context, studentID, placementID primitive.ObjectID, activeResumeID *primitive.ObjectID) (*domain.Application, error) {
	placement, err := s.placementRepo.GetByID(ctx, placementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlacementNotFound
		}
		return nil, err
	}

	if _, err := s.applicationRepo.GetByPlacementAndStudent(ctx, placementID, studentID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	application := &domain.Application{
		PlacementID: placement.ID,
		CompanyID:   placement.CompanyID,
		StudentID:   studentID,
		ResumeID:    activeResumeID,
	}

	applicationID, err := s.applicationRepo.Create(ctx, application)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	application.ID = applicationID

	return application, nil
}

// Applied returns a student's applications, newest first.
func (s *placementService) Applied(ctx context.Context, studentID primitive.ObjectID) ([]domain.Application, error) {
	return s.applicationRepo.ListByStudent(ctx, studentID)
}

// toCards enriches placements with company branding in one batched lookup.
func (s *placementService) toCards(ctx context.Context, placements []domain.Placement, status DriveStatus) ([]PlacementCard, error) {
	ids := make([]primitive.ObjectID, 0, len(placements))
	for _, p := range placements {
		ids = append(ids, p.CompanyID)
	}
	companies, err := s.companyRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]PlacementCard, 0, len(placements))
	for _, p := range placements {
		card := PlacementCard{
			ID:        p.ID.Hex(),
			Company:   p.CompanyName,
			Status:    status,
			DriveDate: p.PlacementDate.Format("2006-01-02"),
		}
		if company, ok := companies[p.CompanyID]; ok {
			card.BannerImage = company.BannerImage
			card.Logo = company.Logo
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *placementService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
