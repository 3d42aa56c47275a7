package service

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- In-memory fakes ---

type fakePlacementRepo struct {
	placements map[primitive.ObjectID]*domain.Placement
}

func newFakePlacementRepo() *fakePlacementRepo {
	return &fakePlacementRepo{placements: make(map[primitive.ObjectID]*domain.Placement)}
}

func (r *fakePlacementRepo) Create(_ context.Context, placement *domain.Placement) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *placement
	stored.ID = id
	r.placements[id] = &stored
	return id, nil
}

func (r *fakePlacementRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Placement, error) {
	placement, ok := r.placements[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *placement
	return &copied, nil
}

func (r *fakePlacementRepo) list(filter func(domain.Placement) bool) []domain.Placement {
	var result []domain.Placement
	for _, placement := range r.placements {
		if filter(*placement) {
			result = append(result, *placement)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PlacementDate.Before(result[j].PlacementDate)
	})
	return result
}

func (r *fakePlacementRepo) ListFrom(_ context.Context, start time.Time) ([]domain.Placement, error) {
	return r.list(func(p domain.Placement) bool { return !p.PlacementDate.Before(start) }), nil
}

func (r *fakePlacementRepo) ListBefore(_ context.Context, end time.Time) ([]domain.Placement, error) {
	return r.list(func(p domain.Placement) bool { return p.PlacementDate.Before(end) }), nil
}

func (r *fakePlacementRepo) ListBetween(_ context.Context, start, end time.Time) ([]domain.Placement, error) {
	return r.list(func(p domain.Placement) bool {
		return !p.PlacementDate.Before(start) && !p.PlacementDate.After(end)
	}), nil
}

type fakeCompanyRepo struct {
	companies map[primitive.ObjectID]domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[primitive.ObjectID]domain.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *domain.Company) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	stored := *company
	stored.ID = id
	r.companies[id] = stored
	return id, nil
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &company, nil
}

func (r *fakeCompanyRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Company, error) {
	result := make(map[primitive.ObjectID]domain.Company, len(ids))
	for _, id := range ids {
		if company, ok := r.companies[id]; ok {
			result[id] = company
		}
	}
	return result, nil
}

type fakeApplicationRepo struct {
	applications map[primitive.ObjectID]*domain.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{applications: make(map[primitive.ObjectID]*domain.Application)}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *domain.Application) (primitive.ObjectID, error) {
	for _, existing := range r.applications {
		if existing.PlacementID == application.PlacementID && existing.StudentID == application.StudentID {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	id := primitive.NewObjectID()
	stored := *application
	stored.ID = id
	r.applications[id] = &stored
	return id, nil
}

func (r *fakeApplicationRepo) GetByPlacementAndStudent(_ context.Context, placementID, studentID primitive.ObjectID) (*domain.Application, error) {
	for _, application := range r.applications {
		if application.PlacementID == placementID && application.StudentID == studentID {
			copied := *application
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeApplicationRepo) ListByStudent(_ context.Context, studentID primitive.ObjectID) ([]domain.Application, error) {
	var result []domain.Application
	for _, application := range r.applications {
		if application.StudentID == studentID {
			result = append(result, *application)
		}
	}
	return result, nil
}

// --- Helpers ---

type placementFixture struct {
	svc          *placementService
	placements   *fakePlacementRepo
	companies    *fakeCompanyRepo
	applications *fakeApplicationRepo
}

// newPlacementFixture pins the clock to 2026-03-15 so the month windows in
// the listing queries are deterministic.
func newPlacementFixture(t *testing.T) *placementFixture {
	t.Helper()
	placements := newFakePlacementRepo()
	companies := newFakeCompanyRepo()
	applications := newFakeApplicationRepo()

	svc := NewPlacementService(placements, companies, applications).(*placementService)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	return &placementFixture{
		svc:          svc,
		placements:   placements,
		companies:    companies,
		applications: applications,
	}
}

func (f *placementFixture) addDrive(t *testing.T, name string, date time.Time) primitive.ObjectID {
	t.Helper()
	companyID, err := f.companies.Create(context.Background(), &domain.Company{
		Name:        name,
		Logo:        name + "-logo.png",
		BannerImage: name + "-banner.png",
	})
	require.NoError(t, err)

	placementID, err := f.placements.Create(context.Background(), &domain.Placement{
		CompanyID:     companyID,
		CompanyName:   name,
		PlacementDate: date,
	})
	require.NoError(t, err)
	return placementID
}

func cardCompanies(cards []PlacementCard) []string {
	names := make([]string, 0, len(cards))
	for _, card := range cards {
		names = append(names, card.Company)
	}
	return names
}

// --- Listings ---

func TestPlacementListings(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)
	ctx := context.Background()

	f.addDrive(t, "PastCorp", time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC))
	f.addDrive(t, "EarlyMonth", time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC))
	f.addDrive(t, "LateMonth", time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC))
	f.addDrive(t, "NextMonth", time.Date(2026, time.April, 20, 0, 0, 0, 0, time.UTC))

	featured, err := f.svc.Featured(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"LateMonth", "NextMonth"}, cardCompanies(featured))
	for _, card := range featured {
		assert.Equal(t, StatusFeatured, card.Status)
	}

	ongoing, err := f.svc.Ongoing(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"EarlyMonth", "LateMonth"}, cardCompanies(ongoing))

	upcoming, err := f.svc.Upcoming(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"LateMonth", "NextMonth"}, cardCompanies(upcoming))

	completed, err := f.svc.Completed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"PastCorp", "EarlyMonth"}, cardCompanies(completed))
}

func TestPlacementListings_CompanyBranding(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)

	f.addDrive(t, "Acme", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))

	cards, err := f.svc.Featured(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Acme", cards[0].Company)
	assert.Equal(t, "Acme-logo.png", cards[0].Logo)
	assert.Equal(t, "Acme-banner.png", cards[0].BannerImage)
	assert.Equal(t, "2026-04-01", cards[0].DriveDate)
}

func TestPlacementListings_Empty(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)

	cards, err := f.svc.Featured(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

// --- Apply ---

func TestPlacementApply(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)
	ctx := context.Background()

	placementID := f.addDrive(t, "Acme", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	studentID := primitive.NewObjectID()
	resumeID := primitive.NewObjectID()

	application, err := f.svc.Apply(ctx, studentID, placementID, &resumeID)
	require.NoError(t, err)

	assert.Equal(t, placementID, application.PlacementID)
	assert.Equal(t, studentID, application.StudentID)
	require.NotNil(t, application.ResumeID)
	assert.Equal(t, resumeID, *application.ResumeID)
	assert.False(t, application.ID.IsZero())
}

func TestPlacementApply_WithoutResume(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)

	placementID := f.addDrive(t, "Acme", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))

	application, err := f.svc.Apply(context.Background(), primitive.NewObjectID(), placementID, nil)
	require.NoError(t, err)
	assert.Nil(t, application.ResumeID)
}

func TestPlacementApply_Twice(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)
	ctx := context.Background()

	placementID := f.addDrive(t, "Acme", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	studentID := primitive.NewObjectID()

	_, err := f.svc.Apply(ctx, studentID, placementID, nil)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, studentID, placementID, nil)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestPlacementApply_UnknownPlacement(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)

	_, err := f.svc.Apply(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, ErrPlacementNotFound)
}

func TestPlacementApplied(t *testing.T) {
	t.Parallel()
	f := newPlacementFixture(t)
	ctx := context.Background()

	first := f.addDrive(t, "Acme", time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	second := f.addDrive(t, "Globex", time.Date(2026, time.April, 8, 0, 0, 0, 0, time.UTC))
	studentID := primitive.NewObjectID()

	_, err := f.svc.Apply(ctx, studentID, first, nil)
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, studentID, second, nil)
	require.NoError(t, err)

	// A different student's application stays out of the listing.
	_, err = f.svc.Apply(ctx, primitive.NewObjectID(), first, nil)
	require.NoError(t, err)

	applications, err := f.svc.Applied(ctx, studentID)
	require.NoError(t, err)
	assert.Len(t, applications, 2)
}
