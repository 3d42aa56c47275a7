package service

import (
	"campusconnect/placement-app/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedStudent(t *testing.T, repo *fakeStudentRepo) *domain.Student {
	t.Helper()
	student := &domain.Student{
		StudentID:       "STU007",
		USN:             "1RV21CS007",
		FirstName:       "Meera",
		MiddleName:      "K",
		LastName:        "Nair",
		Email:           "meera@example.com",
		PasswordHash:    "hashed",
		DOB:             time.Date(2003, 8, 2, 0, 0, 0, 0, time.UTC),
		Phone:           "9000000000",
		Address:         "Mysuru",
		CurrentCGPA:     9.1,
		TenthPercentage: 95,
	}
	id, err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	student.ID = id
	return student
}

func TestStudentGetProfile(t *testing.T) {
	t.Parallel()
	repo := newFakeStudentRepo()
	seedStudent(t, repo)
	svc := NewStudentService(repo)

	profile, err := svc.GetProfile(context.Background(), "1RV21CS007")
	require.NoError(t, err)

	assert.Equal(t, "Meera K Nair", profile.FullName)
	assert.Equal(t, "STU007", profile.StudentID)
	assert.Equal(t, "2003-08-02", profile.DOB)
	assert.Equal(t, 9.1, profile.CurrentCGPA)
}

func TestStudentGetProfile_Unknown(t *testing.T) {
	t.Parallel()
	svc := NewStudentService(newFakeStudentRepo())

	_, err := svc.GetProfile(context.Background(), "1RV21CS404")
	assert.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentUpdateProfile(t *testing.T) {
	t.Parallel()
	repo := newFakeStudentRepo()
	student := seedStudent(t, repo)
	svc := NewStudentService(repo)

	phone := "9111111111"
	profile, err := svc.UpdateProfile(context.Background(), student.ID, ProfileUpdates{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "9111111111", profile.Phone)
	// Untouched fields keep their values.
	assert.Equal(t, "Mysuru", profile.Address)
}

func TestStudentUpdateProfile_NoFields(t *testing.T) {
	t.Parallel()
	repo := newFakeStudentRepo()
	student := seedStudent(t, repo)
	svc := NewStudentService(repo)

	_, err := svc.UpdateProfile(context.Background(), student.ID, ProfileUpdates{})
	assert.Error(t, err)
}

func TestStudentUpdateProfile_Unknown(t *testing.T) {
	t.Parallel()
	svc := NewStudentService(newFakeStudentRepo())

	address := "Hubballi"
	_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), ProfileUpdates{Address: &address})
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
