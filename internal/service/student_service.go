package service

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudentProfile is the profile view returned to the student, with the
// name parts joined.
type StudentProfile struct {
	USN               string   `json:"usn"`
	StudentID         string   `json:"studentId"`
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	DOB               string   `json:"dob"`
	CurrentCGPA       float64  `json:"currentCgpa"`
	TenthPercentage   float64  `json:"tenthPercentage"`
	TwelfthPercentage *float64 `json:"twelfthPercentage,omitempty"`
	DiplomaPercentage *float64 `json:"diplomaPercentage,omitempty"`
	NumberOfBacklogs  int      `json:"noOfBacklogs"`
	PlacedStatus      bool     `json:"placedStatus"`
}

// StudentService exposes profile viewing and editing.
type StudentService interface {
	GetProfile(ctx context.Context, usn string) (*StudentProfile, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updates ProfileUpdates) (*StudentProfile, error)
}

// ProfileUpdates carries the mutable profile fields; nil means unchanged.
type ProfileUpdates struct {
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// studentService implements the StudentService interface.
type studentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new instance of studentService.
func NewStudentService(studentRepo repository.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

// GetProfile returns the profile view for a USN.
func (s *studentService) GetProfile(ctx context.Context, usn string) (*StudentProfile, error) {
	student, err := s.studentRepo.GetByUSN(ctx, usn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return toProfile(student), nil
}

// UpdateProfile applies the provided partial updates and returns the
// refreshed profile.
func (s *studentService) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates ProfileUpdates) (*StudentProfile, error) {
	set := map[string]interface{}{}
	if updates.Phone != nil {
		set["phone"] = *updates.Phone
	}
	if updates.Address != nil {
		set["address"] = *updates.Address
	}
	if len(set) == 0 {
		return nil, errors.New("no profile fields to update")
	}

	student, err := s.studentRepo.UpdateProfile(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return toProfile(student), nil
}

func toProfile(student *domain.Student) *StudentProfile {
	return &StudentProfile{
		USN:               student.USN,
		StudentID:         student.StudentID,
		FullName:          student.FullName(),
		Email:             student.Email,
		Phone:             student.Phone,
		Address:           student.Address,
		DOB:               student.DOB.Format("2006-01-02"),
		CurrentCGPA:       student.CurrentCGPA,
		TenthPercentage:   student.TenthPercentage,
		TwelfthPercentage: student.TwelfthPercentage,
		DiplomaPercentage: student.DiplomaPercentage,
		NumberOfBacklogs:  student.NumberOfBacklogs,
		PlacedStatus:      student.PlacedStatus,
	}
}
