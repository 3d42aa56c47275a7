package service

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrStudentAlreadyExists = errors.New("student with this USN or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid USN or password")
	ErrStudentNotFound      = errors.New("student not found")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

const studentIDCounter = "studentId"

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	FirstName         string
	MiddleName        string
	LastName          string
	USN               string
	Email             string
	Password          string
	DOB               time.Time
	Phone             string
	Address           string
	CurrentCGPA       float64
	TenthPercentage   float64
	TwelfthPercentage *float64
	DiplomaPercentage *float64
	NumberOfBacklogs  int
}

// AuthService handles registration, login and credential management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Student, error)
	Login(ctx context.Context, usn, password string) (token string, student *domain.Student, err error)
	ResetPassword(ctx context.Context, usn, newPassword string) error
	GetJWTSecret() string
}

// authService implements the AuthService interface.
type authService struct {
	studentRepo   repository.StudentRepository
	counterRepo   repository.CounterRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(studentRepo repository.StudentRepository, counterRepo repository.CounterRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 168 * time.Hour
	}
	return &authService{
		studentRepo:   studentRepo,
		counterRepo:   counterRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a new student account with a sequential display ID.
// The USN is stored uppercase and the email lowercase.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.Student, error) {
	if input.FirstName == "" || input.LastName == "" || input.USN == "" ||
		input.Email == "" || input.Password == "" || input.Phone == "" || input.Address == "" {
		return nil, errors.New("all required registration fields must be provided")
	}

	usn := strings.ToUpper(input.USN)
	email := strings.ToLower(input.Email)

	// Check both unique keys up front for a friendly error; the unique
	// indexes still close the race.
	if _, err := s.studentRepo.GetByUSN(ctx, usn); err == nil {
		return nil, ErrStudentAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.studentRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrStudentAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	sequence, err := s.counterRepo.Next(ctx, studentIDCounter)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		StudentID:         fmt.Sprintf("STU%03d", sequence),
		USN:               usn,
		FirstName:         input.FirstName,
		MiddleName:        input.MiddleName,
		LastName:          input.LastName,
		Email:             email,
		PasswordHash:      string(hashedPassword),
		DOB:               input.DOB,
		Phone:             input.Phone,
		Address:           input.Address,
		CurrentCGPA:       input.CurrentCGPA,
		TenthPercentage:   input.TenthPercentage,
		TwelfthPercentage: input.TwelfthPercentage,
		DiplomaPercentage: input.DiplomaPercentage,
		NumberOfBacklogs:  input.NumberOfBacklogs,
	}

	studentID, err := s.studentRepo.Create(ctx, student)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrStudentAlreadyExists
		}
		return nil, err
	}
	student.ID = studentID

	student.PasswordHash = ""
	return student, nil
}

// Login authenticates a student by USN and returns a signed JWT.
func (s *authService) Login(ctx context.Context, usn, password string) (token string, student *domain.Student, err error) {
	if usn == "" || password == "" {
		err = errors.New("usn and password cannot be empty")
		return
	}

	student, err = s.studentRepo.GetByUSN(ctx, strings.ToUpper(usn))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed
			return
		}
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(password))
	if err != nil {
		err = ErrAuthenticationFailed
		student = nil
		return
	}

	token, err = s.generateJWT(student)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	student.PasswordHash = ""
	return token, student, nil
}

// ResetPassword replaces the stored password hash for an authenticated USN.
func (s *authService) ResetPassword(ctx context.Context, usn, newPassword string) error {
	if usn == "" || newPassword == "" {
		return errors.New("usn and new password cannot be empty")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrHashingFailed
	}

	err = s.studentRepo.SetPasswordHash(ctx, strings.ToUpper(usn), string(hashedPassword))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

// --- JWT Helper ---

// StudentClaims is the JWT payload: the USN is the owner identity trusted
// by every downstream service, the sid carries the document ID.
type StudentClaims struct {
	USN       string `json:"usn"`
	StudentID string `json:"sid"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given student.
func (s *authService) generateJWT(student *domain.Student) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &StudentClaims{
		USN:       student.USN,
		StudentID: student.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   student.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "placement-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
