package api

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	FirstName         string   `json:"firstName" binding:"required"`
	MiddleName        string   `json:"middleName"`
	LastName          string   `json:"lastName" binding:"required"`
	USN               string   `json:"usn" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,min=8"`
	DOB               string   `json:"dob" binding:"required"` // YYYY-MM-DD
	Phone             string   `json:"phone" binding:"required"`
	Address           string   `json:"address" binding:"required"`
	CurrentCGPA       float64  `json:"currentCgpa" binding:"required,min=0,max=10"`
	TenthPercentage   float64  `json:"tenthPercentage" binding:"required,min=0,max=100"`
	TwelfthPercentage *float64 `json:"twelfthPercentage" binding:"omitempty,min=0,max=100"`
	DiplomaPercentage *float64 `json:"diplomaPercentage" binding:"omitempty,min=0,max=100"`
	NumberOfBacklogs  int      `json:"noOfBacklogs" binding:"min=0"`
}

// StudentResponse excludes the password hash.
type StudentResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	USN       string    `json:"usn"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	USN      string `json:"usn" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Student StudentResponse `json:"student"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// --- Handler Methods ---

// Register creates a new student account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "dob must be formatted YYYY-MM-DD")
		return
	}

	student, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		FirstName:         req.FirstName,
		MiddleName:        req.MiddleName,
		LastName:          req.LastName,
		USN:               req.USN,
		Email:             req.Email,
		Password:          req.Password,
		DOB:               dob,
		Phone:             req.Phone,
		Address:           req.Address,
		CurrentCGPA:       req.CurrentCGPA,
		TenthPercentage:   req.TenthPercentage,
		TwelfthPercentage: req.TwelfthPercentage,
		DiplomaPercentage: req.DiplomaPercentage,
		NumberOfBacklogs:  req.NumberOfBacklogs,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentAlreadyExists) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else if errors.Is(err, service.ErrHashingFailed) {
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapStudentToResponse(student))
}

// Login authenticates a student and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, student, err := h.authService.Login(c.Request.Context(), req.USN, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Student: MapStudentToResponse(student),
	})
}

// ResetPassword replaces the authenticated student's password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), usn, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not reset password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// MapStudentToResponse converts a domain Student to a StudentResponse DTO.
func MapStudentToResponse(student *domain.Student) StudentResponse {
	if student == nil {
		return StudentResponse{}
	}
	return StudentResponse{
		ID:        student.ID.Hex(),
		StudentID: student.StudentID,
		USN:       student.USN,
		FullName:  student.FullName(),
		Email:     student.Email,
		CreatedAt: student.CreatedAt,
	}
}
