package api

import (
	"campusconnect/placement-app/internal/service"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StudentHandler serves profile endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type UpdateProfileRequest struct {
	Phone   *string `json:"phone" binding:"omitempty,min=7"`
	Address *string `json:"address" binding:"omitempty,min=3"`
}

// GetProfile returns the authenticated student's profile.
func (h *StudentHandler) GetProfile(c *gin.Context) {
	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	profile, err := h.studentService.GetProfile(c.Request.Context(), usn)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes the mutable contact fields of the profile.
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if req.Phone == nil && req.Address == nil {
		abortWithError(c, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	studentID, err := getStudentIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	profile, err := h.studentService.UpdateProfile(c.Request.Context(), studentID, service.ProfileUpdates{
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
