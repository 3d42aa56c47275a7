package api

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResumeHandler serves resume upload and lifecycle endpoints.
type ResumeHandler struct {
	resumeService service.ResumeService
}

func NewResumeHandler(resumeService service.ResumeService) *ResumeHandler {
	return &ResumeHandler{resumeService: resumeService}
}

type UploadResumeRequest struct {
	FileData         string `json:"fileData" binding:"required"`
	OriginalFileName string `json:"originalFileName" binding:"required"`
}

type ResumeResponse struct {
	ID               string    `json:"id"`
	Format           string    `json:"format"`
	FilePath         string    `json:"filePath"`
	OriginalFileName string    `json:"originalFileName"`
	IsActive         bool      `json:"isActive"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Upload stores a new resume for the authenticated student.
func (h *ResumeHandler) Upload(c *gin.Context) {
	var req UploadResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	resume, err := h.resumeService.Upload(c.Request.Context(), usn, req.FileData, req.OriginalFileName)
	if err != nil {
		h.mapResumeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, MapResumeToResponse(resume))
}

// List returns every resume belonging to the authenticated student.
func (h *ResumeHandler) List(c *gin.Context) {
	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	resumes, err := h.resumeService.List(c.Request.Context(), usn)
	if err != nil {
		h.mapResumeError(c, err)
		return
	}

	resp := make([]ResumeResponse, 0, len(resumes))
	for i := range resumes {
		resp = append(resp, MapResumeToResponse(&resumes[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Activate marks one resume active and deactivates the rest.
func (h *ResumeHandler) Activate(c *gin.Context) {
	resumeID, err := primitive.ObjectIDFromHex(c.Param("resumeId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid resume ID format")
		return
	}

	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	resume, err := h.resumeService.Activate(c.Request.Context(), usn, resumeID)
	if err != nil {
		h.mapResumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapResumeToResponse(resume))
}

// Delete removes a resume record and its stored file.
func (h *ResumeHandler) Delete(c *gin.Context) {
	resumeID, err := primitive.ObjectIDFromHex(c.Param("resumeId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid resume ID format")
		return
	}

	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	if err := h.resumeService.Delete(c.Request.Context(), usn, resumeID); err != nil {
		h.mapResumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Resume deleted successfully"})
}

// ListSkills extracts skill keywords from the active resume.
func (h *ResumeHandler) ListSkills(c *gin.Context) {
	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	skills, err := h.resumeService.ListSkills(c.Request.Context(), usn)
	if err != nil {
		h.mapResumeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// mapResumeError translates service sentinels into HTTP statuses. Client
// mistakes land on 400, missing records on 404, infrastructure on 500.
func (h *ResumeHandler) mapResumeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResumeInvalidInput),
		errors.Is(err, service.ErrResumeInvalidEncoding),
		errors.Is(err, service.ErrResumeInvalidFormat),
		errors.Is(err, service.ErrResumeTooLarge),
		errors.Is(err, service.ErrResumeQuotaExceeded),
		errors.Is(err, service.ErrResumeDuplicate):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrResumeNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrResumeStorageFailure),
		errors.Is(err, service.ErrResumePersistence):
		abortWithError(c, http.StatusInternalServerError, "Failed to process resume")
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// MapResumeToResponse converts a domain Resume to its API shape.
func MapResumeToResponse(resume *domain.Resume) ResumeResponse {
	if resume == nil {
		return ResumeResponse{}
	}
	return ResumeResponse{
		ID:               resume.ID.Hex(),
		Format:           string(resume.Format),
		FilePath:         resume.FilePath,
		OriginalFileName: resume.OriginalFileName,
		IsActive:         resume.IsActive,
		CreatedAt:        resume.CreatedAt,
		UpdatedAt:        resume.UpdatedAt,
	}
}
