package api

import (
	"campusconnect/placement-app/internal/service"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlacementHandler serves placement drive listings and applications.
type PlacementHandler struct {
	placementService service.PlacementService
	resumeService    service.ResumeService
}

func NewPlacementHandler(placementService service.PlacementService, resumeService service.ResumeService) *PlacementHandler {
	return &PlacementHandler{
		placementService: placementService,
		resumeService:    resumeService,
	}
}

// Featured returns drives scheduled from today onward.
func (h *PlacementHandler) Featured(c *gin.Context) {
	h.listCards(c, h.placementService.Featured)
}

// Ongoing returns drives scheduled within the current calendar month.
func (h *PlacementHandler) Ongoing(c *gin.Context) {
	h.listCards(c, h.placementService.Ongoing)
}

// Upcoming returns drives scheduled from now onward.
func (h *PlacementHandler) Upcoming(c *gin.Context) {
	h.listCards(c, h.placementService.Upcoming)
}

// Completed returns drives whose date has already passed.
func (h *PlacementHandler) Completed(c *gin.Context) {
	h.listCards(c, h.placementService.Completed)
}

// Apply registers the authenticated student for a placement drive.
func (h *PlacementHandler) Apply(c *gin.Context) {
	placementID, err := primitive.ObjectIDFromHex(c.Param("placementId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid placement ID format")
		return
	}

	usn, err := getUSNFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}
	studentID, err := getStudentIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	// The application records which resume was active at apply time.
	// Not having one is fine, the application is simply filed without it.
	var activeResumeID *primitive.ObjectID
	if active, err := h.resumeService.Active(c.Request.Context(), usn); err == nil {
		activeResumeID = &active.ID
	} else if !errors.Is(err, service.ErrResumeNotFound) {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve active resume")
		return
	}

	application, err := h.placementService.Apply(c.Request.Context(), studentID, placementID, activeResumeID)
	if err != nil {
		if errors.Is(err, service.ErrPlacementNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrAlreadyApplied) {
			abortWithError(c, http.StatusConflict, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to submit application")
		}
		return
	}

	c.JSON(http.StatusCreated, application)
}

// Applied lists the authenticated student's submitted applications.
func (h *PlacementHandler) Applied(c *gin.Context) {
	studentID, err := getStudentIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get identity from token")
		return
	}

	applications, err := h.placementService.Applied(c.Request.Context(), studentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, applications)
}

func (h *PlacementHandler) listCards(c *gin.Context, list func(ctx context.Context) ([]service.PlacementCard, error)) {
	cards, err := list(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to fetch placement drives")
		return
	}
	c.JSON(http.StatusOK, cards)
}
