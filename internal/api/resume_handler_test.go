package api

import (
	"campusconnect/placement-app/internal/domain"
	"campusconnect/placement-app/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubResumeService returns canned results per method.
type stubResumeService struct {
	uploadResume *domain.Resume
	uploadErr    error
	listSkills   []string
	skillsErr    error
}

func (s *stubResumeService) Upload(context.Context, string, string, string) (*domain.Resume, error) {
	return s.uploadResume, s.uploadErr
}

func (s *stubResumeService) List(context.Context, string) ([]domain.Resume, error) {
	return nil, nil
}

func (s *stubResumeService) Active(context.Context, string) (*domain.Resume, error) {
	return nil, service.ErrResumeNotFound
}

func (s *stubResumeService) Activate(context.Context, string, primitive.ObjectID) (*domain.Resume, error) {
	return nil, service.ErrResumeNotFound
}

func (s *stubResumeService) Delete(context.Context, string, primitive.ObjectID) error {
	return nil
}

func (s *stubResumeService) ListSkills(context.Context, string) ([]string, error) {
	return s.listSkills, s.skillsErr
}

// identity injects an authenticated student without a real token.
func identity(usn string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUSNKey, usn)
		c.Set(ContextStudentIDKey, primitive.NewObjectID().Hex())
		c.Next()
	}
}

func newResumeTestRouter(stub *stubResumeService) *gin.Engine {
	router := gin.New()
	handler := NewResumeHandler(stub)
	group := router.Group("", identity("1RV21CS001"))
	group.POST("/resumes", handler.Upload)
	group.GET("/resumes/skills", handler.ListSkills)
	group.PUT("/resumes/:resumeId/activate", handler.Activate)
	return router
}

func TestResumeHandlerUpload_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", service.ErrResumeInvalidInput, http.StatusBadRequest},
		{"bad encoding", service.ErrResumeInvalidEncoding, http.StatusBadRequest},
		{"not a pdf", service.ErrResumeInvalidFormat, http.StatusBadRequest},
		{"too large", service.ErrResumeTooLarge, http.StatusBadRequest},
		{"quota reached", service.ErrResumeQuotaExceeded, http.StatusBadRequest},
		{"duplicate", service.ErrResumeDuplicate, http.StatusBadRequest},
		{"storage down", service.ErrResumeStorageFailure, http.StatusInternalServerError},
		{"record failure", service.ErrResumePersistence, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			router := newResumeTestRouter(&stubResumeService{uploadErr: tc.err})

			body := `{"fileData":"JVBERg==","originalFileName":"a.pdf"}`
			req := httptest.NewRequest(http.MethodPost, "/resumes", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestResumeHandlerUpload_Created(t *testing.T) {
	t.Parallel()
	resume := &domain.Resume{
		ID:               primitive.NewObjectID(),
		USN:              "1RV21CS001",
		Format:           domain.FormatCustom,
		FilePath:         "1RV21CS001_1717430400000.pdf",
		OriginalFileName: "a.pdf",
		IsActive:         true,
	}
	router := newResumeTestRouter(&stubResumeService{uploadResume: resume})

	body := `{"fileData":"JVBERg==","originalFileName":"a.pdf"}`
	req := httptest.NewRequest(http.MethodPost, "/resumes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), resume.ID.Hex())
	assert.Contains(t, rec.Body.String(), `"isActive":true`)
	// The content hash never appears in responses.
	assert.NotContains(t, rec.Body.String(), "contentHash")
}

func TestResumeHandlerUpload_MissingFields(t *testing.T) {
	t.Parallel()
	router := newResumeTestRouter(&stubResumeService{})

	req := httptest.NewRequest(http.MethodPost, "/resumes", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeHandlerActivate_BadID(t *testing.T) {
	t.Parallel()
	router := newResumeTestRouter(&stubResumeService{})

	req := httptest.NewRequest(http.MethodPut, "/resumes/not-a-hex-id/activate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResumeHandlerSkills(t *testing.T) {
	t.Parallel()
	router := newResumeTestRouter(&stubResumeService{listSkills: []string{"go", "sql"}})

	req := httptest.NewRequest(http.MethodGet, "/resumes/skills", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"skills":["go","sql"]}`, rec.Body.String())
}

func TestResumeHandlerSkills_NoActiveResume(t *testing.T) {
	t.Parallel()
	router := newResumeTestRouter(&stubResumeService{skillsErr: service.ErrResumeNotFound})

	req := httptest.NewRequest(http.MethodGet, "/resumes/skills", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
