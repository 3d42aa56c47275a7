package api

import (
	"campusconnect/placement-app/internal/service"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testJWTSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func signTestToken(t *testing.T, claims *service.StudentClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims(expiry time.Time) *service.StudentClaims {
	return &service.StudentClaims{
		USN:       "1RV21CS001",
		StudentID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "placement-app",
		},
	}
}

func newProtectedRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(testJWTSecret), func(c *gin.Context) {
		usn, err := getUSNFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"usn": usn})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	token := signTestToken(t, testClaims(time.Now().Add(time.Hour)), testJWTSecret)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1RV21CS001")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	token := signTestToken(t, testClaims(time.Now().Add(time.Hour)), "other-secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	token := signTestToken(t, testClaims(time.Now().Add(-time.Hour)), testJWTSecret)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestAuthMiddleware_MissingClaims(t *testing.T) {
	t.Parallel()
	router := newProtectedRouter()

	claims := testClaims(time.Now().Add(time.Hour))
	claims.USN = ""
	token := signTestToken(t, claims, testJWTSecret)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
