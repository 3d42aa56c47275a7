package api

import (
	"campusconnect/placement-app/internal/service"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUSNKey       = "usn"
	ContextStudentIDKey = "studentID"
)

// AuthMiddleware creates a Gin middleware for JWT authentication. The
// verified USN it stores in the context is the owner identity every
// handler trusts; no handler re-verifies ownership of the token.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &service.StudentClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})

		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		if !token.Valid || claims.USN == "" || claims.StudentID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		c.Set(ContextUSNKey, claims.USN)
		c.Set(ContextStudentIDKey, claims.StudentID)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// getUSNFromContext returns the authenticated owner identity.
func getUSNFromContext(c *gin.Context) (string, error) {
	usnRaw, exists := c.Get(ContextUSNKey)
	if !exists {
		return "", errors.New("usn not found in context")
	}
	usn, ok := usnRaw.(string)
	if !ok {
		return "", errors.New("invalid usn type in context")
	}
	return usn, nil
}

// getStudentIDFromContext returns the authenticated student's ObjectID.
func getStudentIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextStudentIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("student ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid student ID type in context")
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, errors.New("malformed student ID in context")
	}
	return id, nil
}
