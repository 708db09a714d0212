package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	sessionjwt "github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-key-123456789"

func setupTestJWTService() *sessionjwt.Service {
	return sessionjwt.NewService(testSecret, time.Hour)
}

func setupTestRouter(jwtService *sessionjwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	router.GET("/protected", SessionMiddleware(jwtService, logger), func(c *gin.Context) {
		sessionID, exists := GetSessionID(c)
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "no session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "success",
			"session_id": sessionID,
		})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSessionMiddleware_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := setupTestRouter(jwtService)

	sessionID := uuid.New()
	token, _, err := jwtService.GenerateSessionToken(sessionID)
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
	assert.Contains(t, w.Body.String(), sessionID.String())
}

func TestSessionMiddleware_MissingAuthHeader(t *testing.T) {
	router := setupTestRouter(setupTestJWTService())

	w := doRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
	assert.Contains(t, w.Body.String(), "MISSING_AUTH_HEADER")
}

func TestSessionMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupTestRouter(setupTestJWTService())

	tests := []struct {
		name   string
		header string
	}{
		{"missing bearer prefix", "some-token"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
		})
	}
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	router := setupTestRouter(setupTestJWTService())

	other := sessionjwt.NewService("some-other-secret-key-123456789", time.Hour)
	token, _, err := other.GenerateSessionToken(uuid.New())
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	router := setupTestRouter(setupTestJWTService())

	claims := sessionjwt.Claims{
		SessionID: uuid.New(),
		TokenType: sessionjwt.SessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

func TestGetSessionID_NotSet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id, exists := GetSessionID(c)
	assert.False(t, exists)
	assert.Equal(t, uuid.Nil, id)

	c.Set(SessionContextKey, "not-a-uuid")
	_, exists = GetSessionID(c)
	assert.False(t, exists)

	assert.Panics(t, func() { MustGetSessionID(c) })
}
