package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSession(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sessions", nil, "")

	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Bearer", body["token_type"])
	assert.Equal(t, float64(3600), body["expires_in"])

	claims, err := s.jwtService.ValidateSessionToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, body["session_id"], claims.SessionID.String())
}

func TestCreateSession_RateLimitedPerIP(t *testing.T) {
	s := setupTestServer(t)

	for i := 0; i < 5; i++ {
		s.newSession(t)
	}

	w := s.do(t, http.MethodPost, "/api/v1/sessions", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w)["code"])
}

func TestEndSession_RequiresToken(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodDelete, "/api/v1/sessions", nil, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
