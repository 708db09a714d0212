package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/railyatra/booking-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtectedRoutes_RequireSession(t *testing.T) {
	s := setupTestServer(t)

	for _, path := range []string{"/api/v1/booking", "/api/v1/checkout", "/api/v1/confirmation"} {
		w := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "MISSING_AUTH_HEADER", decode(t, w)["code"], path)
	}

	w := s.do(t, http.MethodGet, "/api/v1/booking", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", decode(t, w)["code"])
}

func TestGetBooking_NoDraftRedirectsToSearch(t *testing.T) {
	s := setupTestServer(t)
	token := s.newSession(t)

	w := s.do(t, http.MethodGet, "/api/v1/booking", nil, token)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "NO_BOOKING", body["code"])
	assert.Equal(t, "/search", body["redirect"])
}

func TestBookingFlow_SeatSelection(t *testing.T) {
	s := setupTestServer(t)
	token := s.newSession(t)

	w := s.do(t, http.MethodPost, "/api/v1/booking", map[string]interface{}{
		"train_id":   "1",
		"class":      "economy",
		"passengers": 2,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	booking := decode(t, w)["booking"].(map[string]interface{})
	assert.Equal(t, 2915.4, booking["totalPrice"])

	w = s.do(t, http.MethodPost, "/api/v1/booking/continue", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please select 2 seats to continue.", decode(t, w)["message"])

	for _, seatID := range []string{"1-E1-7", "1-E1-8"} {
		w = s.do(t, http.MethodPost, "/api/v1/booking/seats/"+seatID+"/toggle", nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "selected", decode(t, w)["outcome"])
	}

	w = s.do(t, http.MethodPost, "/api/v1/booking/seats/1-E1-9/toggle", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "limit_reached", body["outcome"])
	assert.Len(t, body["booking"].(map[string]interface{})["seats"], 2)

	w = s.do(t, http.MethodPost, "/api/v1/booking/seats/9-X1-1/toggle", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/booking/seats?coach=E1", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	seats := decode(t, w)["seat_map"].(map[string]interface{})["seats"].([]interface{})
	selected := 0
	for _, seat := range seats {
		if seat.(map[string]interface{})["status"] == "selected" {
			selected++
		}
	}
	assert.Equal(t, 2, selected)

	w = s.do(t, http.MethodPost, "/api/v1/booking/continue", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/checkout", decode(t, w)["redirect"])
}

func TestChangeClass_ResetsSeats(t *testing.T) {
	s := setupTestServer(t)
	token := s.newSession(t)

	s.do(t, http.MethodPost, "/api/v1/booking", map[string]interface{}{"train_id": "1"}, token)
	s.do(t, http.MethodPost, "/api/v1/booking/seats/1-E1-1/toggle", nil, token)

	w := s.do(t, http.MethodPut, "/api/v1/booking/class", map[string]interface{}{"class": "firstClass"}, token)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.True(t, strings.HasPrefix(body["message"].(string), "Class changed to First Class"))
	booking := body["booking"].(map[string]interface{})
	assert.Empty(t, booking["seats"])
	assert.Equal(t, "firstClass", booking["classType"])
}

func TestChangePassengers_Validation(t *testing.T) {
	s := setupTestServer(t)
	token := s.newSession(t)

	s.do(t, http.MethodPost, "/api/v1/booking", map[string]interface{}{"train_id": "1"}, token)

	w := s.do(t, http.MethodPut, "/api/v1/booking/passengers", map[string]interface{}{"passengers": 9}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/booking/passengers", map[string]interface{}{"passengers": 3}, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := setupTestServer(t)
	first := s.newSession(t)
	second := s.newSession(t)

	s.do(t, http.MethodPost, "/api/v1/booking", map[string]interface{}{"train_id": "1"}, first)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/booking", nil, first).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodGet, "/api/v1/booking", nil, second).Code)
}

func TestEndSession_ClearsState(t *testing.T) {
	s := setupTestServer(t)
	token := s.newSession(t)

	s.do(t, http.MethodPost, "/api/v1/booking", map[string]interface{}{"train_id": "1"}, token)

	w := s.do(t, http.MethodDelete, "/api/v1/sessions", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodGet, "/api/v1/booking", nil, token).Code)

	claims, err := s.jwtService.ValidateSessionToken(token)
	require.NoError(t, err)
	var draft map[string]interface{}
	assert.ErrorIs(t, s.store.Get(context.Background(), claims.SessionID, session.KeyDraft, &draft), session.ErrNotFound)
}
