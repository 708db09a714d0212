package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every error response
type ErrorResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// respondError maps domain errors to HTTP responses
func respondError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var validationErr *models.ValidationError
	var rateLimitErr *services.RateLimitError

	switch {
	case errors.As(err, &rateLimitErr):
		retryAfter := int(time.Until(rateLimitErr.RetryAfter).Seconds()) + 1
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Status: "error", Message: rateLimitErr.Message, Code: "RATE_LIMITED"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Status: "error", Message: validationErr.Message, Code: "VALIDATION_ERROR"})
	case errors.Is(err, models.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Status: "error", Message: "Train not found", Code: "TRAIN_NOT_FOUND"})
	case errors.Is(err, models.ErrSeatNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Status: "error", Message: "Seat not found", Code: "SEAT_NOT_FOUND"})
	case errors.Is(err, models.ErrNoBookingDraft):
		c.JSON(http.StatusConflict, ErrorResponse{
			Status:   "error",
			Message:  "No booking in progress. Please search for a train first.",
			Code:     "NO_BOOKING",
			Redirect: "/search",
		})
	case errors.Is(err, models.ErrNoCheckout):
		c.JSON(http.StatusConflict, ErrorResponse{Status: "error", Message: "Checkout has not started", Code: "NO_CHECKOUT"})
	case errors.Is(err, models.ErrNoConfirmation):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Status:   "error",
			Message:  "No confirmed booking found",
			Code:     "NO_CONFIRMATION",
			Redirect: "/",
		})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, ErrorResponse{Status: "error", Message: err.Error(), Code: "INVALID_TRANSITION"})
	default:
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error(fallback)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Status: "error", Message: fallback})
	}
}

// badRequest responds to a body that could not be bound
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request format",
		"error":   err.Error(),
	})
}

// queryLimit reads a positive "limit" query parameter
func queryLimit(c *gin.Context, defaultLimit int) int {
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultLimit
}
