package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// BookingHandler handles train, class and seat selection
type BookingHandler struct {
	service *services.BookingService
	logger  *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger,
	}
}

// StartBooking handles POST /api/v1/booking
func (h *BookingHandler) StartBooking(c *gin.Context) {
	var req models.StartBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.service.StartBooking(c.Request.Context(), middleware.MustGetSessionID(c), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to start booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Booking started",
		"booking": draft,
	})
}

// GetBooking handles GET /api/v1/booking
func (h *BookingHandler) GetBooking(c *gin.Context) {
	draft, err := h.service.GetDraft(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve booking")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"booking": draft,
	})
}

// GetSeats handles GET /api/v1/booking/seats?coach=
// Returns the seat map of the booked train and class with the selection marked.
func (h *BookingHandler) GetSeats(c *gin.Context) {
	seatMap, err := h.service.SessionSeatMap(c.Request.Context(), middleware.MustGetSessionID(c), c.Query("coach"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve seat map")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"seat_map": seatMap,
	})
}

// ChangeClass handles PUT /api/v1/booking/class
func (h *BookingHandler) ChangeClass(c *gin.Context) {
	var req models.ChangeClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.service.ChangeClass(c.Request.Context(), middleware.MustGetSessionID(c), req.Class)
	if err != nil {
		respondError(c, h.logger, err, "Failed to change class")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Class changed to " + draft.Class.Label() + ". Please select your seats again.",
		"booking": draft,
	})
}

// ChangePassengers handles PUT /api/v1/booking/passengers
func (h *BookingHandler) ChangePassengers(c *gin.Context) {
	var req models.ChangePassengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	draft, err := h.service.ChangePassengers(c.Request.Context(), middleware.MustGetSessionID(c), req.Passengers)
	if err != nil {
		respondError(c, h.logger, err, "Failed to change passengers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"booking": draft,
	})
}

// ToggleSeat handles POST /api/v1/booking/seats/:seat_id/toggle
func (h *BookingHandler) ToggleSeat(c *gin.Context) {
	draft, outcome, err := h.service.ToggleSeat(c.Request.Context(), middleware.MustGetSessionID(c), c.Param("seat_id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update seat selection")
		return
	}

	message := "Seat selection updated"
	if outcome == services.SeatToggleLimitReached {
		message = "All passengers already have a seat. Deselect a seat to choose another."
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": message,
		"outcome": outcome,
		"booking": draft,
	})
}

// Continue handles POST /api/v1/booking/continue
func (h *BookingHandler) Continue(c *gin.Context) {
	draft, err := h.service.ContinueToCheckout(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to continue to checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Seats confirmed. Continue to checkout.",
		"booking":  draft,
		"redirect": "/checkout",
	})
}
