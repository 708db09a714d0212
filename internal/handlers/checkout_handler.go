package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/railyatra/booking-backend/internal/ticket"
	"github.com/sirupsen/logrus"
)

// CheckoutHandler handles passenger details, payment and confirmation
type CheckoutHandler struct {
	service       *services.CheckoutService
	limiter       *services.RateLimitService
	tickets       *ticket.Renderer
	redirectAfter time.Duration
	logger        *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler. redirectAfter is the
// pause the client shows the success state before opening the confirmation.
func NewCheckoutHandler(
	service *services.CheckoutService,
	limiter *services.RateLimitService,
	tickets *ticket.Renderer,
	redirectAfter time.Duration,
	logger *logrus.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		service:       service,
		limiter:       limiter,
		tickets:       tickets,
		redirectAfter: redirectAfter,
		logger:        logger,
	}
}

// BeginCheckout handles POST /api/v1/checkout
func (h *CheckoutHandler) BeginCheckout(c *gin.Context) {
	checkout, err := h.service.Begin(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to start checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"checkout": checkout,
	})
}

// GetCheckout handles GET /api/v1/checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	checkout, err := h.service.Get(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve checkout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"checkout": checkout,
	})
}

// SubmitPassengers handles PUT /api/v1/checkout/passengers
func (h *CheckoutHandler) SubmitPassengers(c *gin.Context) {
	var req models.PassengerDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	checkout, err := h.service.SubmitPassengers(c.Request.Context(), middleware.MustGetSessionID(c), &req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to save passenger details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"message":  "Passenger details saved",
		"checkout": checkout,
	})
}

// Back handles POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	checkout, err := h.service.Back(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to go back")
		return
	}

	if checkout == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"message":  "Checkout cancelled",
			"redirect": "/booking",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"checkout": checkout,
	})
}

// Pay handles POST /api/v1/checkout/payment
func (h *CheckoutHandler) Pay(c *gin.Context) {
	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sessionID := middleware.MustGetSessionID(c)
	if err := h.limiter.AllowPayment(sessionID.String()); err != nil {
		h.logger.WithField("session_id", sessionID).Warn("Payment rate limit exceeded")
		respondError(c, h.logger, err, "Payment failed")
		return
	}

	record, err := h.service.Pay(c.Request.Context(), sessionID, &req)
	if err != nil {
		if c.Request.Context().Err() != nil {
			h.logger.WithField("path", c.Request.URL.Path).Info("Client left before payment completed")
			return
		}
		respondError(c, h.logger, err, "Payment failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "success",
		"message":           "Payment successful",
		"confirmation":      record,
		"redirect":          "/confirmation",
		"redirect_after_ms": h.redirectAfter.Milliseconds(),
	})
}

// GetPaymentHistory handles GET /api/v1/checkout/payments
func (h *CheckoutHandler) GetPaymentHistory(c *gin.Context) {
	payments, err := h.service.PaymentHistory(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve payment history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"audit_enabled": h.service.AuditEnabled(),
		"payments":      payments,
	})
}

// GetConfirmation handles GET /api/v1/confirmation
func (h *CheckoutHandler) GetConfirmation(c *gin.Context) {
	record, err := h.service.Confirmation(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve confirmation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"confirmation": record,
		"eticket_url":  "/api/v1/confirmation/eticket.pdf",
	})
}

// DownloadETicket handles GET /api/v1/confirmation/eticket.pdf
func (h *CheckoutHandler) DownloadETicket(c *gin.Context) {
	record, err := h.service.Confirmation(c.Request.Context(), middleware.MustGetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve confirmation")
		return
	}

	pdf, err := h.tickets.Render(record)
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate e-ticket")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+ticket.Filename(record)+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
