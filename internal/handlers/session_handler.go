package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/railyatra/booking-backend/internal/utils"
	"github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// SessionHandler issues and ends anonymous booking sessions
type SessionHandler struct {
	jwtService *jwt.Service
	store      session.Store
	limiter    *services.RateLimitService
	logger     *logrus.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(jwtService *jwt.Service, store session.Store, limiter *services.RateLimitService, logger *logrus.Logger) *SessionHandler {
	return &SessionHandler{
		jwtService: jwtService,
		store:      store,
		limiter:    limiter,
		logger:     logger,
	}
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	ip := utils.GetRealIP(c)
	if err := h.limiter.AllowSession(ip); err != nil {
		h.logger.WithField("ip", ip).Warn("Session rate limit exceeded")
		respondError(c, h.logger, err, "Failed to start session")
		return
	}

	sessionID := uuid.New()

	token, expiresAt, err := h.jwtService.GenerateSessionToken(sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to generate session token")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to start session",
		})
		return
	}

	device := utils.ParseUserAgent(utils.GetUserAgent(c))
	h.logger.WithFields(logrus.Fields{
		"session_id":  sessionID,
		"ip":          ip,
		"device_type": device.DeviceType,
		"browser":     device.Browser,
	}).Info("Session started")

	c.JSON(http.StatusCreated, gin.H{
		"status":     "success",
		"message":    "Session started",
		"session_id": sessionID,
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expiresAt,
		"expires_in": int64(h.jwtService.SessionExpiry().Seconds()),
	})
}

// EndSession handles DELETE /api/v1/sessions
func (h *SessionHandler) EndSession(c *gin.Context) {
	sessionID := middleware.MustGetSessionID(c)

	if err := h.store.Clear(c.Request.Context(), sessionID); err != nil {
		h.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to clear session")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to end session",
		})
		return
	}

	h.logger.WithField("session_id", sessionID).Info("Session ended")
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Session ended",
	})
}
