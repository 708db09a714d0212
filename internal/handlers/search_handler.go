package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/middleware"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/railyatra/booking-backend/internal/utils"
	"github.com/railyatra/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// SearchHandler handles HTTP requests for train search
type SearchHandler struct {
	service    *services.SearchService
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewSearchHandler creates a new search handler.
// jwtService is optional and only used to attribute searches to a session.
func NewSearchHandler(service *services.SearchService, jwtService *jwt.Service, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		service:    service,
		jwtService: jwtService,
		logger:     logger,
	}
}

// SearchTrains handles POST /api/v1/search
func (h *SearchHandler) SearchTrains(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid search request - JSON parsing failed")
		badRequest(c, err)
		return
	}

	client := services.SearchClient{
		SessionID: h.optionalSessionID(c),
		IPAddress: utils.GetRealIP(c),
		UserAgent: utils.GetUserAgent(c),
	}

	response, err := h.service.SearchTrains(&req, client)
	if err != nil {
		respondError(c, h.logger, err, "Failed to search for trains. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, response)
}

// optionalSessionID reads the session of a bearer token when one is sent.
// Search is public, so a missing or bad token is not an error.
func (h *SearchHandler) optionalSessionID(c *gin.Context) *uuid.UUID {
	if sessionID, ok := middleware.GetSessionID(c); ok {
		return &sessionID
	}
	if h.jwtService == nil {
		return nil
	}

	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		return nil
	}
	claims, err := h.jwtService.ValidateSessionToken(token)
	if err != nil {
		return nil
	}
	return &claims.SessionID
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return "", false
	}
	return header[len(prefix):], true
}

// GetPopularRoutes handles GET /api/v1/search/popular
func (h *SearchHandler) GetPopularRoutes(c *gin.Context) {
	routes, err := h.service.GetPopularRoutes(queryLimit(c, 10))
	if err != nil {
		h.logger.WithError(err).Error("Failed to get popular routes")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve popular routes",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Popular routes retrieved successfully",
		"routes":  routes,
		"count":   len(routes),
	})
}
