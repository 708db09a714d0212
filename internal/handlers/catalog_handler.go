package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the read-only station, train and destination data
type CatalogHandler struct {
	catalog  *catalog.Catalog
	search   *services.SearchService
	bookings *services.BookingService
	logger   *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog, search *services.SearchService, bookings *services.BookingService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:  cat,
		search:   search,
		bookings: bookings,
		logger:   logger,
	}
}

// GetStations handles GET /api/v1/stations?q=&limit=
// An empty query returns no stations.
func (h *CatalogHandler) GetStations(c *gin.Context) {
	query := c.Query("q")
	stations := h.search.GetStationSuggestions(query, queryLimit(c, 10))

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"query":    query,
		"stations": stations,
		"count":    len(stations),
	})
}

// GetDestinations handles GET /api/v1/destinations?popular=true
func (h *CatalogHandler) GetDestinations(c *gin.Context) {
	popularOnly := c.Query("popular") == "true"
	destinations := h.catalog.ListDestinations(popularOnly)

	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"destinations": destinations,
		"count":        len(destinations),
	})
}

type classInfo struct {
	Class models.FareClass `json:"class"`
	Label string           `json:"label"`
}

// GetClasses handles GET /api/v1/classes
func (h *CatalogHandler) GetClasses(c *gin.Context) {
	classes := make([]classInfo, 0, len(models.FareClasses))
	for _, class := range models.FareClasses {
		classes = append(classes, classInfo{Class: class, Label: class.Label()})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "success",
		"classes":        classes,
		"max_passengers": models.MaxPassengers,
	})
}

// GetTrain handles GET /api/v1/trains/:id
func (h *CatalogHandler) GetTrain(c *gin.Context) {
	train, err := h.bookings.GetTrain(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve train")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"train":  train,
	})
}

// GetSeatMap handles GET /api/v1/trains/:id/seats?class=&coach=
func (h *CatalogHandler) GetSeatMap(c *gin.Context) {
	seatMap, err := h.bookings.SeatMap(c.Param("id"), c.Query("class"), c.Query("coach"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve seat map")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "success",
		"seat_map": seatMap,
	})
}
