package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// SearchLogStore persists search analytics
type SearchLogStore interface {
	LogSearch(log *models.SearchLog) error
	GetPopularRoutes(limit int) ([]models.PopularRoute, error)
}

// SearchClient describes who issued a search, for analytics
type SearchClient struct {
	SessionID *uuid.UUID
	IPAddress string
	UserAgent string
}

// popularRoutesTTL bounds how stale the aggregated popular routes may be
const popularRoutesTTL = 5 * time.Minute

// SearchService handles business logic for train search
type SearchService struct {
	catalog *catalog.Catalog
	logs    SearchLogStore // nil disables analytics
	popular gcache.Cache   // popular routes per limit
	logger  *logrus.Logger
	pending sync.WaitGroup
}

// NewSearchService creates a new search service
func NewSearchService(cat *catalog.Catalog, logs SearchLogStore, logger *logrus.Logger) *SearchService {
	return &SearchService{
		catalog: cat,
		logs:    logs,
		popular: gcache.New(16).LRU().Expiration(popularRoutesTTL).Build(),
		logger:  logger,
	}
}

// SearchTrains finds trains between two stations and applies the result filters
func (s *SearchService) SearchTrains(req *models.SearchRequest, client SearchClient) (*models.SearchResponse, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"from":       req.From,
		"to":         req.To,
		"passengers": req.Passengers,
		"class":      req.Class,
	}).Info("Processing search request")

	date := req.TravelDate()
	matched := s.catalog.SearchTrains(req.From, req.To, date)

	filtered := make([]models.TrainResult, 0, len(matched))
	for _, train := range matched {
		result := buildTrainResult(train, req.Class, req.Passengers)

		price := result.SelectedClass.Price
		if price < req.MinPrice || price > req.MaxPrice {
			continue
		}
		if !req.AllowsSlot(result.DepartureSlot) {
			continue
		}
		filtered = append(filtered, result)
	}

	response := &models.SearchResponse{
		Status: "success",
		SearchDetails: models.SearchDetails{
			FromInput:  req.From,
			ToInput:    req.To,
			Date:       date.Format("2006-01-02"),
			Passengers: req.Passengers,
			Class:      req.Class,
			Matched:    len(matched),
		},
		Total:    len(filtered),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	response.TotalPages = (response.Total + req.PageSize - 1) / req.PageSize
	response.Results = paginate(filtered, req.Page, req.PageSize)

	switch {
	case len(matched) == 0:
		response.Message = fmt.Sprintf("No trains found from %s to %s. Try a different route.", req.From, req.To)
	case len(filtered) == 0:
		response.Message = "No trains match your filters. Try widening the price range or time of day."
	default:
		response.Message = fmt.Sprintf("Found %d train(s) from %s to %s", len(filtered), req.From, req.To)
	}

	responseTime := time.Since(startTime)
	response.SearchTimeMs = responseTime.Milliseconds()

	s.logSearch(req, response, client, responseTime)

	s.logger.WithFields(logrus.Fields{
		"from":        req.From,
		"to":          req.To,
		"matched":     len(matched),
		"results":     len(filtered),
		"response_ms": response.SearchTimeMs,
	}).Info("Search completed successfully")

	return response, nil
}

func buildTrainResult(train models.Train, class models.FareClass, passengers int) models.TrainResult {
	result := models.TrainResult{
		Train:         train,
		Classes:       make([]models.ClassOption, 0, len(models.FareClasses)),
		DepartureSlot: models.SlotForHour(departureHour(train.DepartureTime)),
	}

	for _, c := range models.FareClasses {
		option := models.ClassOption{
			Class:     c,
			Label:     c.Label(),
			Price:     train.Price.For(c),
			Available: train.Availability.For(c),
		}
		result.Classes = append(result.Classes, option)
		if c == class {
			result.SelectedClass = option
		}
	}

	result.EstimatedTotal = utils.ComputeFare(result.SelectedClass.Price, passengers).Total
	return result
}

// departureHour reads the hour of an "HH:MM" time, 0 when malformed
func departureHour(departure string) int {
	hourPart, _, _ := strings.Cut(departure, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	return hour
}

func paginate(results []models.TrainResult, page, pageSize int) []models.TrainResult {
	start := (page - 1) * pageSize
	if start >= len(results) {
		return []models.TrainResult{}
	}
	end := start + pageSize
	if end > len(results) {
		end = len(results)
	}
	return results[start:end]
}

// GetStationSuggestions returns autocomplete suggestions, capped at limit
func (s *SearchService) GetStationSuggestions(query string, limit int) []models.Station {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	stations := s.catalog.FindStations(strings.TrimSpace(query))
	if len(stations) > limit {
		stations = stations[:limit]
	}
	return stations
}

// GetPopularRoutes returns popular routes for quick selection
func (s *SearchService) GetPopularRoutes(limit int) ([]models.PopularRoute, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	if s.logs == nil {
		return catalog.DefaultPopularRoutes(limit), nil
	}

	if cached, err := s.popular.Get(limit); err == nil {
		if routes, ok := cached.([]models.PopularRoute); ok {
			return append([]models.PopularRoute(nil), routes...), nil
		}
	}

	routes, err := s.logs.GetPopularRoutes(limit)
	if err != nil {
		s.logger.WithError(err).Error("Error getting popular routes")
		return nil, fmt.Errorf("error retrieving popular routes: %w", err)
	}

	// No analytics yet, fall back to the bundled list
	if len(routes) == 0 {
		routes = catalog.DefaultPopularRoutes(limit)
	}

	if err := s.popular.Set(limit, routes); err != nil {
		s.logger.WithError(err).Warn("Failed to cache popular routes")
	}

	return append([]models.PopularRoute(nil), routes...), nil
}

// Wait blocks until pending analytics writes have finished
func (s *SearchService) Wait() {
	s.pending.Wait()
}

// logSearch logs the search request for analytics
func (s *SearchService) logSearch(
	req *models.SearchRequest,
	response *models.SearchResponse,
	client SearchClient,
	responseTime time.Duration,
) {
	if s.logs == nil {
		return
	}

	device := utils.ParseUserAgent(client.UserAgent)
	if device.IsBot {
		return
	}

	log := &models.SearchLog{
		ID:             uuid.New(),
		FromInput:      req.From,
		ToInput:        req.To,
		Passengers:     req.Passengers,
		ResultsCount:   response.Total,
		ResponseTimeMs: responseTime.Milliseconds(),
		SessionID:      client.SessionID,
		DeviceType:     &device.DeviceType,
		CreatedAt:      time.Now(),
	}
	if client.IPAddress != "" {
		log.IPAddress = &client.IPAddress
	}

	// Store station ids when the inputs resolve
	if station, ok := s.catalog.StationByRef(req.From); ok {
		log.FromStationID = &station.ID
	}
	if station, ok := s.catalog.StationByRef(req.To); ok {
		log.ToStationID = &station.ID
	}

	// Log asynchronously to not block response
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.logs.LogSearch(log); err != nil {
			s.logger.WithError(err).Warn("Failed to log search")
		}
	}()
}
