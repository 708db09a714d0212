package catalog

import (
	"strings"
	"time"

	"github.com/railyatra/booking-backend/internal/models"
)

// FindStations returns stations whose name, code or city contains the query,
// ignoring case. An empty query matches nothing. Results keep catalog order.
func (c *Catalog) FindStations(query string) []models.Station {
	result := []models.Station{}
	if query == "" {
		return result
	}

	q := strings.ToLower(query)
	for _, station := range c.Stations {
		if strings.Contains(strings.ToLower(station.Name), q) ||
			strings.Contains(strings.ToLower(station.Code), q) ||
			strings.Contains(strings.ToLower(station.City), q) {
			result = append(result, station)
		}
	}
	return result
}

// SearchTrains returns trains running from -> to. Each side matches a station
// by exact id, exact code, or a substring of its name. The schedule has no
// calendar dimension, so date does not filter anything.
func (c *Catalog) SearchTrains(from, to string, date time.Time) []models.Train {
	_ = date

	result := []models.Train{}
	for _, train := range c.Trains {
		if stationMatches(train.From, from) && stationMatches(train.To, to) {
			result = append(result, train)
		}
	}
	return result
}

func stationMatches(station models.Station, ref string) bool {
	return station.ID == ref || station.Code == ref || strings.Contains(station.Name, ref)
}

// TrainByID looks up a train
func (c *Catalog) TrainByID(id string) (*models.Train, bool) {
	for i := range c.Trains {
		if c.Trains[i].ID == id {
			train := c.Trains[i]
			return &train, true
		}
	}
	return nil, false
}

// StationByRef resolves a station the same way SearchTrains does
func (c *Catalog) StationByRef(ref string) (*models.Station, bool) {
	for i := range c.Stations {
		if stationMatches(c.Stations[i], ref) {
			station := c.Stations[i]
			return &station, true
		}
	}
	return nil, false
}

// ListDestinations returns marketing destinations, optionally only the popular ones
func (c *Catalog) ListDestinations(popularOnly bool) []models.Destination {
	result := []models.Destination{}
	for _, d := range c.Destinations {
		if popularOnly && !d.Popular {
			continue
		}
		result = append(result, d)
	}
	return result
}

// DefaultPopularRoutes returns the bundled popular routes, capped at limit
func DefaultPopularRoutes(limit int) []models.PopularRoute {
	if limit <= 0 || limit > len(defaultPopularRoutes) {
		limit = len(defaultPopularRoutes)
	}
	routes := make([]models.PopularRoute, limit)
	copy(routes, defaultPopularRoutes[:limit])
	return routes
}
