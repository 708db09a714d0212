package database

import (
	"fmt"

	"github.com/railyatra/booking-backend/internal/models"
)

// searchLogsSchema creates the analytics table when it does not exist yet
const searchLogsSchema = `
	CREATE TABLE IF NOT EXISTS search_logs (
		id               UUID PRIMARY KEY,
		from_input       TEXT NOT NULL,
		to_input         TEXT NOT NULL,
		from_station_id  TEXT,
		to_station_id    TEXT,
		passengers       INT NOT NULL DEFAULT 1,
		results_count    INT NOT NULL DEFAULT 0,
		response_time_ms BIGINT NOT NULL DEFAULT 0,
		session_id       UUID,
		ip_address       TEXT,
		device_type      TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// SearchLogRepository stores train searches for analytics
type SearchLogRepository struct {
	db DB
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// EnsureSchema creates the search_logs table if needed
func (r *SearchLogRepository) EnsureSchema() error {
	if _, err := r.db.Exec(searchLogsSchema); err != nil {
		return fmt.Errorf("error creating search_logs table: %w", err)
	}
	return nil
}

// LogSearch records a search query for analytics
func (r *SearchLogRepository) LogSearch(log *models.SearchLog) error {
	query := `
		INSERT INTO search_logs (
			id,
			from_input,
			to_input,
			from_station_id,
			to_station_id,
			passengers,
			results_count,
			response_time_ms,
			session_id,
			ip_address,
			device_type,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(
		query,
		log.ID,
		log.FromInput,
		log.ToInput,
		log.FromStationID,
		log.ToStationID,
		log.Passengers,
		log.ResultsCount,
		log.ResponseTimeMs,
		log.SessionID,
		log.IPAddress,
		log.DeviceType,
		log.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("error logging search: %w", err)
	}

	return nil
}

// GetPopularRoutes returns the most searched resolved routes of the last 30 days
func (r *SearchLogRepository) GetPopularRoutes(limit int) ([]models.PopularRoute, error) {
	query := `
		SELECT
			from_input as from_station,
			to_input as to_station,
			COUNT(*) as search_count
		FROM search_logs
		WHERE from_station_id IS NOT NULL
		  AND to_station_id IS NOT NULL
		  AND results_count > 0
		  AND created_at > NOW() - INTERVAL '30 days'
		GROUP BY from_input, to_input
		ORDER BY search_count DESC
		LIMIT $1
	`

	var routes []models.PopularRoute
	err := r.db.Select(&routes, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error getting popular routes: %w", err)
	}

	return routes, nil
}
