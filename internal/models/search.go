package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a departure time-of-day bucket used to filter search results
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // 05:00-11:59
	SlotAfternoon TimeSlot = "afternoon" // 12:00-16:59
	SlotEvening   TimeSlot = "evening"   // 17:00-20:59
	SlotNight     TimeSlot = "night"     // 21:00-04:59
)

// SlotForHour returns the time slot a departure hour falls into
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 5 && hour < 12:
		return SlotMorning
	case hour >= 12 && hour < 17:
		return SlotAfternoon
	case hour >= 17 && hour < 21:
		return SlotEvening
	default:
		return SlotNight
	}
}

const (
	DefaultMaxPrice = 5000
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// SearchRequest represents a passenger's search query
type SearchRequest struct {
	From       string     `json:"from" binding:"required"` // station id, code or name fragment
	To         string     `json:"to" binding:"required"`
	Date       string     `json:"date,omitempty"` // accepted, not used to filter
	Passengers int        `json:"passengers,omitempty"`
	Class      FareClass  `json:"class,omitempty"`     // class used for price filtering, default economy
	MinPrice   float64    `json:"min_price,omitempty"` // default 0
	MaxPrice   float64    `json:"max_price,omitempty"` // default 5000
	TimeSlots  []TimeSlot `json:"time_slots,omitempty"`
	Page       int        `json:"page,omitempty"`
	PageSize   int        `json:"page_size,omitempty"`

	travelDate time.Time
}

// Validate validates the search request and applies defaults
func (r *SearchRequest) Validate() error {
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)

	if r.From == "" {
		return ErrInvalidInput("from station is required")
	}
	if r.To == "" {
		return ErrInvalidInput("to station is required")
	}
	if r.From == r.To {
		return ErrInvalidInput("origin and destination cannot be the same")
	}

	if r.Passengers == 0 {
		r.Passengers = 1
	}
	if r.Passengers < 1 || r.Passengers > MaxPassengers {
		return ErrInvalidInput("passengers must be between 1 and 6")
	}

	if r.Class == "" {
		r.Class = ClassEconomy
	}
	if !r.Class.IsValid() {
		return ErrInvalidInput("invalid class: must be economy, business or firstClass")
	}

	if r.MaxPrice <= 0 {
		r.MaxPrice = DefaultMaxPrice
	}
	if r.MinPrice < 0 || r.MinPrice > r.MaxPrice {
		return ErrInvalidInput("invalid price range")
	}

	for _, slot := range r.TimeSlots {
		switch slot {
		case SlotMorning, SlotAfternoon, SlotEvening, SlotNight:
		default:
			return ErrInvalidInput("invalid time slot: " + string(slot))
		}
	}

	date, err := ParseTravelDate(r.Date)
	if err != nil {
		return err
	}
	r.travelDate = date

	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}

	return nil
}

// TravelDate returns the parsed travel date (today when none was given)
func (r *SearchRequest) TravelDate() time.Time {
	if r.travelDate.IsZero() {
		return time.Now()
	}
	return r.travelDate
}

// AllowsSlot checks if a departure slot passes the time filter
func (r *SearchRequest) AllowsSlot(slot TimeSlot) bool {
	if len(r.TimeSlots) == 0 {
		return true
	}
	for _, s := range r.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// ParseTravelDate accepts "2006-01-02" or RFC3339; empty means today
func ParseTravelDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidInput("invalid date: use YYYY-MM-DD")
}

// ClassOption is one bookable class on a search result
type ClassOption struct {
	Class     FareClass `json:"class"`
	Label     string    `json:"label"`
	Price     float64   `json:"price"`
	Available int       `json:"available"`
}

// TrainResult represents a single train in search results
type TrainResult struct {
	Train
	SelectedClass  ClassOption   `json:"selected_class"`
	Classes        []ClassOption `json:"classes"`
	DepartureSlot  TimeSlot      `json:"departure_slot"`
	EstimatedTotal float64       `json:"estimated_total"` // selected class for all passengers, fees included
}

// SearchDetails echoes how the search was interpreted
type SearchDetails struct {
	FromInput  string    `json:"from_input"`
	ToInput    string    `json:"to_input"`
	Date       string    `json:"date"`
	Passengers int       `json:"passengers"`
	Class      FareClass `json:"class"`
	Matched    int       `json:"matched"` // route matches before filters
}

// SearchResponse represents the search results returned to the client
type SearchResponse struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	SearchDetails SearchDetails `json:"search_details"`
	Results       []TrainResult `json:"results"`
	Total         int           `json:"total"` // results after filters
	Page          int           `json:"page"`
	PageSize      int           `json:"page_size"`
	TotalPages    int           `json:"total_pages"`
	SearchTimeMs  int64         `json:"search_time_ms"`
}

// PopularRoute represents a frequently searched route for quick selection
type PopularRoute struct {
	FromStation string `json:"from_station" db:"from_station"`
	ToStation   string `json:"to_station" db:"to_station"`
	SearchCount *int   `json:"search_count,omitempty" db:"search_count"`
}

// SearchLog represents a search analytics record
type SearchLog struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	FromInput      string     `json:"from_input" db:"from_input"`
	ToInput        string     `json:"to_input" db:"to_input"`
	FromStationID  *string    `json:"from_station_id,omitempty" db:"from_station_id"`
	ToStationID    *string    `json:"to_station_id,omitempty" db:"to_station_id"`
	Passengers     int        `json:"passengers" db:"passengers"`
	ResultsCount   int        `json:"results_count" db:"results_count"`
	ResponseTimeMs int64      `json:"response_time_ms" db:"response_time_ms"`
	SessionID      *uuid.UUID `json:"session_id,omitempty" db:"session_id"`
	IPAddress      *string    `json:"ip_address,omitempty" db:"ip_address"`
	DeviceType     *string    `json:"device_type,omitempty" db:"device_type"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
