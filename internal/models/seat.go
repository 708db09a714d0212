package models

// SeatStatus represents the display state of a seat
type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatSelected  SeatStatus = "selected"
	// SeatBooked is part of the seat vocabulary but the seat generator never
	// produces it: the catalog has no record of sold seats.
	SeatBooked SeatStatus = "booked"
)

// Seat represents one generated seat of a train in a fare class
type Seat struct {
	ID     string     `json:"id"`     // "<train>-<coach>-<n>", e.g. "1-E2-7"
	Number string     `json:"number"` // zero-padded, e.g. "07"
	Coach  string     `json:"coach"`  // e.g. "E2"
	Class  FareClass  `json:"classType"`
	Status SeatStatus `json:"status"`
	Price  float64    `json:"price"`
}

// SeatMapResponse is the seat map of a train for a class
type SeatMapResponse struct {
	TrainID    string    `json:"train_id"`
	Class      FareClass `json:"class"`
	ClassLabel string    `json:"class_label"`
	Coaches    []string  `json:"coaches"`
	TotalSeats int       `json:"total_seats"`
	Seats      []Seat    `json:"seats"` // filtered by coach when requested
}
