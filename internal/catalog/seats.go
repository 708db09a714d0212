package catalog

import (
	"fmt"

	"github.com/railyatra/booking-backend/internal/models"
)

// CoachLayout describes how a class is split into coaches
type CoachLayout struct {
	Prefix        string
	SeatsPerCoach int
}

// LayoutFor returns the coach layout of a class
func LayoutFor(class models.FareClass) CoachLayout {
	switch class {
	case models.ClassBusiness:
		return CoachLayout{Prefix: "B", SeatsPerCoach: 20}
	case models.ClassFirstClass:
		return CoachLayout{Prefix: "F", SeatsPerCoach: 12}
	default:
		return CoachLayout{Prefix: "E", SeatsPerCoach: 40}
	}
}

// GenerateSeats synthesizes the seat map of a train for a class from its
// availability. Coaches are filled in order and the last coach takes the
// remainder. Every generated seat is available.
func GenerateSeats(class models.FareClass, train *models.Train) []models.Seat {
	availability := train.Availability.For(class)
	if availability <= 0 {
		return []models.Seat{}
	}

	price := train.Price.For(class)
	layout := LayoutFor(class)
	coachCount := (availability + layout.SeatsPerCoach - 1) / layout.SeatsPerCoach

	seats := make([]models.Seat, 0, availability)
	for coach := 1; coach <= coachCount; coach++ {
		coachLabel := fmt.Sprintf("%s%d", layout.Prefix, coach)

		seatCount := layout.SeatsPerCoach
		if coach == coachCount && availability%layout.SeatsPerCoach != 0 {
			seatCount = availability % layout.SeatsPerCoach
		}

		for n := 1; n <= seatCount; n++ {
			seats = append(seats, models.Seat{
				ID:     fmt.Sprintf("%s-%s-%d", train.ID, coachLabel, n),
				Number: fmt.Sprintf("%02d", n),
				Coach:  coachLabel,
				Class:  class,
				Status: models.SeatAvailable,
				Price:  price,
			})
		}
	}

	return seats
}

// CoachLabels returns the distinct coach labels in seat order
func CoachLabels(seats []models.Seat) []string {
	labels := []string{}
	seen := make(map[string]bool)
	for _, seat := range seats {
		if !seen[seat.Coach] {
			seen[seat.Coach] = true
			labels = append(labels, seat.Coach)
		}
	}
	return labels
}

// SeatsInCoach returns the seats of one coach
func SeatsInCoach(seats []models.Seat, coach string) []models.Seat {
	result := []models.Seat{}
	for _, seat := range seats {
		if seat.Coach == coach {
			result = append(result, seat)
		}
	}
	return result
}

// FindSeat looks up a seat by id
func FindSeat(seats []models.Seat, seatID string) (models.Seat, bool) {
	for _, seat := range seats {
		if seat.ID == seatID {
			return seat, true
		}
	}
	return models.Seat{}, false
}
