// Package events publishes booking domain events to a message broker.
package events

import (
	"context"
	"time"

	"github.com/railyatra/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// EventBookingConfirmed is the type header of a confirmed booking event
const EventBookingConfirmed = "booking.confirmed"

// BookingConfirmed is published once a payment succeeds
type BookingConfirmed struct {
	ConfirmationID string               `json:"confirmation_id"`
	TrainID        string               `json:"train_id"`
	TrainNumber    string               `json:"train_number"`
	TrainName      string               `json:"train_name"`
	From           string               `json:"from"`
	To             string               `json:"to"`
	TravelDate     *time.Time           `json:"travel_date,omitempty"`
	Class          models.FareClass     `json:"class"`
	Passengers     int                  `json:"passengers"`
	Seats          []string             `json:"seats"`
	Amount         float64              `json:"amount"`
	Currency       string               `json:"currency"`
	PaymentID      string               `json:"payment_id"`
	PaymentMethod  models.PaymentMethod `json:"payment_method"`
	ContactEmail   string               `json:"contact_email"`
	BookedAt       time.Time            `json:"booked_at"`
}

// NewBookingConfirmed builds the event from a confirmation record
func NewBookingConfirmed(record *models.ConfirmationRecord) BookingConfirmed {
	event := BookingConfirmed{
		ConfirmationID: record.ConfirmationID,
		TravelDate:     record.Booking.Date,
		Class:          record.Booking.Class,
		Passengers:     record.Booking.Passengers,
		Seats:          make([]string, 0, len(record.Booking.Seats)),
		Amount:         record.Booking.TotalPrice,
		Currency:       record.Booking.Pricing.Currency,
		PaymentID:      record.PaymentInfo.ID,
		PaymentMethod:  record.PaymentInfo.Method,
		ContactEmail:   record.ContactEmail,
		BookedAt:       record.BookingDate,
	}

	if train := record.Booking.Train; train != nil {
		event.TrainID = train.ID
		event.TrainNumber = train.Number
		event.TrainName = train.Name
		event.From = train.From.Code
		event.To = train.To.Code
	}

	for _, seat := range record.Booking.Seats {
		event.Seats = append(event.Seats, seat.ID)
	}

	return event
}

// Publisher publishes booking events
type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error
	Close() error
}

// NoopPublisher only logs events. Used when no broker is configured.
type NoopPublisher struct {
	logger *logrus.Logger
}

// NewNoopPublisher creates a publisher that drops events
func NewNoopPublisher(logger *logrus.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

// PublishBookingConfirmed logs the event at debug level
func (p *NoopPublisher) PublishBookingConfirmed(ctx context.Context, event BookingConfirmed) error {
	p.logger.WithFields(logrus.Fields{
		"event":           EventBookingConfirmed,
		"confirmation_id": event.ConfirmationID,
	}).Debug("No broker configured, event dropped")
	return nil
}

// Close is a no-op
func (p *NoopPublisher) Close() error {
	return nil
}
