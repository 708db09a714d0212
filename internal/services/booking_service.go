package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/catalog"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/railyatra/booking-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// SeatToggle is the outcome of toggling a seat
type SeatToggle string

const (
	SeatToggleSelected     SeatToggle = "selected"
	SeatToggleDeselected   SeatToggle = "deselected"
	SeatToggleLimitReached SeatToggle = "limit_reached" // selection unchanged
)

// BookingService handles train, class and seat selection for a session
type BookingService struct {
	catalog *catalog.Catalog
	store   session.Store
	locks   *SessionLocks
	logger  *logrus.Logger
}

// NewBookingService creates a new booking service. locks must be the
// instance the checkout service uses.
func NewBookingService(cat *catalog.Catalog, store session.Store, locks *SessionLocks, logger *logrus.Logger) *BookingService {
	return &BookingService{
		catalog: cat,
		store:   store,
		locks:   locks,
		logger:  logger,
	}
}

// GetTrain returns a train of the catalog
func (s *BookingService) GetTrain(trainID string) (*models.Train, error) {
	train, ok := s.catalog.TrainByID(trainID)
	if !ok {
		return nil, models.ErrTrainNotFound
	}
	return train, nil
}

// SeatMap returns the generated seats of a train for a class, optionally only one coach
func (s *BookingService) SeatMap(trainID, class, coach string) (*models.SeatMapResponse, error) {
	fareClass, err := models.ParseFareClass(class)
	if err != nil {
		return nil, err
	}

	train, err := s.GetTrain(trainID)
	if err != nil {
		return nil, err
	}

	return buildSeatMap(train, fareClass, coach, nil)
}

// SessionSeatMap returns the seat map of the session's draft with its selection marked
func (s *BookingService) SessionSeatMap(ctx context.Context, sessionID uuid.UUID, coach string) (*models.SeatMapResponse, error) {
	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildSeatMap(draft.Train, draft.Class, coach, draft)
}

func buildSeatMap(train *models.Train, class models.FareClass, coach string, draft *models.BookingDraft) (*models.SeatMapResponse, error) {
	seats := catalog.GenerateSeats(class, train)
	coaches := catalog.CoachLabels(seats)

	if coach != "" {
		seats = catalog.SeatsInCoach(seats, coach)
		if len(seats) == 0 {
			return nil, models.ErrInvalidInput(fmt.Sprintf("coach %s does not exist in %s", coach, class.Label()))
		}
	}

	if draft != nil {
		for i := range seats {
			if draft.HasSeat(seats[i].ID) {
				seats[i].Status = models.SeatSelected
			}
		}
	}

	return &models.SeatMapResponse{
		TrainID:    train.ID,
		Class:      class,
		ClassLabel: class.Label(),
		Coaches:    coaches,
		TotalSeats: train.Availability.For(class),
		Seats:      seats,
	}, nil
}

// StartBooking creates (or replaces) the session's draft for a train
func (s *BookingService) StartBooking(ctx context.Context, sessionID uuid.UUID, req *models.StartBookingRequest) (*models.BookingDraft, error) {
	class, err := models.ParseFareClass(req.Class)
	if err != nil {
		return nil, err
	}

	passengers := req.Passengers
	if passengers == 0 {
		passengers = 1
	}
	if err := validatePassengerCount(passengers); err != nil {
		return nil, err
	}

	train, err := s.GetTrain(strings.TrimSpace(req.TrainID))
	if err != nil {
		return nil, err
	}

	draft := &models.BookingDraft{
		Train:      train,
		Passengers: passengers,
		Class:      class,
		Seats:      []models.Seat{},
	}

	if req.Date != "" {
		date, err := models.ParseTravelDate(req.Date)
		if err != nil {
			return nil, err
		}
		draft.Date = &date
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	if err := s.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"train_id":   train.ID,
		"class":      class,
		"passengers": passengers,
	}).Info("Booking started")

	return draft, nil
}

// GetDraft returns the session's draft
func (s *BookingService) GetDraft(ctx context.Context, sessionID uuid.UUID) (*models.BookingDraft, error) {
	var draft models.BookingDraft
	if err := s.store.Get(ctx, sessionID, session.KeyDraft, &draft); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, models.ErrNoBookingDraft
		}
		return nil, fmt.Errorf("failed to load booking draft: %w", err)
	}
	if draft.Seats == nil {
		draft.Seats = []models.Seat{}
	}
	return &draft, nil
}

// ChangeClass switches the fare class. The selection is cleared.
func (s *BookingService) ChangeClass(ctx context.Context, sessionID uuid.UUID, class string) (*models.BookingDraft, error) {
	fareClass, err := models.ParseFareClass(class)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Class = fareClass
	draft.Seats = []models.Seat{}

	if err := s.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ChangePassengers changes the passenger count. A lower count drops the
// most recently selected seats so the selection never exceeds it.
func (s *BookingService) ChangePassengers(ctx context.Context, sessionID uuid.UUID, passengers int) (*models.BookingDraft, error) {
	if err := validatePassengerCount(passengers); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	draft.Passengers = passengers
	if len(draft.Seats) > passengers {
		draft.Seats = draft.Seats[:passengers]
	}

	if err := s.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ToggleSeat selects or deselects a seat. Selecting beyond the passenger
// count leaves the selection unchanged and reports SeatToggleLimitReached.
func (s *BookingService) ToggleSeat(ctx context.Context, sessionID uuid.UUID, seatID string) (*models.BookingDraft, SeatToggle, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	seat, ok := catalog.FindSeat(catalog.GenerateSeats(draft.Class, draft.Train), seatID)
	if !ok {
		return nil, "", models.ErrSeatNotFound
	}

	var outcome SeatToggle
	switch {
	case draft.HasSeat(seatID):
		remaining := make([]models.Seat, 0, len(draft.Seats))
		for _, selected := range draft.Seats {
			if selected.ID != seatID {
				remaining = append(remaining, selected)
			}
		}
		draft.Seats = remaining
		outcome = SeatToggleDeselected
	case len(draft.Seats) < draft.Passengers:
		seat.Status = models.SeatSelected
		draft.Seats = append(draft.Seats, seat)
		outcome = SeatToggleSelected
	default:
		return draft, SeatToggleLimitReached, nil
	}

	if err := s.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, "", err
	}
	return draft, outcome, nil
}

// ContinueToCheckout freezes the draft as the session's booking details.
// Exactly one seat per passenger must be selected.
func (s *BookingService) ContinueToCheckout(ctx context.Context, sessionID uuid.UUID) (*models.BookingDraft, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	draft, err := s.GetDraft(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !draft.SeatsComplete() {
		return nil, models.ErrInvalidInput(fmt.Sprintf("Please select %d seats to continue.", draft.Passengers))
	}

	reprice(draft)
	if err := s.store.Set(ctx, sessionID, session.KeyBooking, draft); err != nil {
		return nil, fmt.Errorf("failed to store booking details: %w", err)
	}
	// A new booking restarts checkout
	if err := s.store.Delete(ctx, sessionID, session.KeyCheckout); err != nil {
		return nil, fmt.Errorf("failed to reset checkout: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"train_id":   draft.Train.ID,
		"seats":      len(draft.Seats),
		"total":      draft.TotalPrice,
	}).Info("Booking ready for checkout")

	return draft, nil
}

func (s *BookingService) saveDraft(ctx context.Context, sessionID uuid.UUID, draft *models.BookingDraft) error {
	reprice(draft)
	if err := s.store.Set(ctx, sessionID, session.KeyDraft, draft); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

// reprice recomputes the total from the current class, fare and passenger count
func reprice(draft *models.BookingDraft) {
	fare := utils.ComputeFare(draft.Train.Price.For(draft.Class), draft.Passengers)
	draft.Pricing = models.PriceBreakdown{
		BaseFare:   fare.BaseFare,
		ServiceFee: fare.ServiceFee,
		Taxes:      fare.Taxes,
		Total:      fare.Total,
		Currency:   utils.Currency,
	}
	draft.TotalPrice = fare.Total
}

func validatePassengerCount(passengers int) error {
	if passengers < 1 || passengers > models.MaxPassengers {
		return models.ErrInvalidInput(fmt.Sprintf("passengers must be between 1 and %d", models.MaxPassengers))
	}
	return nil
}
