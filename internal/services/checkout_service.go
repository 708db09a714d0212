package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/railyatra/booking-backend/internal/events"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/internal/session"
	"github.com/railyatra/booking-backend/pkg/idgen"
	"github.com/sirupsen/logrus"
)

// CheckoutService drives passenger details, payment and confirmation.
// States: passenger_info -> payment -> confirmed.
type CheckoutService struct {
	store     session.Store
	payments  *PaymentSimulator
	publisher events.Publisher
	audits    PaymentAuditor // nil disables the payment audit trail
	ids       idgen.Generator
	now       func() time.Time
	logger    *logrus.Logger
	locks     *SessionLocks
}

// PaymentAuditor records payment attempts and reads them back per session
type PaymentAuditor interface {
	Log(ctx context.Context, audit *models.PaymentAudit) error
	GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.PaymentAudit, error)
}

// CheckoutOption customizes a CheckoutService
type CheckoutOption func(*CheckoutService)

// WithClock overrides the clock used for booking dates
func WithClock(now func() time.Time) CheckoutOption {
	return func(s *CheckoutService) { s.now = now }
}

// WithIDGenerator overrides the confirmation id generator
func WithIDGenerator(ids idgen.Generator) CheckoutOption {
	return func(s *CheckoutService) { s.ids = ids }
}

// WithPaymentAudit records every payment attempt
func WithPaymentAudit(audits PaymentAuditor) CheckoutOption {
	return func(s *CheckoutService) { s.audits = audits }
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	store session.Store,
	locks *SessionLocks,
	payments *PaymentSimulator,
	publisher events.Publisher,
	logger *logrus.Logger,
	opts ...CheckoutOption,
) *CheckoutService {
	s := &CheckoutService{
		store:     store,
		payments:  payments,
		publisher: publisher,
		ids:       idgen.NewRandomGenerator(),
		now:       time.Now,
		logger:    logger,
		locks:     locks,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts checkout from the session's booking details, with one blank
// passenger per selected seat. An unfinished checkout is resumed as is.
func (s *CheckoutService) Begin(ctx context.Context, sessionID uuid.UUID) (*models.Checkout, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var booking models.BookingDraft
	if err := s.store.Get(ctx, sessionID, session.KeyBooking, &booking); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, models.ErrNoBookingDraft
		}
		return nil, fmt.Errorf("failed to load booking details: %w", err)
	}

	existing, err := s.load(ctx, sessionID)
	if err == nil && existing.Step != models.StepConfirmed {
		return existing, nil
	}
	if err != nil && !errors.Is(err, models.ErrNoCheckout) {
		return nil, err
	}

	checkout := &models.Checkout{
		Step:       models.StepPassengerInfo,
		Booking:    booking,
		Passengers: make([]models.Passenger, 0, len(booking.Seats)),
	}
	for _, seat := range booking.Seats {
		checkout.Passengers = append(checkout.Passengers, models.Passenger{
			Gender: models.GenderMale,
			SeatID: seat.ID,
		})
	}

	if err := s.save(ctx, sessionID, checkout); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"seats":      len(booking.Seats),
	}).Info("Checkout started")

	return checkout, nil
}

// Get returns the session's checkout state
func (s *CheckoutService) Get(ctx context.Context, sessionID uuid.UUID) (*models.Checkout, error) {
	return s.load(ctx, sessionID)
}

// SubmitPassengers stores passenger and contact details and moves to payment.
// On a validation error nothing is stored.
func (s *CheckoutService) SubmitPassengers(ctx context.Context, sessionID uuid.UUID, req *models.PassengerDetailsRequest) (*models.Checkout, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	checkout, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if checkout.Step != models.StepPassengerInfo {
		return nil, fmt.Errorf("%w: cannot submit passengers during %s", models.ErrInvalidTransition, checkout.Step)
	}

	passengers, err := normalizePassengers(req.Passengers, checkout.Booking.Seats)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.ContactEmail)
	phone := strings.TrimSpace(req.ContactPhone)
	if email == "" || phone == "" {
		return nil, models.ErrInvalidInput("Please provide contact information")
	}

	checkout.Passengers = passengers
	checkout.ContactEmail = email
	checkout.ContactPhone = phone
	checkout.Step = models.StepPayment

	if err := s.save(ctx, sessionID, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// normalizePassengers checks every passenger and pins them to the seats in selection order
func normalizePassengers(input []models.Passenger, seats []models.Seat) ([]models.Passenger, error) {
	if len(input) != len(seats) {
		return nil, models.ErrInvalidInput("Please fill in all passenger details")
	}

	passengers := make([]models.Passenger, 0, len(input))
	for i, p := range input {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.Age <= 0 {
			return nil, models.ErrInvalidInput("Please fill in all passenger details")
		}

		switch p.Gender {
		case "":
			p.Gender = models.GenderMale
		case models.GenderMale, models.GenderFemale, models.GenderOther:
		default:
			return nil, models.ErrInvalidInput("invalid gender: must be male, female or other")
		}

		p.SeatID = seats[i].ID
		passengers = append(passengers, p)
	}
	return passengers, nil
}

// Back steps back: payment returns to passenger_info keeping the entered
// details, passenger_info leaves checkout. Returns nil once checkout is left.
func (s *CheckoutService) Back(ctx context.Context, sessionID uuid.UUID) (*models.Checkout, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	checkout, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch checkout.Step {
	case models.StepPayment:
		checkout.Step = models.StepPassengerInfo
		if err := s.save(ctx, sessionID, checkout); err != nil {
			return nil, err
		}
		return checkout, nil
	case models.StepPassengerInfo:
		if err := s.store.Delete(ctx, sessionID, session.KeyCheckout); err != nil {
			return nil, fmt.Errorf("failed to leave checkout: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: booking is already confirmed", models.ErrInvalidTransition)
	}
}

// Pay processes the simulated payment and creates the confirmation record.
// If the request is cancelled while the payment is processing, no state changes.
func (s *CheckoutService) Pay(ctx context.Context, sessionID uuid.UUID, req *models.PaymentRequest) (*models.ConfirmationRecord, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	checkout, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if checkout.Step != models.StepPayment {
		return nil, fmt.Errorf("%w: cannot pay during %s", models.ErrInvalidTransition, checkout.Step)
	}

	startTime := time.Now()
	receipt, err := s.payments.Process(ctx, req)
	if err != nil {
		s.audit(ctx, sessionID, checkout, req.Method, time.Since(startTime), nil, err)
		return nil, err
	}

	record := &models.ConfirmationRecord{
		Booking:        checkout.Booking,
		Passengers:     checkout.Passengers,
		ContactEmail:   checkout.ContactEmail,
		ContactPhone:   checkout.ContactPhone,
		ConfirmationID: s.ids.NewCode(),
		BookingDate:    s.now(),
		PaymentInfo:    *receipt,
	}

	if err := s.store.Set(ctx, sessionID, session.KeyConfirmation, record); err != nil {
		return nil, fmt.Errorf("failed to store confirmation: %w", err)
	}

	checkout.Step = models.StepConfirmed
	checkout.ConfirmationID = record.ConfirmationID
	if err := s.save(ctx, sessionID, checkout); err != nil {
		// Keep confirmation and step consistent: the step is still payment
		if delErr := s.store.Delete(context.WithoutCancel(ctx), sessionID, session.KeyConfirmation); delErr != nil {
			s.logger.WithError(delErr).WithField("session_id", sessionID).Error("Failed to roll back confirmation")
		}
		return nil, err
	}

	s.audit(ctx, sessionID, checkout, req.Method, time.Since(startTime), record, nil)

	if err := s.publisher.PublishBookingConfirmed(ctx, events.NewBookingConfirmed(record)); err != nil {
		s.logger.WithError(err).WithField("confirmation_id", record.ConfirmationID).Warn("Failed to publish booking confirmed event")
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":      sessionID,
		"confirmation_id": record.ConfirmationID,
		"payment_id":      receipt.ID,
		"amount":          record.Booking.TotalPrice,
	}).Info("Booking confirmed")

	return record, nil
}

// audit records a payment attempt. Failures to record are logged only.
func (s *CheckoutService) audit(
	ctx context.Context,
	sessionID uuid.UUID,
	checkout *models.Checkout,
	method models.PaymentMethod,
	elapsed time.Duration,
	record *models.ConfirmationRecord,
	payErr error,
) {
	if s.audits == nil {
		return
	}

	entry := &models.PaymentAudit{
		SessionID:    sessionID,
		EventType:    models.PaymentEventSuccess,
		Method:       method,
		Amount:       checkout.Booking.TotalPrice,
		Currency:     checkout.Booking.Pricing.Currency,
		ProcessingMs: elapsed.Milliseconds(),
		CreatedAt:    s.now(),
	}

	switch {
	case payErr == nil:
		entry.PaymentID = &record.PaymentInfo.ID
		entry.ConfirmationID = &record.ConfirmationID
	case errors.Is(payErr, context.Canceled) || errors.Is(payErr, context.DeadlineExceeded):
		entry.EventType = models.PaymentEventCancelled
	default:
		entry.EventType = models.PaymentEventFailed
		message := payErr.Error()
		entry.ErrorMessage = &message
	}

	// The request context may already be cancelled
	if err := s.audits.Log(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Error("Failed to record payment audit")
	}
}

// PaymentHistory returns the session's payment attempts, oldest first.
// The list is empty when the audit trail is disabled.
func (s *CheckoutService) PaymentHistory(ctx context.Context, sessionID uuid.UUID) ([]*models.PaymentAudit, error) {
	if s.audits == nil {
		return []*models.PaymentAudit{}, nil
	}

	audits, err := s.audits.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment history: %w", err)
	}
	if audits == nil {
		audits = []*models.PaymentAudit{}
	}
	return audits, nil
}

// AuditEnabled reports whether payment attempts are recorded
func (s *CheckoutService) AuditEnabled() bool {
	return s.audits != nil
}

// Confirmation returns the session's confirmation record
func (s *CheckoutService) Confirmation(ctx context.Context, sessionID uuid.UUID) (*models.ConfirmationRecord, error) {
	var record models.ConfirmationRecord
	if err := s.store.Get(ctx, sessionID, session.KeyConfirmation, &record); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, models.ErrNoConfirmation
		}
		return nil, fmt.Errorf("failed to load confirmation: %w", err)
	}
	return &record, nil
}

func (s *CheckoutService) load(ctx context.Context, sessionID uuid.UUID) (*models.Checkout, error) {
	var checkout models.Checkout
	if err := s.store.Get(ctx, sessionID, session.KeyCheckout, &checkout); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, models.ErrNoCheckout
		}
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	return &checkout, nil
}

func (s *CheckoutService) save(ctx context.Context, sessionID uuid.UUID, checkout *models.Checkout) error {
	if err := s.store.Set(ctx, sessionID, session.KeyCheckout, checkout); err != nil {
		return fmt.Errorf("failed to store checkout: %w", err)
	}
	return nil
}
