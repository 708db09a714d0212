package models

import "errors"

var (
	// ErrTrainNotFound is returned when a train id does not exist in the catalog
	ErrTrainNotFound = errors.New("train not found")

	// ErrSeatNotFound is returned when a seat id is not part of the generated seat map
	ErrSeatNotFound = errors.New("seat not found")

	// ErrNoBookingDraft is returned when the session holds no booking to check out
	ErrNoBookingDraft = errors.New("no booking in session")

	// ErrNoCheckout is returned when a checkout step is called before checkout began
	ErrNoCheckout = errors.New("checkout not started")

	// ErrNoConfirmation is returned when the session holds no confirmation record
	ErrNoConfirmation = errors.New("no confirmation in session")

	// ErrInvalidTransition is returned when a checkout step is not allowed from the current step
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &ValidationError{Message: message}
}

// ValidationError represents a user-facing validation error
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
