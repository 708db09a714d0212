// Package session keeps per-session booking state server side.
// Values are stored JSON encoded, so a value read back is a copy and never
// aliases what another request holds.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Session keys
const (
	KeyDraft        = "draft"               // booking draft while seats are being picked
	KeyBooking      = "bookingDetails"      // draft frozen by "continue to checkout"
	KeyCheckout     = "checkout"            // checkout state machine
	KeyConfirmation = "confirmationDetails" // confirmation record after payment
)

// ErrNotFound is returned when a key is absent or expired
var ErrNotFound = errors.New("session key not found")

// Store persists JSON values per session and key
type Store interface {
	Get(ctx context.Context, sessionID uuid.UUID, key string, dest interface{}) error
	Set(ctx context.Context, sessionID uuid.UUID, key string, value interface{}) error
	Delete(ctx context.Context, sessionID uuid.UUID, key string) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}
