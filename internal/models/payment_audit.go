package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEventType represents the type of payment event
type PaymentEventType string

const (
	PaymentEventSuccess   PaymentEventType = "payment_success"
	PaymentEventFailed    PaymentEventType = "payment_failed"
	PaymentEventCancelled PaymentEventType = "payment_cancelled"
)

// PaymentAudit represents an immutable audit log entry for a payment attempt
type PaymentAudit struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	SessionID      uuid.UUID        `json:"session_id" db:"session_id"`
	EventType      PaymentEventType `json:"event_type" db:"event_type"`
	Method         PaymentMethod    `json:"method" db:"method"`
	Amount         float64          `json:"amount" db:"amount"`
	Currency       string           `json:"currency" db:"currency"`
	PaymentID      *string          `json:"payment_id,omitempty" db:"payment_id"`
	ConfirmationID *string          `json:"confirmation_id,omitempty" db:"confirmation_id"`
	ErrorMessage   *string          `json:"error_message,omitempty" db:"error_message"`
	ProcessingMs   int64            `json:"processing_ms" db:"processing_ms"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
}
