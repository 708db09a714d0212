package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/railyatra/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

const paymentAuditsSchema = `
	CREATE TABLE IF NOT EXISTS payment_audits (
		id              UUID PRIMARY KEY,
		session_id      UUID NOT NULL,
		event_type      TEXT NOT NULL,
		method          TEXT NOT NULL,
		amount          NUMERIC(12, 2) NOT NULL,
		currency        TEXT NOT NULL,
		payment_id      TEXT,
		confirmation_id TEXT,
		error_message   TEXT,
		processing_ms   BIGINT NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PaymentAuditRepository handles payment audit operations
type PaymentAuditRepository struct {
	db     *sqlx.DB
	logger *logrus.Logger
}

// NewPaymentAuditRepository creates a new payment audit repository
func NewPaymentAuditRepository(db *sqlx.DB, logger *logrus.Logger) *PaymentAuditRepository {
	return &PaymentAuditRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema creates the payment_audits table if needed
func (r *PaymentAuditRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, paymentAuditsSchema); err != nil {
		return fmt.Errorf("error creating payment_audits table: %w", err)
	}
	return nil
}

// Log creates a new payment audit entry
func (r *PaymentAuditRepository) Log(ctx context.Context, audit *models.PaymentAudit) error {
	if audit == nil {
		return fmt.Errorf("audit entry cannot be nil")
	}

	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}
	if audit.CreatedAt.IsZero() {
		audit.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO payment_audits (
			id, session_id, event_type, method,
			amount, currency, payment_id, confirmation_id,
			error_message, processing_ms, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11
		)`

	_, err := r.db.ExecContext(ctx, query,
		audit.ID, audit.SessionID, audit.EventType, audit.Method,
		audit.Amount, audit.Currency, audit.PaymentID, audit.ConfirmationID,
		audit.ErrorMessage, audit.ProcessingMs, audit.CreatedAt,
	)
	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"event_type": audit.EventType,
			"session_id": audit.SessionID,
		}).Error("Failed to log payment audit")
		return fmt.Errorf("failed to log payment audit: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"audit_id":   audit.ID,
		"event_type": audit.EventType,
	}).Debug("Payment audit logged")

	return nil
}

// GetBySession retrieves all audit entries of a session, oldest first
func (r *PaymentAuditRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.PaymentAudit, error) {
	var audits []*models.PaymentAudit
	query := `
		SELECT * FROM payment_audits
		WHERE session_id = $1
		ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &audits, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audits by session: %w", err)
	}

	return audits, nil
}
