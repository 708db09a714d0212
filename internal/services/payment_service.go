package services

import (
	"context"
	"time"

	"github.com/railyatra/booking-backend/internal/models"
	"github.com/railyatra/booking-backend/pkg/idgen"
	"github.com/railyatra/booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// PaymentSimulator stands in for a payment gateway. It checks the form
// fields, waits a fixed processing delay and always approves.
type PaymentSimulator struct {
	validator *validator.PaymentValidator
	ids       idgen.Generator
	now       func() time.Time
	delay     time.Duration
	logger    *logrus.Logger
}

// NewPaymentSimulator creates a payment simulator
func NewPaymentSimulator(ids idgen.Generator, delay time.Duration, logger *logrus.Logger) *PaymentSimulator {
	return &PaymentSimulator{
		validator: validator.NewPaymentValidator(),
		ids:       ids,
		now:       time.Now,
		delay:     delay,
		logger:    logger,
	}
}

// Process validates the payment and returns a fabricated receipt.
// A cancelled context aborts the processing delay.
func (p *PaymentSimulator) Process(ctx context.Context, req *models.PaymentRequest) (*models.PaymentReceipt, error) {
	receipt := &models.PaymentReceipt{Method: req.Method}

	switch req.Method {
	case models.PaymentCreditCard:
		number, err := p.validator.ValidateCard(validator.Card{
			Number: req.CardNumber,
			Name:   req.CardName,
			Expiry: req.CardExpiry,
			CVV:    req.CardCVV,
		})
		if err != nil {
			return nil, models.ErrInvalidInput(err.Error())
		}
		receipt.Last4 = p.validator.Last4(number)
	case models.PaymentUPI:
		if _, err := p.validator.ValidateUPI(req.UPIID); err != nil {
			return nil, models.ErrInvalidInput(err.Error())
		}
	case models.PaymentNetBanking:
	default:
		return nil, models.ErrInvalidInput("Please select a payment method")
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			p.logger.WithField("method", req.Method).Info("Payment abandoned before completion")
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	receipt.ID = "PAY-" + p.ids.NewCode()
	receipt.Timestamp = p.now()

	p.logger.WithFields(logrus.Fields{
		"payment_id": receipt.ID,
		"method":     receipt.Method,
	}).Info("Payment approved")

	return receipt, nil
}
