package validator

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrMissingCardDetails indicates one of the card fields is blank
	ErrMissingCardDetails = errors.New("Please fill in all card details")

	// ErrInvalidCardNumber indicates the card number is not 16 digits
	ErrInvalidCardNumber = errors.New("Card number must be 16 digits")

	// ErrInvalidUPIID indicates the UPI id has no handle
	ErrInvalidUPIID = errors.New("Please enter a valid UPI ID (e.g. name@upi)")
)

// CardNumberLength is the only accepted card number length
const CardNumberLength = 16

var digitsRegex = regexp.MustCompile(`^\d+$`)

// Card holds the card form fields
type Card struct {
	Number string
	Name   string
	Expiry string
	CVV    string
}

// PaymentValidator checks payment form fields. It only checks shape;
// nothing is charged and nothing is verified against an issuer.
type PaymentValidator struct{}

// NewPaymentValidator creates a new payment validator instance
func NewPaymentValidator() *PaymentValidator {
	return &PaymentValidator{}
}

// ValidateCard checks that every card field is filled in and the number has
// 16 digits once spaces and dashes are removed. Returns the sanitized number.
func (v *PaymentValidator) ValidateCard(card Card) (string, error) {
	if strings.TrimSpace(card.Number) == "" ||
		strings.TrimSpace(card.Name) == "" ||
		strings.TrimSpace(card.Expiry) == "" ||
		strings.TrimSpace(card.CVV) == "" {
		return "", ErrMissingCardDetails
	}

	sanitized := v.SanitizeCardNumber(card.Number)
	if len(sanitized) != CardNumberLength || !digitsRegex.MatchString(sanitized) {
		return "", ErrInvalidCardNumber
	}

	return sanitized, nil
}

// SanitizeCardNumber removes spaces and dashes from a card number
func (v *PaymentValidator) SanitizeCardNumber(number string) string {
	number = strings.ReplaceAll(number, " ", "")
	number = strings.ReplaceAll(number, "-", "")
	return number
}

// ValidateUPI checks that a UPI id has the name@handle shape
func (v *PaymentValidator) ValidateUPI(upiID string) (string, error) {
	trimmed := strings.TrimSpace(upiID)
	if !strings.Contains(trimmed, "@") {
		return "", ErrInvalidUPIID
	}
	return trimmed, nil
}

// Last4 returns the last four digits of a sanitized card number
func (v *PaymentValidator) Last4(sanitized string) string {
	if len(sanitized) < 4 {
		return sanitized
	}
	return sanitized[len(sanitized)-4:]
}
