package models

import (
	"time"
)

// MaxPassengers is the largest party that can be booked in one go
const MaxPassengers = 6

// ============================================================================
// BOOKING DRAFT
// ============================================================================

// PriceBreakdown is the fare of a draft split into its components
type PriceBreakdown struct {
	BaseFare   float64 `json:"base_fare"`   // class fare * passengers
	ServiceFee float64 `json:"service_fee"` // 5% of base fare
	Taxes      float64 `json:"taxes"`       // 8% of base fare
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

// BookingDraft is the in-progress selection of train, class and seats for one session
type BookingDraft struct {
	Train      *Train         `json:"train"`
	Date       *time.Time     `json:"date"`
	Passengers int            `json:"passengers"`
	Class      FareClass      `json:"classType"`
	Seats      []Seat         `json:"seats"`
	TotalPrice float64        `json:"totalPrice"`
	Pricing    PriceBreakdown `json:"pricing"`
}

// HasSeat checks if the seat is part of the selection
func (d *BookingDraft) HasSeat(seatID string) bool {
	for _, seat := range d.Seats {
		if seat.ID == seatID {
			return true
		}
	}
	return false
}

// SeatsComplete checks if one seat is selected per passenger
func (d *BookingDraft) SeatsComplete() bool {
	return len(d.Seats) == d.Passengers
}

// StartBookingRequest starts (or replaces) the booking draft of a session
type StartBookingRequest struct {
	TrainID    string `json:"train_id" binding:"required"`
	Class      string `json:"class"`
	Passengers int    `json:"passengers"`
	Date       string `json:"date"` // "2006-01-02" or RFC3339
}

// ChangeClassRequest changes the fare class of the draft
type ChangeClassRequest struct {
	Class string `json:"class" binding:"required"`
}

// ChangePassengersRequest changes the passenger count of the draft
type ChangePassengersRequest struct {
	Passengers int `json:"passengers" binding:"required"`
}

// ============================================================================
// CHECKOUT
// ============================================================================

// Gender of a passenger
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Passenger holds the traveller details for one selected seat
type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender Gender `json:"gender"`
	SeatID string `json:"seatId"`
}

// CheckoutStep is a state of the checkout state machine
type CheckoutStep string

const (
	StepPassengerInfo CheckoutStep = "passenger_info"
	StepPayment       CheckoutStep = "payment"
	StepConfirmed     CheckoutStep = "confirmed"
)

// Checkout is the checkout state of a session
type Checkout struct {
	Step           CheckoutStep `json:"step"`
	Booking        BookingDraft `json:"booking"`
	Passengers     []Passenger  `json:"passengers"`
	ContactEmail   string       `json:"contactEmail"`
	ContactPhone   string       `json:"contactPhone"`
	ConfirmationID string       `json:"confirmationId,omitempty"`
}

// PassengerDetailsRequest submits passenger and contact details
type PassengerDetailsRequest struct {
	Passengers   []Passenger `json:"passengers"`
	ContactEmail string      `json:"contactEmail"`
	ContactPhone string      `json:"contactPhone"`
}

// PaymentMethod is the simulated payment instrument
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit-card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "net-banking"
)

// PaymentRequest carries the payment form fields
type PaymentRequest struct {
	Method     PaymentMethod `json:"method" binding:"required"`
	CardNumber string        `json:"cardNumber,omitempty"`
	CardName   string        `json:"cardName,omitempty"`
	CardExpiry string        `json:"cardExpiry,omitempty"`
	CardCVV    string        `json:"cardCvv,omitempty"`
	UPIID      string        `json:"upiId,omitempty"`
}

// PaymentReceipt is the fabricated receipt of a simulated payment
type PaymentReceipt struct {
	ID        string        `json:"id"` // "PAY-XXXXXXXX"
	Method    PaymentMethod `json:"method"`
	Last4     string        `json:"last4,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Describe returns the method as printed on the ticket
func (r PaymentReceipt) Describe() string {
	switch r.Method {
	case PaymentCreditCard:
		return "Card ending with " + r.Last4
	case PaymentUPI:
		return "UPI"
	default:
		return "Net Banking"
	}
}

// ============================================================================
// CONFIRMATION
// ============================================================================

// ConfirmationRecord is the read-only snapshot created once payment succeeds
type ConfirmationRecord struct {
	Booking        BookingDraft   `json:"booking"`
	Passengers     []Passenger    `json:"passengers"`
	ContactEmail   string         `json:"contactEmail"`
	ContactPhone   string         `json:"contactPhone"`
	ConfirmationID string         `json:"confirmationId"`
	BookingDate    time.Time      `json:"bookingDate"`
	PaymentInfo    PaymentReceipt `json:"paymentInfo"`
}

// PassengerForSeat returns the passenger travelling in the seat
func (r *ConfirmationRecord) PassengerForSeat(seatID string) (Passenger, bool) {
	for _, p := range r.Passengers {
		if p.SeatID == seatID {
			return p, true
		}
	}
	return Passenger{}, false
}
