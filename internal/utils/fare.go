package utils

import "math"

const (
	// ServiceFeeRate is charged on the base fare of every booking
	ServiceFeeRate = 0.05
	// TaxRate is charged on the base fare of every booking
	TaxRate = 0.08
	// Currency of every fare in the catalog
	Currency = "INR"
)

// Fare is a base fare with its fee and tax components
type Fare struct {
	BaseFare   float64
	ServiceFee float64
	Taxes      float64
	Total      float64
}

// ComputeFare prices a booking: class fare * passengers plus 5% service fee
// and 8% tax. Components are rounded to paise; the total is their sum.
func ComputeFare(classFare float64, passengers int) Fare {
	if passengers < 0 {
		passengers = 0
	}
	base := RoundMoney(classFare * float64(passengers))
	fee := RoundMoney(base * ServiceFeeRate)
	taxes := RoundMoney(base * TaxRate)

	return Fare{
		BaseFare:   base,
		ServiceFee: fee,
		Taxes:      taxes,
		Total:      RoundMoney(base + fee + taxes),
	}
}

// RoundMoney rounds an amount to two decimals
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
