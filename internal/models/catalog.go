package models

// FareClass represents a travel class on a train
type FareClass string

const (
	ClassEconomy    FareClass = "economy"
	ClassBusiness   FareClass = "business"
	ClassFirstClass FareClass = "firstClass"
)

// FareClasses lists all classes in display order
var FareClasses = []FareClass{ClassEconomy, ClassBusiness, ClassFirstClass}

// Label returns the display label for the class, or "" for an unknown class
func (c FareClass) Label() string {
	switch c {
	case ClassEconomy:
		return "Economy"
	case ClassBusiness:
		return "Business"
	case ClassFirstClass:
		return "First Class"
	default:
		return ""
	}
}

// IsValid checks if the class is one of the known fare classes
func (c FareClass) IsValid() bool {
	return c.Label() != ""
}

// ParseFareClass parses a class from user input, falling back to economy when empty
func ParseFareClass(s string) (FareClass, error) {
	if s == "" {
		return ClassEconomy, nil
	}
	class := FareClass(s)
	if !class.IsValid() {
		return "", ErrInvalidInput("invalid class: must be economy, business or firstClass")
	}
	return class, nil
}

// Station represents a railway station
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
	City string `json:"city"`
}

// ClassFares holds the per-passenger fare for each class (INR)
type ClassFares struct {
	Economy    float64 `json:"economy"`
	Business   float64 `json:"business"`
	FirstClass float64 `json:"firstClass"`
}

// For returns the fare of the given class
func (f ClassFares) For(class FareClass) float64 {
	switch class {
	case ClassBusiness:
		return f.Business
	case ClassFirstClass:
		return f.FirstClass
	default:
		return f.Economy
	}
}

// ClassSeats holds the number of open seats for each class
type ClassSeats struct {
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"firstClass"`
}

// For returns the availability of the given class
func (s ClassSeats) For(class FareClass) int {
	switch class {
	case ClassBusiness:
		return s.Business
	case ClassFirstClass:
		return s.FirstClass
	default:
		return s.Economy
	}
}

// Train represents a scheduled train service. Times and duration are display strings.
type Train struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Number        string     `json:"number"`
	From          Station    `json:"from"`
	To            Station    `json:"to"`
	DepartureTime string     `json:"departureTime"` // "17:00"
	ArrivalTime   string     `json:"arrivalTime"`   // "08:32"
	Duration      string     `json:"duration"`      // "15h 32m"
	Price         ClassFares `json:"price"`
	Availability  ClassSeats `json:"availability"`
}

// Destination represents a marketing destination shown on the home page
type Destination struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Popular     bool   `json:"popular"`
}

// FareClassInfo is the public view of a class for pickers
type FareClassInfo struct {
	Class FareClass `json:"class"`
	Label string    `json:"label"`
}
