// Package catalog holds the bundled station, train and destination data and
// the read-only queries over it.
package catalog

import "github.com/railyatra/booking-backend/internal/models"

// Catalog is a read-only set of stations, trains and destinations.
// It is safe for concurrent use as long as callers do not mutate the slices.
type Catalog struct {
	Stations     []models.Station
	Trains       []models.Train
	Destinations []models.Destination
}

// New creates a catalog from the given data
func New(stations []models.Station, trains []models.Train, destinations []models.Destination) *Catalog {
	return &Catalog{
		Stations:     stations,
		Trains:       trains,
		Destinations: destinations,
	}
}

// Default returns the catalog bundled with the application
func Default() *Catalog {
	return New(stations, trains, destinations)
}

var stations = []models.Station{
	{ID: "1", Name: "New Delhi", Code: "NDLS", City: "New Delhi"},
	{ID: "2", Name: "Mumbai Central", Code: "MMCT", City: "Mumbai"},
	{ID: "3", Name: "Howrah Junction", Code: "HWH", City: "Kolkata"},
	{ID: "4", Name: "Chennai Central", Code: "MAS", City: "Chennai"},
	{ID: "5", Name: "KSR Bengaluru City", Code: "SBC", City: "Bengaluru"},
	{ID: "6", Name: "Secunderabad Junction", Code: "SC", City: "Hyderabad"},
	{ID: "7", Name: "Ahmedabad Junction", Code: "ADI", City: "Ahmedabad"},
	{ID: "8", Name: "Pune Junction", Code: "PUNE", City: "Pune"},
	{ID: "9", Name: "Jaipur Junction", Code: "JP", City: "Jaipur"},
	{ID: "10", Name: "Lucknow Charbagh", Code: "LKO", City: "Lucknow"},
}

var trains = []models.Train{
	{
		ID:            "1",
		Name:          "Rajdhani Express",
		Number:        "12951",
		From:          stations[1],
		To:            stations[0],
		DepartureTime: "17:00",
		ArrivalTime:   "08:32",
		Duration:      "15h 32m",
		Price:         models.ClassFares{Economy: 1290, Business: 2150, FirstClass: 3480},
		Availability:  models.ClassSeats{Economy: 52, Business: 20, FirstClass: 8},
	},
	{
		ID:            "2",
		Name:          "August Kranti Rajdhani",
		Number:        "12953",
		From:          stations[1],
		To:            stations[0],
		DepartureTime: "17:40",
		ArrivalTime:   "10:50",
		Duration:      "17h 10m",
		Price:         models.ClassFares{Economy: 1240, Business: 2060, FirstClass: 3390},
		Availability:  models.ClassSeats{Economy: 40, Business: 14, FirstClass: 12},
	},
	{
		ID:            "3",
		Name:          "Shatabdi Express",
		Number:        "12009",
		From:          stations[1],
		To:            stations[6],
		DepartureTime: "06:20",
		ArrivalTime:   "12:45",
		Duration:      "6h 25m",
		Price:         models.ClassFares{Economy: 780, Business: 1530, FirstClass: 2250},
		Availability:  models.ClassSeats{Economy: 85, Business: 26, FirstClass: 5},
	},
	{
		ID:            "4",
		Name:          "Duronto Express",
		Number:        "12259",
		From:          stations[2],
		To:            stations[0],
		DepartureTime: "12:40",
		ArrivalTime:   "06:15",
		Duration:      "17h 35m",
		Price:         models.ClassFares{Economy: 1460, Business: 2380, FirstClass: 3920},
		Availability:  models.ClassSeats{Economy: 64, Business: 30, FirstClass: 10},
	},
	{
		ID:            "5",
		Name:          "Deccan Queen",
		Number:        "12124",
		From:          stations[7],
		To:            stations[1],
		DepartureTime: "07:15",
		ArrivalTime:   "10:25",
		Duration:      "3h 10m",
		Price:         models.ClassFares{Economy: 320, Business: 760, FirstClass: 1150},
		Availability:  models.ClassSeats{Economy: 120, Business: 40, FirstClass: 24},
	},
	{
		ID:            "6",
		Name:          "Karnataka Express",
		Number:        "12627",
		From:          stations[4],
		To:            stations[0],
		DepartureTime: "19:20",
		ArrivalTime:   "09:00",
		Duration:      "37h 40m",
		Price:         models.ClassFares{Economy: 1850, Business: 2790, FirstClass: 4650},
		Availability:  models.ClassSeats{Economy: 46, Business: 18, FirstClass: 6},
	},
	{
		ID:            "7",
		Name:          "Chennai Mail",
		Number:        "12839",
		From:          stations[2],
		To:            stations[3],
		DepartureTime: "23:55",
		ArrivalTime:   "04:40",
		Duration:      "28h 45m",
		Price:         models.ClassFares{Economy: 1380, Business: 2210, FirstClass: 3560},
		Availability:  models.ClassSeats{Economy: 38, Business: 21, FirstClass: 13},
	},
	{
		ID:            "8",
		Name:          "Telangana Express",
		Number:        "12723",
		From:          stations[5],
		To:            stations[0],
		DepartureTime: "06:00",
		ArrivalTime:   "07:35",
		Duration:      "25h 35m",
		Price:         models.ClassFares{Economy: 1530, Business: 2420, FirstClass: 3990},
		Availability:  models.ClassSeats{Economy: 72, Business: 16, FirstClass: 4},
	},
	{
		ID:            "9",
		Name:          "Ajmer Shatabdi",
		Number:        "12015",
		From:          stations[0],
		To:            stations[8],
		DepartureTime: "06:10",
		ArrivalTime:   "10:35",
		Duration:      "4h 25m",
		Price:         models.ClassFares{Economy: 665, Business: 1290, FirstClass: 1870},
		Availability:  models.ClassSeats{Economy: 78, Business: 22, FirstClass: 9},
	},
	{
		ID:            "10",
		Name:          "Lucknow Mail",
		Number:        "12229",
		From:          stations[9],
		To:            stations[0],
		DepartureTime: "22:00",
		ArrivalTime:   "07:05",
		Duration:      "9h 05m",
		Price:         models.ClassFares{Economy: 540, Business: 1390, FirstClass: 2330},
		Availability:  models.ClassSeats{Economy: 33, Business: 20, FirstClass: 7},
	},
}

var destinations = []models.Destination{
	{
		ID:          "1",
		Name:        "New Delhi",
		Image:       "https://images.unsplash.com/photo-1587474260584-136574528ed5?q=80&w=1000&auto=format&fit=crop",
		Description: "Walk from Mughal monuments to colonial boulevards in the nation's capital.",
		Popular:     true,
	},
	{
		ID:          "2",
		Name:        "Mumbai",
		Image:       "https://images.unsplash.com/photo-1529253355930-ddbe423a2ac7?q=80&w=1000&auto=format&fit=crop",
		Description: "Catch the sea breeze on Marine Drive in the city that never sleeps.",
		Popular:     true,
	},
	{
		ID:          "3",
		Name:        "Kolkata",
		Image:       "https://images.unsplash.com/photo-1558431382-27e303142255?q=80&w=1000&auto=format&fit=crop",
		Description: "Trams, book stalls and the Howrah Bridge in the City of Joy.",
		Popular:     false,
	},
	{
		ID:          "4",
		Name:        "Jaipur",
		Image:       "https://images.unsplash.com/photo-1477587458883-47145ed94245?q=80&w=1000&auto=format&fit=crop",
		Description: "Explore the forts and bazaars of the Pink City.",
		Popular:     true,
	},
	{
		ID:          "5",
		Name:        "Bengaluru",
		Image:       "https://images.unsplash.com/photo-1596176530529-78163a4f7af2?q=80&w=1000&auto=format&fit=crop",
		Description: "Gardens, cafes and a mild climate in India's tech capital.",
		Popular:     false,
	},
	{
		ID:          "6",
		Name:        "Chennai",
		Image:       "https://images.unsplash.com/photo-1582510003544-4d00b7f74220?q=80&w=1000&auto=format&fit=crop",
		Description: "Temples, Carnatic music and the long Marina Beach.",
		Popular:     true,
	},
}

// defaultPopularRoutes is used when no search analytics are available
var defaultPopularRoutes = []models.PopularRoute{
	{FromStation: "Mumbai Central", ToStation: "New Delhi"},
	{FromStation: "Howrah Junction", ToStation: "New Delhi"},
	{FromStation: "Mumbai Central", ToStation: "Ahmedabad Junction"},
	{FromStation: "Pune Junction", ToStation: "Mumbai Central"},
	{FromStation: "New Delhi", ToStation: "Jaipur Junction"},
	{FromStation: "KSR Bengaluru City", ToStation: "New Delhi"},
	{FromStation: "Howrah Junction", ToStation: "Chennai Central"},
	{FromStation: "Secunderabad Junction", ToStation: "New Delhi"},
	{FromStation: "Lucknow Charbagh", ToStation: "New Delhi"},
}
