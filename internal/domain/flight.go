package domain

import "time"

const FlightStatusScheduled = "scheduled"

type Flight struct {
	ID             int64     `json:"id"`
	FlightNumber   string    `json:"flight_number"`
	Airline        string    `json:"airline"`
	FromAirport    string    `json:"from_airport"`
	ToAirport      string    `json:"to_airport"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
	TotalSeats     int       `json:"total_seats"`
	AircraftType   string    `json:"aircraft_type"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// FlightSearch filters flights. Empty fields are ignored.
type FlightSearch struct {
	From string
	To   string
	Date *time.Time
}

// Validate checks the seat inventory and schedule invariants.
func (f *Flight) Validate() error {
	if f.AvailableSeats < 0 {
		return NewValidationError("available_seats must not be negative")
	}
	if f.AvailableSeats > f.TotalSeats {
		return NewValidationError("available_seats must not exceed total_seats")
	}
	if f.Price < 0 {
		return NewValidationError("price must not be negative")
	}
	if f.ArrivalTime.Before(f.DepartureTime) {
		return NewValidationError("arrival_time must not precede departure_time")
	}
	return nil
}
