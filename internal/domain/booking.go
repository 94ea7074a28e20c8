package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusCancelled BookingStatus = "Cancelled"
)

type Booking struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	FlightID         int64         `json:"flight_id"`
	BookingReference string        `json:"booking_reference"`
	PassengerName    string        `json:"passenger_name"`
	SeatNumber       string        `json:"seat_number"`
	TotalPrice       float64       `json:"total_price"`
	Status           BookingStatus `json:"status"`
	CheckedIn        bool          `json:"checked_in"`
	BookingDate      time.Time     `json:"booking_date"`
}

// BookingDetails is a booking joined with its flight, and for reference
// lookups with the owning user's contact details.
type BookingDetails struct {
	Booking
	FlightNumber  string    `json:"flight_number"`
	Airline       string    `json:"airline"`
	FromAirport   string    `json:"from_airport"`
	ToAirport     string    `json:"to_airport"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
}
