package domain

import "time"

// LegacyFlight is one row of the legacy flight table joined with its route.
// Times are "HH:MM:SS" strings as stored by the old schema.
type LegacyFlight struct {
	FlightID      int64
	ArrivalTime   string
	DepartureTime string
	FlightDate    time.Time
	AirportCode   string
	TakeOffPoint  string
	Destination   string
	RouteType     string
}
