package migration

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
)

const routeInternational = "International"

type airline struct {
	Name   string
	Prefix string
}

var airlines = []airline{
	{"Air India", "AI"},
	{"IndiGo", "6E"},
	{"SpiceJet", "SG"},
	{"Vistara", "UK"},
	{"AirAsia India", "I5"},
	{"GoAir", "G8"},
}

var (
	domesticAircraft      = []string{"Boeing 737", "Airbus A320", "ATR 72"}
	internationalAircraft = []string{"Boeing 787", "Airbus A350", "Boeing 777", "Airbus A330"}
)

var airportCodes = map[string]string{
	"Delhi":              "DEL",
	"Mumbai":             "BOM",
	"Bangalore":          "BLR",
	"Bengaluru":          "BLR",
	"Kolkata":            "CCU",
	"Chennai":            "MAA",
	"Hyderabad":          "HYD",
	"Ahmedabad":          "AMD",
	"Pune":               "PNQ",
	"Kochi":              "COK",
	"Goa":                "GOI",
	"Jaipur":             "JAI",
	"Lucknow":            "LKO",
	"Chandigarh":         "IXC",
	"Thiruvananthapuram": "TRV",
	"Bhubaneswar":        "BBI",
	"Visakhapatnam":      "VTZ",
	"Varanasi":           "VNS",
	"Udaipur":            "UDR",
	"Indore":             "IDR",
	"Patna":              "PAT",
	"Ranchi":             "IXR",
	"Imphal":             "IMF",
	"Raipur":             "RPR",
	"Mangalore":          "IXE",

	"Dubai":     "DXB",
	"London":    "LHR",
	"Bangkok":   "BKK",
	"Singapore": "SIN",
	"Doha":      "DOH",
	"Kathmandu": "KTM",
	"Colombo":   "CMB",
}

// AirportCode maps a city to its IATA code, falling back to the first three
// letters of the name in upper case.
func AirportCode(city string) string {
	city = strings.TrimSpace(city)
	if code, ok := airportCodes[city]; ok {
		return code
	}
	runes := []rune(city)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// Transformer turns legacy rows into flights. Not safe for concurrent use
// because of the shared rand source.
type Transformer struct {
	rng *rand.Rand
	loc *time.Location
}

func NewTransformer(rng *rand.Rand, loc *time.Location) *Transformer {
	if loc == nil {
		loc = time.Local
	}
	return &Transformer{rng: rng, loc: loc}
}

func (t *Transformer) Transform(row domain.LegacyFlight) (*domain.Flight, error) {
	departure, err := t.combine(row.FlightDate, row.DepartureTime)
	if err != nil {
		return nil, fmt.Errorf("flight %d departure: %w", row.FlightID, err)
	}
	arrival, err := t.combine(row.FlightDate, row.ArrivalTime)
	if err != nil {
		return nil, fmt.Errorf("flight %d arrival: %w", row.FlightID, err)
	}
	if arrival.Before(departure) {
		arrival = arrival.AddDate(0, 0, 1)
	}

	international := row.RouteType == routeInternational
	carrier := airlines[t.rng.Intn(len(airlines))]
	number := 1000 + t.rng.Intn(9000)

	base := 3000.0
	aircraft := domesticAircraft
	if international {
		base = 15000
		aircraft = internationalAircraft
	}
	price := math.Round(base * (0.8 + t.rng.Float64()*0.4))
	aircraftType := aircraft[t.rng.Intn(len(aircraft))]

	available := 50 + t.rng.Intn(150)
	total := int(math.Floor(float64(available) * 1.2))

	from := strings.TrimSpace(row.TakeOffPoint)
	to := strings.TrimSpace(row.Destination)

	return &domain.Flight{
		FlightNumber:   fmt.Sprintf("%s-%d", carrier.Prefix, number),
		Airline:        carrier.Name,
		FromAirport:    fmt.Sprintf("%s (%s)", from, AirportCode(from)),
		ToAirport:      fmt.Sprintf("%s (%s)", to, AirportCode(to)),
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		Price:          price,
		AvailableSeats: available,
		TotalSeats:     total,
		AircraftType:   aircraftType,
		Status:         domain.FlightStatusScheduled,
	}, nil
}

// combine places an "HH:MM[:SS]" wall-clock time on the calendar day of date
// in the transformer's location.
func (t *Transformer) combine(date time.Time, clock string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		// TIME columns may carry fractional seconds.
		if i == 2 {
			p, _, _ = strings.Cut(p, ".")
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return time.Time{}, fmt.Errorf("invalid time %q", clock)
		}
		values[i] = v
	}

	y, m, d := date.Date()
	return time.Date(y, m, d, values[0], values[1], values[2], 0, t.loc), nil
}
