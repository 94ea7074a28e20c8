package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"gorm.io/gorm"
)

// GormLegacyRepository reads the pre-migration flight/route tables and owns
// the flights_backup snapshot used to undo a failed migration.
type GormLegacyRepository struct {
	db *gorm.DB
}

func NewLegacyRepository(db *gorm.DB) *GormLegacyRepository {
	return &GormLegacyRepository{db: db}
}

// legacyFlightRow maps the flight JOIN route projection.
type legacyFlightRow struct {
	FlightID      int64     `gorm:"column:flight_id"`
	ArrivalTime   string    `gorm:"column:arrival_time"`
	DepartureTime string    `gorm:"column:departure_time"`
	FlightDate    time.Time `gorm:"column:flight_date"`
	AirpCode      string    `gorm:"column:airp_code"`
	TakeOffPoint  string    `gorm:"column:take_off_point"`
	Destination   string    `gorm:"column:destination"`
	AType         string    `gorm:"column:a_type"`
}

// flightSample is the subset of flights columns printed after a migration.
type flightSample struct {
	FlightNumber  string    `gorm:"column:flight_number"`
	Airline       string    `gorm:"column:airline"`
	FromAirport   string    `gorm:"column:from_airport"`
	ToAirport     string    `gorm:"column:to_airport"`
	DepartureTime time.Time `gorm:"column:departure_time"`
	Price         float64   `gorm:"column:price"`
	AircraftType  string    `gorm:"column:aircraft_type"`
}

func (flightSample) TableName() string {
	return "flights"
}

// Snapshot copies the flights table into flights_backup and returns the
// number of rows copied.
func (r *GormLegacyRepository) Snapshot(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec(`DROP TABLE IF EXISTS flights_backup`).Error; err != nil {
		return 0, fmt.Errorf("drop backup: %w", err)
	}
	if err := db.Exec(`CREATE TABLE flights_backup AS SELECT * FROM flights`).Error; err != nil {
		return 0, fmt.Errorf("create backup: %w", err)
	}
	var count int64
	if err := db.Table("flights_backup").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Clear empties flights and resets its identity. CASCADE also clears
// bookings that reference the old rows.
func (r *GormLegacyRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`TRUNCATE TABLE flights RESTART IDENTITY CASCADE`).Error
}

// Restore replaces the flights table contents with flights_backup and moves
// the id sequence past the restored rows, since Clear reset it.
func (r *GormLegacyRepository) Restore(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`TRUNCATE TABLE flights`).Error; err != nil {
			return err
		}
		if err := tx.Exec(`INSERT INTO flights SELECT * FROM flights_backup`).Error; err != nil {
			return err
		}
		return tx.Exec(`SELECT setval(pg_get_serial_sequence('flights', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL)
			FROM flights`).Error
	})
}

func (r *GormLegacyRepository) LegacyFlights(ctx context.Context) ([]domain.LegacyFlight, error) {
	var rows []legacyFlightRow
	err := r.db.WithContext(ctx).
		Table("flight AS f").
		Select(`f.flight_id, f.arrival_time::text AS arrival_time, f.departure_time::text AS departure_time,
			f.flight_date::date AS flight_date, f.airp_code, r.take_off_point, r.destination, r.a_type`).
		Joins("JOIN route r ON f.route_id = r.route_id").
		Order("f.flight_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("read legacy flights: %w", err)
	}

	flights := make([]domain.LegacyFlight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, domain.LegacyFlight{
			FlightID:      row.FlightID,
			ArrivalTime:   row.ArrivalTime,
			DepartureTime: row.DepartureTime,
			FlightDate:    row.FlightDate,
			AirportCode:   row.AirpCode,
			TakeOffPoint:  row.TakeOffPoint,
			Destination:   row.Destination,
			RouteType:     row.AType,
		})
	}
	return flights, nil
}

func (r *GormLegacyRepository) CountFlights(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&flightSample{}).Count(&count).Error
	return count, err
}

func (r *GormLegacyRepository) SampleFlights(ctx context.Context, limit int) ([]domain.Flight, error) {
	var rows []flightSample
	if err := r.db.WithContext(ctx).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	flights := make([]domain.Flight, 0, len(rows))
	for _, row := range rows {
		flights = append(flights, domain.Flight{
			FlightNumber:  row.FlightNumber,
			Airline:       row.Airline,
			FromAirport:   row.FromAirport,
			ToAirport:     row.ToAirport,
			DepartureTime: row.DepartureTime,
			Price:         row.Price,
			AircraftType:  row.AircraftType,
		})
	}
	return flights, nil
}

// Cities lists the distinct airport strings present in flights.
func (r *GormLegacyRepository) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	err := r.db.WithContext(ctx).Raw(`SELECT DISTINCT from_airport AS city FROM flights
		UNION
		SELECT DISTINCT to_airport AS city FROM flights
		ORDER BY city`).Scan(&cities).Error
	return cities, err
}
