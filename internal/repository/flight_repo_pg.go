package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline, from_airport, to_airport, departure_time, arrival_time,
	price, available_seats, total_seats, aircraft_type, status, created_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Airline, &f.FromAirport, &f.ToAirport, &f.DepartureTime, &f.ArrivalTime,
		&f.Price, &f.AvailableSeats, &f.TotalSeats, &f.AircraftType, &f.Status, &f.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) queryFlights(ctx context.Context, query string, args ...any) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.queryFlights(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time ASC`)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
// Backslash is the default LIKE escape character.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Search matches from/to as case-insensitive substrings and date as the
// calendar day of departure_time.
func (r *PGFlightRepository) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE 1=1`
	var args []any

	if filter.From != "" {
		args = append(args, containsPattern(filter.From))
		query += fmt.Sprintf(" AND from_airport ILIKE $%d", len(args))
	}
	if filter.To != "" {
		args = append(args, containsPattern(filter.To))
		query += fmt.Sprintf(" AND to_airport ILIKE $%d", len(args))
	}
	if filter.Date != nil {
		day := *filter.Date
		args = append(args, day, day.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND departure_time >= $%d AND departure_time < $%d", len(args)-1, len(args))
	}
	query += " ORDER BY departure_time ASC"

	return r.queryFlights(ctx, query, args...)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline, from_airport, to_airport, departure_time, arrival_time,
		price, available_seats, total_seats, aircraft_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		flight.FlightNumber, flight.Airline, flight.FromAirport, flight.ToAirport, flight.DepartureTime, flight.ArrivalTime,
		flight.Price, flight.AvailableSeats, flight.TotalSeats, flight.AircraftType, flight.Status)
	return row.Scan(&flight.ID, &flight.CreatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights
		SET flight_number=$1, airline=$2, from_airport=$3, to_airport=$4, departure_time=$5, arrival_time=$6,
			price=$7, available_seats=$8, total_seats=$9, aircraft_type=$10, status=$11
		WHERE id=$12
		RETURNING `+flightColumns,
		flight.FlightNumber, flight.Airline, flight.FromAirport, flight.ToAirport, flight.DepartureTime, flight.ArrivalTime,
		flight.Price, flight.AvailableSeats, flight.TotalSeats, flight.AircraftType, flight.Status, flight.ID)
	updated, err := scanFlight(row)
	if err != nil {
		return err
	}
	*flight = *updated
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
