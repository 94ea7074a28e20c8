package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL, creates the schema and empties
// every table. Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, CreateSchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE TABLE bookings, flights, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "hash", FirstName: "Test", LastName: "User"}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), user))
	return user
}

func seedFlight(t *testing.T, pool *pgxpool.Pool, number string, seats int) *domain.Flight {
	t.Helper()
	dep := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	flight := &domain.Flight{
		FlightNumber:   number,
		Airline:        "IndiGo",
		FromAirport:    "Delhi (DEL)",
		ToAirport:      "Mumbai (BOM)",
		DepartureTime:  dep,
		ArrivalTime:    dep.Add(2 * time.Hour),
		Price:          4500,
		AvailableSeats: seats,
		TotalSeats:     seats,
		AircraftType:   "Airbus A320",
		Status:         domain.FlightStatusScheduled,
	}
	require.NoError(t, NewFlightRepository(pool).Create(context.Background(), flight))
	return flight
}
