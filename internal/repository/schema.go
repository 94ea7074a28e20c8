package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	first_name    VARCHAR(100) NOT NULL DEFAULT '',
	last_name     VARCHAR(100) NOT NULL DEFAULT '',
	phone         VARCHAR(30)  NOT NULL DEFAULT '',
	created_at    TIMESTAMP    NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS flights (
	id              BIGSERIAL PRIMARY KEY,
	flight_number   VARCHAR(20)   NOT NULL,
	airline         VARCHAR(100)  NOT NULL,
	from_airport    VARCHAR(150)  NOT NULL,
	to_airport      VARCHAR(150)  NOT NULL,
	departure_time  TIMESTAMP     NOT NULL,
	arrival_time    TIMESTAMP     NOT NULL,
	price           NUMERIC(10,2) NOT NULL,
	available_seats INTEGER       NOT NULL,
	total_seats     INTEGER       NOT NULL,
	aircraft_type   VARCHAR(50)   NOT NULL DEFAULT '',
	status          VARCHAR(20)   NOT NULL DEFAULT 'scheduled',
	created_at      TIMESTAMP     NOT NULL DEFAULT NOW(),
	CONSTRAINT flights_seats_check CHECK (available_seats >= 0 AND available_seats <= total_seats)
);

CREATE INDEX IF NOT EXISTS idx_flights_departure ON flights(departure_time);

CREATE TABLE IF NOT EXISTS bookings (
	id                BIGSERIAL PRIMARY KEY,
	user_id           BIGINT        NOT NULL REFERENCES users(id),
	flight_id         BIGINT        NOT NULL REFERENCES flights(id),
	booking_reference VARCHAR(20)   NOT NULL,
	passenger_name    VARCHAR(200)  NOT NULL,
	seat_number       VARCHAR(10)   NOT NULL,
	total_price       NUMERIC(10,2) NOT NULL,
	status            VARCHAR(20)   NOT NULL DEFAULT 'Confirmed',
	checked_in        BOOLEAN       NOT NULL DEFAULT FALSE,
	booking_date      TIMESTAMP     NOT NULL DEFAULT NOW(),
	CONSTRAINT bookings_booking_reference_key UNIQUE (booking_reference),
	CONSTRAINT bookings_status_check CHECK (status IN ('Confirmed', 'Cancelled'))
);

CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
CREATE INDEX IF NOT EXISTS idx_bookings_flight ON bookings(flight_id);
`

// CreateSchema creates the users, flights and bookings tables if missing.
func CreateSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
