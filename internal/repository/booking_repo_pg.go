package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	Cancel(ctx context.Context, id int64) (*domain.Booking, bool, error)
	CheckIn(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.BookingDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error)
	GetByReference(ctx context.Context, reference string) (*domain.BookingDetails, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, booking_reference, passenger_name, seat_number, total_price, status, checked_in, booking_date`

const bookingDetailsColumns = `b.id, b.user_id, b.flight_id, b.booking_reference, b.passenger_name, b.seat_number,
	b.total_price, b.status, b.checked_in, b.booking_date,
	f.flight_number, f.airline, f.from_airport, f.to_airport, f.departure_time, f.arrival_time`

const bookingDetailsQuery = `SELECT ` + bookingDetailsColumns + `
	FROM bookings b
	JOIN flights f ON b.flight_id = f.id`

// Reference lookups also carry the owner's contact details.
const bookingByReferenceQuery = `SELECT ` + bookingDetailsColumns + `, u.email, u.phone
	FROM bookings b
	JOIN flights f ON b.flight_id = f.id
	JOIN users u ON b.user_id = u.id
	WHERE b.booking_reference=$1`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.BookingReference, &b.PassengerName, &b.SeatNumber,
		&b.TotalPrice, &b.Status, &b.CheckedIn, &b.BookingDate); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func scanBookingDetails(row pgx.Row, withContact bool) (*domain.BookingDetails, error) {
	var d domain.BookingDetails
	dest := []any{&d.ID, &d.UserID, &d.FlightID, &d.BookingReference, &d.PassengerName, &d.SeatNumber,
		&d.TotalPrice, &d.Status, &d.CheckedIn, &d.BookingDate,
		&d.FlightNumber, &d.Airline, &d.FromAirport, &d.ToAirport, &d.DepartureTime, &d.ArrivalTime}
	if withContact {
		dest = append(dest, &d.Email, &d.Phone)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Create takes one seat from the flight and inserts a Confirmed booking in a
// single transaction. The seat is taken with a conditional UPDATE so two
// concurrent bookings can never both claim the last seat.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	res, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1 WHERE id=$1 AND available_seats > 0`, booking.FlightID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM flights WHERE id=$1)`, booking.FlightID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrFlightNotFound
		}
		return domain.ErrNoAvailability
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, booking_reference, passenger_name, seat_number, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, checked_in, booking_date`,
		booking.UserID, booking.FlightID, booking.BookingReference, booking.PassengerName, booking.SeatNumber, booking.TotalPrice, booking.Status).
		Scan(&booking.ID, &booking.CheckedIn, &booking.BookingDate); err != nil {
		switch {
		case isUniqueViolation(err, "bookings_booking_reference_key"):
			return domain.ErrDuplicateReference
		case isForeignKeyViolation(err, "bookings_user_id_fkey"):
			return domain.ErrUserNotFound
		}
		return err
	}

	return tx.Commit(ctx)
}

// Cancel flips a booking to Cancelled and gives its seat back. The boolean
// reports whether the status changed; an already cancelled booking is
// returned as is and no seat is restored.
func (r *PGBookingRepository) Cancel(ctx context.Context, id int64) (*domain.Booking, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	booking, err := scanBooking(tx.QueryRow(ctx, `UPDATE bookings SET status=$1 WHERE id=$2 AND status<>$1 RETURNING `+bookingColumns,
		domain.BookingStatusCancelled, id))
	if errors.Is(err, domain.ErrBookingNotFound) {
		current, err := scanBooking(tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
		if err != nil {
			return nil, false, err
		}
		return current, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1 WHERE id=$1 AND available_seats < total_seats`, booking.FlightID); err != nil {
		return nil, false, fmt.Errorf("restore seat: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return booking, true, nil
}

func (r *PGBookingRepository) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	return scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET checked_in = true WHERE id=$1 RETURNING `+bookingColumns, id))
}

func (r *PGBookingRepository) queryDetails(ctx context.Context, query string, args ...any) ([]domain.BookingDetails, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingDetails, 0)
	for rows.Next() {
		d, err := scanBookingDetails(rows, false)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *d)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.BookingDetails, error) {
	return r.queryDetails(ctx, bookingDetailsQuery+` ORDER BY b.booking_date DESC`)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error) {
	return r.queryDetails(ctx, bookingDetailsQuery+` WHERE b.user_id=$1 ORDER BY b.booking_date DESC`, userID)
}

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	return scanBookingDetails(r.db.QueryRow(ctx, bookingByReferenceQuery, reference), true)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
