package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCheckedIn = "booking_checked_in"
)

// BookingEvent is published for every booking state change, keyed by the
// booking reference.
type BookingEvent struct {
	Type          string               `json:"type"`
	BookingID     int64                `json:"booking_id"`
	Reference     string               `json:"reference"`
	FlightID      int64                `json:"flight_id"`
	UserID        int64                `json:"user_id"`
	PassengerName string               `json:"passenger_name"`
	SeatNumber    string               `json:"seat_number"`
	Status        domain.BookingStatus `json:"status"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		Reference:     b.BookingReference,
		FlightID:      b.FlightID,
		UserID:        b.UserID,
		PassengerName: b.PassengerName,
		SeatNumber:    b.SeatNumber,
		Status:        b.Status,
		OccurredAt:    at.UTC(),
	}
}

func DecodeBookingEvent(data []byte) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event: %w", err)
	}
	if event.Type == "" || event.Reference == "" {
		return BookingEvent{}, fmt.Errorf("decode booking event: missing type or reference")
	}
	return event, nil
}
