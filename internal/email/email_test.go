package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	event := kafka.BookingEvent{
		Reference:     "BKGA1B2C3D4E",
		PassengerName: "Asha Rao",
		SeatNumber:    "3F",
		FlightID:      42,
	}

	tests := []struct {
		eventType string
		subject   string
		body      string
	}{
		{kafka.EventBookingCreated, "Booking BKGA1B2C3D4E confirmed", "Dear Asha Rao, your seat 3F on flight #42 is confirmed."},
		{kafka.EventBookingCancelled, "Booking BKGA1B2C3D4E cancelled", "Dear Asha Rao, your booking BKGA1B2C3D4E has been cancelled."},
		{kafka.EventBookingCheckedIn, "Checked in for BKGA1B2C3D4E", "Dear Asha Rao, you are checked in. Seat 3F."},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			event.Type = tt.eventType
			msg, ok := Render(event)
			assert.True(t, ok)
			assert.Equal(t, tt.subject, msg.Subject)
			assert.Equal(t, tt.body, msg.Body)
		})
	}

	event.Type = "seat_changed"
	_, ok := Render(event)
	assert.False(t, ok)
}

func TestSender_Send(t *testing.T) {
	s := NewSender(logger.NewNop())
	assert.NoError(t, s.Send(context.Background(), kafka.BookingEvent{Type: kafka.EventBookingCreated, Reference: "BKG000000001"}))
	assert.NoError(t, s.Send(context.Background(), kafka.BookingEvent{Type: "unknown", Reference: "BKG000000001"}))
}
