package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/pkg/logger"
)

// Message is a rendered passenger notification.
type Message struct {
	Subject string
	Body    string
}

// Sender turns booking events into passenger notifications. Delivery is
// the log sink for now.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	msg, ok := Render(event)
	if !ok {
		s.log.Debug("no notification for event", "type", event.Type, "reference", event.Reference)
		return nil
	}
	s.log.Info("notification sent",
		"reference", event.Reference,
		"user_id", event.UserID,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}

// Render builds the notification for event. ok is false for event types
// that produce no notification.
func Render(event kafka.BookingEvent) (Message, bool) {
	switch event.Type {
	case kafka.EventBookingCreated:
		return Message{
			Subject: fmt.Sprintf("Booking %s confirmed", event.Reference),
			Body:    fmt.Sprintf("Dear %s, your seat %s on flight #%d is confirmed.", event.PassengerName, event.SeatNumber, event.FlightID),
		}, true
	case kafka.EventBookingCancelled:
		return Message{
			Subject: fmt.Sprintf("Booking %s cancelled", event.Reference),
			Body:    fmt.Sprintf("Dear %s, your booking %s has been cancelled.", event.PassengerName, event.Reference),
		}, true
	case kafka.EventBookingCheckedIn:
		return Message{
			Subject: fmt.Sprintf("Checked in for %s", event.Reference),
			Body:    fmt.Sprintf("Dear %s, you are checked in. Seat %s.", event.PassengerName, event.SeatNumber),
		}, true
	}
	return Message{}, false
}
