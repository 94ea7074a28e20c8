package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/Domenick1991/airline/pkg/metrics"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CheckIn(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.BookingDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error)
	GetByReference(ctx context.Context, reference string) (*domain.BookingDetails, error)
}

// Cache is the part of the flight cache a booking touches: seat counts
// change, so cached listings must go.
type Cache interface {
	Invalidate(ctx context.Context) error
}

type Producer interface {
	PublishBookingEvent(ctx context.Context, event kafka.BookingEvent) error
}

type BookingService struct {
	bookings          repository.BookingRepository
	cache             Cache
	producer          Producer
	metrics           *metrics.Metrics
	log               logger.Logger
	referenceAttempts int
	publishTimeout    time.Duration
	newReference      func() string
	now               func() time.Time

	pending sync.WaitGroup
}

type CreateBookingInput struct {
	UserID        int64   `json:"user_id"`
	FlightID      int64   `json:"flight_id"`
	PassengerName string  `json:"passenger_name"`
	SeatNumber    string  `json:"seat_number"`
	TotalPrice    float64 `json:"total_price"`
}

func (in CreateBookingInput) validate() error {
	switch {
	case in.UserID <= 0:
		return domain.NewValidationError("user_id is required")
	case in.FlightID <= 0:
		return domain.NewValidationError("flight_id is required")
	case strings.TrimSpace(in.PassengerName) == "":
		return domain.NewValidationError("passenger_name is required")
	case strings.TrimSpace(in.SeatNumber) == "":
		return domain.NewValidationError("seat_number is required")
	case in.TotalPrice < 0:
		return domain.NewValidationError("total_price must not be negative")
	}
	return nil
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithReferenceAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.referenceAttempts = n
		}
	}
}

// WithPublishTimeout bounds how long a background event publish may run.
func WithPublishTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

func NewBookingService(bookings repository.BookingRepository, log logger.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		bookings:          bookings,
		log:               log,
		referenceAttempts: 3,
		publishTimeout:    10 * time.Second,
		newReference:      NewReference,
		now:               time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewReference returns "BKG" followed by nine uppercase hex characters
// taken from a random UUID.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BKG" + strings.ToUpper(id[:9])
}

// CreateBooking takes a seat and stores a Confirmed booking. A reference
// collision is retried with a fresh reference.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var (
		booking *domain.Booking
		err     error
	)
	for attempt := 0; attempt < s.referenceAttempts; attempt++ {
		booking = &domain.Booking{
			UserID:           input.UserID,
			FlightID:         input.FlightID,
			BookingReference: s.newReference(),
			PassengerName:    strings.TrimSpace(input.PassengerName),
			SeatNumber:       strings.TrimSpace(input.SeatNumber),
			TotalPrice:       input.TotalPrice,
		}
		err = s.bookings.Create(ctx, booking)
		if !errors.Is(err, domain.ErrDuplicateReference) {
			break
		}
		s.log.Warn("booking reference collision", "reference", booking.BookingReference, "attempt", attempt+1)
	}
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}

	s.afterChange(ctx, kafka.EventBookingCreated, booking)
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.log.Info("booking created", "reference", booking.BookingReference, "flight_id", booking.FlightID, "user_id", booking.UserID)
	return booking, nil
}

// CancelBooking is idempotent: cancelling a cancelled booking succeeds
// without returning another seat or emitting an event.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, changed, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changed {
		return booking, nil
	}

	s.afterChange(ctx, kafka.EventBookingCancelled, booking)
	if s.metrics != nil {
		s.metrics.BookingsCanceled.Inc()
	}
	s.log.Info("booking cancelled", "reference", booking.BookingReference, "flight_id", booking.FlightID)
	return booking, nil
}

func (s *BookingService) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.CheckIn(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.EventBookingCheckedIn, booking)
	return booking, nil
}

func (s *BookingService) List(ctx context.Context) ([]domain.BookingDetails, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetails, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) GetByReference(ctx context.Context, reference string) (*domain.BookingDetails, error) {
	return s.bookings.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
}

// afterChange runs once a seat count has changed in the database. Neither
// step can fail the request.
func (s *BookingService) afterChange(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("flight cache invalidation failed", "error", err)
		}
	}
	s.publish(ctx, eventType, booking)
}

// publish sends the event in the background so a slow or unreachable broker
// never holds up the response. The event outlives the request context but
// not publishTimeout.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
		defer cancel()

		if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
			s.log.Warn("failed to publish booking event", "type", eventType, "reference", event.Reference, "error", err)
			if s.metrics != nil {
				s.metrics.EventPublishFailures.Inc()
			}
		}
	}()
}

// Wait blocks until every background publish has finished.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

func (s *BookingService) recordFailure(err error) {
	if s.metrics == nil {
		return
	}
	reason := "error"
	switch {
	case errors.Is(err, domain.ErrNoAvailability):
		reason = "no_availability"
	case errors.Is(err, domain.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, domain.ErrConflict):
		reason = "conflict"
	}
	s.metrics.BookingFailures.WithLabelValues(reason).Inc()
}

var _ BookingUseCase = (*BookingService)(nil)
