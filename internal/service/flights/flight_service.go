package flights

import (
	"context"
	"strings"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/pkg/logger"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, bool, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	GetSearch(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, bool, error)
	SetSearch(ctx context.Context, filter domain.FlightSearch, flights []domain.Flight) error
	Invalidate(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
	log   logger.Logger
}

// NewFlightService builds the service. cache may be nil, in which case
// every read goes to the repository.
func NewFlightService(repo repository.FlightRepository, cache FlightCache, log logger.Logger) *FlightService {
	return &FlightService{repo: repo, cache: cache, log: log}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetFlights(ctx)
		if err != nil {
			s.log.Warn("flight cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.log.Warn("flight cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) Search(ctx context.Context, filter domain.FlightSearch) ([]domain.Flight, error) {
	filter.From = strings.TrimSpace(filter.From)
	filter.To = strings.TrimSpace(filter.To)

	if s.cache != nil {
		cached, ok, err := s.cache.GetSearch(ctx, filter)
		if err != nil {
			s.log.Warn("search cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	flights, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, filter, flights); err != nil {
			s.log.Warn("search cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

// Create fills defaults (total_seats from available_seats, status
// scheduled) before validating and storing the flight.
func (s *FlightService) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.TotalSeats == 0 {
		flight.TotalSeats = flight.AvailableSeats
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := validate(flight); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update replaces the mutable fields of a flight. A zero TotalSeats keeps
// the stored capacity.
func (s *FlightService) Update(ctx context.Context, flight *domain.Flight) error {
	if flight.TotalSeats == 0 {
		current, err := s.repo.GetByID(ctx, flight.ID)
		if err != nil {
			return err
		}
		flight.TotalSeats = current.TotalSeats
	}
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	if err := validate(flight); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("flight cache invalidation failed", "error", err)
	}
}

func validate(f *domain.Flight) error {
	required := []struct {
		name  string
		value string
	}{
		{"flight_number", f.FlightNumber},
		{"airline", f.Airline},
		{"from_airport", f.FromAirport},
		{"to_airport", f.ToAirport},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.NewValidationError(r.name + " is required")
		}
	}
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return domain.NewValidationError("departure_time and arrival_time are required")
	}
	return f.Validate()
}

var _ FlightUseCase = (*FlightService)(nil)
