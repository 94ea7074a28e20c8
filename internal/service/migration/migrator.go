package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airline/internal/domain"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/Domenick1991/airline/pkg/metrics"
)

const (
	progressEvery = 50
	sampleSize    = 5
)

// Store owns the legacy tables and the flights_backup snapshot.
type Store interface {
	Snapshot(ctx context.Context) (int64, error)
	Clear(ctx context.Context) error
	Restore(ctx context.Context) error
	LegacyFlights(ctx context.Context) ([]domain.LegacyFlight, error)
	CountFlights(ctx context.Context) (int64, error)
	SampleFlights(ctx context.Context, limit int) ([]domain.Flight, error)
	Cities(ctx context.Context) ([]string, error)
}

type FlightWriter interface {
	Create(ctx context.Context, flight *domain.Flight) error
}

type Report struct {
	BackedUp int64
	Found    int
	Migrated int
	Skipped  int
	Total    int64
	Sample   []domain.Flight
	Cities   []string
}

type Migrator struct {
	store       Store
	flights     FlightWriter
	transformer *Transformer
	log         logger.Logger
	metrics     *metrics.Metrics
}

// NewMigrator builds a migrator. m may be nil.
func NewMigrator(store Store, flights FlightWriter, transformer *Transformer, log logger.Logger, m *metrics.Metrics) *Migrator {
	return &Migrator{
		store:       store,
		flights:     flights,
		transformer: transformer,
		log:         log,
		metrics:     m,
	}
}

// Run snapshots flights, replaces its contents with the transformed legacy
// rows and verifies the result. Failing rows are skipped. Any other failure
// after the snapshot restores the backup.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	backedUp, err := m.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot flights: %w", err)
	}
	report.BackedUp = backedUp
	m.log.Info("flights backed up", "rows", backedUp)

	if err := m.migrate(ctx, report); err != nil {
		m.log.Error("migration failed, restoring backup", "error", err)
		if rerr := m.store.Restore(context.WithoutCancel(ctx)); rerr != nil {
			m.log.Error("restore failed", "error", rerr)
			return report, errors.Join(err, fmt.Errorf("restore flights: %w", rerr))
		}
		m.log.Info("previous flights restored")
		return report, err
	}

	m.verify(ctx, report)
	return report, nil
}

func (m *Migrator) migrate(ctx context.Context, report *Report) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear flights: %w", err)
	}

	rows, err := m.store.LegacyFlights(ctx)
	if err != nil {
		return err
	}
	report.Found = len(rows)
	m.log.Info("legacy flights found", "rows", len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		flight, err := m.transformer.Transform(row)
		if err == nil {
			err = m.flights.Create(ctx, flight)
		}
		if err != nil {
			report.Skipped++
			if m.metrics != nil {
				m.metrics.FlightsSkipped.Inc()
			}
			m.log.Debug("legacy flight skipped", "flight_id", row.FlightID, "error", err)
			continue
		}

		report.Migrated++
		if m.metrics != nil {
			m.metrics.FlightsMigrated.Inc()
		}
		if report.Migrated%progressEvery == 0 {
			m.log.Info("migration progress", "migrated", report.Migrated)
		}
	}

	m.log.Info("migration completed", "migrated", report.Migrated, "skipped", report.Skipped)
	return nil
}

// verify only logs; the migration has already committed.
func (m *Migrator) verify(ctx context.Context, report *Report) {
	total, err := m.store.CountFlights(ctx)
	if err != nil {
		m.log.Warn("count flights failed", "error", err)
	}
	report.Total = total

	sample, err := m.store.SampleFlights(ctx, sampleSize)
	if err != nil {
		m.log.Warn("sample flights failed", "error", err)
	}
	report.Sample = sample

	cities, err := m.store.Cities(ctx)
	if err != nil {
		m.log.Warn("list cities failed", "error", err)
	}
	report.Cities = cities

	m.log.Info("flights table verified", "total", total, "cities", len(cities))
	for i, f := range sample {
		m.log.Info("sample flight",
			"n", i+1,
			"flight_number", f.FlightNumber,
			"airline", f.Airline,
			"route", f.FromAirport+" -> "+f.ToAirport,
			"departure", f.DepartureTime,
			"price", f.Price,
			"aircraft", f.AircraftType,
		)
	}
}
