package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics of the service.
type Metrics struct {
	HTTPRequests         *prometheus.CounterVec
	HTTPDuration         *prometheus.HistogramVec
	BookingsCreated      prometheus.Counter
	BookingsCanceled     prometheus.Counter
	BookingFailures      *prometheus.CounterVec
	EventPublishFailures prometheus.Counter
	FlightsMigrated      prometheus.Counter
	FlightsSkipped       prometheus.Counter
}

// NewMetrics registers the metrics on reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "The total number of handled HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken to serve HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of confirmed bookings",
		}),
		BookingsCanceled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_cancelled_total",
			Help:      "The total number of cancelled bookings",
		}),
		BookingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "The total number of rejected booking attempts",
		}, []string{"reason"}),
		EventPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_event_publish_failures_total",
			Help:      "Booking events that could not be delivered to kafka",
		}),
		FlightsMigrated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migration_flights_migrated_total",
			Help:      "Legacy rows written to the flights table",
		}),
		FlightsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migration_flights_skipped_total",
			Help:      "Legacy rows skipped during migration",
		}),
	}
}
