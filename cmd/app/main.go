package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airline/api"
	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/bootstrap"
	"github.com/Domenick1991/airline/internal/cache"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/service/auth"
	"github.com/Domenick1991/airline/internal/service/booking"
	"github.com/Domenick1991/airline/internal/service/flights"
	"github.com/Domenick1991/airline/internal/service/users"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/Domenick1991/airline/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	log := logger.NewLogger()
	defer func() { _ = log.Sync() }()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal("load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.CreateSchema(ctx, pool); err != nil {
			log.Fatal("create schema", "error", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics("airline", reg)

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithMetrics(m),
		booking.WithReferenceAttempts(cfg.Booking.ReferenceAttempts),
	}

	var flightCache flights.FlightCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.CacheTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, reads fall back to postgres", "addr", cfg.Redis.Addr, "error", err)
		}
		flightCache = redisCache
		bookingOpts = append(bookingOpts, booking.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log, cfg.Kafka.BookingTopic, cfg.Kafka.NotificationsTopic)
		defer producer.Close()
		bookingOpts = append(bookingOpts, booking.WithProducer(producer))
	}

	bookingService := booking.NewBookingService(bookingRepo, log, bookingOpts...)
	// drain in-flight booking events before the producer closes
	defer bookingService.Wait()

	router := api.NewRouter(api.RouterConfig{
		Flights:    flights.NewFlightService(flightRepo, flightCache, log),
		Bookings:   bookingService,
		Auth:       auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(), log),
		Users:      users.NewUserService(userRepo),
		Log:        log,
		Metrics:    m,
		Gatherer:   reg,
		SwaggerDir: cfg.HTTP.SwaggerDir,
	})

	if err := bootstrap.Run(ctx, cfg.HTTP.Address, router, log); err != nil {
		log.Fatal("server error", "error", err)
	}
}

// newPool builds the shared connection pool and checks it once.
func newPool(ctx context.Context, db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(db.DSN())
	if err != nil {
		return nil, err
	}
	if db.MaxConns > 0 {
		poolCfg.MaxConns = db.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
