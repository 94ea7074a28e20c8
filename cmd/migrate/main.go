package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/repository"
	"github.com/Domenick1991/airline/internal/service/migration"
	"github.com/Domenick1991/airline/pkg/logger"
	"github.com/Domenick1991/airline/pkg/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var _ migration.Store = (*repository.GormLegacyRepository)(nil)

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

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("connect postgres (gorm)", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	loc, err := time.LoadLocation(cfg.Migration.Location)
	if err != nil {
		log.Fatal("load migration location", "location", cfg.Migration.Location, "error", err)
	}

	seed := cfg.Migration.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info("starting flight migration", "seed", seed, "location", loc.String())

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics("airline", reg)

	migrator := migration.NewMigrator(
		repository.NewLegacyRepository(db),
		repository.NewFlightRepository(pool),
		migration.NewTransformer(rand.New(rand.NewSource(seed)), loc),
		log,
		m,
	)

	report, err := migrator.Run(ctx)
	pushMetrics(cfg.Migration.PushgatewayURL, reg, log)
	if err != nil {
		log.Fatal("migration failed", "error", err)
	}

	log.Info("migration finished",
		"backed_up", report.BackedUp,
		"found", report.Found,
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"total", report.Total,
		"cities", len(report.Cities),
	)
	log.Info("previous flights kept in flights_backup; legacy flight and route tables untouched")
}

func pushMetrics(url string, reg *prometheus.Registry, log logger.Logger) {
	if url == "" {
		return
	}
	if err := push.New(url, "flight_migration").Gatherer(reg).Push(); err != nil {
		log.Warn("push metrics failed", "url", url, "error", err)
	}
}
