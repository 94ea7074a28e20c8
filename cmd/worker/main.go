package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airline/config"
	"github.com/Domenick1991/airline/internal/email"
	"github.com/Domenick1991/airline/internal/kafka"
	"github.com/Domenick1991/airline/pkg/logger"
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
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("kafka brokers are not configured")
	}

	topic := cfg.Kafka.NotificationsTopic
	if topic == "" {
		topic = cfg.Kafka.BookingTopic
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic, log)
	defer consumer.Close()

	sender := email.NewSender(log)

	log.Info("worker started", "topic", topic, "group", cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, sender.Send); err != nil {
		log.Error("consumer stopped", "error", err)
		return
	}
	log.Info("worker stopped")
}
