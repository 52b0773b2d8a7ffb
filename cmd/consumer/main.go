package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "console", "luggage-consumer").Fatal("Config load error", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, "luggage-consumer")
	defer func() { _ = log.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is empty")
	}

	c := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, log)
	defer func() {
		if err := c.Close(); err != nil {
			log.Error("Error closing kafka reader", zap.Error(err))
		}
	}()

	if err := c.Run(ctx); err != nil {
		log.Error("Consumer stopped with error", zap.Error(err))
	}
	log.Info("Consumer stopped")
}
