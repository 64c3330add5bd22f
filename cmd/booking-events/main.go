package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	bookingsevents "classbook/internal/bookings/events"
	"classbook/pkg/config"
	"classbook/pkg/kafka"
	kafka_config "classbook/pkg/kafka/config"
	kafka_middleware "classbook/pkg/kafka/middleware"
)

const ServiceName = "booking-events"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting booking events audit consumer")

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.Log,
		cfg.BookingEventsTopic,
		cfg.BookingEventsGroupID,
		cfg.BookingEventsDLQTopic,
		bookingsevents.AuditHandler(cfg.Log),
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking events",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.BookingEventsGroupID,
		"dlq_topic", cfg.BookingEventsDLQTopic,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped unexpectedly", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Booking events audit consumer stopped")
}
