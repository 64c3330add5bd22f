package main

import (
	bookingsevents "classbook/internal/bookings/events"
	bookingshandler "classbook/internal/bookings/handler"
	bookingsrepository "classbook/internal/bookings/repository"
	bookingsservice "classbook/internal/bookings/service"
	bookingsvalidator "classbook/internal/bookings/validator"
	classeshandler "classbook/internal/classes/handler"
	classesrepository "classbook/internal/classes/repository"
	classesservice "classbook/internal/classes/service"
	classesvalidator "classbook/internal/classes/validator"
	"classbook/pkg/app"
	"classbook/pkg/config"
	"classbook/pkg/contracts"
	"classbook/pkg/kafka"
	kafka_config "classbook/pkg/kafka/config"
	kafka_middleware "classbook/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Bookings service")

	if cfg.UsesMongo() {
		cfg.SetMongo()
	}

	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close booking events publisher", "error", err)
		}
	})
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initRepositories(cfg *config.Config) (bookingsrepository.BookingRepository, classesrepository.ClassRepository) {
	if cfg.UsesMongo() {
		return bookingsrepository.NewMongoBookingRepository(cfg), classesrepository.NewMongoClassRepository(cfg)
	}
	cfg.Log.Warn("Using in-memory storage, data will not survive a restart")
	return bookingsrepository.NewMemoryBookingRepository(), classesrepository.NewMemoryClassRepository()
}

func initPublisher(cfg *config.Config) bookingsevents.Publisher {
	if !cfg.BookingEventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return bookingsevents.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, cfg.BookingEventsTopic, cfg.BookingEventsDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create booking events producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Booking events enabled", "topic", cfg.BookingEventsTopic)
	return bookingsevents.NewKafkaPublisher(producer)
}

func initHandlers(cfg *config.Config, publisher bookingsevents.Publisher) []contracts.Handler {
	bookingRepo, classRepo := initRepositories(cfg)

	classService := classesservice.NewClassService(
		classRepo,
		classesvalidator.NewClassValidator(cfg.Log),
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		classRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "storage_driver", cfg.StorageDriver, "database", cfg.MongoDatabaseName)
	return []contracts.Handler{
		classeshandler.NewClassHandler(classService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}
}
