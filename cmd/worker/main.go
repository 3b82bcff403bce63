package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/bootstrap"
	"github.com/Domenick1991/hotelbooking/internal/email"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const defaultSweepInterval = 15 * time.Minute

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.Env).With(zap.String("component", "worker"))
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Connect postgres", zap.Error(err))
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		roomRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	if cfg.Kafka.NotificationsTopic != "" {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
		defer consumer.Close()

		emailSender := email.NewSender(userRepo, logger)

		go func() {
			if err := consumer.ConsumeBookingEvents(ctx, emailSender.Send); err != nil {
				logger.Error("Consumer stopped", zap.Error(err))
			}
		}()
	}

	interval := cfg.Worker.CompletionSweepInterval()
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	completeTicker := time.NewTicker(interval)
	defer completeTicker.Stop()

	logger.Info("Worker started", zap.Duration("completion_sweep", interval))

	for {
		select {
		case <-completeTicker.C:
			if _, err := bookingService.CompleteFinishedBookings(ctx); err != nil {
				logger.Error("Complete bookings", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("Shutting down worker")
			return
		}
	}
}
