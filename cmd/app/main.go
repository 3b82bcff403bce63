package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/hotelbooking/api"
	"github.com/Domenick1991/hotelbooking/config"
	"github.com/Domenick1991/hotelbooking/internal/auth"
	"github.com/Domenick1991/hotelbooking/internal/bootstrap"
	"github.com/Domenick1991/hotelbooking/internal/cache"
	"github.com/Domenick1991/hotelbooking/internal/kafka"
	"github.com/Domenick1991/hotelbooking/internal/repository"
	"github.com/Domenick1991/hotelbooking/internal/service/booking"
	"github.com/Domenick1991/hotelbooking/internal/service/catalog"
	"github.com/Domenick1991/hotelbooking/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		migrator, err := bootstrap.NewMigrator(pool, logger)
		if err != nil {
			logger.Fatal("Create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Migrate database", zap.Error(err))
		}
		_ = migrator.Close()
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Catalog.HotelsCacheTTL())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, hotel listings will not be cached", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := producer.CheckConnection(checkCtx); err != nil {
		logger.Warn("Kafka unavailable, booking events will be dropped", zap.Error(err))
	}
	cancel()

	hotelRepo := repository.NewHotelRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	catalogService := catalog.NewCatalogService(hotelRepo, roomRepo, redisCache, cfg.Catalog.TopRatedLimit, logger)
	userService := users.NewUserService(userRepo, tokens, logger)
	bookingService := booking.NewBookingService(
		bookingRepo,
		roomRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	router := api.NewRouter(
		api.RouterConfig{CORSOrigins: cfg.HTTP.CORSOrigins, Logger: logger, Tokens: tokens},
		api.NewAuthHandler(userService),
		api.NewHotelHandler(catalogService),
		api.NewBookingHandler(bookingService),
	)

	if err := bootstrap.Run(ctx, cfg.HTTP, router, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
