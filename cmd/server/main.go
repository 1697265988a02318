package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/application"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/config"
	bookingDomain "github.com/Kilat-Pet-Delivery/booking-e2e/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/events"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/handler"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/logger"
	"github.com/Kilat-Pet-Delivery/booking-e2e/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "booking-twin", cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting booking-twin",
		zap.String("port", cfg.Port),
	)

	// Pick the repository: PostgreSQL when configured, memory otherwise
	var bookingRepo bookingDomain.BookingRepository = repository.NewMemoryBookingRepository()
	if cfg.DBConfig.Enabled() {
		db, err := gorm.Open(postgres.Open(cfg.DBConfig.DSN()), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&repository.BookingModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("using PostgreSQL booking store", zap.String("host", cfg.DBConfig.Host))
		bookingRepo = repository.NewGormBookingRepository(db)
	}

	// Initialize Kafka publisher
	var publisher application.EventPublisher = application.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		kafkaPublisher := events.NewBookingEventPublisher(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, log)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
		log.Info("publishing booking events", zap.Strings("brokers", cfg.KafkaConfig.Brokers), zap.String("topic", cfg.KafkaConfig.Topic))
	}

	// Initialize application services
	bookingService := application.NewBookingService(bookingRepo, publisher, log)
	authService, err := application.NewAuthService(cfg.Username, cfg.Password, log)
	if err != nil {
		log.Fatal("failed to create auth service", zap.Error(err))
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      handler.NewRouter(bookingService, authService, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down booking-twin...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("booking-twin stopped")
}
