package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/acacia-hms/service-frontdesk/internal/application"
	"github.com/acacia-hms/service-frontdesk/internal/config"
	"github.com/acacia-hms/service-frontdesk/internal/domain/housekeeping"
	frontdeskEvents "github.com/acacia-hms/service-frontdesk/internal/events"
	"github.com/acacia-hms/service-frontdesk/internal/handler"
	"github.com/acacia-hms/service-frontdesk/internal/platform/auth"
	"github.com/acacia-hms/service-frontdesk/internal/platform/database"
	"github.com/acacia-hms/service-frontdesk/internal/platform/health"
	"github.com/acacia-hms/service-frontdesk/internal/platform/kafka"
	"github.com/acacia-hms/service-frontdesk/internal/platform/logger"
	"github.com/acacia-hms/service-frontdesk/internal/platform/middleware"
	"github.com/acacia-hms/service-frontdesk/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-frontdesk")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-frontdesk",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := dbConfig.DatabaseURL()
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize unit of work and standalone repositories
	uow := repository.NewGormUnitOfWork(db)
	roomRepo := repository.NewGormRoomRepository(db)
	guestRepo := repository.NewGormGuestRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)

	// Initialize application services
	bookingService := application.NewBookingService(uow, kafkaProducer, log)
	roomService := application.NewRoomService(roomRepo, log)
	guestService := application.NewGuestService(guestRepo, log)
	housekeepingService := application.NewHousekeepingService(
		uow,
		housekeeping.NewFSMValidator(),
		kafkaProducer,
		log,
	)
	billingService := application.NewBillingService(bookingRepo, paymentRepo, cfg.TaxRate, log)

	// Start the checkout event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "frontdesk-service"
	checkoutConsumer := frontdeskEvents.NewCheckoutEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		housekeepingService,
		log,
	)
	defer func() { _ = checkoutConsumer.Close() }()

	go func() {
		log.Info("starting checkout event consumer")
		if err := checkoutConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("checkout event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService)
	roomHandler := handler.NewRoomHandler(roomService)
	guestHandler := handler.NewGuestHandler(guestService)
	housekeepingHandler := handler.NewHousekeepingHandler(housekeepingService)
	billingHandler := handler.NewBillingHandler(billingService)
	adminHandler := handler.NewAdminHandler(bookingService, roomService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-frontdesk")
	healthHandler.RegisterRoutes(router)

	// Register routes
	bookingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	roomHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	guestHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	housekeepingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	billingHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
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

	log.Info("shutting down service-frontdesk...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-frontdesk stopped")
}
