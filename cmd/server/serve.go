package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/roomfinder/service-rooms/internal/application"
	accountEvents "github.com/roomfinder/service-rooms/internal/events"
	"github.com/roomfinder/service-rooms/internal/handler"
	"github.com/roomfinder/service-rooms/internal/platform/auth"
	"github.com/roomfinder/service-rooms/internal/platform/database"
	"github.com/roomfinder/service-rooms/internal/platform/health"
	"github.com/roomfinder/service-rooms/internal/platform/kafka"
	"github.com/roomfinder/service-rooms/internal/platform/middleware"
	"github.com/roomfinder/service-rooms/internal/repository"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run auto-migration: %w", err)
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(postgresConfig(cfg).DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	// Initialize Kafka producer
	var publisher application.EventPublisher
	if cfg.KafkaConfig.Enabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = kafkaProducer
	} else {
		log.Warn("kafka disabled, booking events will not be published")
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)

	// Initialize application services
	accountService := application.NewAccountService(userRepo, jwtManager, log)
	roomService := application.NewRoomService(roomRepo, log)
	bookingService := application.NewBookingService(bookingRepo, roomRepo, publisher, log)
	dashboardService := application.NewDashboardService(roomRepo, bookingRepo)

	// Initialize and start account event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "rooms-service"
		accountConsumer := accountEvents.NewAccountEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			accountService,
			log,
		)
		defer func() { _ = accountConsumer.Close() }()

		go func() {
			log.Info("starting account event consumer")
			if err := accountConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("account event consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize HTTP handlers
	accountHandler := handler.NewAccountHandler(
		accountService,
		rate.NewLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst),
	)
	roomHandler := handler.NewRoomHandler(roomService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	adminHandler := handler.NewAdminHandler(bookingService, accountService, dashboardService)

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(middleware.ParseOrigins(cfg.CORSOrigins)...))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	authMW := middleware.AuthMiddleware(jwtManager, userRepo)
	accountHandler.RegisterRoutes(&router.RouterGroup, authMW)
	roomHandler.RegisterRoutes(&router.RouterGroup, authMW)
	bookingHandler.RegisterRoutes(&router.RouterGroup, authMW)
	adminHandler.RegisterRoutes(&router.RouterGroup, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("HTTP server error", zap.Error(err))
	}

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
	return nil
}
