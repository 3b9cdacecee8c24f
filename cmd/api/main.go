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
	"go.uber.org/zap/zapcore"

	"tennis-rally-api/internal/config"
	"tennis-rally-api/internal/database"
	"tennis-rally-api/internal/job"
	"tennis-rally-api/internal/metrics"
	"tennis-rally-api/internal/repository"
	"tennis-rally-api/internal/router"
	"tennis-rally-api/internal/service"
)

const (
	dbConnectAttempts   = 10
	dbRetryInterval     = 3 * time.Second
	dbStatsInterval     = 15 * time.Second
	metricsJobTimeout   = 30 * time.Second
	shutdownGracePeriod = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Tennis Rally API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("base_path", cfg.Server.BasePath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, dbConnectAttempts, dbRetryInterval, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.SafeAutoMigrate(db, logger); err != nil {
			logger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	// Metrics
	m := metrics.NewWithLogger(logger)
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	database.StartDBStatsCollector(ctx, db, m, dbStatsInterval)

	// Session revocation store
	sessions := service.NewNoopSessionStore()
	redisClient, err := database.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis unavailable, logout will not revoke sessions", zap.Error(err))
	} else if redisClient != nil {
		sessions = service.NewRedisSessionStore(redisClient)
		defer redisClient.Close()
	}

	// Business metrics refresh
	collector := metrics.NewBusinessMetricsCollector(metrics.CollectorRepositories{
		Users:          repository.NewUserRepository(db),
		Events:         repository.NewEventRepository(db),
		Participations: repository.NewParticipationRepository(db),
		Rallies:        repository.NewRallyRepository(db),
		Quizzes:        repository.NewQuizRepository(db),
	}, m, logger)
	scheduler := job.NewScheduler(logger)
	if _, err := job.NewMetricsRefreshJob(collector, metricsJobTimeout, logger).Schedule(scheduler, cfg.Metrics.Schedule); err != nil {
		logger.Warn("Failed to schedule business metrics refresh",
			zap.String("schedule", cfg.Metrics.Schedule),
			zap.Error(err),
		)
	}
	scheduler.Start()

	r := router.Setup(router.Config{
		DB:                 db,
		Logger:             logger,
		BasePath:           cfg.Server.BasePath,
		JWTSecret:          cfg.Auth.JWTSecret,
		SessionTTL:         cfg.Auth.SessionTTL,
		RememberTTL:        cfg.Auth.RememberTTL,
		PasswordIterations: cfg.Auth.PasswordIterations,
		Sessions:           sessions,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		Metrics:            m,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Tennis Rally API listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
