package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/duynhne/rslist-service/config"
	database "github.com/duynhne/rslist-service/internal/core"
	"github.com/duynhne/rslist-service/internal/core/domain"
	"github.com/duynhne/rslist-service/internal/core/repository/memory"
	"github.com/duynhne/rslist-service/internal/core/repository/psql"
	logicv1 "github.com/duynhne/rslist-service/internal/logic/v1"
	webv1 "github.com/duynhne/rslist-service/internal/web/v1"
	"github.com/duynhne/rslist-service/middleware"
)

func main() {
	// Load configuration from environment variables (with .env file support for local dev)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}

	// Initialize structured logger
	logger, err := middleware.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Service starting",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.String("env", cfg.Service.Env),
		zap.String("port", cfg.Service.Port),
	)

	// Initialize OpenTelemetry tracing
	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		tp, err = middleware.InitTracing(cfg)
		if err != nil {
			logger.Warn("Failed to initialize tracing", zap.Error(err))
		} else {
			logger.Info("Tracing initialized",
				zap.String("endpoint", cfg.Tracing.Endpoint),
				zap.Float64("sample_rate", cfg.Tracing.SampleRate),
			)
		}
	} else {
		logger.Info("Tracing disabled (TRACING_ENABLED=false)")
	}

	// Initialize Pyroscope profiling
	if cfg.Profiling.Enabled {
		if err := middleware.InitProfiling(cfg); err != nil {
			logger.Warn("Failed to initialize profiling", zap.Error(err))
		} else {
			logger.Info("Profiling initialized",
				zap.String("endpoint", cfg.Profiling.Endpoint),
			)
			defer middleware.StopProfiling()
		}
	} else {
		logger.Info("Profiling disabled (PROFILING_ENABLED=false)")
	}

	// Pick the store: PostgreSQL when configured, in-memory otherwise.
	var (
		userRepo  domain.UserRepository
		eventRepo domain.RsEventRepository
		closeDB   = func() {}
	)
	if cfg.Database.Host != "" {
		pool, err := database.Connect(context.Background(), &cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		closeDB = pool.Close
		userRepo = psql.NewUserRepository(pool)
		eventRepo = psql.NewRsEventRepository(pool)
		logger.Info("Database connection pool established")
	} else {
		store := memory.NewStore()
		userRepo = store.Users()
		eventRepo = store.Events()
		logger.Warn("DB_HOST not set, running on the in-memory store")
	}
	defer closeDB()

	userService := logicv1.NewUserService(userRepo)
	eventService := logicv1.NewRsEventService(eventRepo, userRepo)
	userHandler := webv1.NewUserHandler(userService)
	eventHandler := webv1.NewRsEventHandler(eventService)

	webv1.RegisterValidations()

	r := gin.Default()

	var isShuttingDown atomic.Bool

	// Tracing middleware (must be first for context propagation)
	r.Use(middleware.TracingMiddleware())

	// Logging middleware (must be before Prometheus middleware)
	r.Use(middleware.LoggingMiddleware(logger))

	// Prometheus middleware
	r.Use(middleware.PrometheusMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness check
	// Returns 503 once shutdown has started, to drain traffic before HTTP shutdown.
	r.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Metrics endpoint
	r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))

	// Rs event resource
	r.GET("/rs", eventHandler.Find)
	r.GET("/rs/list", eventHandler.List)
	r.POST("/rs", eventHandler.Create)
	r.PATCH("/rs/:id", eventHandler.Update)
	r.DELETE("/rs", eventHandler.Delete)

	// User resource
	r.GET("/user", userHandler.Find)
	r.GET("/user/list", userHandler.List)
	r.POST("/user", userHandler.Create)
	r.DELETE("/user", userHandler.Delete)

	srv := &http.Server{
		Addr:    ":" + cfg.Service.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting rslist service", zap.String("port", cfg.Service.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Fail readiness first and wait for propagation before closing the server.
	isShuttingDown.Store(true)
	drainDelay := cfg.GetReadinessDrainDelayDuration()
	if drainDelay > 0 {
		logger.Info("Readiness drain delay started", zap.Duration("delay", drainDelay))
		time.Sleep(drainDelay)
		logger.Info("Readiness drain delay completed", zap.Duration("delay", drainDelay))
	}

	shutdownTimeout := cfg.GetShutdownTimeoutDuration()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server...", zap.Duration("timeout", shutdownTimeout))

	// Cleanup sequence: HTTP server, then database, then tracer.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		logger.Info("HTTP server shutdown complete")
	}

	closeDB()
	logger.Info("Store closed")

	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Tracer shutdown error", zap.Error(err))
		} else {
			logger.Info("Tracer shutdown complete")
		}
	}

	logger.Info("Graceful shutdown complete")
}
