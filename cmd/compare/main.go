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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farepilot/farepilot/internal/capture"
	"github.com/farepilot/farepilot/internal/compare"
	"github.com/farepilot/farepilot/internal/deeplink"
	"github.com/farepilot/farepilot/internal/drivers"
	"github.com/farepilot/farepilot/internal/fare"
	"github.com/farepilot/farepilot/pkg/common"
	"github.com/farepilot/farepilot/pkg/config"
	"github.com/farepilot/farepilot/pkg/database"
	"github.com/farepilot/farepilot/pkg/errors"
	"github.com/farepilot/farepilot/pkg/eventbus"
	"github.com/farepilot/farepilot/pkg/httpclient"
	"github.com/farepilot/farepilot/pkg/logger"
	"github.com/farepilot/farepilot/pkg/middleware"
	redisclient "github.com/farepilot/farepilot/pkg/redis"
	"github.com/farepilot/farepilot/pkg/resilience"
	"github.com/farepilot/farepilot/pkg/tracing"
	"go.uber.org/zap"
)

const (
	serviceName = "compare-service"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting compare service",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	// Initialize Sentry for error tracking
	sentryConfig := errors.DefaultSentryConfig()
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	// Initialize OpenTelemetry tracer
	tracerEnabled := os.Getenv("OTEL_ENABLED") == "true"
	if tracerEnabled {
		tracerCfg := tracing.Config{
			ServiceName:    serviceName,
			ServiceVersion: version,
			Environment:    cfg.Server.Environment,
			OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Enabled:        true,
		}

		tp, err := tracing.InitTracer(tracerCfg, logger.Get())
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Failed to shutdown tracer", zap.Error(err))
				}
			}()
			logger.Info("OpenTelemetry tracing initialized successfully")
		}
	}

	redisClient, err := redisclient.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}()
	logger.Info("Connected to redis")

	// Tariffs come from Postgres when enabled, otherwise the built-in table.
	var tariffSource compare.TariffSource = fare.NewStaticSource(fare.DefaultTariffs())
	if cfg.Database.Enabled {
		db, err := database.NewPostgresPool(&cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to tariff database", zap.Error(err))
		}
		defer database.Close(db)
		tariffSource = fare.NewRepository(db)
		logger.Info("Tariff database connected")
	}

	var publisher compare.Publisher
	if cfg.NATS.Enabled {
		busCfg := eventbus.DefaultConfig()
		busCfg.URL = cfg.NATS.URL
		bus, err := eventbus.New(busCfg, serviceName)
		if err != nil {
			logger.Warn("Failed to connect to NATS, continuing without events", zap.Error(err))
		} else {
			defer bus.Close()
			publisher = bus
			logger.Info("Event bus connected", zap.String("url", cfg.NATS.URL))
		}
	}

	driverBreaker := resilience.NewCircuitBreaker(resilience.Settings{
		Name:             "driver-lookup",
		Interval:         time.Duration(cfg.Resilience.CircuitBreaker.IntervalSeconds) * time.Second,
		Timeout:          time.Duration(cfg.Resilience.CircuitBreaker.TimeoutSeconds) * time.Second,
		FailureThreshold: uint32(cfg.Resilience.CircuitBreaker.FailureThreshold),
		SuccessThreshold: uint32(cfg.Resilience.CircuitBreaker.SuccessThreshold),
	}, nil)

	driverHTTP := httpclient.NewClient(
		cfg.Collaborators.DriverLookupURL,
		cfg.Collaborators.DriverLookupTimeout,
		httpclient.WithDefaultRetry(),
	)
	driverClient := drivers.NewClient(driverHTTP, driverBreaker, redisClient, cfg.Collaborators.DriverCacheTTL)
	logger.Info("Driver lookup configured", zap.String("url", cfg.Collaborators.DriverLookupURL))

	captureStore := capture.NewStore(redisClient.Client, cfg.Collaborators.CaptureMaxAge)

	service := compare.NewService(
		tariffSource,
		captureStore,
		driverClient,
		deeplink.NewResolver(),
		publisher,
		cfg.Collaborators.DriverSearchRadiusKm,
		cfg.Collaborators.DriverLookupTimeout,
		cfg.Collaborators.CaptureTimeout,
	)
	handler := compare.NewHandler(service)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestTimeout(time.Duration(cfg.Server.WriteTimeout) * time.Second))
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	handler.RegisterRoutes(v1)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
