package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/cabanas/quote-service/config"
	_ "github.com/cabanas/quote-service/docs"
	"github.com/cabanas/quote-service/internal/handlers"
	"github.com/cabanas/quote-service/internal/middleware"
	"github.com/cabanas/quote-service/internal/money"
	"github.com/cabanas/quote-service/internal/storage"
	"github.com/cabanas/quote-service/internal/telemetry"
)

const limiterCleanupInterval = 5 * time.Minute

// @title Quote Service API
// @version 1.0
// @description Booking quotes for seasonal cabin rentals: tariff lookup, quote calculation, share summaries and tariff administration.
// @BasePath /
// @securityDefinitions.apikey AdminKey
// @in header
// @name X-Admin-API-Key
func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Server exited")
}

func run(cfg *config.Config, logger *zerolog.Logger) error {
	logger.Info().Str("storage", cfg.Storage.Type).Msg("Starting quote service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.ConfigFrom(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	backend, closeStorage, err := storage.New(ctx, cfg.Storage, *logger)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer closeStorage()

	overrides := storage.NewOverrideStore(backend,
		storage.WithKey(cfg.Storage.OverridesKey),
		storage.WithCacheTTL(cfg.Storage.CacheTTL),
		storage.WithLogger(*logger),
	)
	if _, err := overrides.Load(ctx); err != nil {
		// the service still answers with built-in tables
		logger.Warn().Err(err).Msg("Failed to load tariff overrides")
	}

	if cfg.Auth.AdminAPIKey == "" {
		logger.Warn().Msg("ADMIN_API_KEY not set; admin endpoints will refuse requests")
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(*logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// routes registered after this point are rate limited
	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewIPRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	h := handlers.New(overrides, money.NewFormatter(cfg.Money.Locale, cfg.Money.Symbol), *logger)
	h.RegisterRoutes(router, middleware.AdminAuthMiddleware(cfg.Auth.AdminAPIKey))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(router, "quote-service"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.RunCleanup(gctx, limiterCleanupInterval)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "quote-service").Logger()
	return &logger
}
