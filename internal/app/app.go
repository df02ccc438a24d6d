// Package app wires configuration, the provider client, the dashboard service,
// the refresh scheduler and the HTTP server together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/api"
	"github.com/bobby-s-dev/weather-dashboard/internal/clock"
	"github.com/bobby-s-dev/weather-dashboard/internal/config"
	"github.com/bobby-s-dev/weather-dashboard/internal/scheduler"
	"github.com/bobby-s-dev/weather-dashboard/internal/services"
	"github.com/bobby-s-dev/weather-dashboard/pkg/client"
)

// NewLogger builds the process logger for level.
func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return cfg.Build()
}

func NewClient(cfg *config.Config, logger *zap.Logger) *client.OpenWeatherClient {
	return client.NewOpenWeatherClient(
		cfg.WeatherAPI.OpenWeatherAPIKey,
		cfg.WeatherAPI.OpenWeatherURL,
		client.ClientConfig{
			Timeout:        10 * time.Second,
			MaxRetries:     cfg.Retry.MaxRetries,
			RetryDelay:     cfg.Retry.Delay,
			Multiplier:     cfg.Retry.Multiplier,
			Threshold:      cfg.CircuitBreaker.Threshold,
			BreakerTimeout: cfg.CircuitBreaker.Timeout,
			RateLimit:      cfg.WeatherAPI.RateLimit,
			RateBurst:      cfg.WeatherAPI.RateBurst,
		},
		logger,
	)
}

// NewDashboard builds the dashboard service with its own payload cache.
func NewDashboard(cfg *config.Config, weatherClient services.WeatherClient, logger *zap.Logger) *services.Dashboard {
	cache := services.NewPayloadCache(cfg.Cache.Duration, cfg.Cache.MaxSize, logger)
	return services.NewDashboard(weatherClient, cache, clock.SystemClock{}, logger)
}

type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	dashboard *services.Dashboard
	scheduler *scheduler.Scheduler
	app       *fiber.App
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	dashboard := NewDashboard(cfg, NewClient(cfg, logger), logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		ErrorHandler:          api.ErrorHandler,
		DisableStartupMessage: true,
	})

	handler := api.NewHandler(dashboard, cfg.Scheduler.DefaultCities, cfg.Display.DefaultUnit, logger)
	api.SetupRoutes(app, handler, logger)

	return &Server{
		cfg:       cfg,
		logger:    logger,
		dashboard: dashboard,
		scheduler: scheduler.NewScheduler(dashboard, cfg.Scheduler.DefaultCities, cfg.Scheduler.RefreshSchedule, logger),
		app:       app,
	}
}

// Run serves until ctx is canceled, then shuts everything down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + s.cfg.Server.Port
		s.logger.Info("Starting server", zap.String("address", addr))
		errCh <- s.app.Listen(addr)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("server failed: %w", serveErr)
		}
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.scheduler.Stop()
	s.dashboard.Close()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		s.logger.Error("Server shutdown failed", zap.Error(err))
	}

	s.logger.Info("Server stopped")
	return serveErr
}
