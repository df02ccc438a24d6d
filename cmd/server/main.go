package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/app"
	"github.com/bobby-s-dev/weather-dashboard/internal/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if leveled, err := app.NewLogger(cfg.Server.LogLevel); err != nil {
		logger.Warn("Keeping info logging", zap.Error(err))
	} else {
		logger = leveled
		zap.ReplaceGlobals(logger)
	}
	defer logger.Sync()

	logger.Info("Starting Weather Dashboard Service")

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewServer(cfg, logger)
	if err := server.Run(ctx); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}
