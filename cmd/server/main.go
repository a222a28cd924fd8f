package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api"
	"github.com/taichi6930/race-schedule-api-sub006/internal/config"
	"github.com/taichi6930/race-schedule-api-sub006/internal/factory"
)

func main() {
	configPath := flag.String("config", os.Getenv("RACESCHED_CONFIG"), "path to a YAML config file")
	flag.Parse()

	// Bootstrap logger until the configured one exists
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger = cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(cfg.FactoryConfig(logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer app.Close()

	if !app.AuthService.Enabled() {
		logger.Warn("no API key hash configured, write endpoints are disabled")
	}

	server := api.NewServer(app.Router(), cfg.ServerConfig(), logger)
	ln, err := server.Listen()
	if err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server started",
		slog.String("addr", ln.Addr().String()),
		slog.String("storage", cfg.Storage.Type),
	)

	if err := server.Run(ctx, ln); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
