package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api"
	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/clock"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/csvio"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/schedule"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage"
	"github.com/taichi6930/race-schedule-api-sub006/internal/storage/memory"
	redisstorage "github.com/taichi6930/race-schedule-api-sub006/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Observability
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Services
	ScheduleService *schedule.Service
	CSVService      *csvio.Service
	AuthService     *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, writes are disabled
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SeedPlaces and SeedRaces are CSV files loaded at startup (optional)
	SeedPlaces string
	SeedRaces  string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authService, err := auth.New(cfg.AuthConfig)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clock.New(), authService, logger)

	if err := app.seed(context.Background(), cfg.SeedPlaces, cfg.SeedRaces); err != nil {
		return nil, err
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authService *auth.Service, logger *slog.Logger) *App {
	// Create services
	scheduleService := schedule.New(store, clk, logger)
	csvService := csvio.New(scheduleService, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Logger:          logger,
		Metrics:         metrics.New(),
		ScheduleService: scheduleService,
		CSVService:      csvService,
		AuthService:     authService,
	}
}

// seed loads places before races, since races require their place
func (a *App) seed(ctx context.Context, places, races string) error {
	for _, f := range []struct {
		entity csvio.Entity
		path   string
	}{
		{csvio.EntityPlace, places},
		{csvio.EntityRace, races},
	} {
		if f.path == "" {
			continue
		}
		if _, err := a.CSVService.LoadFromFile(ctx, f.entity, f.path); err != nil {
			return fmt.Errorf("seed %s: %w", f.path, err)
		}
	}
	return nil
}

// Router builds the HTTP handler for the app
func (a *App) Router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Logger:   a.Logger,
		Schedule: a.ScheduleService,
		CSV:      a.CSVService,
		Auth:     a.AuthService,
		Metrics:  a.Metrics,
	})
}

// Close releases storage connections
func (a *App) Close() error {
	if c, ok := a.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
