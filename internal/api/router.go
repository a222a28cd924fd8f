package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/handler"
	"github.com/taichi6930/race-schedule-api-sub006/internal/api/middleware"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	commonmw "github.com/taichi6930/race-schedule-api-sub006/internal/middleware"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/auth"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/csvio"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/schedule"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger   *slog.Logger
	Schedule *schedule.Service
	CSV      *csvio.Service
	Auth     *auth.Service
	Metrics  *metrics.Metrics
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	scheduleHandler := handler.NewScheduleHandler(cfg.Schedule, cfg.Metrics)
	csvHandler := handler.NewCSVHandler(cfg.CSV, cfg.Metrics)
	identifierHandler := handler.NewIdentifierHandler(cfg.Metrics)

	// Create middleware
	authMiddleware := middleware.RequireAPIKey(cfg.Auth)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, cfg.Metrics))
	api.Use(commonmw.Logging(cfg.Logger))
	api.Use(commonmw.Metrics(cfg.Metrics))

	api.HandleFunc("/health", handler.Health(cfg.Auth.Enabled())).Methods(http.MethodGet)

	// Read routes
	api.HandleFunc("/places", scheduleHandler.ListPlaces).Methods(http.MethodGet)
	api.HandleFunc("/places/{id}", scheduleHandler.GetPlace).Methods(http.MethodGet)
	api.HandleFunc("/races", scheduleHandler.ListRaces).Methods(http.MethodGet)
	api.HandleFunc("/races/{id}", scheduleHandler.GetRace).Methods(http.MethodGet)
	api.HandleFunc("/export/{entity}", csvHandler.Export).Methods(http.MethodGet)
	api.HandleFunc("/identifiers/{id}", identifierHandler.Decode).Methods(http.MethodGet)

	// Write routes require an API key
	write := api.NewRoute().Subrouter()
	write.Use(authMiddleware)
	write.HandleFunc("/places", scheduleHandler.PutPlaces).Methods(http.MethodPut)
	write.HandleFunc("/races", scheduleHandler.PutRaces).Methods(http.MethodPut)
	write.HandleFunc("/places/{id}", scheduleHandler.DeletePlace).Methods(http.MethodDelete)
	write.HandleFunc("/races/{id}", scheduleHandler.DeleteRace).Methods(http.MethodDelete)
	write.HandleFunc("/import/{entity}", csvHandler.Import).Methods(http.MethodPost)

	r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)

	return r
}
