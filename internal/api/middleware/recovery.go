package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/apierr"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	"github.com/taichi6930/race-schedule-api-sub006/internal/middleware"
)

// Recovery answers handler panics with the JSON INTERNAL_ERROR envelope
// and counts them.
func Recovery(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	}, m.ObservePanic)
}
