package middleware

import (
	"net/http"
	"time"

	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
)

// Metrics records request counts and latency labelled by route template
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(RouteTemplate(r), r.Method, wrapped.status, time.Since(start))
		})
	}
}
