package handler

import (
	"net/http"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/apierr"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
)

// errorWriter writes API errors and counts rejected client input
type errorWriter struct {
	metrics *metrics.Metrics
}

func (e errorWriter) write(w http.ResponseWriter, err error) {
	e.metrics.ObserveRejection(err)
	apierr.WriteError(w, err)
}
