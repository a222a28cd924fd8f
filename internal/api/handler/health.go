package handler

import (
	"net/http"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
)

// HealthResponse is the body of GET /api/v1/health
type HealthResponse struct {
	Status string `json:"status"`
	Writes bool   `json:"writes"`
}

// Health returns a handler reporting liveness and whether writes are enabled
func Health(writesEnabled bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, HealthResponse{Status: "ok", Writes: writesEnabled})
	}
}
