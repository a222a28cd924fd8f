package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// IdentifierHandler decodes identifiers without touching storage
type IdentifierHandler struct {
	errors errorWriter
}

// NewIdentifierHandler creates a new identifier handler
func NewIdentifierHandler(m *metrics.Metrics) *IdentifierHandler {
	return &IdentifierHandler{errors: errorWriter{metrics: m}}
}

// Decode handles GET /api/v1/identifiers/{id}
func (h *IdentifierHandler) Decode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	c, err := model.ParseAnyID(id)
	if err != nil {
		h.errors.write(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.IdentifierFromComponents(id, c))
}
