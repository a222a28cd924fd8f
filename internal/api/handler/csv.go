package handler

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/taichi6930/race-schedule-api-sub006/internal/api/request"
	"github.com/taichi6930/race-schedule-api-sub006/internal/api/response"
	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	"github.com/taichi6930/race-schedule-api-sub006/internal/services/csvio"
)

// maxImportBytes caps a CSV import body
const maxImportBytes = 32 << 20

// CSVHandler handles bulk import and export
type CSVHandler struct {
	csv     *csvio.Service
	metrics *metrics.Metrics
	errors  errorWriter
}

// NewCSVHandler creates a new CSV handler
func NewCSVHandler(csv *csvio.Service, m *metrics.Metrics) *CSVHandler {
	return &CSVHandler{
		csv:     csv,
		metrics: m,
		errors:  errorWriter{metrics: m},
	}
}

// Import handles POST /api/v1/import/{entity}
func (h *CSVHandler) Import(w http.ResponseWriter, r *http.Request) {
	entity, err := csvio.ParseEntity(mux.Vars(r)["entity"])
	if err != nil {
		h.errors.write(w, err)
		return
	}

	n, err := h.csv.Import(r.Context(), entity, http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		h.errors.write(w, err)
		return
	}
	h.metrics.AddRowsWritten(string(entity), n)

	response.JSON(w, http.StatusOK, response.ImportResult{Entity: string(entity), Imported: n})
}

// Export handles GET /api/v1/export/{entity}. The document is buffered so a
// failed search still produces a JSON error.
func (h *CSVHandler) Export(w http.ResponseWriter, r *http.Request) {
	entity, err := csvio.ParseEntity(mux.Vars(r)["entity"])
	if err != nil {
		h.errors.write(w, err)
		return
	}
	params, err := request.ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.errors.write(w, err)
		return
	}

	var buf bytes.Buffer
	if _, err := h.csv.Export(r.Context(), entity, params, &buf); err != nil {
		h.errors.write(w, err)
		return
	}

	response.CSV(w, string(entity)+"s.csv", buf.Bytes())
}
