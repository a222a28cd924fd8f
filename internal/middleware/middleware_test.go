package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taichi6930/race-schedule-api-sub006/internal/metrics"
	logtest "github.com/taichi6930/race-schedule-api-sub006/internal/testutil"
)

func TestLoggingKeepsCallerRequestID(t *testing.T) {
	logs, logger := logtest.NewLogRecorder()

	var seen string
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/places", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	entries := logs.Entries("http request")
	require.Len(t, entries, 1)
	assert.Equal(t, "abc-123", entries[0]["request_id"])
	assert.EqualValues(t, http.StatusTeapot, entries[0]["status"])
}

func TestLoggingGeneratesRequestID(t *testing.T) {
	_, logger := logtest.NewLogRecorder()
	h := Logging(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRecoveryAnswersAndLogs(t *testing.T) {
	logs, logger := logtest.NewLogRecorder()
	panics := 0

	h := Logging(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	h = Recovery(logger, func(w http.ResponseWriter, _ *http.Request, recovered any) {
		assert.Equal(t, "boom", recovered)
		w.WriteHeader(http.StatusInternalServerError)
	}, func() { panics++ })(h)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1, panics)
	entries := logs.Entries("panic recovered")
	require.Len(t, entries, 1)
	assert.Equal(t, "req-1", entries[0]["request_id"])
}

func TestRecoveryReraisesAbort(t *testing.T) {
	h := Recovery(logtest.NopLogger(), func(http.ResponseWriter, *http.Request, any) {
		t.Fatal("handler must not run for ErrAbortHandler")
	}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := mux.NewRouter()
	r.Use(Metrics(m))
	r.HandleFunc("/places/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"keirin2024020101", "keirin2024020102"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/places/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/places/{id}", http.MethodGet, "404")))
}
