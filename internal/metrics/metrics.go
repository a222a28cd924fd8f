package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taichi6930/race-schedule-api-sub006/internal/model"
)

// Metrics holds all Prometheus metrics for the application. Each instance
// owns its registry so several apps can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	IdentifierRejected  *prometheus.CounterVec
	ScheduleRowsWritten *prometheus.CounterVec
	Panics              prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racesched_http_requests_total",
			Help: "HTTP requests by route template, method and status code",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "racesched_http_request_duration_seconds",
			Help:    "HTTP request latency by route template",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		IdentifierRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racesched_identifier_rejections_total",
			Help: "Identifiers and civil times rejected at the API boundary, by reason",
		}, []string{"reason"}),
		ScheduleRowsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "racesched_schedule_rows_written_total",
			Help: "Places and races saved, by entity",
		}, []string{"entity"}),
		Panics: factory.NewCounter(prometheus.CounterOpts{
			Name: "racesched_http_panics_total",
			Help: "Handler panics recovered and answered with a 500",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveRejection counts err if it is a codec or civil time rejection
func (m *Metrics) ObserveRejection(err error) {
	if reason := RejectionReason(err); reason != "" {
		m.IdentifierRejected.WithLabelValues(reason).Inc()
	}
}

// ObservePanic counts one recovered handler panic
func (m *Metrics) ObservePanic() {
	m.Panics.Inc()
}

// AddRowsWritten counts saved entities
func (m *Metrics) AddRowsWritten(entity string, n int) {
	m.ScheduleRowsWritten.WithLabelValues(entity).Add(float64(n))
}

// RejectionReason classifies err into a low-cardinality label. It returns ""
// for errors that are not rejections of client input.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, model.ErrRangeViolation):
		return "out_of_range"
	case errors.Is(err, model.ErrDateParse):
		return "invalid_date"
	case errors.Is(err, model.ErrIdentifierFormat):
		return "invalid_identifier"
	default:
		return ""
	}
}
