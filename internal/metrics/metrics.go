package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec

	// Collaborator metrics (search, translate)
	CollaboratorRequestsTotal   *prometheus.CounterVec
	CollaboratorDurationSeconds *prometheus.HistogramVec

	// Harvest metrics
	HarvestRequestsTotal   *prometheus.CounterVec
	HarvestDurationSeconds *prometheus.HistogramVec
	HarvestRecordsTotal    *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Catalog metrics
	CatalogSize prometheus.Gauge

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_chat_requests_total",
				Help: "Total number of chat requests by intent and status",
			},
			[]string{"intent", "status"}, // status: success, fallback, error
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "margdarshak_chat_duration_seconds",
				Help:    "Chat request duration in seconds by intent",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"intent"}, // intent: college, exam, scholarship, admission, general
		),

		// Collaborator metrics
		CollaboratorRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_collaborator_requests_total",
				Help: "Total number of collaborator requests by service and status",
			},
			[]string{"service", "status"}, // service: search, translate
		),

		CollaboratorDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "margdarshak_collaborator_duration_seconds",
				Help:    "Collaborator request duration in seconds by service",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10}, // Matches 10s collaborator budget
			},
			[]string{"service"},
		),

		// Harvest metrics
		HarvestRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_harvest_requests_total",
				Help: "Total number of harvest requests by source and status",
			},
			[]string{"source", "status"}, // status: success, error, timeout
		),

		HarvestDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "margdarshak_harvest_duration_seconds",
				Help:    "Harvest request duration in seconds by source",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60}, // Matches 60s timeout + backoff
			},
			[]string{"source"}, // source: shiksha, collegedunia, getmyuni, collegeapi
		),

		HarvestRecordsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_harvest_records_total",
				Help: "Total number of records harvested by source",
			},
			[]string{"source"},
		),

		// Cache metrics
		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_cache_hits_total",
				Help: "Total number of harvest cache hits by source",
			},
			[]string{"source"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_cache_misses_total",
				Help: "Total number of harvest cache misses by source",
			},
			[]string{"source"},
		),

		// Catalog metrics
		CatalogSize: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "margdarshak_catalog_colleges",
				Help: "Number of colleges currently loaded in the regional catalog",
			},
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "margdarshak_http_errors_total",
				Help: "Total HTTP errors by type and route",
			},
			[]string{"error_type", "route"}, // error_type: bad_request, timeout, internal
		),
	}

	return m
}

// RecordChatRequest records a chat request with status
func (m *Metrics) RecordChatRequest(intent, status string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(intent, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordCollaboratorRequest records a collaborator call with status
func (m *Metrics) RecordCollaboratorRequest(service, status string, duration float64) {
	m.CollaboratorRequestsTotal.WithLabelValues(service, status).Inc()
	m.CollaboratorDurationSeconds.WithLabelValues(service).Observe(duration)
}

// RecordHarvestRequest records a harvest request with status
func (m *Metrics) RecordHarvestRequest(source, status string, duration float64) {
	m.HarvestRequestsTotal.WithLabelValues(source, status).Inc()
	m.HarvestDurationSeconds.WithLabelValues(source).Observe(duration)
}

// RecordHarvestRecords records the number of records harvested from a source
func (m *Metrics) RecordHarvestRecords(source string, count int) {
	m.HarvestRecordsTotal.WithLabelValues(source).Add(float64(count))
}

// RecordCacheHit records a harvest cache hit
func (m *Metrics) RecordCacheHit(source string) {
	m.CacheHitsTotal.WithLabelValues(source).Inc()
}

// RecordCacheMiss records a harvest cache miss
func (m *Metrics) RecordCacheMiss(source string) {
	m.CacheMissesTotal.WithLabelValues(source).Inc()
}

// SetCatalogSize records the current regional catalog size
func (m *Metrics) SetCatalogSize(n int) {
	m.CatalogSize.Set(float64(n))
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, route string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, route).Inc()
}
