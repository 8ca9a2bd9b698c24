// Package metrics provides Prometheus metrics for the mintboard report service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Report pipeline
	reportBuilds       prometheus.Counter
	reportBuildErrors  prometheus.Counter
	reportBuildLatency prometheus.Histogram
	reportCacheHits    prometheus.Counter
	reportCacheMisses  prometheus.Counter
	reportCacheEntries prometheus.Gauge

	// Snapshot
	snapshotLoads      prometheus.Counter
	snapshotLoadErrors prometheus.Counter
	snapshotPlayers    prometheus.Gauge
	snapshotEvents     prometheus.Gauge
	snapshotLastUnix   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mintboard",
		subsystem:        "report",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.reportBuilds = m.counter("builds_total", "Total number of reports built from a snapshot")
	m.reportBuildErrors = m.counter("build_errors_total", "Total number of report builds that failed")
	m.reportBuildLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "build_latency_milliseconds",
		Help:        "Histogram of report build latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})
	m.reportCacheHits = m.counter("cache_hits_total", "Reports served from the cache")
	m.reportCacheMisses = m.counter("cache_misses_total", "Report requests that required a build")
	m.reportCacheEntries = m.gauge("cache_entries", "Number of cached reports")

	m.snapshotLoads = m.counter("snapshot_loads_total", "Total number of snapshot loads")
	m.snapshotLoadErrors = m.counter("snapshot_load_errors_total", "Total number of failed snapshot loads")
	m.snapshotPlayers = m.gauge("snapshot_players", "Unique player addresses in the loaded snapshot")
	m.snapshotEvents = m.gauge("snapshot_events", "Mint events in the loaded snapshot")
	m.snapshotLastUnix = m.gauge("snapshot_last_load_unix", "Unix time of the last successful snapshot load")

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "HTTP errors by endpoint, method and error type",
			ConstLabels: m.constLabels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Errors by type and severity",
			ConstLabels: m.constLabels,
		},
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.constLabels,
	})
}

// RecordReportBuild records a finished report build and its latency.
func RecordReportBuild(latencyMs float64) {
	globalManager.reportBuilds.Inc()
	globalManager.reportBuildLatency.Observe(latencyMs)
}

// RecordReportBuildError increments the failed build counter.
func RecordReportBuildError() {
	globalManager.reportBuildErrors.Inc()
}

// RecordCacheHit increments the report cache hit counter.
func RecordCacheHit() {
	globalManager.reportCacheHits.Inc()
}

// RecordCacheMiss increments the report cache miss counter.
func RecordCacheMiss() {
	globalManager.reportCacheMisses.Inc()
}

// UpdateCacheEntries sets the number of cached reports.
func UpdateCacheEntries(count int) {
	globalManager.reportCacheEntries.Set(float64(count))
}

// RecordSnapshotLoad records a successful snapshot load with its size.
func RecordSnapshotLoad(players, events int, loadedAtUnix int64) {
	globalManager.snapshotLoads.Inc()
	globalManager.snapshotPlayers.Set(float64(players))
	globalManager.snapshotEvents.Set(float64(events))
	globalManager.snapshotLastUnix.Set(float64(loadedAtUnix))
}

// RecordSnapshotLoadError increments the failed snapshot load counter.
func RecordSnapshotLoadError() {
	globalManager.snapshotLoadErrors.Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage updates the system memory usage metric.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine count metric.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom registry for metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
