// Package metrics provides Prometheus metrics for the championship service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingestion
	filesLoaded   *prometheus.CounterVec
	filesMissing  *prometheus.CounterVec
	rowsIngested  prometheus.Counter
	rowsRejected  *prometheus.CounterVec
	fetchLatency  prometheus.Histogram
	loaderWorkers prometheus.Gauge

	// Snapshots
	snapshotLoads        *prometheus.CounterVec
	snapshotLoadDuration prometheus.Histogram
	snapshotLastUnix     prometheus.Gauge
	snapshotFiles        prometheus.Gauge
	snapshotRows         prometheus.Gauge

	// Classification
	classifications       *prometheus.CounterVec
	classificationLatency prometheus.Histogram
	ridersExcluded        *prometheus.CounterVec
	exports               *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

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
		namespace:        "ponis",
		subsystem:        "championship",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
}

func (m *Manager) histogram(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.filesLoaded = auto.NewCounterVec(m.counter("files_loaded_total", "Results files loaded, by day"), []string{"day"})
	m.filesMissing = auto.NewCounterVec(m.counter("files_missing_total", "Results files not found, by day"), []string{"day"})
	m.rowsIngested = auto.NewCounter(m.counter("rows_ingested_total", "Rows kept after blank and admission filtering"))
	m.rowsRejected = auto.NewCounterVec(m.counter("rows_rejected_total", "Rows dropped during ingestion, by reason"), []string{"reason"})
	m.fetchLatency = auto.NewHistogram(m.histogram("fetch_latency_milliseconds", "Time to fetch and parse one results file"))
	m.loaderWorkers = auto.NewGauge(m.gauge("loader_workers", "Workers used by the last load"))

	m.snapshotLoads = auto.NewCounterVec(m.counter("snapshot_loads_total", "Snapshot loads, by result"), []string{"result"})
	m.snapshotLoadDuration = auto.NewHistogram(m.histogram("snapshot_load_duration_milliseconds", "Time to build a full snapshot"))
	m.snapshotLastUnix = auto.NewGauge(m.gauge("snapshot_last_unixtime", "Unix time of the current snapshot"))
	m.snapshotFiles = auto.NewGauge(m.gauge("snapshot_files", "Files in the current snapshot"))
	m.snapshotRows = auto.NewGauge(m.gauge("snapshot_rows", "Rows in the current snapshot"))

	m.classifications = auto.NewCounterVec(m.counter("classifications_total", "Category classifications computed, by mode"), []string{"mode"})
	m.classificationLatency = auto.NewHistogram(m.histogram("classification_latency_milliseconds", "Time to classify one category"))
	m.ridersExcluded = auto.NewCounterVec(m.counter("riders_excluded_total", "Riders left out of a classification, by reason"), []string{"reason"})
	m.exports = auto.NewCounterVec(m.counter("exports_total", "Exports produced, by kind and format"), []string{"kind", "format"})

	m.httpRequests = auto.NewCounterVec(m.counter("http_requests_total", "Total number of HTTP requests"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(m.counter("errors_by_component_total", "Total number of errors by component"), []string{"component", "error_type"})
	m.errorRateByType = auto.NewCounterVec(m.counter("errors_by_type_total", "Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counter("errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogram("error_latency_milliseconds", "Latency of operations that resulted in errors"), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	gc := m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds")
	gc.Buckets = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
	m.systemGCPauseTime = auto.NewHistogram(gc)
}

// Ingestion.

// RecordFileLoaded counts a loaded results file.
func RecordFileLoaded(day string) { globalManager.filesLoaded.WithLabelValues(day).Inc() }

// RecordFileMissing counts a results file that was not found.
func RecordFileMissing(day string) { globalManager.filesMissing.WithLabelValues(day).Inc() }

// RecordRowsIngested adds kept rows.
func RecordRowsIngested(n int) { globalManager.rowsIngested.Add(float64(n)) }

// RecordRowsRejected adds dropped rows under reason.
func RecordRowsRejected(reason string, n int) {
	if n > 0 {
		globalManager.rowsRejected.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordFetchLatency records the time to fetch one file.
func RecordFetchLatency(latencyMs float64) { globalManager.fetchLatency.Observe(latencyMs) }

// UpdateLoaderWorkers sets the worker count of the loader.
func UpdateLoaderWorkers(n int) { globalManager.loaderWorkers.Set(float64(n)) }

// Snapshots.

// RecordSnapshotLoad records a snapshot build and its duration.
func RecordSnapshotLoad(result string, durationMs float64) {
	globalManager.snapshotLoads.WithLabelValues(result).Inc()
	globalManager.snapshotLoadDuration.Observe(durationMs)
}

// UpdateSnapshot publishes the shape of the current snapshot.
func UpdateSnapshot(unix int64, files, rows int) {
	globalManager.snapshotLastUnix.Set(float64(unix))
	globalManager.snapshotFiles.Set(float64(files))
	globalManager.snapshotRows.Set(float64(rows))
}

// Classification.

// RecordClassification records one category ranking.
func RecordClassification(mode string, latencyMs float64) {
	globalManager.classifications.WithLabelValues(mode).Inc()
	globalManager.classificationLatency.Observe(latencyMs)
}

// RecordRidersExcluded adds riders excluded under reason.
func RecordRidersExcluded(reason string, n int) {
	if n > 0 {
		globalManager.ridersExcluded.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordExport counts an export.
func RecordExport(kind, format string) { globalManager.exports.WithLabelValues(kind, format).Inc() }

// HTTP.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.systemGoroutineCount.Set(float64(count)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
