// Package metrics provides Prometheus metrics for the Prohunt service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the Prohunt service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Suggestion metrics
	suggestQueries *prometheus.CounterVec
	suggestLatency prometheus.Histogram

	// Recommendation client metrics
	recommendRequests   prometheus.Counter
	recommendTimeouts   prometheus.Counter
	recommendFailures   prometheus.Counter
	recommendLatency    prometheus.Histogram
	recommendCandidates prometheus.Histogram

	// Repository metrics
	storeQueryLatency prometheus.Histogram
	storeWriteLatency prometheus.Histogram
	storeErrors       prometheus.Counter

	// Avatar upload pipeline metrics
	uploadQueueSize     prometheus.Gauge
	uploadQueueCapacity prometheus.Gauge
	uploadEnqueueErrors prometheus.Counter
	uploadsProcessed    prometheus.Counter
	uploadFailures      prometheus.Counter
	uploadLatency       prometheus.Histogram
	uploadWorkerCount   prometheus.Gauge

	// Business scale gauges
	totalProfiles prometheus.Gauge
	totalProjects prometheus.Gauge

	// Error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prohunt",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // metric registration is naturally long
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.suggestQueries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "suggest_queries_total",
			Help:      "Total number of suggestion queries by vocabulary kind",
		},
		[]string{"kind"},
	)

	m.suggestLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggest_latency_milliseconds",
		Help:      "Histogram of suggestion filtering latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recommendRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommend_requests_total",
		Help:      "Total number of requests sent to the recommendation service",
	})

	m.recommendTimeouts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommend_timeouts_total",
		Help:      "Total number of recommendation requests that hit the deadline",
	})

	m.recommendFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommend_failures_total",
		Help:      "Total number of failed recommendation requests (non-timeout)",
	})

	m.recommendLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommend_latency_milliseconds",
		Help:      "Histogram of recommendation request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recommendCandidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommend_candidates",
		Help:      "Histogram of candidate counts returned per recommendation request",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_latency_milliseconds",
		Help:      "Histogram of repository read latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_write_latency_milliseconds",
		Help:      "Histogram of repository write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of repository errors (not-found excluded)",
	})

	m.uploadQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_queue_size",
		Help:      "Current size of the avatar upload queue",
	})

	m.uploadQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_queue_capacity",
		Help:      "Configured capacity of the avatar upload queue",
	})

	m.uploadEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_enqueue_errors_total",
		Help:      "Total number of avatar uploads rejected at enqueue time",
	})

	m.uploadsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uploads_processed_total",
		Help:      "Total number of avatar uploads stored successfully",
	})

	m.uploadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_failures_total",
		Help:      "Total number of avatar uploads that failed in the worker",
	})

	m.uploadLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_latency_milliseconds",
		Help:      "Histogram of avatar upload processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.uploadWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_worker_count",
		Help:      "Current number of avatar upload workers",
	})

	m.totalProfiles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_profiles",
		Help:      "Total number of profiles in the store",
	})

	m.totalProjects = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_projects",
		Help:      "Total number of projects in the store",
	})

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total errors by endpoint and method",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// HTTP metrics helpers.

func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Suggestion metrics helpers.

func RecordSuggestQuery(kind string) {
	globalManager.suggestQueries.WithLabelValues(kind).Inc()
}

func RecordSuggestLatency(latencyMs float64) {
	globalManager.suggestLatency.Observe(latencyMs)
}

// Recommendation metrics helpers.

func RecordRecommendRequest() {
	globalManager.recommendRequests.Inc()
}

func RecordRecommendTimeout() {
	globalManager.recommendTimeouts.Inc()
}

func RecordRecommendFailure() {
	globalManager.recommendFailures.Inc()
}

func RecordRecommendLatency(latencyMs float64) {
	globalManager.recommendLatency.Observe(latencyMs)
}

func RecordRecommendCandidates(count int) {
	globalManager.recommendCandidates.Observe(float64(count))
}

// Repository metrics helpers.

func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

func RecordStoreWriteLatency(latencyMs float64) {
	globalManager.storeWriteLatency.Observe(latencyMs)
}

func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// Upload pipeline metrics helpers.

func UpdateUploadQueueSize(size int) {
	globalManager.uploadQueueSize.Set(float64(size))
}

func UpdateUploadQueueCapacity(capacity int) {
	globalManager.uploadQueueCapacity.Set(float64(capacity))
}

func RecordUploadEnqueueError() {
	globalManager.uploadEnqueueErrors.Inc()
}

func RecordUploadProcessed() {
	globalManager.uploadsProcessed.Inc()
}

func RecordUploadFailure() {
	globalManager.uploadFailures.Inc()
}

func RecordUploadLatency(latencyMs float64) {
	globalManager.uploadLatency.Observe(latencyMs)
}

func UpdateUploadWorkerCount(count int) {
	globalManager.uploadWorkerCount.Set(float64(count))
}

// Business scale helpers.

func UpdateTotalProfiles(count int) {
	globalManager.totalProfiles.Set(float64(count))
}

func UpdateTotalProjects(count int) {
	globalManager.totalProjects.Set(float64(count))
}

// Error tracking helpers.

func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics helpers.

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used for serving /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
