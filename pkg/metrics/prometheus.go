// Package metrics provides Prometheus metrics for the Gully daily game service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the Gully service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a daily guessing game
	selectionsTotal    prometheus.Counter
	selectionPoolReset prometheus.Counter
	cluesRevealed      *prometheus.CounterVec
	guessesTotal       *prometheus.CounterVec
	guessStarsAwarded  *prometheus.CounterVec

	// AI Collaborator Metrics
	aiRequests  *prometheus.CounterVec
	aiLatency   *prometheus.HistogramVec

	// Operational Health Metrics
	playerPoolSize prometheus.Gauge
	recencyLogSize prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "gully",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics
	m.selectionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selections_total",
		Help:      "Total number of daily player selections made",
	})

	m.selectionPoolReset = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selection_pool_resets_total",
		Help:      "Total number of times the no-repeat window was reset because the pool was exhausted",
	})

	m.cluesRevealed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "clues_revealed_total",
		Help:      "Total number of clues served, labeled by tier",
	}, []string{"tier"})

	m.guessesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guesses_total",
		Help:      "Total number of guesses submitted, labeled by outcome",
	}, []string{"outcome"})

	m.guessStarsAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guess_stars_awarded_total",
		Help:      "Stars awarded on correct guesses, labeled by star value",
	}, []string{"stars"})

	// AI Collaborator Metrics
	m.aiRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ai_requests_total",
		Help:      "Total number of AI collaborator calls, labeled by kind and outcome",
	}, []string{"kind", "outcome"})

	m.aiLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ai_request_latency_milliseconds",
		Help:      "Histogram of AI collaborator latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"kind"})

	// Operational Health Metrics
	m.playerPoolSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_pool_size",
		Help:      "Number of players loaded into the read-only table",
	})

	m.recencyLogSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recency_log_size",
		Help:      "Number of entries currently held in the recency log",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, labeled by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	// Enhanced Error Metrics
	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Total errors labeled by type and severity",
	}, []string{"type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total errors labeled by endpoint, method and type",
	}, []string{"endpoint", "method", "type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_latency_milliseconds",
		Help:      "Histogram of latency for failed operations in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"component", "type"})

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Histogram of GC pause times in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordSelection increments the daily selection counter.
func RecordSelection() {
	globalManager.selectionsTotal.Inc()
}

// RecordPoolReset increments the window reset counter.
func RecordPoolReset() {
	globalManager.selectionPoolReset.Inc()
}

// RecordClueRevealed increments the clue reveal counter for a tier.
func RecordClueRevealed(tier int) {
	globalManager.cluesRevealed.WithLabelValues(strconv.Itoa(tier)).Inc()
}

// RecordGuess increments the guess counter with the given outcome.
func RecordGuess(correct bool) {
	outcome := "incorrect"
	if correct {
		outcome = "correct"
	}
	globalManager.guessesTotal.WithLabelValues(outcome).Inc()
}

// RecordGuessRejected increments the guess counter for malformed input.
func RecordGuessRejected() {
	globalManager.guessesTotal.WithLabelValues("rejected").Inc()
}

// RecordStarsAwarded increments the star award counter for a correct guess.
func RecordStarsAwarded(stars int) {
	globalManager.guessStarsAwarded.WithLabelValues(strconv.Itoa(stars)).Inc()
}

// RecordAIRequest increments the AI request counter.
func RecordAIRequest(kind, outcome string) {
	globalManager.aiRequests.WithLabelValues(kind, outcome).Inc()
}

// RecordAILatency records AI collaborator call latency.
func RecordAILatency(kind string, durationMs float64) {
	globalManager.aiLatency.WithLabelValues(kind).Observe(durationMs)
}

// UpdatePlayerPoolSize sets the player table size gauge.
func UpdatePlayerPoolSize(n int) {
	globalManager.playerPoolSize.Set(float64(n))
}

// UpdateRecencyLogSize sets the recency log size gauge.
func UpdateRecencyLogSize(n int) {
	globalManager.recencyLogSize.Set(float64(n))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordErrorByType increments the typed error counter.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the per-endpoint error counter.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records latency for a failed operation.
func RecordErrorLatency(component, errorType string, durationMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the allocated memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime records an observed GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}
