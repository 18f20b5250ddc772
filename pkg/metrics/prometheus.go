// Package metrics provides Prometheus metrics for the channel allocation service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Allocation outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeConfigError = "config_error"
	OutcomeError       = "error"
)

// Manager owns the Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Allocation metrics
	allocations       *prometheus.CounterVec
	allocationLatency prometheus.Histogram
	channelsAssigned  prometheus.Counter
	unfilledSlots     *prometheus.CounterVec
	unassignedPeople  prometheus.Counter
	excludedPeople    prometheus.Counter
	batchSize         prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	memoryUsage    prometheus.Gauge
	goroutineCount prometheus.Gauge
	gcPause        prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out of /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rider",
		subsystem:        "channels",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.allocations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "allocations_total",
		Help:      "Allocation runs by outcome",
	}, []string{"outcome"})

	m.allocationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "allocation_duration_milliseconds",
		Help:      "Time to normalize, resolve and allocate one booking",
		Buckets:   m.histogramBuckets,
	})

	m.channelsAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "channels_assigned_total",
		Help:      "Channels given to a performer",
	})

	m.unfilledSlots = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unfilled_slots_total",
		Help:      "Applicable slots left without a performer, by family",
	}, []string{"family"})

	m.unassignedPeople = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unassigned_people_total",
		Help:      "Performers who received no channel",
	})

	m.excludedPeople = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "excluded_people_total",
		Help:      "Roster members dropped because no instrument could be derived",
	})

	m.batchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size",
		Help:      "Bookings per batch allocation request",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.memoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Heap bytes allocated",
	})

	m.goroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Number of goroutines",
	})

	m.gcPause = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "gc_pause_milliseconds",
		Help:      "Average GC pause",
	})
}

// RecordAllocation counts one allocation run and observes its duration.
func (m *Manager) RecordAllocation(outcome string, durationMs float64) error {
	switch outcome {
	case OutcomeOK, OutcomeConfigError, OutcomeError:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutcome, outcome)
	}
	if !m.enabled {
		return nil
	}
	m.allocations.WithLabelValues(outcome).Inc()
	m.allocationLatency.Observe(durationMs)
	return nil
}

// RecordShortfall records the data-level shortfalls of a finished run.
func (m *Manager) RecordShortfall(assigned int, unfilledFamilies []string, unassigned, excluded int) {
	if !m.enabled {
		return
	}
	m.channelsAssigned.Add(float64(assigned))
	for _, f := range unfilledFamilies {
		m.unfilledSlots.WithLabelValues(f).Inc()
	}
	m.unassignedPeople.Add(float64(unassigned))
	m.excludedPeople.Add(float64(excluded))
}

// ObserveBatchSize records the size of a batch request.
func (m *Manager) ObserveBatchSize(n int) {
	if !m.enabled {
		return
	}
	m.batchSize.Observe(float64(n))
}

// RecordHTTPRequest counts an HTTP request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an error response.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystem sets the memory, goroutine and GC pause gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	if !m.enabled {
		return
	}
	m.memoryUsage.Set(float64(memoryBytes))
	m.goroutineCount.Set(float64(goroutines))
	m.gcPause.Set(avgGCPauseMs)
}

// Global returns the process-wide manager registered on the custom registry.
func Global() *Manager {
	return globalManager
}

// RecordAllocation records on the global manager.
func RecordAllocation(outcome string, durationMs float64) error {
	return globalManager.RecordAllocation(outcome, durationMs)
}

// RecordShortfall records on the global manager.
func RecordShortfall(assigned int, unfilledFamilies []string, unassigned, excluded int) {
	globalManager.RecordShortfall(assigned, unfilledFamilies, unassigned, excluded)
}

// ObserveBatchSize records on the global manager.
func ObserveBatchSize(n int) {
	globalManager.ObserveBatchSize(n)
}

// RecordHTTPRequest records on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records on the global manager.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystem records on the global manager.
func UpdateSystem(memoryBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memoryBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the custom registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
