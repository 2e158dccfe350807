package infrastructure

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements the MetricsCollector port. Besides exporting
// Prometheus series it keeps running totals for the JSON metrics endpoint.
type PrometheusMetrics struct {
	weatherRequests *prometheus.CounterVec
	weatherLatency  *prometheus.HistogramVec
	payments        *prometheus.CounterVec
	alerts          *prometheus.CounterVec
	storeOps        *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec

	mu      sync.Mutex
	summary metricsSummary
}

type metricsSummary struct {
	weatherSuccess int64
	weatherFailure int64
	payments       map[string]int64
	alerts         map[string]int64
	storeFailures  int64
	storeOps       int64
}

// NewPrometheusMetrics registers the collectors on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		weatherRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weathermap_weather_requests_total",
				Help: "The total number of weather provider requests",
			},
			[]string{"kind", "success"},
		),
		weatherLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weathermap_weather_request_duration_seconds",
				Help:    "Weather provider request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		payments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weathermap_payments_total",
				Help: "The total number of simulated payments by plan and status",
			},
			[]string{"plan", "status"},
		),
		alerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weathermap_alerts_total",
				Help: "The total number of generated weather alerts",
			},
			[]string{"severity"},
		),
		storeOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weathermap_store_operations_total",
				Help: "The total number of collection store operations",
			},
			[]string{"operation", "success"},
		),
		storeLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "weathermap_store_operation_duration_seconds",
				Help:    "Collection store operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		summary: metricsSummary{
			payments: make(map[string]int64),
			alerts:   make(map[string]int64),
		},
	}
}

func (m *PrometheusMetrics) RecordWeatherRequest(kind string, success bool, duration time.Duration) {
	m.weatherRequests.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
	m.weatherLatency.WithLabelValues(kind).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.summary.weatherSuccess++
	} else {
		m.summary.weatherFailure++
	}
}

func (m *PrometheusMetrics) RecordPayment(planID, status string) {
	m.payments.WithLabelValues(planID, status).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary.payments[status]++
}

func (m *PrometheusMetrics) RecordAlert(severity string) {
	m.alerts.WithLabelValues(severity).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary.alerts[severity]++
}

func (m *PrometheusMetrics) RecordStoreOperation(operation string, success bool, duration time.Duration) {
	m.storeOps.WithLabelValues(operation, strconv.FormatBool(success)).Inc()
	m.storeLatency.WithLabelValues(operation).Observe(duration.Seconds())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary.storeOps++
	if !success {
		m.summary.storeFailures++
	}
}

// Summary returns the running totals as a JSON-friendly map
func (m *PrometheusMetrics) Summary() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	payments := make(map[string]int64, len(m.summary.payments))
	for k, v := range m.summary.payments {
		payments[k] = v
	}
	alerts := make(map[string]int64, len(m.summary.alerts))
	for k, v := range m.summary.alerts {
		alerts[k] = v
	}

	return map[string]interface{}{
		"weather": map[string]int64{
			"success": m.summary.weatherSuccess,
			"failure": m.summary.weatherFailure,
		},
		"payments": payments,
		"alerts":   alerts,
		"store": map[string]int64{
			"operations": m.summary.storeOps,
			"failures":   m.summary.storeFailures,
		},
	}
}
