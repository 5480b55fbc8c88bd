package provider

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "whisperd"

// PrometheusProviderMetrics implements ProviderMetrics on top of Prometheus collectors
type PrometheusProviderMetrics struct {
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	segments *prometheus.HistogramVec
}

// NewProviderMetrics creates provider metrics and registers them with reg
func NewProviderMetrics(reg prometheus.Registerer) *PrometheusProviderMetrics {
	m := &PrometheusProviderMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transcriptions_total",
			Help:      "Transcriptions attempted, by provider and outcome.",
		}, []string{"provider", "outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "transcription_failures_total",
			Help:      "Failed transcriptions, by provider and error code.",
		}, []string{"provider", "error_type"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "transcription_duration_seconds",
			Help:      "Time spent inside the model call.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"provider"}),
		segments: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "transcription_segments",
			Help:      "Segments produced per transcription.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"provider"}),
	}

	reg.MustRegister(m.requests, m.failures, m.latency, m.segments)
	return m
}

// RecordSuccess records a successful transcription
func (m *PrometheusProviderMetrics) RecordSuccess(provider string, latencySec float64, segments int) {
	m.requests.WithLabelValues(provider, "success").Inc()
	m.latency.WithLabelValues(provider).Observe(latencySec)
	m.segments.WithLabelValues(provider).Observe(float64(segments))
}

// RecordFailure records a failed transcription
func (m *PrometheusProviderMetrics) RecordFailure(provider string, errorType string) {
	m.requests.WithLabelValues(provider, "failure").Inc()
	m.failures.WithLabelValues(provider, errorType).Inc()
}

// NoopProviderMetrics discards all observations.
type NoopProviderMetrics struct{}

func (NoopProviderMetrics) RecordSuccess(string, float64, int) {}

func (NoopProviderMetrics) RecordFailure(string, string) {}
