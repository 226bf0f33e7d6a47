package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "securepay"

// Metrics manages the Prometheus metrics.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec
	AssessmentLatency  *prometheus.HistogramVec
	CacheAccesses      *prometheus.CounterVec
	RateLimitHits      *prometheus.CounterVec
	AuditPublishes     *prometheus.CounterVec
	QuotesTotal        *prometheus.CounterVec
	HTTPActiveRequests *prometheus.GaugeVec
	HTTPRequestLatency *prometheus.HistogramVec
	HTTPRequestErrors  *prometheus.CounterVec
}

// NewMetrics creates the Prometheus metrics and registers them with reg.
// A nil reg registers with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AssessmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "assessments_total",
				Help:      "Total number of risk assessments by flow, level and result.",
			},
			[]string{"flow", "level", "result"},
		),
		AssessmentLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "assessment_latency_seconds",
				Help:      "Latency of risk assessments.",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"flow"},
		),
		CacheAccesses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "cache_accesses_total",
				Help:      "Total number of cache lookups by cache and result.",
			},
			[]string{"cache", "result"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "rate_limit_hits_total",
				Help:      "Total number of rate limit hits.",
			},
			[]string{"scope"},
		),
		AuditPublishes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "audit_publishes_total",
				Help:      "Total number of audit events published by sink and result.",
			},
			[]string{"sink", "result"},
		),
		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "quotes_total",
				Help:      "Total number of plan quotes issued.",
			},
			[]string{"plan_id"},
		),
		HTTPActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "http_active_requests",
				Help:      "Number of in-flight HTTP requests.",
			},
			[]string{"path", "method"},
		),
		HTTPRequestLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"path", "method", "status"},
		),
		HTTPRequestErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_errors_total",
				Help:      "Total number of HTTP responses with status >= 400.",
			},
			[]string{"path", "method", "status"},
		),
	}
}

// RecordAssessment records metrics for an assessment flow.
func (m *Metrics) RecordAssessment(flow, level string, success bool, duration time.Duration) {
	m.AssessmentsTotal.WithLabelValues(flow, level, resultLabel(success)).Inc()
	m.AssessmentLatency.WithLabelValues(flow).Observe(duration.Seconds())
}

// RecordCacheAccess records a cache hit or miss.
func (m *Metrics) RecordCacheAccess(cacheType string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheAccesses.WithLabelValues(cacheType, result).Inc()
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(scope string) {
	m.RateLimitHits.WithLabelValues(scope).Inc()
}

// RecordAuditPublish records the outcome of an audit publish.
func (m *Metrics) RecordAuditPublish(sink string, success bool) {
	m.AuditPublishes.WithLabelValues(sink, resultLabel(success)).Inc()
}

// RecordQuote records an issued quote.
func (m *Metrics) RecordQuote(planID string) {
	m.QuotesTotal.WithLabelValues(planID).Inc()
}

// ActiveRequestsInc marks the start of an HTTP request.
func (m *Metrics) ActiveRequestsInc(path, method string) {
	m.HTTPActiveRequests.WithLabelValues(path, method).Inc()
}

// ActiveRequestsDec marks the end of an HTTP request.
func (m *Metrics) ActiveRequestsDec(path, method string) {
	m.HTTPActiveRequests.WithLabelValues(path, method).Dec()
}

// ObserveRequestDuration records the latency of a finished HTTP request.
func (m *Metrics) ObserveRequestDuration(path, method string, status int, seconds float64) {
	m.HTTPRequestLatency.WithLabelValues(path, method, strconv.Itoa(status)).Observe(seconds)
}

// IncRequestErrors counts an HTTP error response.
func (m *Metrics) IncRequestErrors(path, method string, status int) {
	m.HTTPRequestErrors.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
