// Package monitoring provides adapters to connect the domain's metrics interface with a concrete implementation like Prometheus.
package monitoring

import (
	"time"

	"github.com/turtacn/securepay/internal/domain/service"
)

// MetricsAdapter implements the domain's service.Metrics interface, sending metrics to a Prometheus backend.
// MetricsAdapter 实现了域的 service.Metrics 接口，将指标发送到 Prometheus 后端。
type MetricsAdapter struct {
	metrics *Metrics
}

// NewMetricsAdapter wraps a Prometheus Metrics object so it satisfies the domain's Metrics interface.
// NewMetricsAdapter 包装 Prometheus Metrics 对象以满足域的 Metrics 接口。
func NewMetricsAdapter(metrics *Metrics) service.Metrics {
	return &MetricsAdapter{metrics: metrics}
}

func (a *MetricsAdapter) RecordAssessment(flow, level string, success bool, duration time.Duration) {
	a.metrics.RecordAssessment(flow, level, success, duration)
}

func (a *MetricsAdapter) RecordCacheAccess(cacheType string, hit bool) {
	a.metrics.RecordCacheAccess(cacheType, hit)
}

func (a *MetricsAdapter) RecordRateLimitHit(scope string) {
	a.metrics.RecordRateLimitHit(scope)
}

func (a *MetricsAdapter) RecordAuditPublish(sink string, success bool) {
	a.metrics.RecordAuditPublish(sink, success)
}

func (a *MetricsAdapter) RecordQuote(planID string) {
	a.metrics.RecordQuote(planID)
}
