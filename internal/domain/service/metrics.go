package service

import (
	"time"
)

// Metrics defines the interface for collecting business metrics.
// This abstraction allows the application layer to remain independent of the specific monitoring implementation (e.g., Prometheus).
// Metrics 定义了收集业务指标的接口。
// 这种抽象使应用层能够独立于具体的监控实现（例如 Prometheus）。
type Metrics interface {
	// RecordAssessment records one completed or failed assessment flow.
	// RecordAssessment 记录一次完成或失败的评估流程。
	RecordAssessment(flow, level string, success bool, duration time.Duration)

	// RecordCacheAccess records a cache hit or miss.
	// RecordCacheAccess 记录缓存命中或未命中。
	RecordCacheAccess(cacheType string, hit bool)

	// RecordRateLimitHit records an event when a rate limit is triggered.
	// RecordRateLimitHit 记录触发速率限制的事件。
	RecordRateLimitHit(scope string)

	// RecordAuditPublish records the outcome of publishing an audit event.
	// RecordAuditPublish 记录发布审计事件的结果。
	RecordAuditPublish(sink string, success bool)

	// RecordQuote records an issued plan quote.
	// RecordQuote 记录一次报价。
	RecordQuote(planID string)
}
