package service

import (
	"context"
	"time"

	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/pkg/constants"
)

//go:generate mockery --name RiskEngine --output mocks --outpkg mocks
// RiskEngine groups the pure risk operations used by the assessment flows.
// RiskEngine 聚合了评估流程使用的纯风险计算操作。
type RiskEngine interface {
	// CalculateRiskScore scores a business profile; nil means no profile was supplied.
	// CalculateRiskScore 为商户资料打分；nil 表示未提供资料。
	CalculateRiskScore(profile *models.BusinessProfile) float64

	// GetRiskLevel classifies a score into a risk tier.
	// GetRiskLevel 将分数划分为风险等级。
	GetRiskLevel(score float64) models.RiskTier

	// GetRiskInsights returns up to three findings for a score.
	// GetRiskInsights 返回最多三条安全发现。
	GetRiskInsights(score float64, domain string) []models.Insight

	// GetVulnerabilities returns up to four vulnerabilities for a score.
	// GetVulnerabilities 返回最多四个漏洞。
	GetVulnerabilities(score float64) []models.Vulnerability

	// GetRiskGrade returns the letter grade for a score.
	// GetRiskGrade 返回分数对应的字母等级。
	GetRiskGrade(score float64) models.RiskGrade
}

//go:generate mockery --name AssessmentCache --output mocks --outpkg mocks
// AssessmentCache stores serialized assessment results keyed by their inputs.
// AssessmentCache 以输入为键存储序列化后的评估结果。
type AssessmentCache interface {
	// Get returns the cached bytes and whether the key was present.
	// Get 返回缓存内容以及键是否存在。
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key using the cache's configured TTL.
	// Set 使用缓存配置的 TTL 存储值。
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key from the cache.
	// Delete 从缓存中删除键。
	Delete(ctx context.Context, key string) error
}

//go:generate mockery --name AuditSink --output mocks --outpkg mocks
// AuditSink receives assessment events.
// AuditSink 接收评估事件。
type AuditSink interface {
	// Publish delivers one event; implementations may batch asynchronously.
	// Publish 投递一个事件；实现可以异步批量发送。
	Publish(ctx context.Context, event models.AssessmentEvent) error

	// Close flushes buffered events and releases resources.
	// Close 刷新缓冲事件并释放资源。
	Close() error
}

//go:generate mockery --name RateLimiter --output mocks --outpkg mocks
// RateLimiter decides whether a caller may proceed.
// RateLimiter 决定调用方是否可以继续请求。
type RateLimiter interface {
	// Allow consumes one unit for identifier within scope.
	// Allow 在给定范围内为标识符消耗一个配额。
	Allow(ctx context.Context, scope constants.RateLimitScope, identifier string) (allowed bool, remaining int, resetAt time.Time, err error)
}
