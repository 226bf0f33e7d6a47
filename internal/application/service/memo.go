package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/turtacn/securepay/internal/domain/models"
	domainService "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/logger"
)

// riskFindings is the deterministic part of an assessment. It depends only
// on the flow inputs, so it can be memoized across requests.
type riskFindings struct {
	Score           float64                `json:"score"`
	Tier            models.RiskTier        `json:"tier"`
	Grade           models.RiskGrade       `json:"grade,omitempty"`
	Insights        []models.Insight       `json:"insights,omitempty"`
	Vulnerabilities []models.Vulnerability `json:"vulnerabilities"`
}

func (f riskFindings) clone() riskFindings {
	f.Insights = append([]models.Insight(nil), f.Insights...)
	f.Vulnerabilities = append(make([]models.Vulnerability, 0, len(f.Vulnerabilities)), f.Vulnerabilities...)
	return f
}

// findingsMemo memoizes riskFindings through an AssessmentCache. Concurrent
// misses for the same key are collapsed into one computation. Cache failures
// are logged and never fail the caller.
type findingsMemo struct {
	cache   domainService.AssessmentCache
	metrics domainService.Metrics
	logger  logger.Logger
	group   singleflight.Group
}

func newFindingsMemo(cache domainService.AssessmentCache, metrics domainService.Metrics, log logger.Logger) *findingsMemo {
	return &findingsMemo{cache: cache, metrics: metrics, logger: log}
}

func memoKey(flow string, parts ...string) string {
	key := fmt.Sprintf("%s:%s", constants.CacheKeyPrefixAssessment, flow)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (m *findingsMemo) load(ctx context.Context, key string, compute func() riskFindings) riskFindings {
	if m.cache == nil {
		return compute()
	}

	if f, ok := m.lookup(ctx, key); ok {
		return f.clone()
	}

	v, _, _ := m.group.Do(key, func() (interface{}, error) {
		f := compute()
		data, err := json.Marshal(f)
		if err != nil {
			m.logger.Warn(ctx, "Failed to encode findings for cache", logger.String("key", key), logger.Err(err))
			return f, nil
		}
		if err := m.cache.Set(ctx, key, data); err != nil {
			m.logger.Warn(ctx, "Failed to store findings in cache", logger.String("key", key), logger.Err(err))
		}
		return f, nil
	})
	return v.(riskFindings).clone()
}

func (m *findingsMemo) lookup(ctx context.Context, key string) (riskFindings, bool) {
	data, found, err := m.cache.Get(ctx, key)
	if err != nil {
		m.logger.Warn(ctx, "Assessment cache lookup failed, computing", logger.String("key", key), logger.Err(err))
		m.metrics.RecordCacheAccess("assessment", false)
		return riskFindings{}, false
	}
	if !found {
		m.metrics.RecordCacheAccess("assessment", false)
		return riskFindings{}, false
	}

	var f riskFindings
	if err := json.Unmarshal(data, &f); err != nil {
		m.logger.Warn(ctx, "Discarding undecodable cache entry", logger.String("key", key), logger.Err(err))
		_ = m.cache.Delete(ctx, key)
		m.metrics.RecordCacheAccess("assessment", false)
		return riskFindings{}, false
	}
	m.metrics.RecordCacheAccess("assessment", true)
	return f, true
}
