package cache

import (
	"context"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/logger"
)

var _ service.AssessmentCache = (*TieredCache)(nil)

// TieredCache reads through a local L1 cache to a remote L2 cache. L2 hits
// are copied into L1. L2 failures are logged and degrade to L1 only.
type TieredCache struct {
	l1      service.AssessmentCache
	l2      service.AssessmentCache
	metrics service.Metrics
	logger  logger.Logger
}

// NewTieredCache creates a tiered cache. l2 and metrics may be nil.
func NewTieredCache(l1, l2 service.AssessmentCache, metrics service.Metrics, log logger.Logger) *TieredCache {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &TieredCache{l1: l1, l2: l2, metrics: metrics, logger: log.WithComponent("cache")}
}

func (c *TieredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok, err := c.l1.Get(ctx, key); err == nil && ok {
		c.record("l1", true)
		return data, true, nil
	}
	c.record("l1", false)

	if c.l2 == nil {
		return nil, false, nil
	}

	data, ok, err := c.l2.Get(ctx, key)
	if err != nil {
		c.logger.Warn(ctx, "Remote cache read failed", logger.String("key", key), logger.Err(err))
		return nil, false, nil
	}
	c.record("l2", ok)
	if !ok {
		return nil, false, nil
	}

	_ = c.l1.Set(ctx, key, data)
	return data, true, nil
}

func (c *TieredCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.l1.Set(ctx, key, value); err != nil {
		return err
	}
	if c.l2 != nil {
		if err := c.l2.Set(ctx, key, value); err != nil {
			c.logger.Warn(ctx, "Remote cache write failed", logger.String("key", key), logger.Err(err))
		}
	}
	return nil
}

func (c *TieredCache) Delete(ctx context.Context, key string) error {
	if err := c.l1.Delete(ctx, key); err != nil {
		return err
	}
	if c.l2 != nil {
		return c.l2.Delete(ctx, key)
	}
	return nil
}

func (c *TieredCache) record(tier string, hit bool) {
	if c.metrics != nil {
		c.metrics.RecordCacheAccess(tier, hit)
	}
}
