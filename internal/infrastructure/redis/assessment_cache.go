package redis

import (
	"context"
	stderrors "errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
)

var _ service.AssessmentCache = (*AssessmentCache)(nil)

// AssessmentCache stores memoized assessment findings in Redis with a fixed TTL.
type AssessmentCache struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

// NewAssessmentCache creates a Redis-backed cache. A non-positive ttl uses
// DefaultRemoteCacheTTL.
func NewAssessmentCache(client goredis.UniversalClient, ttl time.Duration) *AssessmentCache {
	if ttl <= 0 {
		ttl = constants.DefaultRemoteCacheTTL
	}
	return &AssessmentCache{client: client, ttl: ttl}
}

func (c *AssessmentCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.ErrCacheConnectionFailed(err.Error()).WithCause(err)
	}
	return val, true, nil
}

func (c *AssessmentCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return errors.ErrCacheConnectionFailed(err.Error()).WithCause(err)
	}
	return nil
}

func (c *AssessmentCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.ErrCacheConnectionFailed(err.Error()).WithCause(err)
	}
	return nil
}
