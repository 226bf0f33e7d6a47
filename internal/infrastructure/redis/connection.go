// Package redis provides the Redis connection and the Redis-backed
// assessment cache.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// Connection manages the Redis client lifecycle. A single address yields a
// standalone client; several addresses yield a cluster client.
type Connection struct {
	cfg    config.RedisConfig
	client goredis.UniversalClient
	logger logger.Logger
}

// NewConnection creates a connection manager. Call Connect before use.
func NewConnection(cfg config.RedisConfig, log logger.Logger) *Connection {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = 10
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	return &Connection{cfg: cfg, logger: log.WithComponent("redis")}
}

// NewConnectionFromClient wraps an existing client, used by tests.
func NewConnectionFromClient(client goredis.UniversalClient, log logger.Logger) *Connection {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Connection{client: client, logger: log.WithComponent("redis")}
}

// Connect establishes the client and verifies it with a ping.
func (c *Connection) Connect(ctx context.Context) error {
	if c.client != nil {
		c.logger.Warn(ctx, "Redis connection already initialized")
		return nil
	}
	if len(c.cfg.Addresses) == 0 {
		return errors.ErrCacheConnectionFailed("no redis addresses configured")
	}

	client := goredis.NewUniversalClient(&goredis.UniversalOptions{
		Addrs:        c.cfg.Addresses,
		Password:     c.cfg.Password,
		DB:           c.cfg.DB,
		PoolSize:     c.cfg.PoolSize,
		MinIdleConns: c.cfg.MinIdleConns,
		DialTimeout:  c.cfg.DialTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, c.cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		c.logger.Error(ctx, "Redis ping failed", err, logger.Any("addresses", c.cfg.Addresses))
		return errors.ErrCacheConnectionFailed(err.Error()).WithCause(err)
	}

	c.client = client
	c.logger.Info(ctx, "Redis connection established",
		logger.Any("addresses", c.cfg.Addresses),
		logger.Int("pool_size", c.cfg.PoolSize),
	)
	return nil
}

// Client returns the underlying client, or nil before Connect.
func (c *Connection) Client() goredis.UniversalClient {
	return c.client
}

// Ping checks server connectivity.
func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis connection not initialized")
	}
	return c.client.Ping(ctx).Err()
}

// HealthCheck reports connectivity, latency and pool statistics.
func (c *Connection) HealthCheck(ctx context.Context) (map[string]interface{}, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis connection not initialized")
	}

	health := make(map[string]interface{})
	start := time.Now()
	err := c.client.Ping(ctx).Err()
	health["connected"] = err == nil
	health["latency_ms"] = time.Since(start).Milliseconds()
	if err != nil {
		health["error"] = err.Error()
		return health, err
	}

	stats := c.client.PoolStats()
	health["total_conns"] = stats.TotalConns
	health["idle_conns"] = stats.IdleConns
	health["pool_timeouts"] = stats.Timeouts
	return health, nil
}

// Close releases the client.
func (c *Connection) Close() error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		c.logger.Error(context.Background(), "Failed to close Redis connection", err)
		return err
	}
	c.client = nil
	c.logger.Info(context.Background(), "Redis connection closed")
	return nil
}
