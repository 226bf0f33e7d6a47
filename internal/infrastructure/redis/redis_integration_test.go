//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/internal/infrastructure/redis"
	"github.com/turtacn/securepay/pkg/logger"
)

func TestAssessmentCache_RealRedis(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	conn := redis.NewConnection(config.RedisConfig{
		Addresses: []string{fmt.Sprintf("%s:%s", host, port.Port())},
	}, logger.NewNoopLogger())
	require.NoError(t, conn.Connect(ctx))
	t.Cleanup(func() { _ = conn.Close() })

	cache := redis.NewAssessmentCache(conn.Client(), 0)
	require.NoError(t, cache.Set(ctx, "securepay:assessment:signup:fintech:1m+", []byte(`{"score":8.5}`)))

	data, found, err := cache.Get(ctx, "securepay:assessment:signup:fintech:1m+")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"score":8.5}`, string(data))

	ttl, err := conn.Client().TTL(ctx, "securepay:assessment:signup:fintech:1m+").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Minutes(), 29.0)
}
