package cache_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/securepay/internal/domain/service/mocks"
	"github.com/turtacn/securepay/internal/infrastructure/cache"
	"github.com/turtacn/securepay/internal/infrastructure/redis"
)

func TestLocalCache(t *testing.T) {
	c := cache.NewLocalCache(50*time.Millisecond, time.Minute)
	ctx := context.Background()

	_, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	data, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), data)
	assert.Equal(t, 1, c.Len())

	time.Sleep(80 * time.Millisecond)
	_, found, _ = c.Get(ctx, "k")
	assert.False(t, found, "entry should expire")

	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Delete(ctx, "a"))
	_, found, _ = c.Get(ctx, "a")
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	c.Flush()
	assert.Equal(t, 0, c.Len())
}

func TestTieredCache_PromotesRemoteHits(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	defer client.Close()

	l1 := cache.NewLocalCache(time.Minute, time.Minute)
	l2 := redis.NewAssessmentCache(client, time.Minute)
	metrics := new(mocks.MockMetrics)
	metrics.On("RecordCacheAccess", mock.Anything, mock.Anything).Return()

	tiered := cache.NewTieredCache(l1, l2, metrics, nil)
	ctx := context.Background()

	require.NoError(t, s.Set("shared", `{"score":7.2}`))

	data, found, err := tiered.Get(ctx, "shared")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"score":7.2}`, string(data))

	_, inL1, _ := l1.Get(ctx, "shared")
	assert.True(t, inL1)
	metrics.AssertCalled(t, "RecordCacheAccess", "l1", false)
	metrics.AssertCalled(t, "RecordCacheAccess", "l2", true)

	_, _, _ = tiered.Get(ctx, "shared")
	metrics.AssertCalled(t, "RecordCacheAccess", "l1", true)

	require.NoError(t, tiered.Set(ctx, "new", []byte("x")))
	assert.True(t, s.Exists("new"))

	require.NoError(t, tiered.Delete(ctx, "new"))
	assert.False(t, s.Exists("new"))
}

func TestTieredCache_RemoteFailureDegrades(t *testing.T) {
	l1 := cache.NewLocalCache(time.Minute, time.Minute)
	l2 := new(mocks.MockAssessmentCache)
	l2.On("Get", mock.Anything, "k").Return(nil, false, stderrors.New("connection refused"))
	l2.On("Set", mock.Anything, "k", []byte("v")).Return(stderrors.New("connection refused"))

	tiered := cache.NewTieredCache(l1, l2, nil, nil)
	ctx := context.Background()

	_, found, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, tiered.Set(ctx, "k", []byte("v")))
	data, found, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), data)
}

func TestTieredCache_LocalOnly(t *testing.T) {
	tiered := cache.NewTieredCache(cache.NewLocalCache(0, 0), nil, nil, nil)
	ctx := context.Background()

	require.NoError(t, tiered.Set(ctx, "k", []byte("v")))
	_, found, err := tiered.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	require.NoError(t, tiered.Delete(ctx, "k"))
}
