package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/securepay/internal/config"
	"github.com/turtacn/securepay/pkg/logger"
)

func freePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.NewLoader("", nil).Load()
	require.NoError(t, err)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = freePort(t)
	cfg.Server.GRPCPort = freePort(t)
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *server {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv, err := newServerWithOptions(context.Background(), cfg, logger.NewNoopLogger(), serverOptions{registry: reg, gatherer: reg})
	require.NoError(t, err)
	return srv
}

func TestNewServer_LocalOnly(t *testing.T) {
	srv := newTestServer(t, testConfig(t))
	assert.NotNil(t, srv.local)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk/insights?score=7.2", nil)
	srv.router.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Open Ports")

	w = httptest.NewRecorder()
	srv.router.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServer_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addresses = []string{mr.Addr()}

	srv := newTestServer(t, cfg)
	assert.Nil(t, srv.local)

	w := httptest.NewRecorder()
	srv.router.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "redis")
	require.NoError(t, srv.shutdown())
}

func TestNewServer_RedisUnavailableDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addresses = []string{fmt.Sprintf("127.0.0.1:%d", freePort(t))}
	cfg.Redis.DialTimeout = 200 * time.Millisecond

	srv := newTestServer(t, cfg)
	assert.NotNil(t, srv.local)
}

func TestNewServer_AuditRequiresBrokers(t *testing.T) {
	cfg := testConfig(t)
	cfg.Audit.Enabled = true

	reg := prometheus.NewRegistry()
	_, err := newServerWithOptions(context.Background(), cfg, logger.NewNoopLogger(), serverOptions{registry: reg, gatherer: reg})
	assert.Error(t, err)
}

func TestServer_RunAndShutdown(t *testing.T) {
	cfg := testConfig(t)
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://%s/api/v1/risk/score", cfg.Server.HTTPAddr())
	require.Eventually(t, func() bool {
		resp, err := http.Post(url, "application/json", strings.NewReader(`{}`))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var body map[string]interface{}
		if json.NewDecoder(resp.Body).Decode(&body) != nil {
			return false
		}
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
