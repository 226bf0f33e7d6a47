package cli

import (
	"bytes"
	"encoding/json"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appservice "github.com/turtacn/securepay/internal/application/service"
	domainservice "github.com/turtacn/securepay/internal/domain/service"
	grpchandlers "github.com/turtacn/securepay/internal/interfaces/grpc"
	"github.com/turtacn/securepay/pkg/logger"
)

func run(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body), out.String())
	return body, nil
}

func TestScoreCommand(t *testing.T) {
	t.Run("no profile", func(t *testing.T) {
		body, err := run(t, "score")
		require.NoError(t, err)
		assert.Equal(t, 7.2, body["score"])
		assert.Equal(t, false, body["profile_supplied"])
	})

	t.Run("high volume ecommerce", func(t *testing.T) {
		body, err := run(t, "score", "--business-type", "ecommerce", "--monthly-volume", "1m+")
		require.NoError(t, err)
		assert.Equal(t, 8.5, body["score"])
		assert.Equal(t, true, body["profile_supplied"])
	})
}

func TestRiskCommands(t *testing.T) {
	body, err := run(t, "level", "--score", "7.2")
	require.NoError(t, err)
	assert.Equal(t, "Moderate", body["tier"].(map[string]interface{})["level"])

	body, err = run(t, "insights", "--score", "7.2", "--domain", "acme-shop.com")
	require.NoError(t, err)
	assert.Len(t, body["insights"], 2)
	assert.Equal(t, "acme-shop.com", body["domain"])

	body, err = run(t, "vulns", "--score", "8.5")
	require.NoError(t, err)
	assert.Empty(t, body["vulnerabilities"])

	_, err = run(t, "level")
	assert.Error(t, err)
}

func TestAssessCommands(t *testing.T) {
	body, err := run(t, "assess", "domain", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "B", body["grade"])
	assert.Equal(t, 7.2, body["score"])

	_, err = run(t, "assess", "domain", "not a domain")
	assert.Error(t, err)

	body, err = run(t, "assess", "signup",
		"--business-name", "Acme Shop",
		"--email", "owner@acme-shop.com",
		"--business-type", "fintech",
		"--monthly-volume", "1m+",
		"--country", "US",
	)
	require.NoError(t, err)
	assert.Equal(t, 8.5, body["score"])
	assert.NotEmpty(t, body["id"])

	_, err = run(t, "assess", "signup", "--business-name", "Acme Shop")
	assert.Error(t, err)
}

func TestPlansCommands(t *testing.T) {
	body, err := run(t, "plans", "list")
	require.NoError(t, err)
	assert.Len(t, body["plans"], 3)

	body, err = run(t, "plans", "addons", "--plan", domainservice.PlanStarter, "--business-type", "saas", "--monthly-volume", "other")
	require.NoError(t, err)
	assert.Equal(t, domainservice.PlanStarter, body["plan_id"])
	assert.Len(t, body["add_ons"], 4)

	body, err = run(t, "plans", "quote", "--plan", domainservice.PlanProfessional,
		"--add-on", domainservice.AddOnCyberProtection, "--add-on", domainservice.AddOnPrioritySupport)
	require.NoError(t, err)
	assert.Equal(t, "153", body["monthly_total"])

	_, err = run(t, "plans", "quote", "--plan", "platinum")
	assert.Error(t, err)
}

func TestRemoteBackend(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	log := logger.NewNoopLogger()
	assessments := appservice.NewAssessmentAppService(nil, nil, nil, nil, nil, log)
	srv := grpchandlers.NewRiskGRPCServer(
		grpchandlers.NewRiskGRPCService(assessments, log),
		grpchandlers.NewInterceptorChain(log, nil, nil),
	)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	body, err := run(t, "--server", lis.Addr().String(), "level", "--score", "5")
	require.NoError(t, err)
	assert.Equal(t, "High", body["tier"].(map[string]interface{})["level"])

	body, err = run(t, "--server", lis.Addr().String(), "vulnerabilities", "--score", "7.2")
	require.NoError(t, err)
	assert.Len(t, body["vulnerabilities"], 4)
}
