package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/domain/models"
	domainService "github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/internal/domain/service/mocks"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/logger"
)

// memoryCache is a goroutine-safe in-memory AssessmentCache used by tests.
type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func validSignup() *dto.SignupAssessmentRequest {
	return &dto.SignupAssessmentRequest{
		BusinessName:  "Acme Payments",
		Email:         "ops@acme.test",
		Website:       "https://acme.test",
		BusinessType:  "fintech",
		MonthlyVolume: "1m+",
		Country:       "US",
	}
}

func newTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func Test_AssessmentAppService_ScoreProfile(t *testing.T) {
	svc := NewAssessmentAppService(nil, nil, nil, nil, nil, logger.NewNoopLogger())

	testCases := []struct {
		name     string
		req      *dto.ScoreRequest
		score    float64
		supplied bool
	}{
		{name: "nil request", req: nil, score: domainService.DefaultRiskScore},
		{name: "no profile", req: &dto.ScoreRequest{}, score: domainService.DefaultRiskScore},
		{
			name:     "fintech high volume",
			req:      &dto.ScoreRequest{Profile: &dto.ProfileDTO{BusinessType: "fintech", MonthlyVolume: "1m+"}},
			score:    8.5,
			supplied: true,
		},
		{
			name:     "unknown categories use default weights",
			req:      &dto.ScoreRequest{Profile: &dto.ProfileDTO{BusinessType: "Retail", MonthlyVolume: "tiny"}},
			score:    5.3,
			supplied: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := svc.ScoreProfile(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.score, resp.Score)
			assert.Equal(t, tc.supplied, resp.ProfileSupplied)
		})
	}
}

func Test_AssessmentAppService_ClassifyAndFindings(t *testing.T) {
	svc := NewAssessmentAppService(nil, nil, nil, nil, nil, nil)
	ctx := context.Background()

	level, err := svc.ClassifyScore(ctx, 7.2)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelModerate, level.Tier.Level)

	insights, err := svc.ListInsights(ctx, 5.0, "example.com")
	require.NoError(t, err)
	assert.Len(t, insights.Insights, 3)
	assert.Equal(t, "example.com", insights.Domain)

	vulns, err := svc.ListVulnerabilities(ctx, 8.5)
	require.NoError(t, err)
	assert.NotNil(t, vulns.Vulnerabilities)
	assert.Empty(t, vulns.Vulnerabilities)
}

func Test_AssessmentAppService_AssessSignup(t *testing.T) {
	audit := new(mocks.MockAuditSink)
	metrics := new(mocks.MockMetrics)
	sr, tp := newTracer()

	audit.On("Publish", mock.Anything, mock.MatchedBy(func(e models.AssessmentEvent) bool {
		return e.EventType == constants.AuditEventSignupAssessed &&
			e.Score == 8.5 &&
			e.Level == models.RiskLevelHigh &&
			e.BusinessType == models.BusinessTypeFintech &&
			e.RequestID == "req-123" &&
			e.EventID != ""
	})).Return(nil).Once()
	metrics.On("RecordAuditPublish", "audit", true).Once()
	metrics.On("RecordAssessment", flowSignup, "High", true, mock.Anything).Once()

	svc := NewAssessmentAppService(nil, nil, audit, metrics, tp.Tracer("test"), logger.NewNoopLogger())
	ctx := context.WithValue(context.Background(), constants.ContextKeyRequestID, "req-123")

	assessment, err := svc.AssessSignup(ctx, validSignup())
	require.NoError(t, err)

	assert.NotEmpty(t, assessment.ID)
	assert.Equal(t, 8.5, assessment.Score)
	assert.Equal(t, models.RiskLevelHigh, assessment.Tier.Level)
	assert.Equal(t, "Acme Payments", assessment.Profile.BusinessName)
	assert.NotNil(t, assessment.Vulnerabilities)
	assert.Empty(t, assessment.Vulnerabilities)
	assert.False(t, assessment.AssessedAt.IsZero())

	audit.AssertExpectations(t)
	metrics.AssertExpectations(t)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "AssessmentAppService.AssessSignup", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func Test_AssessmentAppService_AssessSignup_Validation(t *testing.T) {
	audit := new(mocks.MockAuditSink)
	metrics := new(mocks.MockMetrics)
	sr, tp := newTracer()
	metrics.On("RecordAssessment", flowSignup, "", false, mock.Anything).Twice()

	svc := NewAssessmentAppService(nil, nil, audit, metrics, tp.Tracer("test"), nil)

	req := validSignup()
	req.BusinessName = ""
	req.Email = "not-an-email"

	_, err := svc.AssessSignup(context.Background(), req)
	require.Error(t, err)

	svcErr, ok := errors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, constants.ErrCodeValidationFailed, svcErr.Code())
	assert.Equal(t, "Business name is required", svcErr.Metadata()["business_name"])
	assert.Contains(t, svcErr.Metadata(), "email")

	_, err = svc.AssessSignup(context.Background(), nil)
	require.Error(t, err)

	audit.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	metrics.AssertExpectations(t)
	require.Len(t, sr.Ended(), 2)
	assert.Equal(t, codes.Error, sr.Ended()[0].Status().Code)
}

func Test_AssessmentAppService_AssessDomain(t *testing.T) {
	svc := NewAssessmentAppService(nil, nil, nil, nil, nil, nil)

	assessment, err := svc.AssessDomain(context.Background(), &dto.DomainAssessmentRequest{Domain: "acme-shop.com"})
	require.NoError(t, err)

	assert.Equal(t, "acme-shop.com", assessment.Domain)
	assert.Equal(t, 7.2, assessment.Score)
	assert.Equal(t, models.RiskLevelModerate, assessment.Tier.Level)
	assert.Equal(t, models.RiskGradeB, assessment.Grade)
	require.Len(t, assessment.Insights, 2)
	assert.Equal(t, "Open Ports Detected", assessment.Insights[0].Title)
	assert.Equal(t, "Email Security Vulnerabilities", assessment.Insights[1].Title)
	assert.Len(t, assessment.Vulnerabilities, 4)
}

func Test_AssessmentAppService_AssessDomain_Invalid(t *testing.T) {
	svc := NewAssessmentAppService(nil, nil, nil, nil, nil, nil)

	testCases := []struct {
		name    string
		req     *dto.DomainAssessmentRequest
		message string
	}{
		{name: "nil request", req: nil, message: "Please enter a domain name"},
		{name: "empty", req: &dto.DomainAssessmentRequest{}, message: "Please enter a domain name"},
		{name: "no tld", req: &dto.DomainAssessmentRequest{Domain: "localhost"}, message: "Please enter a valid domain name (e.g., example.com)"},
		{name: "spaces", req: &dto.DomainAssessmentRequest{Domain: "bad domain.com"}, message: "Please enter a valid domain name (e.g., example.com)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AssessDomain(context.Background(), tc.req)
			require.Error(t, err)
			svcErr, ok := errors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, constants.ErrCodeInvalidDomain, svcErr.Code())
			assert.Equal(t, tc.message, svcErr.Error())
		})
	}
}

func Test_AssessmentAppService_AuditFailureDoesNotFail(t *testing.T) {
	audit := new(mocks.MockAuditSink)
	metrics := new(mocks.MockMetrics)
	audit.On("Publish", mock.Anything, mock.Anything).Return(stderrors.New("broker down")).Once()
	metrics.On("RecordAuditPublish", "audit", false).Once()
	metrics.On("RecordAssessment", flowDomain, "Moderate", true, mock.Anything).Once()

	svc := NewAssessmentAppService(nil, nil, audit, metrics, nil, nil)

	assessment, err := svc.AssessDomain(context.Background(), &dto.DomainAssessmentRequest{Domain: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, 7.2, assessment.Score)

	audit.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func Test_AssessmentAppService_MemoizesFindings(t *testing.T) {
	engine := new(mocks.MockRiskEngine)
	engine.On("CalculateRiskScore", (*models.BusinessProfile)(nil)).Return(7.2).Once()
	engine.On("GetRiskLevel", 7.2).Return(models.RiskTier{Level: models.RiskLevelModerate}).Once()
	engine.On("GetRiskGrade", 7.2).Return(models.RiskGradeB).Once()
	engine.On("GetRiskInsights", 7.2, "example.com").Return([]models.Insight{{Title: "t", Description: "d"}}).Once()
	engine.On("GetVulnerabilities", 7.2).Return([]models.Vulnerability{}).Once()

	cache := newMemoryCache()
	svc := NewAssessmentAppService(engine, cache, nil, nil, nil, nil)
	ctx := context.Background()

	first, err := svc.AssessDomain(ctx, &dto.DomainAssessmentRequest{Domain: "example.com"})
	require.NoError(t, err)
	second, err := svc.AssessDomain(ctx, &dto.DomainAssessmentRequest{Domain: "example.com"})
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Insights, second.Insights)
	assert.NotNil(t, second.Vulnerabilities)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, cache.sets)
	engine.AssertExpectations(t)

	// Mutating a returned slice must not leak into later results.
	first.Insights[0].Title = "changed"
	third, err := svc.AssessDomain(ctx, &dto.DomainAssessmentRequest{Domain: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, "t", third.Insights[0].Title)
}

func Test_FindingsMemo_CacheFailures(t *testing.T) {
	ctx := context.Background()
	key := memoKey(flowSignup, "fintech", "1m+")
	assert.Equal(t, "securepay:assessment:signup:fintech:1m+", key)

	t.Run("get error falls back to compute", func(t *testing.T) {
		cache := new(mocks.MockAssessmentCache)
		metrics := new(mocks.MockMetrics)
		cache.On("Get", ctx, key).Return(nil, false, stderrors.New("timeout")).Once()
		cache.On("Set", ctx, key, mock.Anything).Return(stderrors.New("timeout")).Once()
		metrics.On("RecordCacheAccess", "assessment", false).Once()

		memo := newFindingsMemo(cache, metrics, logger.NewNoopLogger())
		f := memo.load(ctx, key, func() riskFindings { return riskFindings{Score: 8.5} })
		assert.Equal(t, 8.5, f.Score)
		cache.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("corrupt entry is discarded", func(t *testing.T) {
		cache := new(mocks.MockAssessmentCache)
		metrics := new(mocks.MockMetrics)
		cache.On("Get", ctx, key).Return([]byte("{not json"), true, nil).Once()
		cache.On("Delete", ctx, key).Return(nil).Once()
		cache.On("Set", ctx, key, mock.Anything).Return(nil).Once()
		metrics.On("RecordCacheAccess", "assessment", false).Once()

		memo := newFindingsMemo(cache, metrics, logger.NewNoopLogger())
		f := memo.load(ctx, key, func() riskFindings { return riskFindings{Score: 6.2} })
		assert.Equal(t, 6.2, f.Score)
		cache.AssertExpectations(t)
	})

	t.Run("hit skips compute", func(t *testing.T) {
		data, err := json.Marshal(riskFindings{Score: 7.7, Vulnerabilities: []models.Vulnerability{}})
		require.NoError(t, err)

		cache := new(mocks.MockAssessmentCache)
		metrics := new(mocks.MockMetrics)
		cache.On("Get", ctx, key).Return(data, true, nil).Once()
		metrics.On("RecordCacheAccess", "assessment", true).Once()

		memo := newFindingsMemo(cache, metrics, logger.NewNoopLogger())
		f := memo.load(ctx, key, func() riskFindings {
			t.Fatal("compute should not run on a cache hit")
			return riskFindings{}
		})
		assert.Equal(t, 7.7, f.Score)
		metrics.AssertExpectations(t)
	})
}
