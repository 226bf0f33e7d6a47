package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/securepay/internal/application/dto"
	"github.com/turtacn/securepay/internal/domain/models"
)

// MockAssessmentAppService is a mock implementation of AssessmentAppService
type MockAssessmentAppService struct {
	mock.Mock
}

func (m *MockAssessmentAppService) ScoreProfile(ctx context.Context, req *dto.ScoreRequest) (*dto.ScoreResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScoreResponse), args.Error(1)
}

func (m *MockAssessmentAppService) ClassifyScore(ctx context.Context, score float64) (*dto.LevelResponse, error) {
	args := m.Called(ctx, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LevelResponse), args.Error(1)
}

func (m *MockAssessmentAppService) ListInsights(ctx context.Context, score float64, domain string) (*dto.InsightsResponse, error) {
	args := m.Called(ctx, score, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.InsightsResponse), args.Error(1)
}

func (m *MockAssessmentAppService) ListVulnerabilities(ctx context.Context, score float64) (*dto.VulnerabilitiesResponse, error) {
	args := m.Called(ctx, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VulnerabilitiesResponse), args.Error(1)
}

func (m *MockAssessmentAppService) AssessSignup(ctx context.Context, req *dto.SignupAssessmentRequest) (*models.SignupAssessment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SignupAssessment), args.Error(1)
}

func (m *MockAssessmentAppService) AssessDomain(ctx context.Context, req *dto.DomainAssessmentRequest) (*models.DomainAssessment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DomainAssessment), args.Error(1)
}

// MockPlanAppService is a mock implementation of PlanAppService
type MockPlanAppService struct {
	mock.Mock
}

func (m *MockPlanAppService) ListPlans(ctx context.Context) *dto.PlansResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.PlansResponse)
}

func (m *MockPlanAppService) AddOns(ctx context.Context, req *dto.AddOnsRequest) (*dto.AddOnsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AddOnsResponse), args.Error(1)
}

func (m *MockPlanAppService) Quote(ctx context.Context, req *dto.QuoteRequest) (*models.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}
