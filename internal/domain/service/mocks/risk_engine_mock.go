package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/turtacn/securepay/internal/domain/models"
)

// MockRiskEngine is a mock implementation of RiskEngine
type MockRiskEngine struct {
	mock.Mock
}

func (m *MockRiskEngine) CalculateRiskScore(profile *models.BusinessProfile) float64 {
	args := m.Called(profile)
	return args.Get(0).(float64)
}

func (m *MockRiskEngine) GetRiskLevel(score float64) models.RiskTier {
	args := m.Called(score)
	return args.Get(0).(models.RiskTier)
}

func (m *MockRiskEngine) GetRiskInsights(score float64, domain string) []models.Insight {
	args := m.Called(score, domain)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Insight)
}

func (m *MockRiskEngine) GetVulnerabilities(score float64) []models.Vulnerability {
	args := m.Called(score)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Vulnerability)
}

func (m *MockRiskEngine) GetRiskGrade(score float64) models.RiskGrade {
	args := m.Called(score)
	return args.Get(0).(models.RiskGrade)
}
