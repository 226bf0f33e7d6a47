package service

import "github.com/turtacn/securepay/internal/domain/models"

// RiskCalculator exposes the package-level risk functions through RiskEngine
// so that callers can substitute a mock.
type RiskCalculator struct{}

var _ RiskEngine = (*RiskCalculator)(nil)

// NewRiskCalculator returns the default RiskEngine.
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

func (RiskCalculator) CalculateRiskScore(profile *models.BusinessProfile) float64 {
	return CalculateRiskScore(profile)
}

func (RiskCalculator) GetRiskLevel(score float64) models.RiskTier {
	return GetRiskLevel(score)
}

func (RiskCalculator) GetRiskInsights(score float64, domain string) []models.Insight {
	return GetRiskInsights(score, domain)
}

func (RiskCalculator) GetVulnerabilities(score float64) []models.Vulnerability {
	return GetVulnerabilities(score)
}

func (RiskCalculator) GetRiskGrade(score float64) models.RiskGrade {
	return GetRiskGrade(score)
}
