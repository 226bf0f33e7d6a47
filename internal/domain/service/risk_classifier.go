package service

import "github.com/turtacn/securepay/internal/domain/models"

const (
	lowRiskThreshold      = 8.0
	moderateRiskThreshold = 6.0
)

var (
	lowRiskTier = models.RiskTier{
		Level:       models.RiskLevelLow,
		Color:       "text-green-500",
		Description: "Your security posture is strong with minimal vulnerabilities.",
	}
	moderateRiskTier = models.RiskTier{
		Level:       models.RiskLevelModerate,
		Color:       "text-yellow-500",
		Description: "Some security concerns that should be addressed promptly.",
	}
	highRiskTier = models.RiskTier{
		Level:       models.RiskLevelHigh,
		Color:       "text-red-500",
		Description: "Significant security vulnerabilities requiring immediate attention.",
	}
)

// GetRiskLevel classifies a score. Scores of 8.0 and above are Low risk,
// 6.0 and above Moderate, and everything else (including NaN) High.
func GetRiskLevel(score float64) models.RiskTier {
	switch {
	case score >= lowRiskThreshold:
		return lowRiskTier
	case score >= moderateRiskThreshold:
		return moderateRiskTier
	default:
		return highRiskTier
	}
}

// GetRiskGrade converts a score into the letter grade shown on domain reports.
func GetRiskGrade(score float64) models.RiskGrade {
	switch {
	case score >= 8.0:
		return models.RiskGradeAMinus
	case score >= 7.0:
		return models.RiskGradeB
	case score >= 6.0:
		return models.RiskGradeBMinus
	default:
		return models.RiskGradeC
	}
}
