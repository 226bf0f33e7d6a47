// Package service contains the SecurePay risk domain: scoring, classification,
// findings generation and the plan catalog. Everything here is pure and safe
// for concurrent use.
package service

import (
	"math"

	"github.com/turtacn/securepay/internal/domain/models"
)

const (
	// DefaultRiskScore is returned when no business profile is supplied.
	DefaultRiskScore = 7.2

	baseRiskScore = 4.0
	maxRiskScore  = 8.5

	otherVolumeWeight       = 0.5
	otherBusinessTypeWeight = 1.0
)

var volumeWeights = map[models.MonthlyVolume]float64{
	models.MonthlyVolume1MPlus:     2.5,
	models.MonthlyVolume250kTo1M:   2.0,
	models.MonthlyVolume100kTo250k: 1.5,
	models.MonthlyVolume50kTo100k:  1.0,
}

var businessTypeWeights = map[models.BusinessType]float64{
	models.BusinessTypeFintech:    2.5,
	models.BusinessTypeHealthcare: 2.2,
	models.BusinessTypeEcommerce:  2.0,
	models.BusinessTypeSaaS:       1.5,
	models.BusinessTypeEducation:  1.2,
	models.BusinessTypeNonprofit:  0.8,
}

// CalculateRiskScore scores a business profile on a 0-10 scale where higher is
// safer. A nil profile yields DefaultRiskScore. Otherwise the score is
// 4.0 plus the volume and business-type weights, rounded half-up to one
// decimal and capped at 8.5.
func CalculateRiskScore(profile *models.BusinessProfile) float64 {
	if profile == nil {
		return DefaultRiskScore
	}

	score := baseRiskScore + volumeWeight(profile.MonthlyVolume) + businessTypeWeight(profile.BusinessType)
	return math.Min(maxRiskScore, roundToTenth(score))
}

func volumeWeight(v models.MonthlyVolume) float64 {
	if w, ok := volumeWeights[v]; ok {
		return w
	}
	return otherVolumeWeight
}

func businessTypeWeight(t models.BusinessType) float64 {
	if w, ok := businessTypeWeights[t]; ok {
		return w
	}
	return otherBusinessTypeWeight
}

// roundToTenth rounds half-up (toward +Inf at .x5) to one decimal place.
func roundToTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
