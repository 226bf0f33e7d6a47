package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/internal/domain/service"
)

func TestCalculateRiskScore_NilProfile(t *testing.T) {
	assert.Equal(t, 7.2, service.CalculateRiskScore(nil))
}

func TestCalculateRiskScore(t *testing.T) {
	tests := []struct {
		name          string
		businessType  string
		monthlyVolume string
		want          float64
	}{
		{"fintech at 1m+ is capped", "fintech", "1m+", 8.5},
		{"healthcare at 1m+ is capped", "healthcare", "1m+", 8.5},
		{"ecommerce at 250k-1m", "ecommerce", "250k-1m", 8.0},
		{"saas at 100k-250k", "saas", "100k-250k", 7.0},
		{"education at 50k-100k", "education", "50k-100k", 6.2},
		{"healthcare at 100k-250k", "healthcare", "100k-250k", 7.7},
		{"nonprofit with unknown volume", "nonprofit", "0-1k", 5.3},
		{"unknown type and volume", "retail", "10k-50k", 5.5},
		{"literal other arms", "other", "other", 5.5},
		{"empty strings use defaults", "", "", 5.5},
		{"matching is case sensitive", "Fintech", "1M+", 5.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.NewBusinessProfile("Acme", "ops@acme.test", "", tt.businessType, tt.monthlyVolume, "us")
			assert.Equal(t, tt.want, service.CalculateRiskScore(profile))
		})
	}
}

func TestCalculateRiskScore_UnparsedEnumValues(t *testing.T) {
	// Values assigned without Parse* still fall into the default buckets.
	profile := &models.BusinessProfile{
		BusinessType:  models.BusinessType("marketplace"),
		MonthlyVolume: models.MonthlyVolume("1k-10k"),
	}
	assert.Equal(t, 5.5, service.CalculateRiskScore(profile))
}

func TestCalculateRiskScore_Bounds(t *testing.T) {
	types := []string{"ecommerce", "saas", "fintech", "healthcare", "education", "nonprofit", "other", "unknown"}
	volumes := []string{"1m+", "250k-1m", "100k-250k", "50k-100k", "other", "unknown"}

	for _, bt := range types {
		for _, mv := range volumes {
			profile := models.NewBusinessProfile("", "", "", bt, mv, "")
			score := service.CalculateRiskScore(profile)
			assert.GreaterOrEqual(t, score, 5.3, "%s/%s", bt, mv)
			assert.LessOrEqual(t, score, 8.5, "%s/%s", bt, mv)
			assert.Equal(t, score, service.CalculateRiskScore(profile), "deterministic for %s/%s", bt, mv)
		}
	}
}

func TestParseBusinessType(t *testing.T) {
	assert.Equal(t, models.BusinessTypeFintech, models.ParseBusinessType("fintech"))
	assert.Equal(t, models.BusinessTypeOther, models.ParseBusinessType("professional"))
	assert.Equal(t, models.BusinessTypeOther, models.ParseBusinessType(" fintech"))
}

func TestParseMonthlyVolume(t *testing.T) {
	assert.Equal(t, models.MonthlyVolume250kTo1M, models.ParseMonthlyVolume("250k-1m"))
	assert.Equal(t, models.MonthlyVolumeOther, models.ParseMonthlyVolume("50k-250k"))
}

// Ranks from lowest to highest weight.
var (
	volumesByRank = []models.MonthlyVolume{
		models.MonthlyVolumeOther,
		models.MonthlyVolume50kTo100k,
		models.MonthlyVolume100kTo250k,
		models.MonthlyVolume250kTo1M,
		models.MonthlyVolume1MPlus,
	}
	typesByRank = []models.BusinessType{
		models.BusinessTypeNonprofit,
		models.BusinessTypeOther,
		models.BusinessTypeEducation,
		models.BusinessTypeSaaS,
		models.BusinessTypeEcommerce,
		models.BusinessTypeHealthcare,
		models.BusinessTypeFintech,
	}
)

func TestCalculateRiskScore_MonotonicInVolume(t *testing.T) {
	for _, bt := range typesByRank {
		t.Run(string(bt), func(t *testing.T) {
			prev := 0.0
			for _, v := range volumesByRank {
				score := service.CalculateRiskScore(&models.BusinessProfile{BusinessType: bt, MonthlyVolume: v})
				assert.GreaterOrEqual(t, score, prev, "volume %s", v)
				prev = score
			}
		})
	}
}

func TestCalculateRiskScore_MonotonicInBusinessType(t *testing.T) {
	for _, v := range volumesByRank {
		t.Run(string(v), func(t *testing.T) {
			prev := 0.0
			for _, bt := range typesByRank {
				score := service.CalculateRiskScore(&models.BusinessProfile{BusinessType: bt, MonthlyVolume: v})
				assert.GreaterOrEqual(t, score, prev, "business type %s", bt)
				prev = score
			}
		})
	}
}
