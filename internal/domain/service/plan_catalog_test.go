package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/internal/domain/service"
	"github.com/turtacn/securepay/pkg/constants"
	"github.com/turtacn/securepay/pkg/errors"
)

func addOnByID(addOns []models.AddOn, id string) models.AddOn {
	for _, a := range addOns {
		if a.ID == id {
			return a
		}
	}
	return models.AddOn{}
}

func TestPlanCatalog_ListPlans(t *testing.T) {
	catalog := service.NewPlanCatalog()
	plans := catalog.ListPlans()

	require.Len(t, plans, 3)
	assert.Equal(t, "starter", plans[0].ID)
	assert.True(t, plans[1].Recommended)
	assert.True(t, plans[1].MonthlyFee.Equal(decimal.NewFromInt(25)))
	assert.True(t, plans[2].CustomPricing)

	plans[0].Features[0] = "mutated"
	assert.Equal(t, "Accept all major cards", catalog.ListPlans()[0].Features[0])
}

func TestPlanCatalog_AddOnsFor(t *testing.T) {
	catalog := service.NewPlanCatalog()

	t.Run("risky ecommerce on starter", func(t *testing.T) {
		profile := models.NewBusinessProfile("Shop", "a@b.co", "", "ecommerce", "50k-100k", "us") // 7.0
		addOns, err := catalog.AddOnsFor(service.PlanStarter, profile)
		require.NoError(t, err)

		assert.True(t, addOnByID(addOns, service.AddOnCyberProtection).Recommended)
		assert.True(t, addOnByID(addOns, service.AddOnAdvancedAnalytics).Recommended)
		assert.True(t, addOnByID(addOns, service.AddOnPrioritySupport).Recommended)
		assert.True(t, addOnByID(addOns, service.AddOnInternationalExpansion).Recommended)
		require.NotNil(t, addOnByID(addOns, service.AddOnCyberProtection).RiskScore)
		assert.Equal(t, 7.0, *addOnByID(addOns, service.AddOnCyberProtection).RiskScore)
	})

	t.Run("low risk fintech on enterprise", func(t *testing.T) {
		profile := models.NewBusinessProfile("Bank", "a@b.co", "", "fintech", "1m+", "us") // 8.5
		addOns, err := catalog.AddOnsFor(service.PlanEnterprise, profile)
		require.NoError(t, err)

		assert.False(t, addOnByID(addOns, service.AddOnCyberProtection).Recommended)
		assert.False(t, addOnByID(addOns, service.AddOnAdvancedAnalytics).Recommended)
		assert.False(t, addOnByID(addOns, service.AddOnPrioritySupport).Recommended)
		assert.False(t, addOnByID(addOns, service.AddOnInternationalExpansion).Recommended)
	})

	t.Run("cyber protection follows the risk tier", func(t *testing.T) {
		for _, bt := range typesByRank {
			for _, v := range volumesByRank {
				profile := &models.BusinessProfile{BusinessType: bt, MonthlyVolume: v}
				score := service.CalculateRiskScore(profile)
				addOns, err := catalog.AddOnsFor(service.PlanProfessional, profile)
				require.NoError(t, err)

				want := service.GetRiskLevel(score).Level != models.RiskLevelLow
				assert.Equal(t, want, addOnByID(addOns, service.AddOnCyberProtection).Recommended, "%s/%s scored %v", bt, v, score)
			}
		}

		// ecommerce at 250k-1m lands exactly on the Low gate
		addOns, err := catalog.AddOnsFor(service.PlanProfessional, models.NewBusinessProfile("Shop", "a@b.co", "", "ecommerce", "250k-1m", "us"))
		require.NoError(t, err)
		assert.False(t, addOnByID(addOns, service.AddOnCyberProtection).Recommended)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := catalog.AddOnsFor("gold", nil)
		assert.True(t, errors.IsNotFoundError(err))
	})
}

func TestPlanCatalog_Quote(t *testing.T) {
	catalog := service.NewPlanCatalog()

	quote, err := catalog.Quote(service.PlanProfessional, []string{
		service.AddOnCyberProtection, service.AddOnPrioritySupport, service.AddOnCyberProtection,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{service.AddOnCyberProtection, service.AddOnPrioritySupport}, quote.AddOnIDs)
	assert.Equal(t, "128", quote.AddOnTotal.String())
	assert.Equal(t, "153", quote.MonthlyTotal.String())
	assert.False(t, quote.Custom)

	quote, err = catalog.Quote(service.PlanEnterprise, nil)
	require.NoError(t, err)
	assert.True(t, quote.MonthlyTotal.IsZero())
	assert.True(t, quote.Custom)
}

func TestPlanCatalog_QuoteErrors(t *testing.T) {
	catalog := service.NewPlanCatalog()

	_, err := catalog.Quote("platinum", nil)
	assert.True(t, errors.IsNotFoundError(err))

	_, err = catalog.Quote(service.PlanStarter, []string{"free-lunch"})
	svcErr, ok := errors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, constants.ErrCodeInvalidRequest, svcErr.Code())

	_, err = catalog.Quote(service.PlanStarter, []string{service.AddOnPrioritySupport, "free-lunch", "free-lunch"})
	svcErr, ok = errors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "free-lunch", svcErr.Metadata()["add_on_id"])
}
