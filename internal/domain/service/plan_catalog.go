package service

import (
	"github.com/shopspring/decimal"

	"github.com/turtacn/securepay/internal/domain/models"
	"github.com/turtacn/securepay/pkg/errors"
	"github.com/turtacn/securepay/pkg/utils"
)

const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"

	AddOnCyberProtection        = "cyber-protection"
	AddOnAdvancedAnalytics      = "advanced-analytics"
	AddOnPrioritySupport        = "priority-support"
	AddOnInternationalExpansion = "international-expansion"
)

// PlanCatalog holds the plans and add-ons offered during signup. It is
// immutable after construction; every accessor returns copies.
type PlanCatalog struct {
	plans  []models.Plan
	addOns []models.AddOn
}

// NewPlanCatalog returns the standard SecurePay catalog.
func NewPlanCatalog() *PlanCatalog {
	return &PlanCatalog{
		plans: []models.Plan{
			{
				ID:            PlanStarter,
				Name:          "Starter",
				Description:   "Perfect for small businesses and startups",
				Price:         "2.9% + 30¢",
				PercentFee:    decimal.RequireFromString("2.9"),
				FixedFeeCents: 30,
				MonthlyFee:    decimal.Zero,
				Features: []string{
					"Accept all major cards",
					"Online payments",
					"Basic dashboard",
					"Email support",
					"Standard fraud protection",
				},
			},
			{
				ID:            PlanProfessional,
				Name:          "Professional",
				Description:   "For growing businesses with higher volume",
				Price:         "2.7% + 30¢",
				PercentFee:    decimal.RequireFromString("2.7"),
				FixedFeeCents: 30,
				MonthlyFee:    decimal.NewFromInt(25),
				Features: []string{
					"Everything in Starter",
					"Advanced analytics",
					"Priority support",
					"Custom checkout",
					"Advanced fraud protection",
					"Multi-currency support",
				},
				Recommended: true,
			},
			{
				ID:            PlanEnterprise,
				Name:          "Enterprise",
				Description:   "For large businesses with custom needs",
				Price:         "Custom pricing",
				PercentFee:    decimal.Zero,
				MonthlyFee:    decimal.Zero,
				CustomPricing: true,
				Features: []string{
					"Everything in Professional",
					"Dedicated account manager",
					"Custom integrations",
					"Volume discounts",
					"24/7 phone support",
					"Advanced reporting",
					"White-label solutions",
				},
			},
		},
		addOns: []models.AddOn{
			{
				ID:          AddOnCyberProtection,
				Name:        "Cyber Parametric Protection",
				Description: "Immediate financial protection and expert support in case of cyber breaches",
				Price:       decimal.NewFromInt(99),
				Coverage:    "$50,000 breach compensation",
				Features: []string{
					"Immediate payout upon verified breach",
					"5 days of expert remediation support",
					"Real-time risk monitoring",
					"24/7 incident response hotline",
				},
			},
			{
				ID:          AddOnAdvancedAnalytics,
				Name:        "Advanced Analytics",
				Description: "Deep insights into your payment data and customer behavior",
				Price:       decimal.NewFromInt(49),
				Features: []string{
					"Custom dashboards and reports",
					"Revenue forecasting",
					"Customer lifetime value analysis",
					"Churn prediction",
				},
			},
			{
				ID:          AddOnPrioritySupport,
				Name:        "Priority Support",
				Description: "24/7 phone and chat support with dedicated account management",
				Price:       decimal.NewFromInt(29),
				Features: []string{
					"24/7 phone support",
					"Dedicated account manager",
					"Priority ticket handling",
					"Implementation help",
				},
			},
			{
				ID:          AddOnInternationalExpansion,
				Name:        "International Expansion Kit",
				Description: "Tools and support for accepting payments globally",
				Price:       decimal.NewFromInt(79),
				Features: []string{
					"Local payment methods in 40+ countries",
					"Multi-currency pricing",
					"Tax calculation and compliance",
					"Localized checkout experiences",
				},
			},
		},
	}
}

// ListPlans returns every plan in display order.
func (c *PlanCatalog) ListPlans() []models.Plan {
	out := make([]models.Plan, len(c.plans))
	for i, p := range c.plans {
		out[i] = copyPlan(p)
	}
	return out
}

// GetPlan looks a plan up by ID.
func (c *PlanCatalog) GetPlan(id string) (models.Plan, error) {
	for _, p := range c.plans {
		if p.ID == id {
			return copyPlan(p), nil
		}
	}
	return models.Plan{}, errors.ErrNotFound("plan", id)
}

// AddOnsFor returns the add-ons with their recommendation flags evaluated for
// the given plan and business profile. A nil profile is scored as
// CalculateRiskScore(nil).
//
// Cyber protection is recommended whenever the profile's tier is Moderate or
// High. This intentionally keys on the tier instead of a "score above 60"
// cutoff on a 0-100 scale: scores here are capped at 8.5, so such a cutoff
// would never recommend it.
func (c *PlanCatalog) AddOnsFor(planID string, profile *models.BusinessProfile) ([]models.AddOn, error) {
	if _, err := c.GetPlan(planID); err != nil {
		return nil, err
	}

	score := CalculateRiskScore(profile)
	tier := GetRiskLevel(score)

	out := make([]models.AddOn, len(c.addOns))
	for i, a := range c.addOns {
		a = copyAddOn(a)
		switch a.ID {
		case AddOnCyberProtection:
			a.Recommended = tier.Level != models.RiskLevelLow
			s := score
			a.RiskScore = &s
		case AddOnAdvancedAnalytics:
			a.Recommended = planID != PlanEnterprise
		case AddOnPrioritySupport:
			a.Recommended = planID == PlanStarter
		case AddOnInternationalExpansion:
			a.Recommended = profile != nil && profile.BusinessType == models.BusinessTypeEcommerce
		}
		out[i] = a
	}
	return out, nil
}

// Quote prices a plan with add-ons per month. Duplicate add-on IDs are
// counted once.
func (c *PlanCatalog) Quote(planID string, addOnIDs []string) (*models.Quote, error) {
	plan, err := c.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	ids := utils.RemoveDuplicates(addOnIDs)
	addOnTotal := decimal.Zero
	for _, id := range ids {
		addOn, ok := c.findAddOn(id)
		if !ok {
			return nil, errors.ErrInvalidRequest("unknown add-on: " + id).WithMetadata("add_on_id", id)
		}
		addOnTotal = addOnTotal.Add(addOn.Price)
	}

	return &models.Quote{
		PlanID:       plan.ID,
		AddOnIDs:     ids,
		PlanFee:      plan.MonthlyFee,
		AddOnTotal:   addOnTotal,
		MonthlyTotal: plan.MonthlyFee.Add(addOnTotal),
		Custom:       plan.CustomPricing,
	}, nil
}

func (c *PlanCatalog) findAddOn(id string) (models.AddOn, bool) {
	for _, a := range c.addOns {
		if a.ID == id {
			return a, true
		}
	}
	return models.AddOn{}, false
}

func copyPlan(p models.Plan) models.Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func copyAddOn(a models.AddOn) models.AddOn {
	a.Features = append([]string(nil), a.Features...)
	return a
}
