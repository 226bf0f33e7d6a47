package models

import "github.com/shopspring/decimal"

// Plan is a processing plan offered during signup.
type Plan struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         string          `json:"price"`
	PercentFee    decimal.Decimal `json:"percent_fee"`
	FixedFeeCents int64           `json:"fixed_fee_cents"`
	MonthlyFee    decimal.Decimal `json:"monthly_fee"`
	CustomPricing bool            `json:"custom_pricing"`
	Features      []string        `json:"features"`
	Recommended   bool            `json:"recommended"`
}

// AddOn is an optional product attached to a plan.
type AddOn struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Coverage    string          `json:"coverage,omitempty"`
	Features    []string        `json:"features"`
	Recommended bool            `json:"recommended"`
	RiskScore   *float64        `json:"risk_score,omitempty"`
}

// Quote is the monthly cost of a plan with add-ons.
type Quote struct {
	PlanID       string          `json:"plan_id"`
	AddOnIDs     []string        `json:"add_on_ids"`
	PlanFee      decimal.Decimal `json:"plan_fee"`
	AddOnTotal   decimal.Decimal `json:"add_on_total"`
	MonthlyTotal decimal.Decimal `json:"monthly_total"`
	Custom       bool            `json:"custom"`
}
