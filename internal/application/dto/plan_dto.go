package dto

import "github.com/turtacn/securepay/internal/domain/models"

// AddOnsRequest asks for add-on recommendations for a plan and profile.
type AddOnsRequest struct {
	PlanID  string      `json:"plan_id" validate:"required"`
	Profile *ProfileDTO `json:"profile,omitempty"`
}

// AddOnsResponse lists add-ons with recommendation flags.
type AddOnsResponse struct {
	PlanID string         `json:"plan_id"`
	AddOns []models.AddOn `json:"add_ons"`
}

// QuoteRequest asks for the monthly price of a plan with add-ons.
type QuoteRequest struct {
	PlanID   string   `json:"plan_id" validate:"required"`
	AddOnIDs []string `json:"add_on_ids"`
}

// PlansResponse lists available plans.
type PlansResponse struct {
	Plans []models.Plan `json:"plans"`
}
