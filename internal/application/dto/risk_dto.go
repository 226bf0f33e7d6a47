package dto

import "github.com/turtacn/securepay/internal/domain/models"

// ProfileDTO carries raw business profile values as submitted by clients.
// Categorical fields are parsed leniently when converted to a model.
type ProfileDTO struct {
	BusinessName  string `json:"business_name"`
	Email         string `json:"email"`
	Website       string `json:"website,omitempty"`
	BusinessType  string `json:"business_type"`
	MonthlyVolume string `json:"monthly_volume"`
	Country       string `json:"country"`
}

// ToModel converts the DTO into a domain profile. A nil DTO yields nil.
func (p *ProfileDTO) ToModel() *models.BusinessProfile {
	if p == nil {
		return nil
	}
	return models.NewBusinessProfile(p.BusinessName, p.Email, p.Website, p.BusinessType, p.MonthlyVolume, p.Country)
}

// ScoreRequest is the body of a score request. Profile may be omitted.
type ScoreRequest struct {
	Profile *ProfileDTO `json:"profile,omitempty"`
}

// ScoreResponse is the result of scoring a profile.
type ScoreResponse struct {
	Score           float64 `json:"score"`
	ProfileSupplied bool    `json:"profile_supplied"`
}

// LevelResponse is the classification of a score.
type LevelResponse struct {
	Score float64         `json:"score"`
	Tier  models.RiskTier `json:"tier"`
}

// InsightsResponse lists findings for a score.
type InsightsResponse struct {
	Score    float64          `json:"score"`
	Domain   string           `json:"domain,omitempty"`
	Insights []models.Insight `json:"insights"`
}

// VulnerabilitiesResponse lists vulnerabilities for a score.
type VulnerabilitiesResponse struct {
	Score           float64                `json:"score"`
	Vulnerabilities []models.Vulnerability `json:"vulnerabilities"`
}

// SignupAssessmentRequest is the signup form. Unknown business types and
// volumes are accepted and scored with the default weights.
type SignupAssessmentRequest struct {
	BusinessName  string `json:"business_name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Website       string `json:"website,omitempty" validate:"max=2048"`
	BusinessType  string `json:"business_type" validate:"required"`
	MonthlyVolume string `json:"monthly_volume" validate:"required"`
	Country       string `json:"country" validate:"required"`
}

// Profile returns the raw profile carried by the form.
func (r *SignupAssessmentRequest) Profile() *ProfileDTO {
	return &ProfileDTO{
		BusinessName:  r.BusinessName,
		Email:         r.Email,
		Website:       r.Website,
		BusinessType:  r.BusinessType,
		MonthlyVolume: r.MonthlyVolume,
		Country:       r.Country,
	}
}

// DomainAssessmentRequest is the landing-page domain check.
type DomainAssessmentRequest struct {
	Domain string `json:"domain"`
}
