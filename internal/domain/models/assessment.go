package models

import (
	"time"

	"github.com/turtacn/securepay/pkg/constants"
)

// SignupAssessment is the result of scoring a signup form.
type SignupAssessment struct {
	ID              string           `json:"id"`
	Profile         *BusinessProfile `json:"profile"`
	Score           float64          `json:"score"`
	Tier            RiskTier         `json:"tier"`
	Vulnerabilities []Vulnerability  `json:"vulnerabilities"`
	AssessedAt      time.Time        `json:"assessed_at"`
}

// DomainAssessment is the landing-page report for a domain.
type DomainAssessment struct {
	ID              string          `json:"id"`
	Domain          string          `json:"domain"`
	Score           float64         `json:"score"`
	Tier            RiskTier        `json:"tier"`
	Grade           RiskGrade       `json:"grade"`
	Insights        []Insight       `json:"insights"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
	AssessedAt      time.Time       `json:"assessed_at"`
}

// AssessmentEvent is the audit record emitted after an assessment or quote.
type AssessmentEvent struct {
	EventID      string                   `json:"event_id"`
	EventType    constants.AuditEventType `json:"event_type"`
	AssessmentID string                   `json:"assessment_id,omitempty"`
	Score        float64                  `json:"score"`
	Level        RiskLevel                `json:"level,omitempty"`
	Domain       string                   `json:"domain,omitempty"`
	BusinessType BusinessType             `json:"business_type,omitempty"`
	PlanID       string                   `json:"plan_id,omitempty"`
	RequestID    string                   `json:"request_id,omitempty"`
	Timestamp    time.Time                `json:"timestamp"`
}
