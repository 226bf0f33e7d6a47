package models

// RiskLevel is the coarse classification of a risk score.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelModerate RiskLevel = "Moderate"
	RiskLevelHigh     RiskLevel = "High"
)

// RiskTier is a RiskLevel with its display metadata.
type RiskTier struct {
	Level       RiskLevel `json:"level"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
}

// Insight is a human-readable security finding.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Severity ranks a vulnerability.
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Vulnerability is a categorized finding with a severity.
type Vulnerability struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// RiskGrade is the letter grade shown next to a domain report.
type RiskGrade string

const (
	RiskGradeAMinus RiskGrade = "A-"
	RiskGradeB      RiskGrade = "B"
	RiskGradeBMinus RiskGrade = "B-"
	RiskGradeC      RiskGrade = "C"
)
