package service

import "github.com/turtacn/securepay/internal/domain/models"

const maxVulnerabilities = 4

type vulnerabilityGate struct {
	below       float64
	severity    models.Severity
	description string
}

type vulnerabilityRule struct {
	vulnType string
	// gates are tried in order and the first match wins
	gates []vulnerabilityGate
}

var vulnerabilityCatalog = []vulnerabilityRule{
	{
		vulnType: "SSL Certificate",
		gates: []vulnerabilityGate{
			{6.5, models.SeverityHigh, "Certificate expires in 30 days"},
			{7.5, models.SeverityMedium, "Certificate expires in 30 days"},
		},
	},
	{
		vulnType: "Open Ports",
		gates: []vulnerabilityGate{
			{7.0, models.SeverityHigh, "3 unnecessary ports exposed"},
			{8.0, models.SeverityMedium, "2 unnecessary ports exposed"},
		},
	},
	{
		vulnType: "Software Updates",
		gates: []vulnerabilityGate{
			{7.5, models.SeverityMedium, "2 critical updates pending"},
		},
	},
	{
		vulnType: "DNS Configuration",
		gates: []vulnerabilityGate{
			{8.5, models.SeverityLow, "Suboptimal DNS security settings"},
		},
	},
}

// GetVulnerabilities returns at most one vulnerability per type, in catalog
// order, for every type with a gate strictly above score. The result may be
// empty; there is no fallback entry.
func GetVulnerabilities(score float64) []models.Vulnerability {
	vulns := make([]models.Vulnerability, 0, maxVulnerabilities)
	for _, rule := range vulnerabilityCatalog {
		for _, gate := range rule.gates {
			if score < gate.below {
				vulns = append(vulns, models.Vulnerability{
					Type:        rule.vulnType,
					Severity:    gate.severity,
					Description: gate.description,
				})
				break
			}
		}
	}

	if len(vulns) > maxVulnerabilities {
		vulns = vulns[:maxVulnerabilities]
	}
	return vulns
}
