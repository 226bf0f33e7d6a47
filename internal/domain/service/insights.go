package service

import "github.com/turtacn/securepay/internal/domain/models"

const maxInsights = 3

type insightRule struct {
	below   float64
	insight models.Insight
}

// insightCatalog is evaluated in order; the order is part of the output contract.
var insightCatalog = []insightRule{
	{7.0, models.Insight{
		Title:       "Outdated SSL Certificates",
		Description: "Your domain has SSL certificates that are approaching expiration or using outdated encryption standards.",
	}},
	{7.5, models.Insight{
		Title:       "Open Ports Detected",
		Description: "Several unnecessary ports are open on your network, potentially exposing services to unauthorized access.",
	}},
	{8.0, models.Insight{
		Title:       "Email Security Vulnerabilities",
		Description: "Missing or improperly configured SPF, DKIM, or DMARC records make your domain vulnerable to email spoofing.",
	}},
	{6.5, models.Insight{
		Title:       "Outdated CMS Version",
		Description: "Your content management system is running an outdated version with known security vulnerabilities.",
	}},
	{6.0, models.Insight{
		Title:       "Weak Authentication Protocols",
		Description: "Multi-factor authentication is not enabled for administrative accounts.",
	}},
}

var fallbackInsight = models.Insight{
	Title:       "Minor Configuration Issues",
	Description: "Some security headers are missing or improperly configured on your web servers.",
}

// GetRiskInsights returns up to three findings whose gate lies strictly above
// score, in catalog order. When none match it returns the single
// "Minor Configuration Issues" finding, so the result is never empty.
// domain is currently unused.
func GetRiskInsights(score float64, domain string) []models.Insight {
	_ = domain

	insights := make([]models.Insight, 0, maxInsights)
	for _, rule := range insightCatalog {
		if score < rule.below {
			insights = append(insights, rule.insight)
			if len(insights) == maxInsights {
				break
			}
		}
	}

	if len(insights) == 0 {
		insights = append(insights, fallbackInsight)
	}
	return insights
}
