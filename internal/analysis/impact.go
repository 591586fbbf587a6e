package analysis

import (
	"strings"

	"RegulatorRadar/internal/domain"
)

var impactKeywords = []struct {
	area     domain.ImpactArea
	keywords keywordSet
}{
	{domain.AreaOperations, newKeywordSet(
		"compliance", "procedures", "policies", "training", "supervision",
		"customer", "client", "onboarding", "kyc", "aml", "due diligence",
	)},
	{domain.AreaReporting, newKeywordSet(
		"disclosure", "filing", "report", "record", "documentation", "audit",
		"examination", "books and records", "quarterly", "annual",
	)},
	{domain.AreaTechnology, newKeywordSet(
		"cybersecurity", "system", "technology", "data", "electronic", "digital",
		"software", "platform", "infrastructure", "security",
	)},
}

// Categorize maps an item to the business areas it affects. The result is
// never empty: items matching no area are attributed to operations.
func Categorize(item domain.FeedItem) domain.ImpactAreas {
	content := strings.ToLower(item.Content())

	var areas []domain.ImpactArea
	for _, group := range impactKeywords {
		if group.keywords.any(content) {
			areas = append(areas, group.area)
		}
	}
	return domain.NewImpactAreas(areas...)
}
