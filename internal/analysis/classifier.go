package analysis

import (
	"strings"

	"RegulatorRadar/internal/domain"
)

var (
	enforcementKeywords = newKeywordSet(
		"charges", "settles", "enforcement", "violation", "penalty", "fine",
		"cease and desist", "administrative proceeding", "sanctions",
	)
	finalRuleKeywords = newKeywordSet(
		"final rule", "adopts", "effective date", "compliance date",
		"new requirements", "amendments to",
	)
)

// Classify determines the regulation type of an item. Enforcement keywords
// take precedence over final-rule keywords; anything else is a proposed rule.
func Classify(item domain.FeedItem) domain.RegulationType {
	content := strings.ToLower(item.Content())

	switch {
	case enforcementKeywords.any(content):
		return domain.TypeEnforcement
	case finalRuleKeywords.any(content):
		return domain.TypeFinalRule
	default:
		return domain.TypeProposedRule
	}
}
