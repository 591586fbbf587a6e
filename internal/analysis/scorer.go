package analysis

import (
	"math"
	"strings"

	"RegulatorRadar/internal/domain"
)

var (
	highImpactKeywords = newKeywordSet(
		"cryptocurrency", "digital asset", "broker-dealer", "investment adviser",
		"custody", "aml", "kyc", "consumer protection", "systemic risk",
	)
	urgencyKeywords = newKeywordSet("immediate", "emergency", "temporary", "interim")
)

// BaseSeverity is the score of a type before any adjustment.
func BaseSeverity(t domain.RegulationType) int {
	switch t {
	case domain.TypeEnforcement:
		return 8
	case domain.TypeFinalRule:
		return 5
	default:
		return 2
	}
}

// Score computes the 1-10 severity of an item. factor scales the summed
// adjustments; 1.0 leaves them untouched. A failure while extracting signals
// yields the type's base severity.
func Score(t domain.RegulationType, item domain.FeedItem, factor float64) (score int) {
	defer func() {
		if recover() != nil {
			score = BaseSeverity(t)
		}
	}()

	content := strings.ToLower(item.Content())
	adjustment := 0

	switch hits := highImpactKeywords.count(content); {
	case hits >= 3:
		adjustment += 2
	case hits >= 1:
		adjustment++
	}

	if t == domain.TypeEnforcement {
		largest := 0.0
		for _, m := range findMoney(millionsExpr, content) {
			largest = math.Max(largest, m.Amount)
		}
		switch {
		case largest >= 10e6:
			adjustment += 2
		case largest >= 1e6:
			adjustment++
		}
	}

	if urgencyKeywords.any(content) {
		adjustment++
	}

	scaled := float64(adjustment) * factor
	if math.IsNaN(scaled) {
		scaled = float64(adjustment)
	}
	// Severity spans 1..10, so a scaled adjustment beyond ±10 saturates.
	scaled = math.Max(-10, math.Min(10, scaled))
	return domain.ClampSeverity(BaseSeverity(t) + int(math.Round(scaled)))
}
