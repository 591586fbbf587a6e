package analysis

import (
	"math"
	"time"

	"RegulatorRadar/internal/domain"
)

// ExtractPenalty returns the largest dollar amount mentioned by the item in
// absolute currency units, or 0.
func ExtractPenalty(item domain.FeedItem) (penalty float64) {
	defer func() {
		if recover() != nil {
			penalty = 0
		}
	}()

	for _, m := range findMoney(moneyExpr, item.Content()) {
		penalty = math.Max(penalty, m.Amount)
	}
	return penalty
}

// DefaultTimeline is the implementation window assumed for a type when the
// item states none.
func DefaultTimeline(t domain.RegulationType) int {
	switch t {
	case domain.TypeEnforcement:
		return 30
	case domain.TypeFinalRule:
		return 180
	default:
		return 365
	}
}

// EstimateTimeline returns the implementation window in days. An explicit
// effective/compliance/implementation date in the future wins, then the
// shortest relative timeframe, then the type default.
func EstimateTimeline(t domain.RegulationType, item domain.FeedItem, now time.Time) (days int) {
	defer func() {
		if recover() != nil {
			days = DefaultTimeline(t)
		}
	}()

	content := item.Content()

	for _, m := range implementDateEx.FindAllStringSubmatch(content, -1) {
		date, ok := parseDate(m[1])
		if !ok {
			continue
		}
		if d := daysUntil(now, date); d > 0 {
			return d
		}
	}

	shortest := 0
	for _, span := range findRelative(content) {
		if span.Days <= 0 {
			continue
		}
		if shortest == 0 || span.Days < shortest {
			shortest = span.Days
		}
	}
	if shortest > 0 {
		return shortest
	}

	return DefaultTimeline(t)
}
