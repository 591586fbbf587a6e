package storage

import (
	"sort"

	"RegulatorRadar/internal/domain"
)

// SortAnalyses orders by severity descending, then processing time descending.
func SortAnalyses(items []domain.RegulationAnalysis) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SeverityScore != items[j].SeverityScore {
			return items[i].SeverityScore > items[j].SeverityScore
		}
		return items[i].ProcessedAt.After(items[j].ProcessedAt)
	})
}
