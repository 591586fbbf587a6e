package usecase

import (
	"strings"

	"RegulatorRadar/internal/domain"
)

// TitleSimilarityThreshold is the Jaccard score above which two titles are
// treated as the same announcement.
const TitleSimilarityThreshold = 0.9

type fingerprint struct {
	id     string
	link   string
	tokens map[string]struct{}
}

func fingerprintItem(item domain.FeedItem) fingerprint {
	return fingerprint{
		id:     domain.AnalysisID(item),
		link:   strings.TrimSpace(item.Link),
		tokens: titleTokens(item.Title),
	}
}

func fingerprintAnalysis(a domain.RegulationAnalysis) fingerprint {
	return fingerprint{
		id:     a.ID,
		link:   strings.TrimSpace(a.OriginalURL),
		tokens: titleTokens(a.Title),
	}
}

func (f fingerprint) matches(other fingerprint) bool {
	if f.id != "" && f.id == other.id {
		return true
	}
	if f.link != "" && f.link == other.link {
		return true
	}
	return Jaccard(f.tokens, other.tokens) >= TitleSimilarityThreshold
}

// Deduplicate drops items already present in known, and repeats within items,
// matching on id, link or near-identical title. Order is preserved.
func Deduplicate(items []domain.FeedItem, known []domain.RegulationAnalysis) []domain.FeedItem {
	seen := make([]fingerprint, 0, len(known)+len(items))
	for _, a := range known {
		seen = append(seen, fingerprintAnalysis(a))
	}

	out := make([]domain.FeedItem, 0, len(items))
	for _, item := range items {
		fp := fingerprintItem(item)
		dup := false
		for _, s := range seen {
			if fp.matches(s) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, fp)
		out = append(out, item)
	}
	return out
}

func titleTokens(title string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(title))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
