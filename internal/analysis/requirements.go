package analysis

import (
	"regexp"
	"strings"

	"RegulatorRadar/internal/domain"
)

const (
	minRequirementLength = 10
	maxRequirementLength = 200
	maxRequirements      = 5
)

var requirementExprs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:must|shall|(?:is|are)\s+required\s+to)\s+[^.;]+`),
	regexp.MustCompile(`(?i)\b(?:prohibited\s+from|prohibits|may\s+not)\s+[^.;]+`),
	regexp.MustCompile(`(?i)\bcompliance\s+with\s+[^.;]+`),
	regexp.MustCompile(`(?i)\b(?:reporting|disclosure)\s+requirements?\b[^.;]*`),
}

// KeyRequirements extracts up to five obligation statements from the item,
// rewritten in plain English.
func KeyRequirements(item domain.FeedItem) []string {
	content := normalizeSpace(item.Content())

	var (
		out  []string
		seen = map[string]struct{}{}
	)
	for _, expr := range requirementExprs {
		for _, match := range expr.FindAllString(content, -1) {
			req := capitalize(strings.TrimSpace(PlainEnglish(match)))
			if len(req) < minRequirementLength || len(req) > maxRequirementLength {
				continue
			}
			key := strings.ToLower(req)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, req)
			if len(out) == maxRequirements {
				return out
			}
		}
	}
	return out
}
