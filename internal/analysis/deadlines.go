package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"RegulatorRadar/internal/domain"
)

const (
	urgentWindowDays = 90
	dedupPrefixLen   = 50
)

type deadlinePattern struct {
	source   string
	label    string
	expr     *regexp.Regexp
	relative bool
}

const relativeGroup = `(\d+)\s*(day|week|month|year)s?\b`

// Scanned in order; a later candidate whose description prefix repeats an
// earlier one is dropped.
var deadlinePatterns = []deadlinePattern{
	{
		source: "effective_date",
		label:  "Effective date",
		expr:   regexp.MustCompile(`(?i)\beffective(?:\s+date)?(?:\s+(?:is|of|on|as\s+of))?\s*:?\s*(` + datePattern + `)`),
	},
	{
		source: "compliance_deadline",
		label:  "Compliance deadline",
		expr:   regexp.MustCompile(`(?i)\bcompliance\s+(?:date|deadline)(?:\s+(?:is|of|on))?\s*:?\s*(` + datePattern + `)`),
	},
	{
		source:   "completion_window",
		expr:     regexp.MustCompile(`(?i)\bmust\s+be\s+(?:completed|implemented|in\s+place)\s+within\s+` + relativeGroup),
		relative: true,
	},
	{
		source: "no_later_than",
		label:  "No later than",
		expr:   regexp.MustCompile(`(?i)\bno\s+later\s+than\s+(` + datePattern + `)`),
	},
	{
		source:   "no_later_than",
		expr:     regexp.MustCompile(`(?i)\bno\s+later\s+than\s+` + relativeGroup),
		relative: true,
	},
	{
		source:   "relative_window",
		expr:     regexp.MustCompile(`(?i)\bwithin\s+` + relativeGroup),
		relative: true,
	},
}

// DetectDeadlines collects compliance deadlines stated in the item. Absolute
// dates are kept as-is; relative timeframes become estimates from now.
func DetectDeadlines(item domain.FeedItem, now time.Time) []domain.ComplianceDeadline {
	content := normalizeSpace(item.Content())

	var (
		out  []domain.ComplianceDeadline
		seen = map[string]struct{}{}
	)
	for _, p := range deadlinePatterns {
		for _, m := range p.expr.FindAllStringSubmatch(content, -1) {
			d, ok := p.candidate(m, now)
			if !ok {
				continue
			}
			key := dedupKey(d.Description)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

func (p deadlinePattern) candidate(m []string, now time.Time) (domain.ComplianceDeadline, bool) {
	if p.relative {
		span, ok := parseRelative(m[1], m[2])
		if !ok {
			return domain.ComplianceDeadline{}, false
		}
		estimated := now.AddDate(0, 0, span.Days)
		priority := domain.PriorityMedium
		if span.Days <= urgentWindowDays {
			priority = domain.PriorityHigh
		}
		return domain.ComplianceDeadline{
			Description:   fmt.Sprintf("Action required within %s", span),
			EstimatedDate: &estimated,
			Priority:      priority,
			Source:        p.source,
		}, true
	}

	date, ok := parseDate(m[1])
	if !ok {
		return domain.ComplianceDeadline{}, false
	}
	return domain.ComplianceDeadline{
		Description: fmt.Sprintf("%s: %s", p.label, normalizeSpace(m[1])),
		Date:        &date,
		Priority:    domain.PriorityHigh,
		Source:      p.source,
	}, true
}

func dedupKey(description string) string {
	key := strings.ToLower(normalizeSpace(description))
	if len(key) > dedupPrefixLen {
		key = key[:dedupPrefixLen]
	}
	return key
}
