package analysis

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywordSet matches a fixed list of keywords at word starts, so "fine"
// matches "fines" but not "define".
type keywordSet struct {
	words []string
	exprs []*regexp.Regexp
}

func newKeywordSet(words ...string) keywordSet {
	set := keywordSet{words: words, exprs: make([]*regexp.Regexp, len(words))}
	for i, w := range words {
		set.exprs[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w))
	}
	return set
}

// matches returns the distinct keywords found in text, in list order.
func (k keywordSet) matches(text string) []string {
	var found []string
	for i, expr := range k.exprs {
		if expr.MatchString(text) {
			found = append(found, k.words[i])
		}
	}
	return found
}

func (k keywordSet) any(text string) bool {
	for _, expr := range k.exprs {
		if expr.MatchString(text) {
			return true
		}
	}
	return false
}

func (k keywordSet) count(text string) int {
	return len(k.matches(text))
}

type phraseRule struct {
	expr  *regexp.Regexp
	plain string
}

func compilePhrases(pairs [][2]string) []phraseRule {
	rules := make([]phraseRule, len(pairs))
	for i, p := range pairs {
		rules[i] = phraseRule{
			expr:  regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p[0]) + `\b`),
			plain: p[1],
		}
	}
	return rules
}

// Applied in order; longer phrases come before the words they contain.
var legalPhrases = compilePhrases([][2]string{
	{"pursuant to", "according to"},
	{"in accordance with", "following"},
	{"notwithstanding", "despite"},
	{"in the event that", "if"},
	{"for the purpose of", "to"},
	{"with respect to", "regarding"},
	{"in lieu of", "instead of"},
	{"prior to", "before"},
	{"subsequent to", "after"},
	{"heretofore", "until now"},
	{"hereinafter", "from now on"},
	{"aforementioned", "previously mentioned"},
	{"is required to", "must"},
	{"are required to", "must"},
	{"shall not", "must not"},
	{"shall", "must"},
	{"promulgate", "issue"},
	{"promulgated", "issued"},
	{"commence", "start"},
	{"terminate", "end"},
	{"utilize", "use"},
	{"effectuate", "carry out"},
	{"remediate", "fix"},
	{"registrants", "registered companies"},
	{"registrant", "registered company"},
	{"the Commission", "the SEC"},
})

// PlainEnglish rewrites common legal phrasing and splits long relative
// clauses into separate sentences.
func PlainEnglish(text string) string {
	out := normalizeSpace(text)
	for _, rule := range legalPhrases {
		plain := rule.plain
		out = rule.expr.ReplaceAllStringFunc(out, func(match string) string {
			if r, _ := utf8.DecodeRuneInString(match); unicode.IsUpper(r) {
				return capitalize(plain)
			}
			return plain
		})
	}
	return restructure(out)
}

const longSentence = 120

var (
	sentenceExpr = regexp.MustCompile(`[^.!?]+[.!?]*`)
	clauseExpr   = regexp.MustCompile(`,\s+(which|that)\s+`)
)

func restructure(text string) string {
	sentences := sentenceExpr.FindAllString(text, -1)
	for i, s := range sentences {
		if len(s) <= longSentence {
			continue
		}
		sentences[i] = clauseExpr.ReplaceAllString(s, ". This ")
	}
	return normalizeSpace(strings.Join(sentences, ""))
}

func normalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncate shortens s to at most max bytes, ending with "..." when cut.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimRight(s[:cut], " ,;") + "..."
}
