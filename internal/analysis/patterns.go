package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(?:january|february|march|april|may|june|july|august|september|october|november|december|sept|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)`

// datePattern matches "January 15, 2027", "Jan. 15 2027", "2027-01-15" and "1/15/2027".
const datePattern = `(?:` + monthPattern + `\.?\s+\d{1,2},?\s+\d{4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4})`

var (
	moneyExpr       = regexp.MustCompile(`(?i)\$\s?(\d[\d,]*(?:\.\d+)?)(?:\s*(million|billion|m|b)\b)?`)
	millionsExpr    = regexp.MustCompile(`(?i)\$\s?(\d[\d,]*(?:\.\d+)?)\s*(million|m)\b`)
	relativeExpr    = regexp.MustCompile(`(?i)\b(\d+)\s*(day|week|month|year)s?\b`)
	implementDateEx = regexp.MustCompile(`(?i)\b(?:effective|compliance|implementation)\b[^.]{0,80}?(` + datePattern + `)`)
	monthDotExpr    = regexp.MustCompile(`(?i)^(` + monthPattern + `)\.`)
)

var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006-01-02",
	"1/2/2006",
}

// parseDate parses any date matched by datePattern.
func parseDate(raw string) (time.Time, bool) {
	value := normalizeSpace(raw)
	value = monthDotExpr.ReplaceAllString(value, "$1")
	if strings.HasPrefix(strings.ToLower(value), "sept ") {
		value = "Sep" + value[4:]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// moneyMatch is a dollar amount found in text, in absolute currency units.
type moneyMatch struct {
	Text   string
	Amount float64
}

func findMoney(expr *regexp.Regexp, text string) []moneyMatch {
	var out []moneyMatch
	for _, m := range expr.FindAllStringSubmatch(text, -1) {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		out = append(out, moneyMatch{Text: m[0], Amount: amount * unitMultiplier(m[2])})
	}
	return out
}

func unitMultiplier(unit string) float64 {
	switch strings.ToLower(unit) {
	case "million", "m":
		return 1e6
	case "billion", "b":
		return 1e9
	default:
		return 1
	}
}

// maxRelativeDays bounds parsed timeframes to a century.
const maxRelativeDays = 100 * 365

// relativeSpan is a "<N> <unit>" timeframe converted to days.
type relativeSpan struct {
	Text string
	N    int
	Unit string
	Days int
}

func parseRelative(number, unit string) (relativeSpan, bool) {
	n, err := strconv.Atoi(number)
	if err != nil || n <= 0 {
		return relativeSpan{}, false
	}
	unit = strings.ToLower(unit)
	per := unitDays(unit)
	if n > maxRelativeDays/per {
		return relativeSpan{}, false
	}
	return relativeSpan{N: n, Unit: unit, Days: n * per}, true
}

func findRelative(text string) []relativeSpan {
	var out []relativeSpan
	for _, m := range relativeExpr.FindAllStringSubmatch(text, -1) {
		span, ok := parseRelative(m[1], m[2])
		if !ok {
			continue
		}
		span.Text = m[0]
		out = append(out, span)
	}
	return out
}

func unitDays(unit string) int {
	switch unit {
	case "week":
		return 7
	case "month":
		return 30
	case "year":
		return 365
	default:
		return 1
	}
}

func (s relativeSpan) String() string {
	if s.N == 1 {
		return "1 " + s.Unit
	}
	return strconv.Itoa(s.N) + " " + s.Unit + "s"
}

// daysUntil returns ceil(target-now) in days.
func daysUntil(now, target time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}
