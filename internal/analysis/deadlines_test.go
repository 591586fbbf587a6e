package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegulatorRadar/internal/domain"
)

func TestDetectDeadlinesRelative(t *testing.T) {
	t.Parallel()

	item := feedItem("SEC Charges Fintech Company with AML Violations",
		"The firm must be completed within 90 days with its remediation plan, and must report progress within 6 months.")

	deadlines := DetectDeadlines(item, testNow)
	require.Len(t, deadlines, 2)

	assert.Equal(t, "Action required within 90 days", deadlines[0].Description)
	assert.Equal(t, "completion_window", deadlines[0].Source)
	assert.Equal(t, domain.PriorityHigh, deadlines[0].Priority)
	require.NotNil(t, deadlines[0].EstimatedDate)
	assert.Nil(t, deadlines[0].Date)
	assert.True(t, testNow.AddDate(0, 0, 90).Equal(*deadlines[0].EstimatedDate))

	assert.Equal(t, "Action required within 6 months", deadlines[1].Description)
	assert.Equal(t, domain.PriorityMedium, deadlines[1].Priority)
}

func TestDetectDeadlinesSkipsOversizedSpans(t *testing.T) {
	t.Parallel()

	item := feedItem("SEC Proposes Rule", "Respond within 99999999999999999 years or within 90 days.")

	deadlines := DetectDeadlines(item, testNow)
	require.Len(t, deadlines, 1)
	assert.Equal(t, "Action required within 90 days", deadlines[0].Description)
	require.NotNil(t, deadlines[0].EstimatedDate)
	assert.True(t, testNow.AddDate(0, 0, 90).Equal(*deadlines[0].EstimatedDate))
}

func TestParseRelativeBounds(t *testing.T) {
	t.Parallel()

	span, ok := parseRelative("100", "year")
	require.True(t, ok)
	assert.Equal(t, 36500, span.Days)

	_, ok = parseRelative("101", "year")
	assert.False(t, ok)
	_, ok = parseRelative("99999999999999999", "year")
	assert.False(t, ok)
	_, ok = parseRelative("0", "day")
	assert.False(t, ok)
}

func TestDetectDeadlinesAbsolute(t *testing.T) {
	t.Parallel()

	item := feedItem("SEC Adopts Final Rule",
		"The rule is effective on March 3, 2027. Compliance date: 2028-01-31. Filings are due no later than June 30, 2028.")

	deadlines := DetectDeadlines(item, testNow)
	require.Len(t, deadlines, 3)

	assert.Equal(t, "Effective date: March 3, 2027", deadlines[0].Description)
	assert.Equal(t, "Compliance deadline: 2028-01-31", deadlines[1].Description)
	assert.Equal(t, "No later than: June 30, 2028", deadlines[2].Description)

	for _, d := range deadlines {
		assert.Equal(t, domain.PriorityHigh, d.Priority)
		require.NotNil(t, d.Date)
		assert.Nil(t, d.EstimatedDate)
	}
	assert.True(t, time.Date(2027, time.March, 3, 0, 0, 0, 0, time.UTC).Equal(*deadlines[0].Date))
}

func TestDetectDeadlinesNone(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DetectDeadlines(feedItem("SEC Proposes Rule", "Proposed rule in comment period"), testNow))
}

func TestKeyRequirements(t *testing.T) {
	t.Parallel()

	item := feedItem("Custody Rule",
		"Advisers shall maintain client assets with a qualified custodian. Advisers are prohibited from commingling funds. "+
			"Advisers shall maintain client assets with a qualified custodian. Firms must. "+
			"Disclosure requirements apply to all private funds.")

	reqs := KeyRequirements(item)
	assert.Equal(t, []string{
		"Must maintain client assets with a qualified custodian",
		"Prohibited from commingling funds",
		"Disclosure requirements apply to all private funds",
	}, reqs)
}

func TestKeyRequirementsCapped(t *testing.T) {
	t.Parallel()

	desc := "Firms must keep books one. Firms must keep books two. Firms must keep books three. " +
		"Firms must keep books four. Firms must keep books five. Firms must keep books six."
	assert.Len(t, KeyRequirements(feedItem("Recordkeeping", desc)), 5)
}
