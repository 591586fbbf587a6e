package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegulatorRadar/internal/domain"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultOptions(), WithClock(fixedClock()))
}

func TestAnalyzeEnforcementScenario(t *testing.T) {
	t.Parallel()

	item := feedItem("SEC Charges Fintech Company with AML Violations",
		"The Securities and Exchange Commission today charged a fintech company with failing to maintain "+
			"an adequate anti-money laundering program. The company agreed to pay a civil penalty of $500,000 "+
			"and must complete remediation within 90 days.")

	res := newTestEngine().Analyze(item)
	require.True(t, res.Success)
	require.NotNil(t, res.Analysis)
	assert.Empty(t, res.Errors)

	a := res.Analysis
	assert.Equal(t, domain.TypeEnforcement, a.RegulationType)
	assert.GreaterOrEqual(t, a.SeverityScore, 8)
	assert.InDelta(t, 500_000, a.EstimatedPenalty, 0.001)
	assert.Equal(t, 90, a.ImplementationTimelineDays)
	assert.Equal(t, item.GUID, a.ID)
	assert.Equal(t, item.Link, a.OriginalURL)
	assert.True(t, testNow.Equal(a.ProcessedAt))

	var ninety bool
	for _, d := range a.ComplianceDeadlines {
		if strings.Contains(d.Description, "90 days") {
			ninety = true
		}
	}
	assert.True(t, ninety, "expected a deadline referencing 90 days")
	assert.Contains(t, res.Warnings, WarnHighSeverity)
	assert.Equal(t, res.Warnings, a.Warnings)
}

func TestAnalyzeFinalRuleScenario(t *testing.T) {
	t.Parallel()

	res := newTestEngine().Analyze(feedItem("SEC Adopts Final Rule on Digital Asset Custody",
		"Final rule with new requirements and compliance dates"))
	require.True(t, res.Success)

	a := res.Analysis
	assert.Equal(t, domain.TypeFinalRule, a.RegulationType)
	assert.GreaterOrEqual(t, a.SeverityScore, 5)
	assert.Less(t, a.SeverityScore, 8)
	assert.Contains(t, res.Warnings, WarnLimitedDescription)
}

func TestAnalyzeProposedRuleScenario(t *testing.T) {
	t.Parallel()

	res := newTestEngine().Analyze(feedItem("SEC Proposes New Rules for Investment Advisers",
		"Proposed rule in comment period"))
	require.True(t, res.Success)

	a := res.Analysis
	assert.Equal(t, domain.TypeProposedRule, a.RegulationType)
	assert.Less(t, a.SeverityScore, 5)
	assert.Greater(t, a.ImplementationTimelineDays, 180)

	var comment bool
	for _, ai := range a.ActionItems {
		if strings.Contains(strings.ToLower(ai.Description), "comment") {
			comment = true
		}
	}
	assert.True(t, comment)
}

func TestAnalyzeValidation(t *testing.T) {
	t.Parallel()

	valid := feedItem("SEC Charges Firm", "A long enough description of the enforcement action.")

	cases := []struct {
		name   string
		mutate func(*domain.FeedItem)
		field  string
	}{
		{"empty title", func(i *domain.FeedItem) { i.Title = "" }, domain.FieldTitle},
		{"blank title", func(i *domain.FeedItem) { i.Title = "   " }, domain.FieldTitle},
		{"empty description", func(i *domain.FeedItem) { i.Description = "" }, domain.FieldDescription},
		{"malformed url", func(i *domain.FeedItem) { i.Link = "not-a-valid-url" }, domain.FieldLink},
		{"missing url", func(i *domain.FeedItem) { i.Link = "" }, domain.FieldLink},
		{"invalid date", func(i *domain.FeedItem) { i.PublishedAt = time.Time{} }, domain.FieldPublishedAt},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			item := valid
			tc.mutate(&item)

			res := newTestEngine().Analyze(item)
			assert.False(t, res.Success)
			assert.Nil(t, res.Analysis)
			require.Len(t, res.Errors, 1)
			assert.Equal(t, domain.KindValidation, res.Errors[0].Kind)
			assert.Equal(t, tc.field, res.Errors[0].Field)
			assert.Contains(t, res.Errors[0].Error(), tc.field)
		})
	}
}

func TestAnalyzeValidationReportsEveryField(t *testing.T) {
	t.Parallel()

	res := newTestEngine().Analyze(domain.FeedItem{Link: "nope"})
	require.False(t, res.Success)

	fields := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{domain.FieldTitle, domain.FieldDescription, domain.FieldLink, domain.FieldPublishedAt}, fields)
}

func TestAnalyzeBatchIndependentFailures(t *testing.T) {
	t.Parallel()

	ok := feedItem("SEC Charges Firm", "Settled charges for books and records violations.")
	bad := ok
	bad.Title = ""

	results := newTestEngine().AnalyzeBatch([]domain.FeedItem{ok, bad})
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Errors)
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	item := feedItem("Crypto Platform Settles Custody Charges", "The platform will pay $15 million for KYC and cybersecurity failures.")
	engine := newTestEngine()

	first := engine.Analyze(item)
	second := engine.Analyze(item)
	require.True(t, first.Success)
	require.True(t, second.Success)

	assert.Equal(t, first.Analysis.SeverityScore, second.Analysis.SeverityScore)
	assert.Equal(t, first.Analysis.RegulationType, second.Analysis.RegulationType)
	assert.Equal(t, first.Analysis.BusinessImpactAreas, second.Analysis.BusinessImpactAreas)
	assert.Equal(t, first.Analysis.EstimatedPenalty, second.Analysis.EstimatedPenalty)
	assert.Equal(t, first.Analysis.ActionItems, second.Analysis.ActionItems)
}

func TestWarnings(t *testing.T) {
	t.Parallel()

	a := domain.RegulationAnalysis{
		SeverityScore:              9,
		EstimatedPenalty:           2_000_000,
		ImplementationTimelineDays: 14,
		BusinessImpactAreas:        domain.NewImpactAreas(domain.AreaOperations, domain.AreaReporting, domain.AreaTechnology),
	}
	got := Warnings(a, feedItem("t", "short"))
	assert.Equal(t, []string{
		WarnHighSeverity,
		WarnSignificantPenalty,
		WarnShortTimeline,
		WarnLimitedDescription,
		WarnMultipleAreas,
	}, got)

	quiet := domain.RegulationAnalysis{
		SeverityScore:              3,
		EstimatedPenalty:           1_000_000,
		ImplementationTimelineDays: 30,
		BusinessImpactAreas:        domain.NewImpactAreas(),
	}
	assert.Empty(t, Warnings(quiet, feedItem("t", strings.Repeat("d", 100))))
}

func TestAnalyzeTranslationFailure(t *testing.T) {
	t.Parallel()

	e := NewEngine(DefaultOptions(),
		WithClock(fixedClock()),
		withTranslator(NewTranslator(DefaultOptions(), failingClock())),
	)
	item := feedItem("SEC Adopts Final Rule on Digital Asset Custody",
		"The Commission adopted a final rule requiring advisers to safeguard client crypto assets.")

	res := e.Analyze(item)
	require.True(t, res.Success)
	require.NotNil(t, res.Analysis)
	assert.Empty(t, res.Errors)

	a := res.Analysis
	fallback := FallbackTranslation()
	assert.Equal(t, domain.TypeFinalRule, a.RegulationType)
	assert.Equal(t, fallback.Summary, a.PlainEnglishSummary)
	assert.InDelta(t, FallbackConfidence, a.Confidence, 1e-9)
	require.Len(t, a.ActionItems, 1)
	assert.Equal(t, fallback.ActionItems[0].Description, a.ActionItems[0].Description)
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, WarnFallbackTranslate, res.Warnings[0])
	assert.Equal(t, res.Warnings, a.Warnings)
}

func TestGuardRecoversPanics(t *testing.T) {
	t.Parallel()

	e := newTestEngine()
	got := guard(e.logger, "explode", 7, func() int { panic("boom") })
	assert.Equal(t, 7, got)
}

func TestProcessingTimeRecorded(t *testing.T) {
	t.Parallel()

	res := newTestEngine().Analyze(domain.FeedItem{})
	assert.False(t, res.Success)
	assert.GreaterOrEqual(t, res.ProcessingTimeMs(), int64(0))
}
