package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"RegulatorRadar/internal/domain"
)

func TestBaseSeverity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, BaseSeverity(domain.TypeEnforcement))
	assert.Equal(t, 5, BaseSeverity(domain.TypeFinalRule))
	assert.Equal(t, 2, BaseSeverity(domain.TypeProposedRule))
}

func TestScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		typ  domain.RegulationType
		item domain.FeedItem
		want int
	}{
		{
			name: "enforcement without signals",
			typ:  domain.TypeEnforcement,
			item: feedItem("SEC Charges Trader", "Insider trading case."),
			want: 8,
		},
		{
			name: "one high impact keyword",
			typ:  domain.TypeEnforcement,
			item: feedItem("SEC Charges Fintech Company with AML Violations", "Penalty of $500,000."),
			want: 9,
		},
		{
			name: "three high impact keywords",
			typ:  domain.TypeFinalRule,
			item: feedItem("Custody Rule", "Applies to broker-dealer and investment adviser custody of cryptocurrency."),
			want: 7,
		},
		{
			name: "large enforcement penalty",
			typ:  domain.TypeEnforcement,
			item: feedItem("SEC Charges Bank", "The bank will pay $12.5 million."),
			want: 10,
		},
		{
			name: "medium enforcement penalty",
			typ:  domain.TypeEnforcement,
			item: feedItem("SEC Charges Bank", "The bank will pay $2M."),
			want: 9,
		},
		{
			name: "penalty ignored for rules",
			typ:  domain.TypeFinalRule,
			item: feedItem("Final rule", "Costs estimated at $50 million."),
			want: 5,
		},
		{
			name: "urgency",
			typ:  domain.TypeProposedRule,
			item: feedItem("Interim guidance", "Temporary relief."),
			want: 3,
		},
		{
			name: "clamped at ten",
			typ:  domain.TypeEnforcement,
			item: feedItem("Emergency action", "Cryptocurrency custody AML failures; $40 million penalty."),
			want: 10,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Score(tc.typ, tc.item, 1.0))
		})
	}
}

func TestScoreAdjustmentFactor(t *testing.T) {
	t.Parallel()

	item := feedItem("Custody Rule", "Applies to broker-dealer and investment adviser custody of cryptocurrency.")

	assert.Equal(t, 5, Score(domain.TypeFinalRule, item, 0))
	assert.Equal(t, 9, Score(domain.TypeFinalRule, item, 2.0))
	assert.Equal(t, 10, Score(domain.TypeFinalRule, item, 10.0))
}

func TestScoreExtremeAdjustmentFactor(t *testing.T) {
	t.Parallel()

	item := feedItem("Custody Rule", "Applies to broker-dealer and investment adviser custody of cryptocurrency.")

	assert.Equal(t, 10, Score(domain.TypeFinalRule, item, 1e300))
	assert.Equal(t, 10, Score(domain.TypeFinalRule, item, math.Inf(1)))
	assert.Equal(t, 1, Score(domain.TypeFinalRule, item, -1e300))
	assert.Equal(t, 7, Score(domain.TypeFinalRule, item, math.NaN()))
}

func TestOptionsNormalizeAdjustmentFactor(t *testing.T) {
	t.Parallel()

	for _, factor := range []float64{-2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		opts := DefaultOptions()
		opts.SeverityAdjustmentFactor = factor
		assert.InDelta(t, 1.0, opts.normalized().SeverityAdjustmentFactor, 1e-9)
	}

	opts := DefaultOptions()
	opts.SeverityAdjustmentFactor = 1.5
	assert.InDelta(t, 1.5, opts.normalized().SeverityAdjustmentFactor, 1e-9)
}
