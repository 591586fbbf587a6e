package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"RegulatorRadar/internal/domain"
)

var testNow = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func feedItem(title, description string) domain.FeedItem {
	return domain.FeedItem{
		Title:       title,
		Description: description,
		Link:        "https://www.sec.gov/newsroom/press-releases/2026-1",
		PublishedAt: testNow.Add(-24 * time.Hour),
		GUID:        "https://www.sec.gov/newsroom/press-releases/2026-1",
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		title       string
		description string
		want        domain.RegulationType
	}{
		{"charges", "SEC Charges Fintech Company with AML Violations", "Settled administrative proceeding.", domain.TypeEnforcement},
		{"cease and desist", "Order Instituting Proceedings", "The firm consented to a cease-and-desist order and a cease and desist notice.", domain.TypeEnforcement},
		{"plural fines", "Broker fined", "The firm paid fines to settle the matter.", domain.TypeEnforcement},
		{"final rule", "SEC Adopts Final Rule on Digital Asset Custody", "Final rule with new requirements and compliance dates", domain.TypeFinalRule},
		{"amendments", "Amendments to Form PF", "The amendments to Form PF improve reporting.", domain.TypeFinalRule},
		{"proposed", "SEC Proposes New Rules for Investment Advisers", "Proposed rule in comment period", domain.TypeProposedRule},
		{"define is not fine", "SEC Proposes to Define Dealer", "The proposal would define certain terms.", domain.TypeProposedRule},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(feedItem(tc.title, tc.description)))
		})
	}
}

func TestClassifyEnforcementTakesPrecedence(t *testing.T) {
	t.Parallel()

	item := feedItem("SEC Charges Adviser Under Final Rule", "The final rule was violated.")
	assert.Equal(t, domain.TypeEnforcement, Classify(item))
}
