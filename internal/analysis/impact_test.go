package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"RegulatorRadar/internal/domain"
)

func TestCategorize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item domain.FeedItem
		want domain.ImpactAreas
	}{
		{
			name: "default operations",
			item: feedItem("SEC Names New Chief of Staff", "Announcement of a personnel change."),
			want: domain.ImpactAreas{domain.AreaOperations},
		},
		{
			name: "reporting only",
			item: feedItem("Form N-PORT", "Funds file quarterly holdings."),
			want: domain.ImpactAreas{domain.AreaReporting},
		},
		{
			name: "technology only",
			item: feedItem("Cybersecurity Incident Rules", "Covers electronic platforms."),
			want: domain.ImpactAreas{domain.AreaTechnology},
		},
		{
			name: "all areas in canonical order",
			item: feedItem("Cybersecurity Disclosure", "Firms must update KYC policies and report incidents."),
			want: domain.ImpactAreas{domain.AreaOperations, domain.AreaReporting, domain.AreaTechnology},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Categorize(tc.item))
		})
	}
}
