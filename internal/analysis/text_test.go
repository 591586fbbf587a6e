package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainEnglish(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Registrants shall file reports pursuant to Rule 17a-4.", "Registered companies must file reports according to Rule 17a-4."},
		{"Pursuant to the order, the Commission found violations.", "According to the order, the SEC found violations."},
		{"Marshall   shall\tcomply.", "Marshall must comply."},
		{"Advisers shall not utilize client assets prior to approval.", "Advisers must not use client assets before approval."},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, PlainEnglish(tc.in))
	}
}

func TestPlainEnglishSplitsLongClauses(t *testing.T) {
	t.Parallel()

	in := "The amendments expand the definition of a dealer to include market participants that provide liquidity, which requires those firms to register with the SEC and join an SRO."
	out := PlainEnglish(in)

	assert.Contains(t, out, "liquidity. This requires those firms")
	assert.NotContains(t, out, ", which")

	short := "Rules, which apply now."
	assert.Equal(t, short, PlainEnglish(short))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))

	long := strings.Repeat("word ", 40)
	got := truncate(long, 50)
	assert.LessOrEqual(t, len(got), 50)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestKeywordSetMatchesWordStarts(t *testing.T) {
	t.Parallel()

	set := newKeywordSet("fine", "aml")
	assert.True(t, set.any("the firm was fined"))
	assert.False(t, set.any("we define terms"))
	assert.Equal(t, []string{"fine", "aml"}, set.matches("aml fines"))
	assert.Equal(t, 0, set.count(""))
}
