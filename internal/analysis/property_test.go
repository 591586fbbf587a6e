package analysis

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"RegulatorRadar/internal/domain"
)

var vocabulary = []string{
	"charges", "settles", "final rule", "adopts", "proposes", "comment", "$5 million", "$250,000",
	"$12 billion", "within 30 days", "within 2 years", "effective January 5, 2027", "cryptocurrency",
	"custody", "AML", "KYC", "disclosure", "cybersecurity", "shall", "pursuant to", "must file reports",
	"emergency", "interim", "the Commission", "broker-dealer", "investment adviser", "data", "audit",
	"which", "that", ",", ".", "training", "no later than 90 days",
}

func drawText(t *rapid.T, label string) string {
	words := rapid.SliceOfN(rapid.SampledFrom(vocabulary), 0, 60).Draw(t, label)
	return strings.Join(words, " ")
}

func drawItem(t *rapid.T) domain.FeedItem {
	item := feedItem(drawText(t, "title"), drawText(t, "description"))
	return item
}

// Severity always lands in [1,10].
func TestProperty_SeverityBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		item := drawItem(rt)
		factor := rapid.Float64Range(0, 5).Draw(rt, "factor")
		for _, typ := range []domain.RegulationType{domain.TypeEnforcement, domain.TypeFinalRule, domain.TypeProposedRule} {
			score := Score(typ, item, factor)
			if score < domain.MinSeverity || score > domain.MaxSeverity {
				rt.Fatalf("score %d out of range for %s", score, typ)
			}
		}
	})
}

// Categorize never returns an empty set.
func TestProperty_CategorizeNonEmpty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		areas := Categorize(drawItem(rt))
		if len(areas) == 0 || len(areas) > 3 {
			rt.Fatalf("unexpected areas %v", areas)
		}
	})
}

// Action items never exceed the configured cap and stay priority ordered.
func TestProperty_ActionItemCap(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		opts := DefaultOptions()
		opts.MaxActionItems = rapid.IntRange(0, 12).Draw(rt, "max")
		engine := NewEngine(opts, WithClock(fixedClock()))

		item := drawItem(rt)
		item.Title = "Update " + item.Title
		item.Description = "Details: " + item.Description

		res := engine.Analyze(item)
		if !res.Success {
			rt.Fatalf("unexpected failure: %v", res.Errors)
		}
		items := res.Analysis.ActionItems
		if len(items) > opts.MaxActionItems {
			rt.Fatalf("got %d action items, cap %d", len(items), opts.MaxActionItems)
		}
		for i := 1; i < len(items); i++ {
			if items[i-1].Priority.Weight() < items[i].Priority.Weight() {
				rt.Fatalf("action items out of order at %d", i)
			}
		}
	})
}

// Confidence stays within [0,1], including empty inputs.
func TestProperty_ConfidenceRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		item := drawItem(rt)
		typ := rapid.SampledFrom([]domain.RegulationType{domain.TypeEnforcement, domain.TypeFinalRule, domain.TypeProposedRule}).Draw(rt, "type")
		out, err := NewTranslator(DefaultOptions(), fixedClock()).Translate(item, typ, Categorize(item))
		if err != nil {
			rt.Fatalf("translate: %v", err)
		}
		if out.Confidence < 0 || out.Confidence > 1 {
			rt.Fatalf("confidence %f out of range", out.Confidence)
		}
		if len(out.Summary) > DefaultMaxSummaryLength {
			rt.Fatalf("summary length %d exceeds limit", len(out.Summary))
		}
	})
}

// Repeated analysis of the same item yields identical classification output.
func TestProperty_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultOptions(), WithClock(fixedClock()))
	rapid.Check(t, func(rt *rapid.T) {
		item := drawItem(rt)
		item.Title = "Notice " + item.Title
		item.Description = "Body " + item.Description

		a := engine.Analyze(item)
		b := engine.Analyze(item)
		if !a.Success || !b.Success {
			rt.Fatalf("unexpected failure")
		}
		if a.Analysis.SeverityScore != b.Analysis.SeverityScore ||
			a.Analysis.RegulationType != b.Analysis.RegulationType ||
			a.Analysis.EstimatedPenalty != b.Analysis.EstimatedPenalty ||
			strings.Join(areaStrings(a.Analysis.BusinessImpactAreas), ",") != strings.Join(areaStrings(b.Analysis.BusinessImpactAreas), ",") {
			rt.Fatalf("non-deterministic analysis for %q", item.Title)
		}
	})
}

func areaStrings(areas domain.ImpactAreas) []string {
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = string(a)
	}
	return out
}
