package analysis

import "math"

// Options tunes the translator and orchestrator.
type Options struct {
	// MaxSummaryLength caps the plain-English summary, ellipsis included.
	MaxSummaryLength int `yaml:"maxSummaryLength"`
	// MaxActionItems caps the ranked action-item list.
	MaxActionItems int `yaml:"maxActionItems"`
	// IncludeTimeEstimates scales hours by urgency and attaches deadlines
	// to high-priority action items.
	IncludeTimeEstimates bool `yaml:"includeTimeEstimates"`
	// SeverityAdjustmentFactor scales the summed severity adjustments.
	SeverityAdjustmentFactor float64 `yaml:"severityAdjustmentFactor"`
	// EnablePlainEnglishSummary composes the contextual summary; when off
	// the summary is the raw description.
	EnablePlainEnglishSummary bool `yaml:"enablePlainEnglishSummary"`
	// EnableActionItemGeneration toggles action items entirely.
	EnableActionItemGeneration bool `yaml:"enableActionItemGeneration"`
}

const (
	DefaultMaxSummaryLength = 500
	DefaultMaxActionItems   = 8
)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxSummaryLength:           DefaultMaxSummaryLength,
		MaxActionItems:             DefaultMaxActionItems,
		IncludeTimeEstimates:       true,
		SeverityAdjustmentFactor:   1.0,
		EnablePlainEnglishSummary:  true,
		EnableActionItemGeneration: true,
	}
}

// normalized replaces unusable values with defaults.
func (o Options) normalized() Options {
	if o.MaxSummaryLength <= 0 {
		o.MaxSummaryLength = DefaultMaxSummaryLength
	}
	if o.MaxActionItems < 0 {
		o.MaxActionItems = DefaultMaxActionItems
	}
	if o.SeverityAdjustmentFactor < 0 || math.IsNaN(o.SeverityAdjustmentFactor) || math.IsInf(o.SeverityAdjustmentFactor, 0) {
		o.SeverityAdjustmentFactor = 1.0
	}
	return o
}
