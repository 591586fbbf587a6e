package domain

import (
	"time"
)

const (
	MinSeverity = 1
	MaxSeverity = 10
)

// ClampSeverity bounds a raw score to [MinSeverity, MaxSeverity].
func ClampSeverity(score int) int {
	if score < MinSeverity {
		return MinSeverity
	}
	if score > MaxSeverity {
		return MaxSeverity
	}
	return score
}

// RegulationAnalysis is the immutable output of the analysis pipeline for a
// single feed item. Build it with NewRegulationAnalysis.
type RegulationAnalysis struct {
	ID                         string               `json:"id"`
	Title                      string               `json:"title"`
	SeverityScore              int                  `json:"severityScore"`
	RegulationType             RegulationType       `json:"regulationType"`
	BusinessImpactAreas        ImpactAreas          `json:"businessImpactAreas"`
	EstimatedPenalty           float64              `json:"estimatedPenalty"`
	ImplementationTimelineDays int                  `json:"implementationTimelineDays"`
	PlainEnglishSummary        string               `json:"plainEnglishSummary"`
	BusinessImpactSummary      string               `json:"businessImpactSummary"`
	KeyRequirements            []string             `json:"keyRequirements"`
	ActionItems                []ActionItem         `json:"actionItems"`
	ComplianceDeadlines        []ComplianceDeadline `json:"complianceDeadlines"`
	Confidence                 float64              `json:"confidence"`
	Warnings                   []string             `json:"warnings,omitempty"`
	OriginalURL                string               `json:"originalUrl"`
	Source                     string               `json:"source,omitempty"`
	PublishedAt                time.Time            `json:"publishedAt"`
	ProcessedAt                time.Time            `json:"processedAt"`
}

// AnalysisParams collects the inputs of NewRegulationAnalysis.
type AnalysisParams struct {
	Item                  FeedItem
	Type                  RegulationType
	Severity              int
	ImpactAreas           []ImpactArea
	Penalty               float64
	TimelineDays          int
	Summary               string
	BusinessImpactSummary string
	KeyRequirements       []string
	ActionItems           []ActionItem
	Deadlines             []ComplianceDeadline
	Confidence            float64
	ProcessedAt           time.Time
}

// NewRegulationAnalysis assembles an analysis and enforces its invariants:
// severity within [1,10], at least one impact area, non-negative penalty and
// a positive timeline.
func NewRegulationAnalysis(p AnalysisParams) RegulationAnalysis {
	penalty := p.Penalty
	if penalty < 0 {
		penalty = 0
	}
	timeline := p.TimelineDays
	if timeline < 1 {
		timeline = 1
	}
	confidence := p.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return RegulationAnalysis{
		ID:                         AnalysisID(p.Item),
		Title:                      p.Item.Title,
		SeverityScore:              ClampSeverity(p.Severity),
		RegulationType:             p.Type,
		BusinessImpactAreas:        NewImpactAreas(p.ImpactAreas...),
		EstimatedPenalty:           penalty,
		ImplementationTimelineDays: timeline,
		PlainEnglishSummary:        p.Summary,
		BusinessImpactSummary:      p.BusinessImpactSummary,
		KeyRequirements:            append([]string(nil), p.KeyRequirements...),
		ActionItems:                append([]ActionItem(nil), p.ActionItems...),
		ComplianceDeadlines:        append([]ComplianceDeadline(nil), p.Deadlines...),
		Confidence:                 confidence,
		OriginalURL:                p.Item.Link,
		Source:                     p.Item.Source,
		PublishedAt:                p.Item.PublishedAt,
		ProcessedAt:                p.ProcessedAt,
	}
}

// WithWarnings returns a copy carrying the given warnings.
func (a RegulationAnalysis) WithWarnings(warnings []string) RegulationAnalysis {
	a.Warnings = append([]string(nil), warnings...)
	return a
}

// AnalysisResult reports the outcome of analyzing one feed item.
type AnalysisResult struct {
	Success        bool                `json:"success"`
	Analysis       *RegulationAnalysis `json:"analysis,omitempty"`
	Errors         []*AnalysisError    `json:"errors,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
	ProcessingTime time.Duration       `json:"-"`
}

// ProcessingTimeMs is the wall-clock duration of the call in milliseconds.
func (r AnalysisResult) ProcessingTimeMs() int64 {
	return r.ProcessingTime.Milliseconds()
}
