package analysis

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"RegulatorRadar/internal/domain"
)

// Warning texts attached to successful analyses.
const (
	WarnHighSeverity       = "High severity regulation: immediate attention required"
	WarnSignificantPenalty = "Significant penalty detected"
	WarnShortTimeline      = "Short implementation timeline"
	WarnLimitedDescription = "Limited description: manual review recommended"
	WarnMultipleAreas      = "Multiple business areas affected: coordinate response across teams"
	WarnFallbackTranslate  = "Automated translation unavailable: manual review recommended"
)

// Engine runs the full analysis pipeline for feed items.
type Engine struct {
	opts       Options
	now        func() time.Time
	logger     *slog.Logger
	validate   *validator.Validate
	translator *Translator
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for recovered stage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func withTranslator(tr *Translator) Option {
	return func(e *Engine) {
		e.translator = tr
	}
}

// NewEngine builds an engine for the given options.
func NewEngine(opts Options, options ...Option) *Engine {
	e := &Engine{
		opts:     opts.normalized(),
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.translator == nil {
		e.translator = NewTranslator(e.opts, e.now)
	}
	return e
}

// Analyze validates, classifies, scores and translates one item. Validation
// failures are reported in the result; every later stage falls back to a
// documented default instead of failing.
func (e *Engine) Analyze(item domain.FeedItem) (result domain.AnalysisResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("analysis aborted", "title", item.Title, "panic", r)
			result = domain.AnalysisResult{Errors: []*domain.AnalysisError{domain.InternalError(r)}}
		}
		result.ProcessingTime = time.Since(start)
	}()

	if errs := e.Validate(item); len(errs) > 0 {
		return domain.AnalysisResult{Errors: errs}
	}

	now := e.now().UTC()

	regType := guard(e.logger, "classify", domain.TypeProposedRule, func() domain.RegulationType {
		return Classify(item)
	})
	severity := guard(e.logger, "score", BaseSeverity(regType), func() int {
		return Score(regType, item, e.opts.SeverityAdjustmentFactor)
	})
	penalty := guard(e.logger, "penalty", 0.0, func() float64 {
		return ExtractPenalty(item)
	})
	timeline := guard(e.logger, "timeline", DefaultTimeline(regType), func() int {
		return EstimateTimeline(regType, item, now)
	})
	areas := guard(e.logger, "categorize", domain.NewImpactAreas(), func() domain.ImpactAreas {
		return Categorize(item)
	})

	var warnings []string
	translation, err := e.translator.Translate(item, regType, areas)
	if err != nil {
		e.logger.Warn("translation fell back", "title", item.Title, "error", err)
		warnings = append(warnings, WarnFallbackTranslate)
	}

	analysis := domain.NewRegulationAnalysis(domain.AnalysisParams{
		Item:                  item,
		Type:                  regType,
		Severity:              severity,
		ImpactAreas:           areas,
		Penalty:               penalty,
		TimelineDays:          timeline,
		Summary:               translation.Summary,
		BusinessImpactSummary: translation.BusinessImpactSummary,
		KeyRequirements:       translation.KeyRequirements,
		ActionItems:           translation.ActionItems,
		Deadlines:             translation.Deadlines,
		Confidence:            translation.Confidence,
		ProcessedAt:           now,
	})

	warnings = append(warnings, Warnings(analysis, item)...)
	analysis = analysis.WithWarnings(warnings)

	return domain.AnalysisResult{
		Success:  true,
		Analysis: &analysis,
		Warnings: warnings,
	}
}

// AnalyzeBatch analyzes items in order. Each result is independent of the
// others.
func (e *Engine) AnalyzeBatch(items []domain.FeedItem) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, len(items))
	for i, item := range items {
		results[i] = e.Analyze(item)
	}
	return results
}

var fieldOrder = []string{
	domain.FieldTitle,
	domain.FieldDescription,
	domain.FieldLink,
	domain.FieldPublishedAt,
}

var fieldMessages = map[string]string{
	domain.FieldTitle:       "title is required",
	domain.FieldDescription: "description is required",
	domain.FieldLink:        "link must be a valid URL",
	domain.FieldPublishedAt: "publishedAt must be a valid publish date",
}

// Validate checks the fields the pipeline depends on and returns one
// validation error per offending field.
func (e *Engine) Validate(item domain.FeedItem) []*domain.AnalysisError {
	trimmed := item
	trimmed.Title = strings.TrimSpace(item.Title)
	trimmed.Description = strings.TrimSpace(item.Description)
	trimmed.Link = strings.TrimSpace(item.Link)

	failed := map[string]bool{}
	if err := e.validate.Struct(trimmed); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*domain.AnalysisError{domain.InternalError(err)}
		}
		for _, fe := range verrs {
			failed[jsonField(fe.StructField())] = true
		}
	}

	var errs []*domain.AnalysisError
	for _, field := range fieldOrder {
		if failed[field] {
			errs = append(errs, domain.ValidationError(field, fieldMessages[field]))
		}
	}
	return errs
}

func jsonField(structField string) string {
	switch structField {
	case "Title":
		return domain.FieldTitle
	case "Description":
		return domain.FieldDescription
	case "Link":
		return domain.FieldLink
	case "PublishedAt":
		return domain.FieldPublishedAt
	default:
		return structField
	}
}

// Warnings lists advisory notes for a finished analysis.
func Warnings(a domain.RegulationAnalysis, item domain.FeedItem) []string {
	var warnings []string
	if a.SeverityScore >= 8 {
		warnings = append(warnings, WarnHighSeverity)
	}
	if a.EstimatedPenalty > 1_000_000 {
		warnings = append(warnings, WarnSignificantPenalty)
	}
	if a.ImplementationTimelineDays < 30 {
		warnings = append(warnings, WarnShortTimeline)
	}
	if len(strings.TrimSpace(item.Description)) < 100 {
		warnings = append(warnings, WarnLimitedDescription)
	}
	if len(a.BusinessImpactAreas) > 2 {
		warnings = append(warnings, WarnMultipleAreas)
	}
	return warnings
}

// guard runs a heuristic stage, replacing a panic with fallback.
func guard[T any](logger *slog.Logger, stage string, fallback T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("analysis stage failed, using fallback", "stage", stage, "panic", r)
			out = fallback
		}
	}()
	return fn()
}
