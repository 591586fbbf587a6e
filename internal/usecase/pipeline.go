package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/metrics"
	"RegulatorRadar/internal/ports"
)

// Pipeline defaults applied when PipelineDeps leaves a knob unset.
const (
	DefaultWorkers           = 4
	DefaultMaxProcessingTime = 30 * time.Second
	DefaultSeverityThreshold = 8
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.FeedSource
	Repository ports.AnalysisRepository
	Analyzer   ports.Analyzer
	Notifier   ports.Notifier
	Metrics    *metrics.Recorder
	Logger     *slog.Logger

	Workers           int
	MaxProcessingTime time.Duration
	SeverityThreshold int
	Clock             func() time.Time
}

// Pipeline implements the feed polling workflow.
type Pipeline struct {
	source     ports.FeedSource
	repository ports.AnalysisRepository
	analyzer   ports.Analyzer
	notifier   ports.Notifier
	metrics    *metrics.Recorder
	logger     *slog.Logger

	workers   int
	budget    time.Duration
	threshold int
	clock     func() time.Time
}

// Report summarizes one poll run.
type Report struct {
	RunID     string                  `json:"runId"`
	StartedAt time.Time               `json:"startedAt"`
	Duration  time.Duration           `json:"-"`
	Fetched   int                     `json:"fetched"`
	New       int                     `json:"new"`
	Analyzed  int                     `json:"analyzed"`
	Failed    int                     `json:"failed"`
	Skipped   int                     `json:"skipped"`
	Alerted   int                     `json:"alerted"`
	Warnings  []string                `json:"warnings,omitempty"`
	Results   []domain.AnalysisResult `json:"results,omitempty"`
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		analyzer:   deps.Analyzer,
		notifier:   deps.Notifier,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		workers:    deps.Workers,
		budget:     deps.MaxProcessingTime,
		threshold:  deps.SeverityThreshold,
		clock:      deps.Clock,
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.workers <= 0 {
		p.workers = DefaultWorkers
	}
	if p.budget <= 0 {
		p.budget = DefaultMaxProcessingTime
	}
	if p.threshold <= 0 {
		p.threshold = DefaultSeverityThreshold
	}
	if p.clock == nil {
		p.clock = time.Now
	}
	return p
}

// Poll fetches feeds, analyzes unseen items within the time budget, persists
// the results and alerts on high-severity ones.
func (p *Pipeline) Poll(ctx context.Context, now time.Time) (Report, error) {
	report := Report{RunID: uuid.NewString(), StartedAt: now}
	log := p.logger.With("run_id", report.RunID)
	start := p.clock()

	if p.source == nil || p.analyzer == nil {
		return report, fmt.Errorf("pipeline is missing a feed source or analyzer")
	}

	items, err := p.source.Fetch(ctx)
	if err != nil {
		return report, fmt.Errorf("fetch feeds: %w", err)
	}
	report.Fetched = len(items)

	var known []domain.RegulationAnalysis
	if p.repository != nil {
		known, err = p.repository.GetAll(ctx)
		if err != nil {
			return report, fmt.Errorf("load known analyses: %w", err)
		}
	}

	fresh := Deduplicate(items, known)
	report.New = len(fresh)
	log.Info("poll started", "fetched", report.Fetched, "new", report.New)

	results, skipped := p.analyzeAll(ctx, fresh, start)
	report.Skipped = skipped
	p.metrics.Skipped(skipped)
	if skipped > 0 {
		msg := fmt.Sprintf("%d items skipped: processing time budget of %s exceeded", skipped, p.budget)
		report.Warnings = append(report.Warnings, msg)
		log.Warn("poll budget exhausted", "skipped", skipped, "budget", p.budget)
	}

	for _, res := range results {
		if res == nil {
			continue
		}
		report.Results = append(report.Results, *res)
		if !res.Success {
			report.Failed++
			log.Warn("analysis failed", "errors", len(res.Errors))
			continue
		}
		report.Analyzed++

		alerted, warns := p.handleSuccess(ctx, log, *res.Analysis)
		if alerted {
			report.Alerted++
		}
		report.Warnings = append(report.Warnings, warns...)
	}

	report.Duration = p.clock().Sub(start)
	log.Info("poll finished",
		"analyzed", report.Analyzed,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"alerted", report.Alerted,
		"duration", report.Duration,
	)
	return report, nil
}

// AnalyzeItem runs one item through analysis, persistence and alerting.
func (p *Pipeline) AnalyzeItem(ctx context.Context, item domain.FeedItem) (domain.AnalysisResult, []string) {
	if p.analyzer == nil {
		return domain.AnalysisResult{Errors: []*domain.AnalysisError{domain.InternalError("no analyzer configured")}}, nil
	}
	res := p.analyzer.Analyze(item)
	p.metrics.ObserveResult(res)
	if !res.Success || res.Analysis == nil {
		return res, nil
	}
	_, warns := p.handleSuccess(ctx, p.logger, *res.Analysis)
	return res, warns
}

// analyzeAll fans items out over a bounded errgroup. Items that have not
// started when the budget runs out are left nil and counted as skipped.
func (p *Pipeline) analyzeAll(ctx context.Context, items []domain.FeedItem, start time.Time) ([]*domain.AnalysisResult, int) {
	results := make([]*domain.AnalysisResult, len(items))
	var (
		mu      sync.Mutex
		skipped int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if gctx.Err() != nil || p.clock().Sub(start) > p.budget {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			res := p.analyzer.Analyze(item)
			p.metrics.ObserveResult(res)
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()
	return results, skipped
}

func (p *Pipeline) handleSuccess(ctx context.Context, log *slog.Logger, a domain.RegulationAnalysis) (bool, []string) {
	var warns []string
	if p.repository != nil {
		if err := p.repository.Upsert(ctx, a); err != nil {
			log.Error("persist analysis", "id", a.ID, "error", err)
			warns = append(warns, fmt.Sprintf("failed to store %s: %v", a.ID, err))
		}
	}

	if p.notifier == nil || a.SeverityScore < p.threshold {
		return false, warns
	}
	if err := p.notifier.NotifyAnalysis(ctx, a); err != nil {
		log.Error("notify analysis", "id", a.ID, "error", err)
		warns = append(warns, fmt.Sprintf("failed to notify %s: %v", a.ID, err))
		return false, warns
	}
	p.metrics.AlertSent()
	log.Info("alert sent", "id", a.ID, "severity", a.SeverityScore)
	return true, warns
}
