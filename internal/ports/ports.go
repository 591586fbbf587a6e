package ports

import (
	"context"
	"time"

	"RegulatorRadar/internal/domain"
)

// FeedSource pulls fresh items from configured regulator feeds.
type FeedSource interface {
	Fetch(ctx context.Context) ([]domain.FeedItem, error)
}

// AnalysisRepository persists analyses keyed by their id for history and deduplication.
type AnalysisRepository interface {
	Upsert(ctx context.Context, analysis domain.RegulationAnalysis) error
	Get(ctx context.Context, id string) (domain.RegulationAnalysis, error)
	GetAll(ctx context.Context) ([]domain.RegulationAnalysis, error)
}

// Analyzer runs the rule-based pipeline over a single item.
type Analyzer interface {
	Analyze(item domain.FeedItem) domain.AnalysisResult
}

// Notifier pushes high-severity alerts to Telegram or other channels.
type Notifier interface {
	NotifyAnalysis(ctx context.Context, analysis domain.RegulationAnalysis) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
