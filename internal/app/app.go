package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"RegulatorRadar/internal/analysis"
	"RegulatorRadar/internal/config"
	"RegulatorRadar/internal/httpapi"
	"RegulatorRadar/internal/infrastructure/feeds"
	"RegulatorRadar/internal/infrastructure/scheduler"
	"RegulatorRadar/internal/infrastructure/storage"
	"RegulatorRadar/internal/infrastructure/telegram"
	"RegulatorRadar/internal/logging"
	"RegulatorRadar/internal/metrics"
	"RegulatorRadar/internal/ports"
	"RegulatorRadar/internal/scanner"
	"RegulatorRadar/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	http      *fiber.App
	closers   []io.Closer
}

// New builds the application: storage, feeds, engine, notifier and HTTP API.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	a := &Application{cfg: cfg, logger: baseLogger}

	repo, err := a.openRepository(ctx)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 20 * time.Second}
	registry := scanner.NewRegistry(
		feeds.NewRSSScanner(client),
		feeds.NewListingScanner(client),
	)
	source := feeds.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	engine := NewEngine(cfg, baseLogger)
	recorder := metrics.New()

	var notifier ports.Notifier
	tg := cfg.Notifications.Telegram
	if tg.BotToken != "" && tg.ChatID != "" {
		opts := []telegram.Option{}
		if tg.APIBase != "" {
			opts = append(opts, telegram.WithAPIBase(tg.APIBase))
		}
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID, opts...)
	} else {
		baseLogger.Info("telegram not configured, alerts disabled")
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:            source,
		Repository:        repo,
		Analyzer:          engine,
		Notifier:          notifier,
		Metrics:           recorder,
		Logger:            baseLogger.With("component", "pipeline"),
		Workers:           cfg.Analysis.Workers,
		MaxProcessingTime: cfg.Analysis.MaxProcessingTime,
		SeverityThreshold: cfg.Notifications.SeverityThreshold,
	})

	driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval)
	a.scheduler = usecase.NewScheduler(driver, a.pipeline, baseLogger.With("component", "scheduler"))

	a.http = httpapi.New(httpapi.Deps{
		Repository: repo,
		Poller:     a.pipeline,
		Analyzer:   a.pipeline,
		Metrics:    recorder,
		Logger:     baseLogger.With("component", "http"),
		Clock:      a.now,
	})

	return a, nil
}

// NewEngine builds the analysis engine from config.
func NewEngine(cfg config.Config, logger *slog.Logger) *analysis.Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return analysis.NewEngine(cfg.Analysis.Options, analysis.WithLogger(logger.With("component", "analysis")))
}

func (a *Application) openRepository(ctx context.Context) (ports.AnalysisRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := storage.OpenPostgres(ctx, a.cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		repo := storage.NewPostgresRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil
	default:
		db, err := storage.OpenBadger(storage.BadgerConfig{
			Path:       a.cfg.Storage.Path,
			SyncWrites: true,
			Logger:     a.logger.With("component", "badger"),
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		return storage.NewBadgerRepository(db), nil
	}
}

func (a *Application) now() time.Time {
	return time.Now().In(a.cfg.Scheduler.Location())
}

// Poll performs a single pipeline execution.
func (a *Application) Poll(ctx context.Context) (usecase.Report, error) {
	return a.pipeline.Poll(ctx, a.now())
}

// Serve runs the HTTP API and scheduled polling until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.scheduler.Stop(stopCtx); err != nil {
			a.logger.Warn("scheduler stop", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http listening", "addr", a.cfg.Server.Addr, "poll_interval", a.cfg.Scheduler.Interval)
		errCh <- a.http.Listen(a.cfg.Server.Addr)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
		if err := a.http.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Close releases storage handles.
func (a *Application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
