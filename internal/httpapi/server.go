package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/logging"
	"RegulatorRadar/internal/metrics"
	"RegulatorRadar/internal/ports"
	"RegulatorRadar/internal/usecase"
)

// Poller runs one feed poll.
type Poller interface {
	Poll(ctx context.Context, now time.Time) (usecase.Report, error)
}

// ItemAnalyzer analyzes and stores a single submitted item.
type ItemAnalyzer interface {
	AnalyzeItem(ctx context.Context, item domain.FeedItem) (domain.AnalysisResult, []string)
}

// Deps are the collaborators behind the HTTP surface.
type Deps struct {
	Repository ports.AnalysisRepository
	Poller     Poller
	Analyzer   ItemAnalyzer
	Metrics    *metrics.Recorder
	Logger     *slog.Logger
	Clock      func() time.Time
}

type server struct {
	deps Deps
}

// AnalyzeResponse is returned by POST /api/analyze.
type AnalyzeResponse struct {
	domain.AnalysisResult
	DurationMs      int64    `json:"processingTimeMs"`
	StorageWarnings []string `json:"storageWarnings,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New builds the fiber application with all routes registered.
func New(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	s := &server{deps: deps}

	app := fiber.New(fiber.Config{
		AppName:               "RegulatorRadar",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(s.requestLogger)

	app.Get("/healthz", s.health)
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	api.Get("/analyses", s.listAnalyses)
	api.Get("/analyses/:id", s.getAnalysis)
	api.Post("/analyze", s.analyze)
	api.Post("/poll", s.poll)

	return app
}

func (s *server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	s.deps.Logger.Debug("http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}

func (s *server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *server) listAnalyses(c *fiber.Ctx) error {
	if s.deps.Repository == nil {
		return fail(c, fiber.StatusServiceUnavailable, "storage is not configured")
	}

	minSeverity := domain.MinSeverity
	if raw := c.Query("minSeverity"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "minSeverity must be an integer")
		}
		minSeverity = v
	}

	all, err := s.deps.Repository.GetAll(c.UserContext())
	if err != nil {
		s.deps.Logger.Error("list analyses", "error", err)
		return fail(c, fiber.StatusInternalServerError, "error loading analyses")
	}

	out := make([]domain.RegulationAnalysis, 0, len(all))
	for _, a := range all {
		if a.SeverityScore >= minSeverity {
			out = append(out, a)
		}
	}
	return c.JSON(out)
}

func (s *server) getAnalysis(c *fiber.Ctx) error {
	if s.deps.Repository == nil {
		return fail(c, fiber.StatusServiceUnavailable, "storage is not configured")
	}

	a, err := s.deps.Repository.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return fail(c, fiber.StatusNotFound, "analysis not found")
	}
	if err != nil {
		s.deps.Logger.Error("get analysis", "error", err)
		return fail(c, fiber.StatusInternalServerError, "error loading analysis")
	}
	return c.JSON(a)
}

func (s *server) analyze(c *fiber.Ctx) error {
	if s.deps.Analyzer == nil {
		return fail(c, fiber.StatusServiceUnavailable, "analyzer is not configured")
	}

	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "body must be a JSON feed item")
	}

	res, warns := s.deps.Analyzer.AnalyzeItem(c.UserContext(), req.item())
	body := AnalyzeResponse{AnalysisResult: res, DurationMs: res.ProcessingTimeMs(), StorageWarnings: warns}
	if !res.Success {
		status := fiber.StatusInternalServerError
		if len(res.Errors) > 0 && res.Errors[0].Kind == domain.KindValidation {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(body)
	}
	return c.JSON(body)
}

// analyzeRequest keeps publishedAt raw so an unparseable date surfaces as a
// validation error rather than a malformed body.
type analyzeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt"`
	GUID        string `json:"guid"`
	Source      string `json:"source"`
}

var publishedLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func (r analyzeRequest) item() domain.FeedItem {
	item := domain.FeedItem{
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
		GUID:        r.GUID,
		Source:      r.Source,
	}
	raw := strings.TrimSpace(r.PublishedAt)
	for _, layout := range publishedLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			item.PublishedAt = ts
			break
		}
	}
	return item
}

func (s *server) poll(c *fiber.Ctx) error {
	if s.deps.Poller == nil {
		return fail(c, fiber.StatusServiceUnavailable, "poller is not configured")
	}

	report, err := s.deps.Poller.Poll(c.UserContext(), s.deps.Clock())
	if err != nil {
		s.deps.Logger.Error("poll", "error", err)
		return fail(c, fiber.StatusBadGateway, err.Error())
	}
	return c.JSON(report)
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}
