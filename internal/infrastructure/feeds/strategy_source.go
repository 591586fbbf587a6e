package feeds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"RegulatorRadar/internal/config"
	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/ports"
	"RegulatorRadar/internal/scanner"
)

// ErrAllSitesFailed is returned when every configured site failed to scan.
var ErrAllSitesFailed = errors.New("all feed sites failed")

// StrategySource implements FeedSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.FeedSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// Fetch iterates over configured sites and executes their scanners. A failing
// site is logged and skipped so one broken feed does not stall the others.
func (s *StrategySource) Fetch(ctx context.Context) ([]domain.FeedItem, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.logger.Debug("fetch feeds", "sites", len(s.sites))

	var (
		aggregated []domain.FeedItem
		failed     int
	)
	for _, site := range s.sites {
		if err := ctx.Err(); err != nil {
			return aggregated, err
		}

		results, err := s.scanSite(ctx, site)
		if err != nil {
			failed++
			s.logger.Warn("site scan failed", "site", site.Name, "scanner", site.Scanner, "error", err)
			continue
		}

		for i := range results {
			if results[i].Source == "" {
				results[i].Source = site.Name
			}
		}
		s.logger.Debug("site produced items", "site", site.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	if failed > 0 && failed == len(s.sites) {
		return nil, ErrAllSitesFailed
	}

	s.logger.Debug("strategy source done", "total_items", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) scanSite(ctx context.Context, site config.SiteConfig) ([]domain.FeedItem, error) {
	strategy, err := s.registry.Resolve(site.Scanner)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", site.Name, err)
	}

	req := scanner.Request{
		SiteName: site.Name,
		Options:  site.Options,
		Feeds:    toScannerFeeds(site.Feeds),
	}

	results, err := strategy.Scan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
	}
	return results, nil
}

func toScannerFeeds(cfg []config.FeedConfig) []scanner.Feed {
	feeds := make([]scanner.Feed, 0, len(cfg))
	for _, f := range cfg {
		feeds = append(feeds, scanner.Feed{
			Name: f.Name,
			URL:  f.URL,
		})
	}
	return feeds
}
