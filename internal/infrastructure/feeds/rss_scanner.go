package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/scanner"
)

// RSSScanner reads RSS and Atom feeds such as the SEC press-release feed.
type RSSScanner struct {
	client *http.Client
}

// NewRSSScanner wires an HTTP client; nil selects a client with a 20s timeout.
func NewRSSScanner(client *http.Client) *RSSScanner {
	return &RSSScanner{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (s *RSSScanner) Name() string {
	return "rss"
}

// Scan parses every feed of the request and returns their items in feed order.
func (s *RSSScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.FeedItem, error) {
	if len(req.Feeds) == 0 {
		return nil, fmt.Errorf("no feeds provided for site %s", req.SiteName)
	}

	var items []domain.FeedItem
	for _, f := range req.Feeds {
		var parsed *gofeed.Feed
		err := fetch(ctx, s.client, f.URL, func(body io.Reader) error {
			var perr error
			parsed, perr = gofeed.NewParser().Parse(body)
			return perr
		})
		if err != nil {
			return nil, fmt.Errorf("feed %s: %w", f.Name, err)
		}

		for _, entry := range parsed.Items {
			if entry == nil {
				continue
			}
			items = append(items, s.toFeedItem(entry, sourceName(req.SiteName, f.Name)))
		}
	}
	return items, nil
}

func (s *RSSScanner) toFeedItem(entry *gofeed.Item, source string) domain.FeedItem {
	description := entry.Description
	if strings.TrimSpace(description) == "" {
		description = entry.Content
	}

	guid := strings.TrimSpace(entry.GUID)
	if guid == "" {
		guid = strings.TrimSpace(entry.Link)
	}

	var published time.Time
	switch {
	case entry.PublishedParsed != nil:
		published = entry.PublishedParsed.UTC()
	case entry.UpdatedParsed != nil:
		published = entry.UpdatedParsed.UTC()
	}

	return domain.FeedItem{
		Title:       strings.TrimSpace(htmlToText(entry.Title)),
		Description: htmlToText(description),
		Link:        strings.TrimSpace(entry.Link),
		PublishedAt: published,
		GUID:        guid,
		Source:      source,
	}
}

func sourceName(site, feed string) string {
	if feed == "" || feed == site {
		return site
	}
	return fmt.Sprintf("%s/%s", site, feed)
}
