package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/scanner"
)

// Selector option keys understood by the listing strategy.
const (
	OptItem       = "item"
	OptTitle      = "title"
	OptLink       = "link"
	OptDate       = "date"
	OptSummary    = "summary"
	OptDateLayout = "dateLayout"
)

var listingDefaults = map[string]string{
	OptItem:       "article",
	OptTitle:      "h2, h3",
	OptLink:       "a[href]",
	OptDate:       "time",
	OptSummary:    "p",
	OptDateLayout: "January 2, 2006",
}

var dateExpr = regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.? \d{1,2}, \d{4}|\d{4}-\d{2}-\d{2}`)

// ListingScanner scrapes press-release index pages that have no feed.
type ListingScanner struct {
	client *http.Client
}

// NewListingScanner wires an HTTP client; nil selects a client with a 20s timeout.
func NewListingScanner(client *http.Client) *ListingScanner {
	return &ListingScanner{client: defaultClient(client)}
}

// Name identifies the strategy inside the registry.
func (l *ListingScanner) Name() string {
	return "listing"
}

// Scan fetches each listing page and extracts one item per matched element.
func (l *ListingScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.FeedItem, error) {
	if len(req.Feeds) == 0 {
		return nil, fmt.Errorf("no pages provided for site %s", req.SiteName)
	}

	results := make([]domain.FeedItem, 0)
	seen := map[string]struct{}{}

	for _, page := range req.Feeds {
		base, err := url.Parse(page.URL)
		if err != nil {
			return nil, fmt.Errorf("page %s: invalid url: %w", page.Name, err)
		}

		var doc *goquery.Document
		err = fetch(ctx, l.client, page.URL, func(body io.Reader) error {
			var perr error
			doc, perr = goquery.NewDocumentFromReader(body)
			if perr != nil {
				return fmt.Errorf("parse document: %w", perr)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page.Name, err)
		}

		source := sourceName(req.SiteName, page.Name)
		doc.Find(option(req, OptItem)).Each(func(_ int, sel *goquery.Selection) {
			item, ok := parseListingEntry(sel, base, req, source)
			if !ok {
				return
			}
			if _, dup := seen[item.GUID]; dup {
				return
			}
			seen[item.GUID] = struct{}{}
			results = append(results, item)
		})
	}

	return results, nil
}

func parseListingEntry(sel *goquery.Selection, base *url.URL, req scanner.Request, source string) (domain.FeedItem, bool) {
	link := sel.Find(option(req, OptLink)).First()
	href, exists := link.Attr("href")
	if !exists || strings.TrimSpace(href) == "" {
		return domain.FeedItem{}, false
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return domain.FeedItem{}, false
	}
	resolved := base.ResolveReference(ref).String()

	title := strings.Join(strings.Fields(sel.Find(option(req, OptTitle)).First().Text()), " ")
	if title == "" {
		title = strings.Join(strings.Fields(link.Text()), " ")
	}

	summary := strings.Join(strings.Fields(sel.Find(option(req, OptSummary)).First().Text()), " ")

	dateSel := sel.Find(option(req, OptDate)).First()
	published := parseListingDate(dateSel, option(req, OptDateLayout))

	return domain.FeedItem{
		Title:       title,
		Description: summary,
		Link:        resolved,
		PublishedAt: published,
		GUID:        resolved,
		Source:      source,
	}, true
}

// parseListingDate prefers a machine-readable datetime attribute and falls back
// to the first date-looking fragment of the element text.
func parseListingDate(sel *goquery.Selection, layout string) time.Time {
	if attr, ok := sel.Attr("datetime"); ok {
		for _, l := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(l, strings.TrimSpace(attr)); err == nil {
				return t.UTC()
			}
		}
	}

	text := strings.Join(strings.Fields(sel.Text()), " ")
	if t, err := time.Parse(layout, text); err == nil {
		return t.UTC()
	}
	match := dateExpr.FindString(text)
	if match == "" {
		return time.Time{}
	}
	for _, l := range []string{layout, "January 2, 2006", "Jan 2, 2006", "Jan. 2, 2006", "2006-01-02"} {
		if t, err := time.Parse(l, match); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func option(req scanner.Request, key string) string {
	return req.Option(key, listingDefaults[key])
}
