package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"RegulatorRadar/internal/app"
	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/logging"
	"RegulatorRadar/internal/ui"
)

// errAnalysisFailed signals a rendered but unsuccessful analysis.
var errAnalysisFailed = errors.New("analysis failed")

type analyzeOptions struct {
	title       string
	description string
	link        string
	date        string
	guid        string
	file        string
	asJSON      bool
}

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	o := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a single item offline",
		Long: `Analyze one regulatory announcement without touching storage or feeds.
Provide the item with flags or as a JSON file holding a feed item.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			item, err := o.item()
			if err != nil {
				return err
			}

			engine := app.NewEngine(cfg, logging.New(cfg.Logging.Level))
			res := engine.Analyze(item)

			out := cmd.OutOrStdout()
			if o.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				fmt.Fprint(out, ui.RenderResult(res))
			}

			if !res.Success {
				return errAnalysisFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.title, "title", "", "item title")
	f.StringVar(&o.description, "description", "", "item description")
	f.StringVar(&o.link, "link", "", "item URL")
	f.StringVar(&o.date, "date", "", "publish date (YYYY-MM-DD or RFC3339, default now)")
	f.StringVar(&o.guid, "guid", "", "item id (default derived from title and date)")
	f.StringVarP(&o.file, "file", "f", "", "read the item from a JSON file")
	f.BoolVar(&o.asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("file", "title")
	return cmd
}

func (o *analyzeOptions) item() (domain.FeedItem, error) {
	if o.file != "" {
		raw, err := os.ReadFile(o.file)
		if err != nil {
			return domain.FeedItem{}, fmt.Errorf("read item: %w", err)
		}
		var item domain.FeedItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return domain.FeedItem{}, fmt.Errorf("parse item %s: %w", o.file, err)
		}
		return item, nil
	}

	published := time.Now().UTC()
	if o.date != "" {
		parsed, err := parseDate(o.date)
		if err != nil {
			return domain.FeedItem{}, err
		}
		published = parsed
	}

	link := o.link
	if link == "" {
		link = "https://regulatorradar.local/items/" + uuid.NewString()
	}

	return domain.FeedItem{
		Title:       o.title,
		Description: o.description,
		Link:        link,
		PublishedAt: published,
		GUID:        o.guid,
		Source:      "cli",
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --date %q: want YYYY-MM-DD or RFC3339", value)
}
