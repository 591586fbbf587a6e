package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegulatorRadar/internal/config"
	"RegulatorRadar/internal/logging"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>SEC</title>
<item>
  <title>SEC Charges Broker-Dealer with Custody Violations</title>
  <link>https://www.sec.gov/newsroom/press-releases/2026-11</link>
  <guid>https://www.sec.gov/newsroom/press-releases/2026-11</guid>
  <description>The firm agreed to pay a civil penalty of $12 million and must remediate within 60 days.</description>
  <pubDate>Mon, 12 Jan 2026 10:00:00 GMT</pubDate>
</item>
</channel></rss>`

func TestApplicationPollEndToEnd(t *testing.T) {
	t.Parallel()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(feedXML))
	}))
	defer feed.Close()

	var alerts atomic.Int32
	bot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		alerts.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer bot.Close()

	cfg, err := config.LoadFile("")
	require.NoError(t, err)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "db")
	cfg.Notifications.Telegram = config.TelegramConfig{BotToken: "t", ChatID: "c", APIBase: bot.URL}
	cfg.Sites = []config.SiteConfig{{
		Name:    "sec",
		Scanner: "rss",
		Feeds:   []config.FeedConfig{{Name: "press", URL: feed.URL}},
	}}

	ctx := context.Background()
	application, err := New(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer func() { require.NoError(t, application.Close()) }()

	report, err := application.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fetched)
	assert.Equal(t, 1, report.Analyzed)
	assert.Equal(t, 1, report.Alerted)
	assert.Equal(t, int32(1), alerts.Load())

	again, err := application.Poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again.New)
	assert.Equal(t, int32(1), alerts.Load(), "stored items must not alert twice")
}
