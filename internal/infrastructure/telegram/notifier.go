package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"RegulatorRadar/internal/domain"
	"RegulatorRadar/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends regulation alerts to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// Option customizes a Notifier.
type Option func(*Notifier)

// WithAPIBase points the notifier at a different bot API host.
func WithAPIBase(base string) Option {
	return func(n *Notifier) { n.apiBase = strings.TrimSuffix(base, "/") }
}

// WithHTTPClient overrides the default 5s-timeout client.
func WithHTTPClient(client *http.Client) Option {
	return func(n *Notifier) { n.client = client }
}

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string, opts ...Option) *Notifier {
	n := &Notifier{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Configured reports whether both token and chat id are set.
func (n *Notifier) Configured() bool {
	return n.botToken != "" && n.chatID != ""
}

// NotifyAnalysis posts a Markdown alert describing the analysis.
func (n *Notifier) NotifyAnalysis(ctx context.Context, analysis domain.RegulationAnalysis) error {
	return n.send(ctx, FormatAlert(analysis))
}

func (n *Notifier) send(ctx context.Context, text string) error {
	if !n.Configured() || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatAlert renders an analysis as a Telegram Markdown message.
func FormatAlert(a domain.RegulationAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* (severity %d/10)\n", markdownEscaper.Replace(a.Title), a.SeverityScore)
	fmt.Fprintf(&b, "_%s_", a.RegulationType.Label())
	if a.EstimatedPenalty > 0 {
		fmt.Fprintf(&b, " · penalty $%s", formatAmount(a.EstimatedPenalty))
	}
	fmt.Fprintf(&b, " · %d days\n\n", a.ImplementationTimelineDays)
	b.WriteString(markdownEscaper.Replace(a.PlainEnglishSummary))
	b.WriteString("\n")

	limit := len(a.ActionItems)
	if limit > 3 {
		limit = 3
	}
	if limit > 0 {
		b.WriteString("\n")
	}
	for _, item := range a.ActionItems[:limit] {
		fmt.Fprintf(&b, "- [%s] %s\n", item.Priority, markdownEscaper.Replace(item.Description))
	}

	if a.OriginalURL != "" {
		fmt.Fprintf(&b, "\n%s", a.OriginalURL)
	}
	return b.String()
}

func formatAmount(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
