package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RegulatorRadar/internal/domain"
)

func sampleAnalysis() domain.RegulationAnalysis {
	return domain.RegulationAnalysis{
		Title:                      "SEC Charges Fintech_Co",
		SeverityScore:              9,
		RegulationType:             domain.TypeEnforcement,
		EstimatedPenalty:           12_500_000,
		ImplementationTimelineDays: 90,
		PlainEnglishSummary:        "The SEC has taken enforcement action.",
		ActionItems: []domain.ActionItem{
			{Description: "Review internal controls", Priority: domain.PriorityHigh},
			{Description: "Brief senior management", Priority: domain.PriorityHigh},
			{Description: "Assess exposure", Priority: domain.PriorityMedium},
			{Description: "Update training", Priority: domain.PriorityLow},
		},
		OriginalURL: "https://www.sec.gov/newsroom/press-releases/2026-7",
	}
}

func TestNotifyAnalysisPostsForm(t *testing.T) {
	t.Parallel()

	var gotPath, gotChat, gotText, gotMode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPath = r.URL.Path
		gotChat = r.PostForm.Get("chat_id")
		gotText = r.PostForm.Get("text")
		gotMode = r.PostForm.Get("parse_mode")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier("token", "42", WithAPIBase(server.URL+"/"), WithHTTPClient(server.Client()))
	if err := n.NotifyAnalysis(context.Background(), sampleAnalysis()); err != nil {
		t.Fatalf("NotifyAnalysis error: %v", err)
	}

	if gotPath != "/bottoken/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotChat != "42" || gotMode != "Markdown" {
		t.Fatalf("unexpected form: chat=%s mode=%s", gotChat, gotMode)
	}
	if !strings.Contains(gotText, "severity 9/10") {
		t.Fatalf("text missing severity: %s", gotText)
	}
}

func TestNotifyAnalysisErrors(t *testing.T) {
	t.Parallel()

	if err := NewNotifier("", "").NotifyAnalysis(context.Background(), sampleAnalysis()); err == nil {
		t.Fatalf("expected misconfiguration error")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	n := NewNotifier("token", "42", WithAPIBase(server.URL), WithHTTPClient(server.Client()))
	err := n.NotifyAnalysis(context.Background(), sampleAnalysis())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 error, got %v", err)
	}
}

func TestFormatAlert(t *testing.T) {
	t.Parallel()

	msg := FormatAlert(sampleAnalysis())

	if !strings.HasPrefix(msg, "*SEC Charges Fintech\\_Co* (severity 9/10)\n") {
		t.Fatalf("unexpected header: %q", msg)
	}
	if !strings.Contains(msg, "penalty $12.5M") {
		t.Fatalf("penalty not formatted: %q", msg)
	}
	if strings.Contains(msg, "Update training") {
		t.Fatalf("only the top three action items should be listed")
	}
	if !strings.HasSuffix(msg, "https://www.sec.gov/newsroom/press-releases/2026-7") {
		t.Fatalf("missing link: %q", msg)
	}
}
