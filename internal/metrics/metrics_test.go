package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RegulatorRadar/internal/domain"
)

func TestRecorderCounts(t *testing.T) {
	t.Parallel()

	r := New()
	r.ObserveResult(domain.AnalysisResult{
		Success:        true,
		Analysis:       &domain.RegulationAnalysis{RegulationType: domain.TypeEnforcement, SeverityScore: 9},
		ProcessingTime: time.Millisecond,
	})
	r.ObserveResult(domain.AnalysisResult{Success: false})
	r.AlertSent()
	r.Skipped(3)
	r.Skipped(0)

	assert.InDelta(t, 1, testutil.ToFloat64(r.analyses.WithLabelValues(ResultSuccess, "enforcement")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(r.analyses.WithLabelValues(ResultFailure, "none")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(r.alerts), 1e-9)
	assert.InDelta(t, 3, testutil.ToFloat64(r.skipped), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(r.severity))
}

func TestRecorderNilSafe(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.ObserveResult(domain.AnalysisResult{})
	r.AlertSent()
	r.Skipped(1)
}

func TestHandlerExposesMetrics(t *testing.T) {
	t.Parallel()

	r := New()
	r.AlertSent()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "regulatorradar_alerts_total 1"))
}
