package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"RegulatorRadar/internal/domain"
)

const namespace = "regulatorradar"

// Result labels for analyses_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder owns the service's Prometheus collectors on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	analyses *prometheus.CounterVec
	alerts   prometheus.Counter
	skipped  prometheus.Counter
	severity prometheus.Histogram
	duration prometheus.Histogram
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Analyses performed by result and regulation type",
			},
			[]string{"result", "type"},
		),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_total",
			Help:      "High-severity alerts delivered",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_skipped_total",
			Help:      "Items skipped because the poll time budget ran out",
		}),
		severity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "severity_score",
			Help:      "Distribution of assigned severity scores",
			Buckets:   prometheus.LinearBuckets(1, 1, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall-clock time of a single analysis",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	r.registry.MustRegister(r.analyses, r.alerts, r.skipped, r.severity, r.duration)
	return r
}

// ObserveResult records one analysis outcome.
func (r *Recorder) ObserveResult(res domain.AnalysisResult) {
	if r == nil {
		return
	}
	r.duration.Observe(res.ProcessingTime.Seconds())
	if !res.Success || res.Analysis == nil {
		r.analyses.WithLabelValues(ResultFailure, "none").Inc()
		return
	}
	r.analyses.WithLabelValues(ResultSuccess, string(res.Analysis.RegulationType)).Inc()
	r.severity.Observe(float64(res.Analysis.SeverityScore))
}

// AlertSent counts a delivered notification.
func (r *Recorder) AlertSent() {
	if r != nil {
		r.alerts.Inc()
	}
}

// Skipped counts items dropped by the poll time budget.
func (r *Recorder) Skipped(n int) {
	if r != nil && n > 0 {
		r.skipped.Add(float64(n))
	}
}

// Registry exposes the underlying registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the exposition format for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Timeout: 5 * time.Second})
}
