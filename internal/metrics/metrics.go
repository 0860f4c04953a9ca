// Package metrics exposes Prometheus instrumentation for analyses,
// reports and HTTP traffic.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/cloudsaver/internal/core"
)

const (
	ResultOK          = "ok"
	ResultClientError = "client_error"
	ResultBusy        = "busy"
	ResultError       = "error"
)

// Metrics holds the CloudSaver collectors and the registry serving them.
type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	suggestions      *prometheus.CounterVec
	estimatedSaving  prometheus.Counter
	reports          *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
}

// New registers all collectors on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudsaver_analyses_total",
			Help: "Billing analyses by result.",
		}, []string{"result"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cloudsaver_analysis_duration_seconds",
			Help:    "Time spent normalizing, evaluating and aggregating uploads.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		suggestions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudsaver_suggestions_total",
			Help: "Savings suggestions produced, by cloud and category.",
		}, []string{"cloud", "category"}),
		estimatedSaving: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cloudsaver_estimated_saving_total",
			Help: "Sum of estimated savings across all analyses.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudsaver_reports_total",
			Help: "Report downloads by format and result.",
		}, []string{"format", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cloudsaver_http_requests_total",
			Help: "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.analyses,
		m.analysisDuration,
		m.suggestions,
		m.estimatedSaving,
		m.reports,
		m.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// WatchLimiter exports the limiter's occupancy as gauges.
func (m *Metrics) WatchLimiter(l *core.AnalysisLimiter) {
	if m == nil || l == nil {
		return
	}
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "cloudsaver_limiter_active",
			Help: "Analyses or renders currently holding a limiter slot.",
		}, func() float64 { return float64(l.ActiveCount()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "cloudsaver_limiter_capacity",
			Help: "Maximum concurrent analyses or renders.",
		}, func() float64 { return float64(l.MaxConcurrent()) }),
	)
}

// Classify maps an error to a low-cardinality result label.
func Classify(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, core.ErrTooManyAnalyses):
		return ResultBusy
	case core.IsClientError(err):
		return ResultClientError
	default:
		return ResultError
	}
}

// ObserveAnalysis records one analysis run.
func (m *Metrics) ObserveAnalysis(elapsed time.Duration, a *core.Analysis, err error) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(Classify(err)).Inc()
	m.analysisDuration.Observe(elapsed.Seconds())
	if err != nil || a == nil {
		return
	}
	for _, s := range a.Suggestions {
		m.suggestions.WithLabelValues(s.Cloud, string(s.Category)).Inc()
	}
	m.estimatedSaving.Add(a.Summary.TotalSaving)
}

// ObserveReport records one report download attempt.
func (m *Metrics) ObserveReport(format string, err error) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(format, Classify(err)).Inc()
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
