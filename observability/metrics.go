package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Analysis metrics
	AnalysisRequestsTotal *prometheus.CounterVec
	AnalysisDuration      *prometheus.HistogramVec
	AnalysisErrorsTotal   *prometheus.CounterVec

	// Engine metrics
	EngineDuration *prometheus.HistogramVec

	// Report metrics
	ReportRatings *prometheus.CounterVec
	ReportScores  *prometheus.HistogramVec

	// Batch metrics
	BatchSize          prometheus.Histogram
	BatchDuration      prometheus.Histogram
	BatchFailuresTotal prometheus.Counter
}

// defaultBuckets are the default histogram buckets for duration metrics (in seconds)
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// scoreBuckets are histogram buckets for composite score metrics (0 to 100)
var scoreBuckets = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// batchSizeBuckets are histogram buckets for batch sizes
var batchSizeBuckets = []float64{1, 2, 5, 10, 25, 50, 100}

// globalMetrics is the global metrics instance
var globalMetrics *Metrics

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	m := &Metrics{
		// Analysis metrics
		AnalysisRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "equity_analytics",
				Subsystem: "analysis",
				Name:      "requests_total",
				Help:      "Total number of ticker analysis requests",
			},
			[]string{"ticker"},
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "equity_analytics",
				Subsystem: "analysis",
				Name:      "duration_seconds",
				Help:      "Duration of ticker analysis in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"ticker", "status"},
		),
		AnalysisErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "equity_analytics",
				Subsystem: "analysis",
				Name:      "errors_total",
				Help:      "Total number of analysis errors",
			},
			[]string{"ticker", "error_type"},
		),

		// Engine metrics
		EngineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "equity_analytics",
				Subsystem: "engine",
				Name:      "duration_seconds",
				Help:      "Duration of each analytics engine stage in seconds",
				Buckets:   defaultBuckets,
			},
			[]string{"engine"},
		),

		// Report metrics
		ReportRatings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "equity_analytics",
				Subsystem: "report",
				Name:      "ratings_total",
				Help:      "Total number of reports by rating",
			},
			[]string{"rating"},
		),
		ReportScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "equity_analytics",
				Subsystem: "report",
				Name:      "score",
				Help:      "Distribution of composite fundamental scores",
				Buckets:   scoreBuckets,
			},
			[]string{"rating"},
		),

		// Batch metrics
		BatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "equity_analytics",
				Subsystem: "batch",
				Name:      "size",
				Help:      "Number of tickers per batch request",
				Buckets:   batchSizeBuckets,
			},
		),
		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "equity_analytics",
				Subsystem: "batch",
				Name:      "duration_seconds",
				Help:      "Duration of batch analysis in seconds",
				Buckets:   defaultBuckets,
			},
		),
		BatchFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "equity_analytics",
				Subsystem: "batch",
				Name:      "failures_total",
				Help:      "Total number of failed analyses inside batches",
			},
		),
	}

	return m
}

// InitMetrics initializes the global metrics instance
func InitMetrics() *Metrics {
	globalMetrics = NewMetrics(nil)
	return globalMetrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	if globalMetrics == nil {
		return InitMetrics()
	}
	return globalMetrics
}

// RecordAnalysisRequest records a ticker analysis request
func (m *Metrics) RecordAnalysisRequest(ticker string) {
	m.AnalysisRequestsTotal.WithLabelValues(ticker).Inc()
}

// RecordAnalysisDuration records the duration of a ticker analysis
func (m *Metrics) RecordAnalysisDuration(ticker, status string, duration time.Duration) {
	m.AnalysisDuration.WithLabelValues(ticker, status).Observe(duration.Seconds())
}

// RecordAnalysisError records an analysis error
func (m *Metrics) RecordAnalysisError(ticker, errorType string) {
	m.AnalysisErrorsTotal.WithLabelValues(ticker, errorType).Inc()
}

// RecordEngineDuration records the duration of one engine stage
func (m *Metrics) RecordEngineDuration(engine string, duration time.Duration) {
	m.EngineDuration.WithLabelValues(engine).Observe(duration.Seconds())
}

// RecordReport records the rating and composite score of a finished report
func (m *Metrics) RecordReport(rating string, score float64) {
	m.ReportRatings.WithLabelValues(rating).Inc()
	m.ReportScores.WithLabelValues(rating).Observe(score)
}

// RecordBatch records the size, failure count, and duration of a batch
func (m *Metrics) RecordBatch(size, failures int, duration time.Duration) {
	m.BatchSize.Observe(float64(size))
	m.BatchDuration.Observe(duration.Seconds())
	if failures > 0 {
		m.BatchFailuresTotal.Add(float64(failures))
	}
}

// Timer is a helper for timing operations
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// NewTimer creates a new timer
func (m *Metrics) NewTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// ObserveAnalysis records the analysis duration and status
func (t *Timer) ObserveAnalysis(ticker, status string) {
	t.metrics.RecordAnalysisDuration(ticker, status, time.Since(t.start))
}

// ObserveEngine records the engine stage duration
func (t *Timer) ObserveEngine(engine string) {
	t.metrics.RecordEngineDuration(engine, time.Since(t.start))
}

// Duration returns the elapsed time
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
