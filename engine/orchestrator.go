package engine

import (
	"context"
	"errors"
	"sync"

	"equity-analytics/config"
	"equity-analytics/forecast"
	"equity-analytics/internal/timeseries"
	"equity-analytics/models"
	"equity-analytics/observability"
)

// Request carries everything needed to analyze one ticker. Fundamentals
// may be nil, which scores every metric as missing. Benchmark is
// optional; without it the risk report carries no beta.
type Request struct {
	Ticker       string
	Prices       *models.PriceSeries
	Fundamentals *models.FundamentalSnapshot
	Benchmark    *models.PriceSeries
}

// Result pairs one batch entry with its report or its failure.
type Result struct {
	Ticker string
	Report *models.AnalysisReport
	Err    error
}

// Analyzer runs the analysis pipeline over price and fundamental data:
// technical indicators, the fundamental score, risk statistics, and
// optionally the price forecast.
type Analyzer struct {
	cfg     *config.Config
	metrics *observability.Metrics
}

// New creates an Analyzer using cfg.
func New(cfg *config.Config) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		metrics: observability.GetMetrics(),
	}
}

// Analyze runs every engine over req and assembles the report.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*models.AnalysisReport, error) {
	ctx, span := observability.StartSpan(ctx, "analyzer.Analyze")
	defer span.End()

	a.metrics.RecordAnalysisRequest(req.Ticker)
	timer := a.metrics.NewTimer()

	report, err := a.analyze(ctx, req)
	if err != nil {
		timer.ObserveAnalysis(req.Ticker, "error")
		a.metrics.RecordAnalysisError(req.Ticker, errorReason(err))
		observability.WithTicker(req.Ticker).Error("analysis failed", "error", err)
		return nil, err
	}

	timer.ObserveAnalysis(req.Ticker, "success")
	a.metrics.RecordReport(string(report.Rating), report.Score.TotalScore)
	return report, nil
}

func (a *Analyzer) analyze(ctx context.Context, req Request) (*models.AnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := observability.WithTicker(req.Ticker)

	timer := a.metrics.NewTimer()
	indicators, err := ComputeIndicators(req.Prices, a.cfg.Indicators)
	if err != nil {
		return nil, err
	}
	timer.ObserveEngine("technical")

	timer = a.metrics.NewTimer()
	score, err := ComputeScore(req.Ticker, req.Fundamentals, a.cfg.Scoring)
	if err != nil {
		return nil, err
	}
	timer.ObserveEngine("fundamental")

	timer = a.metrics.NewTimer()
	returns := &models.ReturnSeries{Ticker: req.Ticker, Returns: timeseries.DailyReturns(req.Prices)}
	var bench *models.ReturnSeries
	if req.Benchmark != nil {
		bench = &models.ReturnSeries{Ticker: req.Benchmark.Ticker, Returns: timeseries.DailyReturns(req.Benchmark)}
	}
	risk, err := ComputeRisk(returns, bench, a.cfg.Risk)
	if err != nil {
		return nil, err
	}
	timer.ObserveEngine("risk")

	bars := req.Prices.Bars
	report := models.NewAnalysisReport(req.Ticker, bars[0].Date, bars[len(bars)-1].Date)
	report.Indicators = indicators
	report.Score = score
	report.Risk = risk
	report.Rating = models.RatingFromScore(score.TotalScore)

	if a.cfg.Forecast.Enabled {
		timer = a.metrics.NewTimer()
		fc, err := forecast.Project(req.Prices, req.Fundamentals, score.TotalScore)
		switch {
		case errors.Is(err, forecast.ErrInsufficientHistory):
			log.Debug("skipping forecast", "reason", err)
		case err != nil:
			return nil, err
		default:
			report.Forecast = fc
			timer.ObserveEngine("forecast")
		}
	}

	log.Info("analysis complete", "rating", report.Rating, "score", score.TotalScore)
	return report, nil
}

// AnalyzeBatch analyzes every request concurrently, bounded by the
// configured concurrency limit. Results keep the order of reqs; one
// failed ticker never aborts its siblings. Entries still waiting when
// ctx is canceled fail with the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, reqs []Request) []Result {
	ctx, span := observability.StartSpan(ctx, "analyzer.AnalyzeBatch")
	defer span.End()

	limit := a.cfg.Batch.MaxConcurrency
	if limit < 1 {
		limit = 1
	}

	timer := a.metrics.NewTimer()
	results := make([]Result, len(reqs))
	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(idx int, req Request) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result{Ticker: req.Ticker, Err: ctx.Err()}
				return
			}
			report, err := a.Analyze(ctx, req)
			results[idx] = Result{Ticker: req.Ticker, Report: report, Err: err}
		}(i, req)
	}
	wg.Wait()

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
		}
	}
	a.metrics.RecordBatch(len(reqs), failures, timer.Duration())
	observability.Info("batch complete", "size", len(reqs), "failures", failures)
	return results
}

func errorReason(err error) string {
	switch {
	case IsInvalidInput(err):
		return "invalid_input"
	case IsInsufficientData(err):
		return "insufficient_data"
	default:
		return "internal"
	}
}
