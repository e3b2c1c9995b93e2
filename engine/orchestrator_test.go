package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"

	"equity-analytics/config"
	"equity-analytics/models"
)

func variedCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 0.1*float64(i) + 5*math.Sin(float64(i)/3)
	}
	return out
}

func benchmarkCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 50 + 0.05*float64(i) + 2*math.Sin(float64(i)/4+1)
	}
	return out
}

func analysisRequest(ticker string, bars int) Request {
	return Request{
		Ticker:       ticker,
		Prices:       seriesOf(ticker, variedCloses(bars)...),
		Fundamentals: perfectSnapshot(),
		Benchmark:    seriesOf("SPY", benchmarkCloses(bars)...),
	}
}

func TestAnalyze(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	req := analysisRequest("AAPL", 60)

	report, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.ID == uuid.Nil {
		t.Error("report should carry a generated ID")
	}
	if report.Ticker != "AAPL" {
		t.Errorf("expected Ticker=AAPL, got %s", report.Ticker)
	}
	if !report.PeriodStart.Equal(day(0)) || !report.PeriodEnd.Equal(day(59)) {
		t.Errorf("unexpected period: %v to %v", report.PeriodStart, report.PeriodEnd)
	}
	if report.Indicators == nil || len(report.Indicators.Dates) != 60 {
		t.Error("report should carry indicators aligned with the bars")
	}
	if report.Score == nil || report.Score.TotalScore != 100 {
		t.Errorf("expected a perfect score, got %+v", report.Score)
	}
	if report.Rating != models.RatingStrongBuy {
		t.Errorf("expected rating %s, got %s", models.RatingStrongBuy, report.Rating)
	}
	if report.Risk == nil {
		t.Fatal("report should carry a risk report")
	}
	if report.Risk.Observations != 59 {
		t.Errorf("expected 59 return observations, got %d", report.Risk.Observations)
	}
	if !report.Risk.Beta.Valid {
		t.Error("beta should be valid with a full benchmark overlap")
	}
	if report.Forecast == nil {
		t.Fatal("forecast should be present when enabled")
	}
	if len(report.Forecast.Horizons) != 4 {
		t.Errorf("expected 4 forecast horizons, got %d", len(report.Forecast.Horizons))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	req := analysisRequest("AAPL", 60)

	first, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("first Analyze returned error: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("second Analyze returned error: %v", err)
	}

	if first.Score.TotalScore != second.Score.TotalScore {
		t.Error("score should not vary between identical runs")
	}
	if first.Risk.VaR95 != second.Risk.VaR95 || first.Risk.AnnualizedVolatility != second.Risk.AnnualizedVolatility {
		t.Error("risk statistics should not vary between identical runs")
	}
	if first.Indicators.SMA[20][59] != second.Indicators.SMA[20][59] {
		t.Error("indicators should not vary between identical runs")
	}
	if !first.Forecast.Horizons[3].TargetPrice.Equal(second.Forecast.Horizons[3].TargetPrice) {
		t.Error("forecast targets should not vary between identical runs")
	}
}

func TestAnalyze_EmptySeries(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	req := Request{Ticker: "EMPTY", Prices: &models.PriceSeries{Ticker: "EMPTY"}}

	_, err := analyzer.Analyze(context.Background(), req)
	if !IsInvalidInput(err) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestAnalyze_NoBenchmark(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	req := analysisRequest("AAPL", 60)
	req.Benchmark = nil

	report, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if report.Risk.Beta.Valid {
		t.Error("beta should stay invalid without a benchmark")
	}
}

func TestAnalyze_ForecastDisabled(t *testing.T) {
	cfg := config.NewTestConfig()
	cfg.Forecast.Enabled = false
	analyzer := New(cfg)

	report, err := analyzer.Analyze(context.Background(), analysisRequest("AAPL", 60))
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if report.Forecast != nil {
		t.Error("forecast should be omitted when disabled")
	}
}

func TestAnalyze_NilFundamentals(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	req := analysisRequest("AAPL", 60)
	req.Fundamentals = nil

	report, err := analyzer.Analyze(context.Background(), req)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if report.Score.TotalScore != 0 || report.Score.DataComplete {
		t.Errorf("nil fundamentals should score zero with incomplete data, got %+v", report.Score)
	}
	if report.Rating != models.RatingSell {
		t.Errorf("expected rating %s, got %s", models.RatingSell, report.Rating)
	}
}

func TestAnalyzeBatch(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	reqs := []Request{
		analysisRequest("AAPL", 60),
		{Ticker: "EMPTY", Prices: &models.PriceSeries{Ticker: "EMPTY"}},
		analysisRequest("MSFT", 60),
	}

	results := analyzer.AnalyzeBatch(context.Background(), reqs)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Ticker != reqs[i].Ticker {
			t.Errorf("result %d is %s, want %s: order must follow the requests", i, r.Ticker, reqs[i].Ticker)
		}
	}

	if results[0].Err != nil || results[0].Report == nil {
		t.Errorf("AAPL should succeed, got err=%v", results[0].Err)
	}
	if results[2].Err != nil || results[2].Report == nil {
		t.Errorf("MSFT should succeed, got err=%v", results[2].Err)
	}
	if !IsInvalidInput(results[1].Err) {
		t.Errorf("EMPTY should fail with invalid input, got %v", results[1].Err)
	}
	if results[1].Report != nil {
		t.Error("a failed entry should carry no report")
	}
}

func TestAnalyzeBatch_Canceled(t *testing.T) {
	analyzer := New(config.NewTestConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := analyzer.AnalyzeBatch(ctx, []Request{
		analysisRequest("AAPL", 60),
		analysisRequest("MSFT", 60),
	})
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Ticker, r.Err)
		}
	}
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid input", &InvalidInputError{Reason: "x"}, "invalid_input"},
		{"wrapped invalid input", fmt.Errorf("analyze: %w", &InvalidInputError{Reason: "x"}), "invalid_input"},
		{"insufficient data", &InsufficientDataError{Statistic: "beta", Need: 30, Got: 3}, "insufficient_data"},
		{"other", errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorReason(tt.err); got != tt.want {
				t.Errorf("errorReason() = %s, want %s", got, tt.want)
			}
		})
	}
}
