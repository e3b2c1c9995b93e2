package forecast

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func observation(dayN int, price, forecast float64) Observation {
	return Observation{
		Date:          day(dayN),
		Price:         decimal.NewFromFloat(price),
		ForecastPrice: decimal.NewFromFloat(forecast),
	}
}

func TestEvaluateAccuracy(t *testing.T) {
	history := []Observation{
		observation(0, 100, 105),
		observation(1, 104, 103),
		observation(2, 101, 99),
		observation(3, 103, 104),
	}

	acc := EvaluateAccuracy(history)

	if acc.Samples != 3 {
		t.Fatalf("expected 3 samples, got %d", acc.Samples)
	}

	// Pair errors: |105-104|/104, |103-101|/101, |99-103|/103, in percent.
	wantMAE := (100.0/104 + 200.0/101 + 400.0/103) / 3
	if math.Abs(acc.MeanAbsoluteErrorPct-wantMAE) > 1e-9 {
		t.Errorf("MAE = %v, want %v", acc.MeanAbsoluteErrorPct, wantMAE)
	}
	if math.Abs(acc.Score-(100-wantMAE)) > 1e-9 {
		t.Errorf("Score = %v, want %v", acc.Score, 100-wantMAE)
	}

	// The first two forecasts called the direction, the third did not.
	wantHitRate := 2.0 / 3 * 100
	if math.Abs(acc.DirectionHitRate-wantHitRate) > 1e-9 {
		t.Errorf("DirectionHitRate = %v, want %v", acc.DirectionHitRate, wantHitRate)
	}
}

func TestEvaluateAccuracy_SkipsMissing(t *testing.T) {
	history := []Observation{
		observation(0, 100, 0), // no forecast recorded
		observation(1, 102, 105),
		observation(2, 104, 106),
	}

	acc := EvaluateAccuracy(history)
	if acc.Samples != 1 {
		t.Errorf("expected 1 usable pair, got %d", acc.Samples)
	}
}

func TestEvaluateAccuracy_TooFewObservations(t *testing.T) {
	if acc := EvaluateAccuracy(nil); acc.Samples != 0 || acc.Score != 0 {
		t.Errorf("expected zero value for no history, got %+v", acc)
	}
	if acc := EvaluateAccuracy([]Observation{observation(0, 100, 101)}); acc.Samples != 0 {
		t.Errorf("expected zero value for a single observation, got %+v", acc)
	}
}

func TestEvaluateAccuracy_NoUsablePairs(t *testing.T) {
	history := []Observation{
		observation(0, 100, 0),
		observation(1, 102, 0),
		observation(2, 104, 0),
	}
	if acc := EvaluateAccuracy(history); acc.Samples != 0 || acc.Score != 0 || acc.DirectionHitRate != 0 {
		t.Errorf("expected zero value without usable pairs, got %+v", acc)
	}
}
