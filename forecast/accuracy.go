package forecast

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Observation pairs the price and the recorded forecast from one
// analysis run.
type Observation struct {
	Date          time.Time       `json:"date"`
	Price         decimal.Decimal `json:"price"`
	ForecastPrice decimal.Decimal `json:"forecast_price"`
}

// Accuracy summarizes how past forecasts held up against the prices
// that followed them. Score is 100 minus the mean absolute error,
// floored at zero.
type Accuracy struct {
	Score                float64 `json:"score"`
	MeanAbsoluteErrorPct float64 `json:"mean_absolute_error_pct"`
	DirectionHitRate     float64 `json:"direction_hit_rate"`
	Samples              int     `json:"samples"`
}

// EvaluateAccuracy compares each observation's forecast with the price
// of the observation that follows it. A direction counts as a hit when
// the forecast and the realized price moved the same way from the
// observation's own price. Pairs missing either price are skipped;
// fewer than two observations or no usable pair yields the zero value.
func EvaluateAccuracy(history []Observation) Accuracy {
	var acc Accuracy
	if len(history) < 2 {
		return acc
	}

	var errSum float64
	var hits, pairs int
	for i := 0; i < len(history)-1; i++ {
		fc := history[i].ForecastPrice.InexactFloat64()
		actual := history[i+1].Price.InexactFloat64()
		if fc <= 0 || actual <= 0 {
			continue
		}
		errSum += math.Abs((fc-actual)/actual) * 100

		base := history[i].Price.InexactFloat64()
		if (fc-base)*(actual-base) >= 0 {
			hits++
		}
		pairs++
	}
	if pairs == 0 {
		return acc
	}

	acc.MeanAbsoluteErrorPct = errSum / float64(pairs)
	acc.Score = math.Max(0, 100-acc.MeanAbsoluteErrorPct)
	acc.DirectionHitRate = float64(hits) / float64(pairs) * 100
	acc.Samples = pairs
	return acc
}
