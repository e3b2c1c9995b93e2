package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"equity-analytics/internal/stats"
	"equity-analytics/internal/timeseries"
	"equity-analytics/models"
)

// ErrInsufficientHistory reports a price series too short to project.
var ErrInsufficientHistory = errors.New("insufficient price history for forecast")

// Horizon rows: shorter horizons lean on momentum with higher
// confidence, longer ones on the annual estimate with lower confidence.
var horizons = []struct {
	label       string
	days        int
	mult        float64
	confidence  float64
	useMomentum bool
}{
	{"1m", 30, 0.6, 0.85, true},
	{"3m", 90, 1.2, 0.75, false},
	{"6m", 180, 1.1, 0.65, false},
	{"12m", 365, 1.0, 0.55, false},
}

// Project forecasts the price path of series over one, three, six, and
// twelve months. The direction blends the fundamental score (40%) with
// trend, momentum, and fundamental growth (20% each); the bounds widen
// with realized volatility and horizon length. score is the composite
// fundamental score on the 0 to 100 scale.
func Project(series *models.PriceSeries, snapshot *models.FundamentalSnapshot, score float64) (*models.ForecastSet, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, fmt.Errorf("project: %w", ErrInsufficientHistory)
	}

	currentDec := series.Bars[len(series.Bars)-1].Close
	current := currentDec.InexactFloat64()
	if current <= 0 {
		return nil, fmt.Errorf("current price must be positive, got %s", currentDec)
	}

	closes := timeseries.Closes(series)
	trend := trendScore(closes, current)
	momentum := momentumPct(closes, current)
	volatility := annualizedVolPct(series)
	avgGrowth := growthPct(snapshot)

	growthFactor := avgGrowth / 10
	if avgGrowth > 5 {
		growthFactor = 1
	} else if avgGrowth < -5 {
		growthFactor = -0.5
	}

	direction := score/100*0.4 +
		float64(trend)*0.2 +
		clamp(momentum/10, -1, 1)*0.2 +
		clamp(growthFactor, -1, 1)*0.2
	annual := direction * (math.Abs(momentum)*0.5 + math.Abs(avgGrowth)*0.3)

	consistency := -0.1
	if (momentum > 0 && trend > 0) || (momentum < 0 && trend < 0) {
		consistency = 0.1
	}

	set := &models.ForecastSet{
		Ticker:               series.Ticker,
		CurrentPrice:         currentDec,
		Momentum:             momentum,
		Volatility:           volatility,
		AnnualReturnEstimate: annual,
		Horizons:             make([]models.HorizonForecast, 0, len(horizons)),
	}
	switch {
	case trend > 0:
		set.Trend = models.TrendBullish
	case trend < 0:
		set.Trend = models.TrendBearish
	default:
		set.Trend = models.TrendNeutral
	}

	var twelveMonthRatio float64
	for _, h := range horizons {
		expected := annual * (float64(h.days) / 365) * h.mult
		if h.useMomentum {
			expected = direction * math.Abs(momentum) * 0.6
		}
		ratio := 1 + expected/100
		if h.days == 365 {
			twelveMonthRatio = ratio
		}

		volImpact := (volatility / 100) * (float64(h.days) / 365) * 0.5
		target := currentDec.Mul(decimal.NewFromFloat(ratio))
		lower := target.Mul(decimal.NewFromFloat(1 - volImpact))
		upper := target.Mul(decimal.NewFromFloat(1 + volImpact))

		probability := math.Min(95, math.Max(20, (score/100+consistency)*100*h.confidence))
		set.Horizons = append(set.Horizons, models.HorizonForecast{
			Label:          h.label,
			Days:           h.days,
			ExpectedChange: expected,
			TargetPrice:    target.Round(2),
			LowerBound:     lower.Round(2),
			UpperBound:     upper.Round(2),
			Probability:    probability,
			Confidence:     h.confidence * 100,
		})
	}
	set.Outlook = outlookFor(twelveMonthRatio)
	return set, nil
}

// trendScore reads the moving average alignment: price above the 20 day
// average which sits above the 50 day average is bullish, the mirror
// ordering bearish, anything else neutral. Series of 50 bars or fewer
// stay neutral.
func trendScore(closes []float64, current float64) int {
	if len(closes) <= 50 {
		return 0
	}
	ma20 := stats.Mean(closes[len(closes)-20:])
	ma50 := stats.Mean(closes[len(closes)-50:])
	switch {
	case current > ma20 && ma20 > ma50:
		return 1
	case current < ma20 && ma20 < ma50:
		return -1
	default:
		return 0
	}
}

// momentumPct is the percent change from the close twenty bars back.
func momentumPct(closes []float64, current float64) float64 {
	if len(closes) < 20 {
		return 0
	}
	base := closes[len(closes)-20]
	if base == 0 {
		return 0
	}
	return (current - base) / base * 100
}

// annualizedVolPct is the sample standard deviation of daily returns
// annualized over 252 trading days, in percent.
func annualizedVolPct(series *models.PriceSeries) float64 {
	if len(series.Bars) < 20 {
		return 0
	}
	points := timeseries.DailyReturns(series)
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Return
	}
	return stats.SampleStdDev(values) * math.Sqrt(252) * 100
}

// growthPct averages revenue and earnings growth when both are present
// and nonzero, otherwise falls back to whichever one is.
func growthPct(snapshot *models.FundamentalSnapshot) float64 {
	var rev, earn float64
	if snapshot != nil {
		if snapshot.RevenueGrowth != nil {
			rev = *snapshot.RevenueGrowth
		}
		if snapshot.EarningsGrowth != nil {
			earn = *snapshot.EarningsGrowth
		}
	}
	if rev != 0 && earn != 0 {
		return (rev + earn) / 2
	}
	if rev != 0 {
		return rev
	}
	return earn
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func outlookFor(ratio float64) models.Outlook {
	switch {
	case ratio > 1.15:
		return models.OutlookStrongBuy
	case ratio > 1.05:
		return models.OutlookBuy
	case ratio > 0.95:
		return models.OutlookHold
	case ratio > 0.85:
		return models.OutlookReduce
	default:
		return models.OutlookSell
	}
}
