// Package portfolio aggregates per holding analytics into portfolio
// level composition, performance, and risk figures.
package portfolio

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"equity-analytics/config"
	"equity-analytics/engine"
	"equity-analytics/internal/stats"
	"equity-analytics/internal/timeseries"
	"equity-analytics/models"
)

// weightedKeys lists the snapshot metrics rolled up into portfolio
// level figures. Valuation multiples only mean something when positive,
// so multipleKeys are skipped for holdings where they are not.
var weightedKeys = []string{
	models.MetricPERatio,
	models.MetricForwardPE,
	models.MetricPEGRatio,
	models.MetricROE,
	models.MetricROA,
	models.MetricGrossMargin,
	models.MetricOperatingMargin,
	models.MetricNetMargin,
	models.MetricRevenueGrowth,
	models.MetricDividendYield,
	models.MetricBeta,
}

var multipleKeys = map[string]bool{
	models.MetricPERatio:   true,
	models.MetricForwardPE: true,
	models.MetricPEGRatio:  true,
}

// Composition computes position and sector weights, value weighted
// fundamentals, and concentration statistics for a set of holdings.
// Holdings sharing a ticker are merged into one position weight.
func Composition(holdings []models.Holding) (*models.PortfolioComposition, error) {
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no holdings")
	}

	total := decimal.Zero
	for i := range holdings {
		total = total.Add(holdings[i].Value())
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("portfolio value must be positive, got %s", total)
	}

	comp := &models.PortfolioComposition{
		TotalValue:      total,
		Positions:       len(holdings),
		Weights:         make(map[string]float64, len(holdings)),
		WeightedMetrics: make(map[string]models.NullFloat, len(weightedKeys)),
		SectorWeights:   make(map[string]float64),
	}

	weights := make([]float64, len(holdings))
	for i := range holdings {
		w := holdings[i].Value().Div(total).InexactFloat64()
		weights[i] = w
		comp.Weights[holdings[i].Ticker] += w

		sector := holdings[i].Sector
		if sector == "" {
			sector = "Unknown"
		}
		comp.SectorWeights[sector] += w * 100
	}

	sumSquares := 0.0
	for _, w := range comp.Weights {
		sumSquares += w * w
		if pct := w * 100; pct > comp.LargestPositionPct {
			comp.LargestPositionPct = pct
		}
	}
	comp.HHI = sumSquares * 10000
	if sumSquares > 0 {
		comp.EffectiveHoldings = 1 / sumSquares
	}
	comp.Concentration = concentrationLevel(comp.HHI)

	comp.WeightedScore = weightedScore(holdings, weights)
	for _, key := range weightedKeys {
		comp.WeightedMetrics[key] = weightedMetric(holdings, weights, key)
	}
	return comp, nil
}

// concentrationLevel maps an HHI on the 0 to 10000 scale to the bands
// used for merger screening: above 2500 is highly concentrated, above
// 1500 moderately so.
func concentrationLevel(hhi float64) string {
	switch {
	case hhi > 2500:
		return "High"
	case hhi > 1500:
		return "Moderate"
	default:
		return "Low"
	}
}

func weightedScore(holdings []models.Holding, weights []float64) models.NullFloat {
	sum, wsum := 0.0, 0.0
	for i := range holdings {
		if holdings[i].Score == nil {
			continue
		}
		sum += *holdings[i].Score * weights[i]
		wsum += weights[i]
	}
	if wsum == 0 {
		return models.NullFloat{}
	}
	return models.Float(sum / wsum)
}

// weightedMetric averages one snapshot metric over the holdings that
// carry it, renormalizing by their combined weight so partial coverage
// does not drag the figure toward zero. Beta defaults to 1 for holdings
// without one.
func weightedMetric(holdings []models.Holding, weights []float64, key string) models.NullFloat {
	sum, wsum := 0.0, 0.0
	for i := range holdings {
		value, ok := holdings[i].Fundamentals.Ratio(key)
		if !ok {
			if key != models.MetricBeta {
				continue
			}
			value = 1.0
		}
		if multipleKeys[key] && value <= 0 {
			continue
		}
		sum += value * weights[i]
		wsum += weights[i]
	}
	if wsum == 0 {
		return models.NullFloat{}
	}
	return models.Float(sum / wsum)
}

// Performance summarizes a portfolio value history: total and
// annualized return, annualized volatility, Sharpe ratio, and the
// deepest drawdown of the value curve. Annualization assumes 252
// trading days and a 365 day calendar year.
func Performance(history []models.ValuePoint, cfg config.PortfolioConfig) (*models.PortfolioPerformance, error) {
	if len(history) < 2 {
		return nil, fmt.Errorf("value history needs at least 2 points, got %d", len(history))
	}

	initial := history[0].Value
	current := history[len(history)-1].Value
	if !initial.IsPositive() {
		return nil, fmt.Errorf("initial portfolio value must be positive, got %s", initial)
	}

	perf := &models.PortfolioPerformance{
		InitialValue: initial,
		CurrentValue: current,
	}

	iv := initial.InexactFloat64()
	cv := current.InexactFloat64()
	perf.TotalReturnPct = (cv - iv) / iv * 100

	days := int(history[len(history)-1].Date.Sub(history[0].Date).Hours() / 24)
	perf.Days = days
	if days > 0 {
		perf.AnnualizedReturnPct = (math.Pow(cv/iv, 365/float64(days)) - 1) * 100
	}

	returns := timeseries.ValueReturns(history)
	values := make([]float64, len(returns))
	for i, r := range returns {
		values[i] = r.Return
	}
	if len(values) > 1 {
		perf.VolatilityPct = stats.SampleStdDev(values) * math.Sqrt(252) * 100
	}
	if perf.VolatilityPct > 0 {
		perf.Sharpe = models.Float((perf.AnnualizedReturnPct - cfg.RiskFreeRatePct) / perf.VolatilityPct)
	}
	perf.MaxDrawdown = engine.MaxDrawdownOf(returns)
	return perf, nil
}

// RiskProfile aggregates holding betas into a value weighted portfolio
// beta and, when per holding return histories are supplied, a pairwise
// correlation matrix.
func RiskProfile(holdings []models.Holding, histories []models.ReturnSeries, cfg config.RiskConfig) (*models.PortfolioRiskProfile, error) {
	if len(holdings) == 0 {
		return nil, fmt.Errorf("no holdings")
	}

	total := decimal.Zero
	for i := range holdings {
		total = total.Add(holdings[i].Value())
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("portfolio value must be positive, got %s", total)
	}

	profile := &models.PortfolioRiskProfile{Positions: len(holdings)}
	for i := range holdings {
		w := holdings[i].Value().Div(total).InexactFloat64()
		beta, ok := holdings[i].Fundamentals.Ratio(models.MetricBeta)
		if !ok {
			beta = 1.0
		}
		profile.Beta += beta * w
		if pct := w * 100; pct > profile.LargestPositionPct {
			profile.LargestPositionPct = pct
		}
	}

	if len(histories) > 1 {
		matrix, err := engine.ComputeCorrelationMatrix(histories, cfg)
		if err != nil {
			return nil, err
		}
		profile.Correlations = matrix
	}
	return profile, nil
}
