package engine

import (
	"fmt"
	"math"
	"sort"

	"equity-analytics/config"
	"equity-analytics/internal/stats"
	"equity-analytics/internal/timeseries"
	"equity-analytics/models"
)

// ComputeRisk computes the risk report for one daily return series.
// Sharpe and Sortino stay invalid when the series has no dispersion or
// not enough downside observations. Passing a benchmark adds beta; nil
// skips it.
func ComputeRisk(returns *models.ReturnSeries, benchmark *models.ReturnSeries, cfg config.RiskConfig) (*models.RiskReport, error) {
	if len(cfg.VaRConfidences) != 2 {
		return nil, &InvalidInputError{Reason: "risk config needs exactly two VaR confidences"}
	}

	var points []models.ReturnPoint
	if returns != nil {
		points = returns.Returns
	}
	if len(points) < cfg.MinObservations {
		return nil, &InsufficientDataError{Statistic: "risk report", Need: cfg.MinObservations, Got: len(points)}
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Return
	}

	mean := stats.Mean(values)
	sd := stats.SampleStdDev(values)
	factor := cfg.AnnualizationFactor
	sqrtFactor := math.Sqrt(factor)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q95 := stats.Quantile(sorted, 1-cfg.VaRConfidences[0])
	q99 := stats.Quantile(sorted, 1-cfg.VaRConfidences[1])

	var tail []float64
	for _, v := range values {
		if v <= q95 {
			tail = append(tail, v)
		}
	}

	report := &models.RiskReport{
		AnnualizedVolatility: sd * sqrtFactor,
		VaR95:                math.Max(0, -q95),
		VaR99:                math.Max(0, -q99),
		CVaR95:               math.Max(0, -stats.Mean(tail)),
		MaxDrawdown:          MaxDrawdownOf(points),
		Observations:         len(points),
	}

	rfDaily := cfg.RiskFreeRate / factor
	if sd > 0 {
		report.Sharpe = models.Float((mean - rfDaily) / sd * sqrtFactor)
	}

	var downside []float64
	for _, v := range values {
		if v < rfDaily {
			downside = append(downside, v)
		}
	}
	if len(downside) >= 2 {
		if dsd := stats.SampleStdDev(downside); dsd > 0 {
			report.Sortino = models.Float((mean - rfDaily) / dsd * sqrtFactor)
		}
	}

	if benchmark != nil {
		beta, err := computeBeta(returns, benchmark, cfg)
		if err != nil {
			return nil, err
		}
		report.Beta = beta
	}
	return report, nil
}

// MaxDrawdownOf returns the deepest peak to trough decline of the
// cumulative return curve built from returns. A curve that never
// declines reports zero magnitude with peak and trough on the first
// date. Recovery fields stay nil while the curve has not regained the
// prior peak.
func MaxDrawdownOf(returns []models.ReturnPoint) models.Drawdown {
	var dd models.Drawdown
	if len(returns) == 0 {
		return dd
	}

	curve := make([]float64, len(returns))
	value := 1.0
	for i, p := range returns {
		value *= 1 + p.Return
		curve[i] = value
	}

	peak := curve[0]
	peakIdx := 0
	var worst float64
	worstPeak, worstTrough := 0, 0
	for i, v := range curve {
		if v > peak {
			peak = v
			peakIdx = i
		}
		if peak <= 0 {
			continue
		}
		drop := (peak - v) / peak
		if drop > worst {
			worst = drop
			worstPeak = peakIdx
			worstTrough = i
		}
	}

	dd.Magnitude = worst
	dd.PeakDate = returns[worstPeak].Date
	dd.TroughDate = returns[worstTrough].Date
	if worst == 0 {
		return dd
	}
	dd.DurationDays = int(dd.TroughDate.Sub(dd.PeakDate).Hours() / 24)

	peakValue := curve[worstPeak]
	for j := worstTrough + 1; j < len(curve); j++ {
		if curve[j] >= peakValue {
			recovery := returns[j].Date
			dd.RecoveryDate = &recovery
			days := int(recovery.Sub(dd.TroughDate).Hours() / 24)
			dd.RecoveryDays = &days
			break
		}
	}
	return dd
}

// computeBeta regresses asset returns on benchmark returns over their
// date overlap. A benchmark with zero variance yields an invalid beta.
func computeBeta(asset, benchmark *models.ReturnSeries, cfg config.RiskConfig) (models.NullFloat, error) {
	xs, ys := timeseries.AlignByDate(asset.Returns, benchmark.Returns)
	if len(xs) < cfg.MinBetaObservations {
		return models.NullFloat{}, &InsufficientDataError{Statistic: "beta", Need: cfg.MinBetaObservations, Got: len(xs)}
	}
	benchVar := stats.SampleVariance(ys)
	if benchVar == 0 {
		return models.NullFloat{}, nil
	}
	return models.Float(stats.SampleCovariance(xs, ys) / benchVar), nil
}

// ComputeCorrelationMatrix computes pairwise Pearson correlations over
// each pair's date overlap. The matrix is symmetric with a unit
// diagonal; a pair where either leg has zero variance holds invalid
// cells.
func ComputeCorrelationMatrix(series []models.ReturnSeries, cfg config.RiskConfig) (*models.CorrelationMatrix, error) {
	if len(series) == 0 {
		return nil, &InvalidInputError{Reason: "no return series"}
	}

	n := len(series)
	matrix := &models.CorrelationMatrix{
		Tickers: make([]string, n),
		Cells:   make([][]models.NullFloat, n),
	}
	for i, s := range series {
		matrix.Tickers[i] = s.Ticker
		matrix.Cells[i] = make([]models.NullFloat, n)
		matrix.Cells[i][i] = models.Float(1)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			xs, ys := timeseries.AlignByDate(series[i].Returns, series[j].Returns)
			if len(xs) < cfg.MinBetaObservations {
				return nil, &InsufficientDataError{
					Statistic: fmt.Sprintf("correlation %s/%s", series[i].Ticker, series[j].Ticker),
					Need:      cfg.MinBetaObservations,
					Got:       len(xs),
				}
			}
			r, ok := stats.Pearson(xs, ys)
			if !ok {
				continue
			}
			matrix.Cells[i][j] = models.Float(r)
			matrix.Cells[j][i] = matrix.Cells[i][j]
		}
	}
	return matrix, nil
}
