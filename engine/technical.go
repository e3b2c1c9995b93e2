package engine

import (
	"fmt"
	"time"

	"equity-analytics/config"
	"equity-analytics/internal/stats"
	"equity-analytics/internal/timeseries"
	"equity-analytics/models"
)

func checkSeries(closes []float64, window int) error {
	if len(closes) == 0 {
		return &InvalidInputError{Reason: "empty series"}
	}
	if window <= 0 {
		return &InvalidInputError{Reason: fmt.Sprintf("window must be positive, got %d", window)}
	}
	return nil
}

// ComputeSMA returns the simple moving average of closes over window.
// The result is aligned index for index with closes; positions before
// the first full window hold invalid values. A series shorter than the
// window yields all invalid values rather than an error.
func ComputeSMA(closes []float64, window int) ([]models.NullFloat, error) {
	if err := checkSeries(closes, window); err != nil {
		return nil, err
	}

	out := make([]models.NullFloat, len(closes))
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = models.Float(sum / float64(window))
		}
	}
	return out, nil
}

// ComputeEMA returns the exponential moving average of closes over
// window. The first value is the simple average of the first window
// closes; later values use the standard smoothing factor 2/(window+1).
func ComputeEMA(closes []float64, window int) ([]models.NullFloat, error) {
	if err := checkSeries(closes, window); err != nil {
		return nil, err
	}

	out := make([]models.NullFloat, len(closes))
	if len(closes) < window {
		return out, nil
	}

	var sum float64
	for _, c := range closes[:window] {
		sum += c
	}
	prev := sum / float64(window)
	out[window-1] = models.Float(prev)

	alpha := 2.0 / float64(window+1)
	for i := window; i < len(closes); i++ {
		prev = (closes[i]-prev)*alpha + prev
		out[i] = models.Float(prev)
	}
	return out, nil
}

// ComputeRSI returns the relative strength index of closes using
// Wilder's smoothing. The first value appears at index window and uses
// the simple average of the first window changes; later averages decay
// with weight (window-1)/window. A series with no losses reads 100.
func ComputeRSI(closes []float64, window int) ([]models.NullFloat, error) {
	if err := checkSeries(closes, window); err != nil {
		return nil, err
	}

	out := make([]models.NullFloat, len(closes))
	if len(closes) < window+1 {
		return out, nil
	}

	var avgGain, avgLoss float64
	for i := 1; i <= window; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)
	out[window] = models.Float(rsiValue(avgGain, avgLoss))

	for i := window + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		var gain, loss float64
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
		out[i] = models.Float(rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ComputeMACD returns the MACD line, signal line, and histogram for
// closes. The line is the fast EMA minus the slow EMA and is defined
// once both are; the signal is an EMA of the line values over the
// signal window, so it starts signal-1 positions later.
func ComputeMACD(closes []float64, fast, slow, signal int) (models.MACDSeries, error) {
	macd := models.MACDSeries{}
	if len(closes) == 0 {
		return macd, &InvalidInputError{Reason: "empty series"}
	}
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return macd, &InvalidInputError{Reason: "MACD windows must be positive"}
	}
	if fast >= slow {
		return macd, &InvalidInputError{Reason: fmt.Sprintf("MACD fast window %d must be below slow window %d", fast, slow)}
	}

	fastEMA, err := ComputeEMA(closes, fast)
	if err != nil {
		return macd, err
	}
	slowEMA, err := ComputeEMA(closes, slow)
	if err != nil {
		return macd, err
	}

	n := len(closes)
	macd.Line = make([]models.NullFloat, n)
	macd.Signal = make([]models.NullFloat, n)
	macd.Histogram = make([]models.NullFloat, n)
	for i := 0; i < n; i++ {
		if fastEMA[i].Valid && slowEMA[i].Valid {
			macd.Line[i] = models.Float(fastEMA[i].Float64 - slowEMA[i].Float64)
		}
	}
	if n < slow {
		return macd, nil
	}

	lineVals := make([]float64, 0, n-slow+1)
	for i := slow - 1; i < n; i++ {
		lineVals = append(lineVals, macd.Line[i].Float64)
	}
	signalEMA, err := ComputeEMA(lineVals, signal)
	if err != nil {
		return macd, err
	}
	for j, v := range signalEMA {
		if !v.Valid {
			continue
		}
		i := slow - 1 + j
		macd.Signal[i] = v
		macd.Histogram[i] = models.Float(macd.Line[i].Float64 - v.Float64)
	}
	return macd, nil
}

// ComputeBollinger returns Bollinger bands over window: the middle band
// is the simple moving average and the outer bands sit width sample
// standard deviations away.
func ComputeBollinger(closes []float64, window int, width float64) (models.BollingerSeries, error) {
	bands := models.BollingerSeries{}
	if err := checkSeries(closes, window); err != nil {
		return bands, err
	}
	if width <= 0 {
		return bands, &InvalidInputError{Reason: fmt.Sprintf("bollinger width must be positive, got %g", width)}
	}

	middle, err := ComputeSMA(closes, window)
	if err != nil {
		return bands, err
	}

	n := len(closes)
	bands.Upper = make([]models.NullFloat, n)
	bands.Middle = make([]models.NullFloat, n)
	bands.Lower = make([]models.NullFloat, n)
	for i := window - 1; i < n; i++ {
		sd := stats.SampleStdDev(closes[i-window+1 : i+1])
		mid := middle[i].Float64
		bands.Middle[i] = middle[i]
		bands.Upper[i] = models.Float(mid + width*sd)
		bands.Lower[i] = models.Float(mid - width*sd)
	}
	return bands, nil
}

// ComputeIndicators validates series and computes every configured
// indicator from its closing prices. All result series are aligned with
// the returned Dates.
func ComputeIndicators(series *models.PriceSeries, cfg config.IndicatorConfig) (*models.IndicatorSet, error) {
	if series == nil || len(series.Bars) == 0 {
		return nil, &InvalidInputError{Reason: "empty price series"}
	}
	if err := series.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	closes := timeseries.Closes(series)
	set := &models.IndicatorSet{
		Ticker: series.Ticker,
		Dates:  make([]time.Time, len(series.Bars)),
		SMA:    make(map[int][]models.NullFloat, len(cfg.SMAWindows)),
		EMA:    make(map[int][]models.NullFloat, len(cfg.EMAWindows)),
	}
	for i, bar := range series.Bars {
		set.Dates[i] = bar.Date
	}

	for _, w := range cfg.SMAWindows {
		sma, err := ComputeSMA(closes, w)
		if err != nil {
			return nil, err
		}
		set.SMA[w] = sma
	}
	for _, w := range cfg.EMAWindows {
		ema, err := ComputeEMA(closes, w)
		if err != nil {
			return nil, err
		}
		set.EMA[w] = ema
	}

	rsi, err := ComputeRSI(closes, cfg.RSIWindow)
	if err != nil {
		return nil, err
	}
	set.RSI = rsi

	macd, err := ComputeMACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	if err != nil {
		return nil, err
	}
	set.MACD = macd

	bands, err := ComputeBollinger(closes, cfg.BollingerWindow, cfg.BollingerWidth)
	if err != nil {
		return nil, err
	}
	set.Bollinger = bands

	return set, nil
}
