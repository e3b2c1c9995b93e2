// Package timeseries converts price and value histories into the close
// and return vectors the engines consume.
package timeseries

import (
	"equity-analytics/models"
)

// Closes extracts the close prices of series as floats.
func Closes(series *models.PriceSeries) []float64 {
	if series == nil {
		return nil
	}
	closes := make([]float64, len(series.Bars))
	for i, bar := range series.Bars {
		closes[i] = bar.Close.InexactFloat64()
	}
	return closes
}

// DailyReturns derives simple daily returns from consecutive closes,
// dated at the later bar. Pairs whose earlier close is zero are skipped.
func DailyReturns(series *models.PriceSeries) []models.ReturnPoint {
	if series == nil || len(series.Bars) < 2 {
		return nil
	}
	out := make([]models.ReturnPoint, 0, len(series.Bars)-1)
	for i := 1; i < len(series.Bars); i++ {
		prev := series.Bars[i-1].Close.InexactFloat64()
		if prev == 0 {
			continue
		}
		cur := series.Bars[i].Close.InexactFloat64()
		out = append(out, models.ReturnPoint{
			Date:   series.Bars[i].Date,
			Return: (cur - prev) / prev,
		})
	}
	return out
}

// ValueReturns derives simple daily returns from a portfolio value
// history, dated at the later point.
func ValueReturns(history []models.ValuePoint) []models.ReturnPoint {
	if len(history) < 2 {
		return nil
	}
	out := make([]models.ReturnPoint, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		prev := history[i-1].Value.InexactFloat64()
		if prev == 0 {
			continue
		}
		cur := history[i].Value.InexactFloat64()
		out = append(out, models.ReturnPoint{
			Date:   history[i].Date,
			Return: (cur - prev) / prev,
		})
	}
	return out
}

// AlignByDate pairs the returns of a and b that fall on the same date,
// preserving a's order.
func AlignByDate(a, b []models.ReturnPoint) (xs, ys []float64) {
	if len(a) == 0 || len(b) == 0 {
		return nil, nil
	}
	byDate := make(map[int64]float64, len(b))
	for _, p := range b {
		byDate[p.Date.UnixNano()] = p.Return
	}
	for _, p := range a {
		if v, ok := byDate[p.Date.UnixNano()]; ok {
			xs = append(xs, p.Return)
			ys = append(ys, v)
		}
	}
	return xs, ys
}
