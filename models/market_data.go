package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceBar represents OHLCV price data for one trading day
type PriceBar struct {
	Date   time.Time       `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// PriceSeries holds the ordered daily bars for one ticker
type PriceSeries struct {
	Ticker string     `json:"ticker"`
	Bars   []PriceBar `json:"bars"`
}

// Validate checks that the series names a ticker, has at least one bar,
// and that every bar carries coherent prices in strictly increasing
// date order.
func (s *PriceSeries) Validate() error {
	if s.Ticker == "" {
		return fmt.Errorf("price series has no ticker")
	}
	if len(s.Bars) == 0 {
		return fmt.Errorf("price series %s has no bars", s.Ticker)
	}
	for i, bar := range s.Bars {
		if !bar.Close.IsPositive() {
			return fmt.Errorf("bar %d of %s: close %s is not positive", i, s.Ticker, bar.Close)
		}
		if bar.Volume < 0 {
			return fmt.Errorf("bar %d of %s: negative volume %d", i, s.Ticker, bar.Volume)
		}
		if bar.High.LessThan(bar.Open) || bar.High.LessThan(bar.Close) || bar.High.LessThan(bar.Low) {
			return fmt.Errorf("bar %d of %s: high %s is below another price", i, s.Ticker, bar.High)
		}
		if bar.Low.GreaterThan(bar.Open) || bar.Low.GreaterThan(bar.Close) {
			return fmt.Errorf("bar %d of %s: low %s is above another price", i, s.Ticker, bar.Low)
		}
		if i > 0 && !bar.Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("bar %d of %s: date %s does not advance", i, s.Ticker, bar.Date.Format("2006-01-02"))
		}
	}
	return nil
}

// ReturnPoint represents one dated simple daily return
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// ReturnSeries holds the dated daily returns for one ticker
type ReturnSeries struct {
	Ticker  string        `json:"ticker"`
	Returns []ReturnPoint `json:"returns"`
}
