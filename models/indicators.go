package models

import "time"

// MACDSeries holds the MACD line, signal line, and histogram
type MACDSeries struct {
	Line      []NullFloat `json:"line"`
	Signal    []NullFloat `json:"signal"`
	Histogram []NullFloat `json:"histogram"`
}

// BollingerSeries holds the Bollinger bands around the middle moving average
type BollingerSeries struct {
	Upper  []NullFloat `json:"upper"`
	Middle []NullFloat `json:"middle"`
	Lower  []NullFloat `json:"lower"`
}

// IndicatorSet holds every computed indicator series for one ticker.
// Each series is aligned index for index with Dates; positions where an
// indicator is not yet defined hold invalid values.
type IndicatorSet struct {
	Ticker    string              `json:"ticker"`
	Dates     []time.Time         `json:"dates"`
	SMA       map[int][]NullFloat `json:"sma"`
	EMA       map[int][]NullFloat `json:"ema"`
	RSI       []NullFloat         `json:"rsi"`
	MACD      MACDSeries          `json:"macd"`
	Bollinger BollingerSeries     `json:"bollinger"`
}
