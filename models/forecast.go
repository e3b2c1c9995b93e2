package models

import "github.com/shopspring/decimal"

// TrendDirection labels the moving average alignment of recent prices
type TrendDirection string

const (
	TrendBullish TrendDirection = "Bullish"
	TrendBearish TrendDirection = "Bearish"
	TrendNeutral TrendDirection = "Neutral"
)

// Outlook summarizes the stance implied by the twelve month projection
type Outlook string

const (
	OutlookStrongBuy Outlook = "Strong Buy"
	OutlookBuy       Outlook = "Buy"
	OutlookHold      Outlook = "Hold"
	OutlookReduce    Outlook = "Reduce"
	OutlookSell      Outlook = "Sell"
)

// HorizonForecast projects price movement over one horizon. The bounds
// widen with the series volatility and the horizon length.
type HorizonForecast struct {
	Label          string          `json:"label"`
	Days           int             `json:"days"`
	ExpectedChange float64         `json:"expected_change"`
	TargetPrice    decimal.Decimal `json:"target_price"`
	LowerBound     decimal.Decimal `json:"lower_bound"`
	UpperBound     decimal.Decimal `json:"upper_bound"`
	Probability    float64         `json:"probability"`
	Confidence     float64         `json:"confidence"`
}

// ForecastSet holds the projected price paths for one ticker
type ForecastSet struct {
	Ticker               string            `json:"ticker"`
	CurrentPrice         decimal.Decimal   `json:"current_price"`
	Trend                TrendDirection    `json:"trend"`
	Momentum             float64           `json:"momentum"`
	Volatility           float64           `json:"volatility"`
	AnnualReturnEstimate float64           `json:"annual_return_estimate"`
	Horizons             []HorizonForecast `json:"horizons"`
	Outlook              Outlook           `json:"outlook"`
}
