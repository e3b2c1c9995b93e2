package models

import "github.com/shopspring/decimal"

// ValuationEstimate holds one model's intrinsic value estimate together
// with the assumptions that produced it
type ValuationEstimate struct {
	Method         string             `json:"method"`
	IntrinsicValue decimal.Decimal    `json:"intrinsic_value"`
	Assumptions    map[string]float64 `json:"assumptions,omitempty"`
}

// ValuationSummary blends the applicable valuation models for one
// ticker. DiscountPct is positive when the average intrinsic value sits
// above the current price.
type ValuationSummary struct {
	Ticker           string              `json:"ticker"`
	CurrentPrice     decimal.Decimal     `json:"current_price"`
	Estimates        []ValuationEstimate `json:"estimates"`
	AverageIntrinsic decimal.Decimal     `json:"average_intrinsic"`
	DiscountPct      float64             `json:"discount_pct"`
	Assessment       string              `json:"assessment"`
}
