package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding represents one portfolio position
type Holding struct {
	Ticker       string               `json:"ticker"`
	Shares       decimal.Decimal      `json:"shares"`
	Price        decimal.Decimal      `json:"price"`
	MarketValue  decimal.Decimal      `json:"market_value"`
	Sector       string               `json:"sector,omitempty"`
	Score        *float64             `json:"score,omitempty"`
	Fundamentals *FundamentalSnapshot `json:"fundamentals,omitempty"`
}

// Value returns the position's market value, deriving it from shares
// and price when not set explicitly.
func (h *Holding) Value() decimal.Decimal {
	if !h.MarketValue.IsZero() {
		return h.MarketValue
	}
	return h.Shares.Mul(h.Price)
}

// ValuePoint represents the portfolio's total value on one date
type ValuePoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// PortfolioComposition describes what a portfolio holds: position and
// sector weights, value-weighted fundamentals, and concentration
// statistics. Weighted metrics average over the holdings that carry the
// metric, keyed the same way as scoring metrics.
type PortfolioComposition struct {
	TotalValue         decimal.Decimal      `json:"total_value"`
	Positions          int                  `json:"positions"`
	Weights            map[string]float64   `json:"weights"`
	WeightedScore      NullFloat            `json:"weighted_score"`
	WeightedMetrics    map[string]NullFloat `json:"weighted_metrics"`
	SectorWeights      map[string]float64   `json:"sector_weights"`
	HHI                float64              `json:"hhi"`
	EffectiveHoldings  float64              `json:"effective_holdings"`
	Concentration      string               `json:"concentration"`
	LargestPositionPct float64              `json:"largest_position_pct"`
}

// PortfolioPerformance summarizes a portfolio value history. Return,
// volatility, and drawdown figures are percentages except MaxDrawdown,
// which keeps its 0 to 1 magnitude.
type PortfolioPerformance struct {
	InitialValue        decimal.Decimal `json:"initial_value"`
	CurrentValue        decimal.Decimal `json:"current_value"`
	TotalReturnPct      float64         `json:"total_return_pct"`
	AnnualizedReturnPct float64         `json:"annualized_return_pct"`
	VolatilityPct       float64         `json:"volatility_pct"`
	Sharpe              NullFloat       `json:"sharpe"`
	MaxDrawdown         Drawdown        `json:"max_drawdown"`
	Days                int             `json:"days"`
}

// PortfolioRiskProfile holds portfolio level risk statistics
type PortfolioRiskProfile struct {
	Beta               float64            `json:"beta"`
	Positions          int                `json:"positions"`
	LargestPositionPct float64            `json:"largest_position_pct"`
	Correlations       *CorrelationMatrix `json:"correlations,omitempty"`
}
