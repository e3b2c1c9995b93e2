package models

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisReport aggregates every analytics result for one ticker over
// the analyzed price period
type AnalysisReport struct {
	ID          uuid.UUID       `json:"id"`
	Ticker      string          `json:"ticker"`
	GeneratedAt time.Time       `json:"generated_at"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Indicators  *IndicatorSet   `json:"indicators"`
	Score       *ScoreBreakdown `json:"score"`
	Risk        *RiskReport     `json:"risk"`
	Rating      Rating          `json:"rating"`
	Forecast    *ForecastSet    `json:"forecast,omitempty"`
}

// NewAnalysisReport creates an empty report for ticker covering the
// period from start to end.
func NewAnalysisReport(ticker string, start, end time.Time) *AnalysisReport {
	return &AnalysisReport{
		ID:          uuid.New(),
		Ticker:      ticker,
		GeneratedAt: time.Now().UTC(),
		PeriodStart: start,
		PeriodEnd:   end,
	}
}
