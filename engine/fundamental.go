package engine

import (
	"equity-analytics/config"
	"equity-analytics/models"
)

// ComputeScore scores snapshot against table and returns the breakdown.
// Every component contributes even when its metric is absent: a missing
// metric earns nothing, clears DataComplete, and is listed in
// MissingMetrics. A nil snapshot scores as if every metric were absent.
func ComputeScore(ticker string, snapshot *models.FundamentalSnapshot, table config.ScoringTable) (*models.ScoreBreakdown, error) {
	if err := table.Validate(); err != nil {
		return nil, &InvalidInputError{Reason: err.Error()}
	}

	breakdown := &models.ScoreBreakdown{
		Ticker:       ticker,
		Components:   make([]models.ComponentScore, 0, len(table.Components)),
		DataComplete: true,
	}
	for _, comp := range table.Components {
		var earned float64
		value, ok := snapshot.Ratio(comp.Metric)
		if ok {
			earned = scoreComponent(comp, value)
		} else {
			breakdown.DataComplete = false
			breakdown.MissingMetrics = append(breakdown.MissingMetrics, comp.Metric)
		}
		breakdown.Components = append(breakdown.Components, models.ComponentScore{
			Name:   comp.Name,
			Metric: comp.Metric,
			Earned: earned,
			Max:    comp.MaxPoints,
		})
		breakdown.TotalScore += earned
	}
	return breakdown, nil
}

// scoreComponent awards the points of the first matching tier. A value
// matching no tier earns the component floor, as does any non-positive
// value when the component floors those outright.
func scoreComponent(comp config.ScoringComponent, value float64) float64 {
	if comp.FloorNonPositive && value <= 0 {
		return comp.Floor
	}
	for _, tier := range comp.Tiers {
		if tier.Matches(value) {
			return tier.Points
		}
	}
	return comp.Floor
}
