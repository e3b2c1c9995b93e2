package config

import (
	"fmt"
	"math"

	"equity-analytics/models"
)

// ScoringTier awards Points when a metric value satisfies every bound
// set on the tier. Unset bounds do not constrain.
type ScoringTier struct {
	Points float64  `yaml:"points"`
	GT     *float64 `yaml:"gt,omitempty"`
	GTE    *float64 `yaml:"gte,omitempty"`
	LT     *float64 `yaml:"lt,omitempty"`
	LTE    *float64 `yaml:"lte,omitempty"`
}

// Matches reports whether value satisfies every bound set on the tier.
func (t ScoringTier) Matches(value float64) bool {
	if t.GT != nil && !(value > *t.GT) {
		return false
	}
	if t.GTE != nil && !(value >= *t.GTE) {
		return false
	}
	if t.LT != nil && !(value < *t.LT) {
		return false
	}
	if t.LTE != nil && !(value <= *t.LTE) {
		return false
	}
	return true
}

// ScoringComponent scores one snapshot metric. Tiers are evaluated in
// order and the first match wins; a value matching no tier earns Floor.
// With FloorNonPositive set, non-positive values skip the tiers and go
// straight to Floor.
type ScoringComponent struct {
	Name             string        `yaml:"name"`
	Metric           string        `yaml:"metric"`
	MaxPoints        float64       `yaml:"max_points"`
	Floor            float64       `yaml:"floor"`
	FloorNonPositive bool          `yaml:"floor_non_positive,omitempty"`
	Tiers            []ScoringTier `yaml:"tiers"`
}

// ScoringTable holds the components of the composite fundamental score
type ScoringTable struct {
	Components []ScoringComponent `yaml:"components"`
}

// MaxTotal returns the sum of component maximums.
func (t ScoringTable) MaxTotal() float64 {
	var sum float64
	for _, c := range t.Components {
		sum += c.MaxPoints
	}
	return sum
}

// Validate checks that the table sums to 100 points and every component
// references a known snapshot metric with coherent tier points.
func (t ScoringTable) Validate() error {
	if len(t.Components) == 0 {
		return fmt.Errorf("scoring table has no components")
	}
	if total := t.MaxTotal(); math.Abs(total-100) > 1e-9 {
		return fmt.Errorf("scoring component maximums must sum to 100, got %.2f", total)
	}
	for _, c := range t.Components {
		if c.Name == "" {
			return fmt.Errorf("scoring component for metric %q has no name", c.Metric)
		}
		if !models.KnownMetric(c.Metric) {
			return fmt.Errorf("scoring component %q references unknown metric %q", c.Name, c.Metric)
		}
		if c.MaxPoints <= 0 {
			return fmt.Errorf("scoring component %q max_points must be positive, got %.2f", c.Name, c.MaxPoints)
		}
		if c.Floor < 0 || c.Floor > c.MaxPoints {
			return fmt.Errorf("scoring component %q floor %.2f must be within [0, %.2f]", c.Name, c.Floor, c.MaxPoints)
		}
		for _, tier := range c.Tiers {
			if tier.Points < 0 || tier.Points > c.MaxPoints {
				return fmt.Errorf("scoring component %q tier points %.2f must be within [0, %.2f]",
					c.Name, tier.Points, c.MaxPoints)
			}
		}
	}
	return nil
}

// DefaultScoringTable returns the built-in five component table:
// profitability, returns, cash generation, valuation, and growth.
func DefaultScoringTable() ScoringTable {
	return ScoringTable{
		Components: []ScoringComponent{
			{
				Name:      "Profitability",
				Metric:    models.MetricGrossMargin,
				MaxPoints: 25,
				Floor:     5,
				Tiers: []ScoringTier{
					{Points: 25, GT: floatPtr(60)},
					{Points: 15, GT: floatPtr(40)},
					{Points: 10, GT: floatPtr(20)},
				},
			},
			{
				Name:      "Returns",
				Metric:    models.MetricROE,
				MaxPoints: 20,
				Floor:     5,
				Tiers: []ScoringTier{
					{Points: 20, GT: floatPtr(20)},
					{Points: 15, GT: floatPtr(15)},
					{Points: 10, GT: floatPtr(10)},
				},
			},
			{
				Name:      "Cash Generation",
				Metric:    models.MetricFCFMargin,
				MaxPoints: 20,
				Floor:     5,
				Tiers: []ScoringTier{
					{Points: 20, GT: floatPtr(15)},
					{Points: 15, GT: floatPtr(10)},
					{Points: 10, GT: floatPtr(5)},
				},
			},
			{
				Name:             "Valuation",
				Metric:           models.MetricPERatio,
				MaxPoints:        20,
				Floor:            5,
				FloorNonPositive: true,
				Tiers: []ScoringTier{
					{Points: 20, GT: floatPtr(10), LT: floatPtr(25)},
					{Points: 15, GT: floatPtr(5), LT: floatPtr(35)},
					{Points: 10, GTE: floatPtr(35), LT: floatPtr(50)},
				},
			},
			{
				Name:      "Growth",
				Metric:    models.MetricRevenueGrowth,
				MaxPoints: 15,
				Floor:     0,
				Tiers: []ScoringTier{
					{Points: 15, GT: floatPtr(20)},
					{Points: 10, GT: floatPtr(10)},
					{Points: 5, GT: floatPtr(0)},
				},
			},
		},
	}
}

func floatPtr(v float64) *float64 { return &v }
