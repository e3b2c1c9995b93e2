package engine

import (
	"testing"

	"equity-analytics/config"
	"equity-analytics/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

// perfectSnapshot hits the top tier of every default scoring component.
func perfectSnapshot() *models.FundamentalSnapshot {
	return &models.FundamentalSnapshot{
		GrossMargin:   floatPtr(65),
		ROE:           floatPtr(22),
		FCFMargin:     floatPtr(18),
		PERatio:       floatPtr(18),
		RevenueGrowth: floatPtr(25),
	}
}

func TestComputeScore_TopTiers(t *testing.T) {
	table := config.DefaultScoringTable()
	score, err := ComputeScore("AAPL", perfectSnapshot(), table)
	if err != nil {
		t.Fatalf("ComputeScore returned error: %v", err)
	}

	if score.TotalScore != 100 {
		t.Errorf("expected TotalScore=100, got %v", score.TotalScore)
	}
	if !score.DataComplete {
		t.Error("expected DataComplete=true")
	}
	if len(score.MissingMetrics) != 0 {
		t.Errorf("expected no missing metrics, got %v", score.MissingMetrics)
	}
	if len(score.Components) != len(table.Components) {
		t.Fatalf("expected %d components, got %d", len(table.Components), len(score.Components))
	}
	for _, c := range score.Components {
		if c.Earned != c.Max {
			t.Errorf("component %s earned %v of %v", c.Name, c.Earned, c.Max)
		}
	}
}

func TestComputeScore_MissingMetric(t *testing.T) {
	snapshot := perfectSnapshot()
	snapshot.PERatio = nil

	score, err := ComputeScore("AAPL", snapshot, config.DefaultScoringTable())
	if err != nil {
		t.Fatalf("ComputeScore returned error: %v", err)
	}

	if score.TotalScore != 80 {
		t.Errorf("expected TotalScore=80 without a P/E, got %v", score.TotalScore)
	}
	if score.DataComplete {
		t.Error("expected DataComplete=false when a metric is missing")
	}
	if len(score.MissingMetrics) != 1 || score.MissingMetrics[0] != models.MetricPERatio {
		t.Errorf("expected missing metrics [%s], got %v", models.MetricPERatio, score.MissingMetrics)
	}
	for _, c := range score.Components {
		if c.Metric == models.MetricPERatio && c.Earned != 0 {
			t.Errorf("missing metric component earned %v, want 0", c.Earned)
		}
	}
}

func TestComputeScore_NegativePE(t *testing.T) {
	snapshot := perfectSnapshot()
	snapshot.PERatio = floatPtr(-5)

	score, err := ComputeScore("AAPL", snapshot, config.DefaultScoringTable())
	if err != nil {
		t.Fatalf("ComputeScore returned error: %v", err)
	}

	// Unprofitable companies earn the valuation floor, not a tier.
	if score.TotalScore != 85 {
		t.Errorf("expected TotalScore=85 with a negative P/E, got %v", score.TotalScore)
	}
	if !score.DataComplete {
		t.Error("a present but negative metric is not missing data")
	}
}

func TestComputeScore_NilSnapshot(t *testing.T) {
	table := config.DefaultScoringTable()
	score, err := ComputeScore("AAPL", nil, table)
	if err != nil {
		t.Fatalf("ComputeScore returned error: %v", err)
	}

	if score.TotalScore != 0 {
		t.Errorf("expected TotalScore=0, got %v", score.TotalScore)
	}
	if score.DataComplete {
		t.Error("expected DataComplete=false for a nil snapshot")
	}
	if len(score.MissingMetrics) != len(table.Components) {
		t.Errorf("expected %d missing metrics, got %d", len(table.Components), len(score.MissingMetrics))
	}
}

func TestComputeScore_InvalidTable(t *testing.T) {
	table := config.DefaultScoringTable()
	table.Components = table.Components[:4] // points no longer sum to 100

	if _, err := ComputeScore("AAPL", perfectSnapshot(), table); !IsInvalidInput(err) {
		t.Errorf("expected invalid input for a bad table, got %v", err)
	}
}

func TestScoreComponent_Profitability(t *testing.T) {
	comp := config.DefaultScoringTable().Components[0] // gross margin

	tests := []struct {
		value float64
		want  float64
	}{
		{65, 25},
		{60, 15},
		{41, 15},
		{40, 10},
		{21, 10},
		{20, 5},
		{0, 5},
		{-3, 5},
	}
	for _, tt := range tests {
		if got := scoreComponent(comp, tt.value); got != tt.want {
			t.Errorf("scoreComponent(gross_margin, %v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestScoreComponent_Valuation(t *testing.T) {
	var comp config.ScoringComponent
	for _, c := range config.DefaultScoringTable().Components {
		if c.Metric == models.MetricPERatio {
			comp = c
		}
	}
	if comp.Metric == "" {
		t.Fatal("default table has no P/E component")
	}

	tests := []struct {
		value float64
		want  float64
	}{
		{18, 20},
		{30, 15},
		{35, 10},
		{49, 10},
		{50, 5},
		{0, 5},
		{-5, 5},
	}
	for _, tt := range tests {
		if got := scoreComponent(comp, tt.value); got != tt.want {
			t.Errorf("scoreComponent(pe_ratio, %v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
