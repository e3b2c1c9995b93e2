package models

// ComponentScore represents one scoring component's contribution
type ComponentScore struct {
	Name   string  `json:"name"`
	Metric string  `json:"metric"`
	Earned float64 `json:"earned"`
	Max    float64 `json:"max"`
}

// ScoreBreakdown holds the composite fundamental score for one ticker
// together with its per-component parts. A component whose metric is
// absent from the snapshot earns nothing, clears DataComplete, and has
// its metric key recorded in MissingMetrics.
type ScoreBreakdown struct {
	Ticker         string           `json:"ticker"`
	TotalScore     float64          `json:"total_score"`
	Components     []ComponentScore `json:"components"`
	DataComplete   bool             `json:"data_complete"`
	MissingMetrics []string         `json:"missing_metrics,omitempty"`
}
