package models

// PeerMetrics holds the comparable metrics for one company in a peer
// group. Margin, growth, and return figures are percentages; a zero
// means the metric is unavailable.
type PeerMetrics struct {
	Ticker        string  `json:"ticker"`
	Score         float64 `json:"score"`
	PERatio       float64 `json:"pe_ratio"`
	ROE           float64 `json:"roe"`
	RevenueGrowth float64 `json:"revenue_growth"`
	ProfitMargin  float64 `json:"profit_margin"`
}

// RankedPeer carries a peer's metrics together with its group ranks and
// percentiles. Ranks start at 1 for the best value; tied values share
// the best rank of the tie.
type RankedPeer struct {
	PeerMetrics
	ScoreRank        int     `json:"score_rank"`
	PERank           int     `json:"pe_rank"`
	ROERank          int     `json:"roe_rank"`
	GrowthRank       int     `json:"growth_rank"`
	OverallRank      int     `json:"overall_rank"`
	ScorePercentile  float64 `json:"score_percentile"`
	PEPercentile     float64 `json:"pe_percentile"`
	ROEPercentile    float64 `json:"roe_percentile"`
	GrowthPercentile float64 `json:"growth_percentile"`
	MarginPercentile float64 `json:"margin_percentile"`
}

// PeerComparison ranks a target company inside its peer group
type PeerComparison struct {
	Target     string       `json:"target"`
	Peers      []RankedPeer `json:"peers"`
	Position   int          `json:"position"`
	TotalPeers int          `json:"total_peers"`
	Percentile float64      `json:"percentile"`
	BetterThan string       `json:"better_than"`
}
