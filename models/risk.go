package models

import "time"

// Drawdown describes the deepest peak to trough decline of a cumulative
// return curve. RecoveryDate and RecoveryDays stay nil while the curve
// has not regained its prior peak.
type Drawdown struct {
	Magnitude    float64    `json:"magnitude"`
	PeakDate     time.Time  `json:"peak_date"`
	TroughDate   time.Time  `json:"trough_date"`
	RecoveryDate *time.Time `json:"recovery_date,omitempty"`
	DurationDays int        `json:"duration_days"`
	RecoveryDays *int       `json:"recovery_days,omitempty"`
}

// CorrelationMatrix holds pairwise return correlations for a set of
// tickers. Cells is square and symmetric with a unit diagonal; a pair
// with a zero-variance leg holds an invalid cell.
type CorrelationMatrix struct {
	Tickers []string      `json:"tickers"`
	Cells   [][]NullFloat `json:"cells"`
}

// RiskReport holds the risk statistics computed from one daily return
// series. VaR and CVaR are reported as positive loss magnitudes.
type RiskReport struct {
	AnnualizedVolatility float64            `json:"annualized_volatility"`
	VaR95                float64            `json:"var_95"`
	VaR99                float64            `json:"var_99"`
	CVaR95               float64            `json:"cvar_95"`
	Sharpe               NullFloat          `json:"sharpe"`
	Sortino              NullFloat          `json:"sortino"`
	MaxDrawdown          Drawdown           `json:"max_drawdown"`
	Beta                 NullFloat          `json:"beta"`
	Correlations         *CorrelationMatrix `json:"correlations,omitempty"`
	Observations         int                `json:"observations"`
}
