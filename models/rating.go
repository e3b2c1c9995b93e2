package models

// Rating grades a composite score into an investment stance
type Rating string

const (
	RatingStrongBuy    Rating = "STRONG BUY"
	RatingBuy          Rating = "BUY"
	RatingHold         Rating = "HOLD"
	RatingUnderperform Rating = "UNDERPERFORM"
	RatingSell         Rating = "SELL"
)

// RatingFromScore maps a 0 to 100 composite score onto the rating scale.
func RatingFromScore(score float64) Rating {
	switch {
	case score >= 80:
		return RatingStrongBuy
	case score >= 70:
		return RatingBuy
	case score >= 60:
		return RatingHold
	case score >= 50:
		return RatingUnderperform
	default:
		return RatingSell
	}
}

// Scale returns the rating as a 1 to 5 numeric grade, 5 being strongest.
func (r Rating) Scale() int {
	switch r {
	case RatingStrongBuy:
		return 5
	case RatingBuy:
		return 4
	case RatingHold:
		return 3
	case RatingUnderperform:
		return 2
	default:
		return 1
	}
}

// ScoreTrend describes how a composite score moved between two runs
type ScoreTrend string

const (
	TrendImproving ScoreTrend = "improving"
	TrendDeclining ScoreTrend = "declining"
	TrendStable    ScoreTrend = "stable"
)

// TrendOf classifies the change from a previous score to the current
// one. Moves of five points or less in either direction count as stable.
func TrendOf(current, previous float64) ScoreTrend {
	change := current - previous
	switch {
	case change > 5:
		return TrendImproving
	case change < -5:
		return TrendDeclining
	default:
		return TrendStable
	}
}
