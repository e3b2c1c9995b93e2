// Package peers ranks a company inside its peer group on score,
// valuation, profitability, and growth.
package peers

import (
	"fmt"
	"math"
	"sort"

	"equity-analytics/models"
)

// Compare ranks target against its peer group. Score, ROE, and growth
// rank descending, P/E ascending; companies without a usable P/E rank
// last rather than best. The overall rank weighs score at 0.4 and ROE
// and growth at 0.3 each.
func Compare(target models.PeerMetrics, group []models.PeerMetrics) (*models.PeerComparison, error) {
	all := make([]models.PeerMetrics, 0, len(group)+1)
	all = append(all, target)
	all = append(all, group...)
	if len(all) < 2 {
		return nil, fmt.Errorf("peer comparison needs at least 2 companies, got %d", len(all))
	}

	n := len(all)
	scores := make([]float64, n)
	rawPE := make([]float64, n)
	adjPE := make([]float64, n)
	roes := make([]float64, n)
	growths := make([]float64, n)
	margins := make([]float64, n)
	for i, p := range all {
		scores[i] = p.Score
		rawPE[i] = p.PERatio
		adjPE[i] = peAdj(p.PERatio)
		roes[i] = p.ROE
		growths[i] = p.RevenueGrowth
		margins[i] = p.ProfitMargin
	}

	scoreRanks := rankMin(scores, true)
	peRanks := rankMin(adjPE, false)
	roeRanks := rankMin(roes, true)
	growthRanks := rankMin(growths, true)

	composite := make([]float64, n)
	for i := range all {
		composite[i] = float64(scoreRanks[i])*0.4 + float64(roeRanks[i])*0.3 + float64(growthRanks[i])*0.3
	}
	overall := rankMin(composite, false)

	scorePct := pctRank(scores)
	pePct := pctRank(rawPE)
	roePct := pctRank(roes)
	growthPct := pctRank(growths)
	marginPct := pctRank(margins)

	ranked := make([]models.RankedPeer, n)
	for i, p := range all {
		ranked[i] = models.RankedPeer{
			PeerMetrics:      p,
			ScoreRank:        scoreRanks[i],
			PERank:           peRanks[i],
			ROERank:          roeRanks[i],
			GrowthRank:       growthRanks[i],
			OverallRank:      overall[i],
			ScorePercentile:  scorePct[i],
			PEPercentile:     pePct[i],
			ROEPercentile:    roePct[i],
			GrowthPercentile: growthPct[i],
			MarginPercentile: marginPct[i],
		}
	}
	position := overall[0]
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].OverallRank < ranked[b].OverallRank })

	return &models.PeerComparison{
		Target:     target.Ticker,
		Peers:      ranked,
		Position:   position,
		TotalPeers: n,
		Percentile: float64(n-position+1) / float64(n) * 100,
		BetterThan: fmt.Sprintf("%d of %d peers", n-position, n),
	}, nil
}

// TopN returns the n best ranked companies of a comparison.
func TopN(cmp *models.PeerComparison, n int) []models.RankedPeer {
	if cmp == nil || n <= 0 {
		return nil
	}
	if n > len(cmp.Peers) {
		n = len(cmp.Peers)
	}
	return cmp.Peers[:n]
}

// peAdj substitutes +Inf for a missing or negative P/E so it sorts to
// the worst end of an ascending rank.
func peAdj(pe float64) float64 {
	if pe <= 0 {
		return math.Inf(1)
	}
	return pe
}

// rankMin assigns competition ranks starting at 1 for the best value,
// with ties sharing the best rank of the tie.
func rankMin(values []float64, descending bool) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if descending {
			return values[idx[a]] > values[idx[b]]
		}
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]int, len(values))
	for pos := 0; pos < len(idx); {
		end := pos + 1
		for end < len(idx) && values[idx[end]] == values[idx[pos]] {
			end++
		}
		for k := pos; k < end; k++ {
			ranks[idx[k]] = pos + 1
		}
		pos = end
	}
	return ranks
}

// pctRank returns ascending percentile ranks on a 0 to 100 scale, with
// ties sharing their average rank.
func pctRank(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	out := make([]float64, len(values))
	n := float64(len(values))
	for pos := 0; pos < len(idx); {
		end := pos + 1
		for end < len(idx) && values[idx[end]] == values[idx[pos]] {
			end++
		}
		avg := float64(pos+1+end) / 2
		for k := pos; k < end; k++ {
			out[idx[k]] = avg / n * 100
		}
		pos = end
	}
	return out
}
