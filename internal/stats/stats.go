// Package stats provides the scalar statistics shared by the analytics
// engines. All spread measures use the sample (n-1) convention.
package stats

import "math"

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// SampleCovariance returns the sample covariance of the paired values in
// xs and ys. Fewer than two pairs, or mismatched lengths, yield 0.
func SampleCovariance(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sum float64
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(n-1)
}

// SampleVariance returns the sample variance of xs, computed as the
// covariance of xs with itself.
func SampleVariance(xs []float64) float64 {
	return SampleCovariance(xs, xs)
}

// SampleStdDev returns the sample standard deviation of xs.
func SampleStdDev(xs []float64) float64 {
	return math.Sqrt(SampleVariance(xs))
}

// Quantile returns the linearly interpolated q-quantile of sorted, which
// must be in ascending order. q is clamped to [0, 1].
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if q <= 0 || n == 1 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	rank := q * float64(n-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// Pearson returns the correlation coefficient of the paired values in xs
// and ys. ok is false when either side has zero variance or there are
// fewer than two pairs.
func Pearson(xs, ys []float64) (r float64, ok bool) {
	vx := SampleVariance(xs)
	vy := SampleVariance(ys)
	if vx == 0 || vy == 0 {
		return 0, false
	}
	return SampleCovariance(xs, ys) / math.Sqrt(vx*vy), true
}
