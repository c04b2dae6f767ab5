package series

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Rolling window statistics over a plain numeric sequence.
//
// Trailing windows cover xs[i-width+1 .. i]. An index whose window would
// extend past the start of the series yields NaN: the statistic is undefined
// there, and callers must treat NaN as "cannot flag", never as a failure.
// All variance/stddev figures use the unbiased sample formula.

// RollingVariance returns the sample variance of the trailing window of the
// given width at each index.
func RollingVariance(xs []float64, width int) []float64 {
	return rollingStat(xs, width, stats.SampleVariance)
}

// RollingStdDev returns the sample standard deviation of the trailing window
// of the given width at each index.
func RollingStdDev(xs []float64, width int) []float64 {
	return rollingStat(xs, width, stats.StandardDeviationSample)
}

// RollingMax returns the maximum of the trailing window at each index.
func RollingMax(xs []float64, width int) []float64 {
	return rollingStat(xs, width, stats.Max)
}

// RollingMin returns the minimum of the trailing window at each index.
func RollingMin(xs []float64, width int) []float64 {
	return rollingStat(xs, width, stats.Min)
}

func rollingStat(xs []float64, width int, fn func(stats.Float64Data) (float64, error)) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if i < width-1 {
			out[i] = math.NaN()
			continue
		}
		v, err := fn(xs[i-width+1 : i+1])
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = v
	}
	return out
}

// CenteredMax returns, for each index, the maximum over the centered window
// xs[i-half .. i+half]. Windows are truncated at the series boundaries, so the
// result is defined everywhere: a missing neighbor simply contributes nothing.
func CenteredMax(xs []float64, half int) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi > len(xs)-1 {
			hi = len(xs) - 1
		}
		m := xs[lo]
		for j := lo + 1; j <= hi; j++ {
			if xs[j] > m {
				m = xs[j]
			}
		}
		out[i] = m
	}
	return out
}
