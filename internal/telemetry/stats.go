package telemetry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func nan() float64 { return math.NaN() }
func inf(sign int) float64 { return math.Inf(sign) }

// Summary holds descriptive statistics for one series.
type Summary struct {
	Count int
	Mean  float64
	Std   float64 // sample standard deviation (n-1)
	Min   float64
	Max   float64
}

// Summarize computes count, mean, sample std, min and max of the non-NaN
// values in xs. An empty series yields NaN everywhere; a single value has
// NaN std.
func Summarize(xs []float64) Summary {
	if floats.HasNaN(xs) {
		xs = dropNaN(xs)
	}
	s := Summary{Count: len(xs), Mean: nan(), Std: nan(), Min: nan(), Max: nan()}
	if len(xs) == 0 {
		return s
	}
	s.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		s.Std = stat.StdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	return s
}

// RollingMean returns the trailing mean over window values. The first
// window-1 positions are NaN, as is any window that contains a NaN.
func RollingMean(xs []float64, window int) []float64 {
	return rolling(xs, window, func(w []float64) float64 {
		return stat.Mean(w, nil)
	})
}

// RollingMax returns the trailing maximum over window values.
func RollingMax(xs []float64, window int) []float64 {
	return rolling(xs, window, floats.Max)
}

// RollingMin returns the trailing minimum over window values.
func RollingMin(xs []float64, window int) []float64 {
	return rolling(xs, window, floats.Min)
}

// Spread returns RollingMax - RollingMin for the given window.
func Spread(xs []float64, window int) []float64 {
	hi := RollingMax(xs, window)
	lo := RollingMin(xs, window)
	out := make([]float64, len(xs))
	floats.SubTo(out, hi, lo)
	return out
}

// ExpandingMean returns the cumulative mean of xs, skipping NaN values.
// Positions before the first finite value are NaN.
func ExpandingMean(xs []float64) []float64 {
	out := make([]float64, len(xs))
	sum := 0.0
	n := 0
	for i, v := range xs {
		if !math.IsNaN(v) {
			sum += v
			n++
		}
		if n == 0 {
			out[i] = nan()
			continue
		}
		out[i] = sum / float64(n)
	}
	return out
}

func rolling(xs []float64, window int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		if window <= 0 || i < window-1 {
			out[i] = nan()
			continue
		}
		w := xs[i-window+1 : i+1]
		if floats.HasNaN(w) {
			out[i] = nan()
			continue
		}
		out[i] = fn(w)
	}
	return out
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
