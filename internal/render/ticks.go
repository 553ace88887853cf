package render

import "math"

// NiceTicks returns round tick values covering [lo, hi], at most about
// maxTicks of them.
func NiceTicks(lo, hi float64, maxTicks int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	if hi <= lo || maxTicks < 2 {
		return []float64{lo}
	}
	span := niceNum(hi-lo, false)
	step := niceNum(span/float64(maxTicks-1), true)
	start := math.Ceil(lo/step) * step
	var out []float64
	for v := start; v <= hi+step*1e-9; v += step {
		// snap away accumulated error so labels stay short
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func niceNum(x float64, round bool) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}
