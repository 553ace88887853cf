package heatmap

import (
	"math"
	"strconv"
)

// formatTick prints v with just enough decimals to tell the ticks apart.
func formatTick(v float64, ticks []float64) string {
	decimals := 0
	if len(ticks) > 1 {
		step := math.Abs(ticks[1] - ticks[0])
		if step > 0 && step < 1 {
			decimals = int(math.Ceil(-math.Log10(step)))
		}
	} else if v != math.Trunc(v) {
		decimals = 2
	}
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
