package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies the width/height clamp rules used for the plot.
// A non-positive height is derived from the width (~0.62 aspect).
func ComputeChartDimensions(rawW, rawH int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	if w > 4096 {
		w = 4096
	}
	h := rawH
	if h <= 0 {
		h = int(float32(w) * 0.62)
	}
	if h < 360 {
		h = 360
	}
	if h > 2160 {
		h = 2160
	}
	return w, h
}

// ColorbarStrip returns the width in pixels reserved right of the chart for the colour bar.
// Roughly a tenth of the total width, clamped between 96 and 160.
func ColorbarStrip(totalW int) int {
	s := totalW / 10
	if s < 96 {
		s = 96
	}
	if s > 160 {
		s = 160
	}
	return s
}

// BuildYearTicks returns calendar years between firstYear and lastYear (inclusive, widened
// to step boundaries) using a 1,2,5,10 * 10^k step so that at most n ticks are produced.
func BuildYearTicks(firstYear, lastYear, n int) []int {
	if n < 2 {
		n = 2
	}
	if lastYear < firstYear {
		firstYear, lastYear = lastYear, firstYear
	}
	span := lastYear - firstYear
	step := 1
	for _, mag := range []int{1, 10, 100, 1000} {
		found := false
		for _, c := range []int{1, 2, 5} {
			if span/(c*mag)+1 <= n {
				step = c * mag
				found = true
				break
			}
		}
		if found {
			break
		}
		step = 10 * mag
	}
	start := floorDiv(firstYear, step) * step
	end := -floorDiv(-lastYear, step) * step
	var out []int
	for y := start; y <= end; y += step {
		out = append(out, y)
	}
	if len(out) < 2 {
		out = append(out, start+step)
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// pow10Floor returns 10^floor(log10(x)) safeguarding tiny values.
func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(x)))
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using a 1,2,2.5,5 pattern.
// Returns raw numeric positions; label formatting is left to the caller.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := pow10Floor(span / float64(n-1))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick provides a compact axis label.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av == 0:
		return "0"
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}
