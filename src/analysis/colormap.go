package analysis

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stop is one control point of a piecewise-linear gradient.
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Gradient maps [0,1] to a colour by linear RGB interpolation between stops.
// Stops must be sorted by Pos, starting at 0 and ending at 1.
type Gradient []Stop

// GistRainbow reproduces matplotlib's gist_rainbow segment data.
var GistRainbow = Gradient{
	{0.000, colorful.Color{R: 1.00, G: 0.00, B: 0.16}},
	{0.030, colorful.Color{R: 1.00, G: 0.00, B: 0.00}},
	{0.215, colorful.Color{R: 1.00, G: 1.00, B: 0.00}},
	{0.400, colorful.Color{R: 0.00, G: 1.00, B: 0.00}},
	{0.586, colorful.Color{R: 0.00, G: 1.00, B: 1.00}},
	{0.770, colorful.Color{R: 0.00, G: 0.00, B: 1.00}},
	{0.954, colorful.Color{R: 1.00, G: 0.00, B: 1.00}},
	{1.000, colorful.Color{R: 1.00, G: 0.00, B: 0.75}},
}

// At returns the colour at x; x is clamped to [0,1] and NaN maps to 0.
func (g Gradient) At(x float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	if math.IsNaN(x) || x <= g[0].Pos {
		return g[0].Color
	}
	last := g[len(g)-1]
	if x >= last.Pos {
		return last.Color
	}
	i := sort.Search(len(g), func(i int) bool { return g[i].Pos >= x })
	lo, hi := g[i-1], g[i]
	t := (x - lo.Pos) / (hi.Pos - lo.Pos)
	return lo.Color.BlendRgb(hi.Color, t).Clamped()
}
