package analysis

import (
	"errors"
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrNoGroups means there is nothing to normalise: no group survived loading.
	ErrNoGroups = errors.New("no data groups found")
	// ErrDegenerateRange means every group has the same mean distance.
	ErrDegenerateRange = errors.New("degenerate distance range")
)

// Scale normalises mean distances to [0,1] and maps them onto a gradient.
// Larger distances get a lower intensity.
type Scale struct {
	Min, Max float64
	Gradient Gradient
}

// NewScale builds a scale spanning the given mean distances.
func NewScale(means []float64, g Gradient) (*Scale, error) {
	if len(means) == 0 {
		return nil, ErrNoGroups
	}
	lo, hi := means[0], means[0]
	for _, m := range means[1:] {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	if hi <= lo {
		return nil, fmt.Errorf("%w: all %d groups have mean distance %g", ErrDegenerateRange, len(means), lo)
	}
	return &Scale{Min: lo, Max: hi, Gradient: g}, nil
}

// Norm maps d linearly so that Min -> 0 and Max -> 1.
func (s *Scale) Norm(d float64) float64 {
	return (d - s.Min) / (s.Max - s.Min)
}

// Intensity is 1 - Norm(d): the group nearest the core gets 1.
func (s *Scale) Intensity(d float64) float64 {
	return 1 - s.Norm(d)
}

// Color is the draw colour of a group with mean distance d. The colour bar uses the
// same mapping, so a line and its bar position always agree.
func (s *Scale) Color(d float64) colorful.Color {
	return s.Gradient.At(s.Intensity(d))
}
