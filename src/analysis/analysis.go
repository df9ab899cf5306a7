// Package analysis computes per-feature statistics from a loaded table and the colour
// scale that encodes each feature's mean separation from the core.
package analysis

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/iafilius/featureflux/src/table"
)

// FeatureSummary captures aggregate metrics for one feature group.
type FeatureSummary struct {
	ID           int       `json:"feature"`
	Rows         int       `json:"rows"`
	MeanDistance float64   `json:"mean_distance_mas"`
	Intensity    float64   `json:"intensity"`
	Color        string    `json:"color"`
	First        time.Time `json:"first_epoch"`
	Last         time.Time `json:"last_epoch"`
	MinValue     float64   `json:"min_flux_mjy"`
	MaxValue     float64   `json:"max_flux_mjy"`
	MeanValue    float64   `json:"mean_flux_mjy"`
}

// Result bundles the summaries, in ascending feature id, with the scale used to colour them.
type Result struct {
	Features []FeatureSummary
	Scale    *Scale
}

// ColorOf returns the draw colour of a summary.
func (r *Result) ColorOf(f FeatureSummary) colorful.Color {
	return r.Scale.Color(f.MeanDistance)
}

// Mean returns the arithmetic mean of xs, NaN when empty.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// MeanDistances returns the mean distance of every group keyed by id.
func MeanDistances(tbl *table.Table) map[int]float64 {
	out := make(map[int]float64, len(tbl.Groups))
	for id, g := range tbl.Groups {
		out[id] = Mean(g.Distances)
	}
	return out
}

// Summarize computes the per-feature summaries and colour scale for tbl.
// It fails with ErrNoGroups or ErrDegenerateRange when no usable scale exists.
func Summarize(tbl *table.Table, g Gradient) (*Result, error) {
	means := MeanDistances(tbl)
	ids := tbl.IDs()
	vals := make([]float64, 0, len(ids))
	for _, id := range ids {
		vals = append(vals, means[id])
	}
	sc, err := NewScale(vals, g)
	if err != nil {
		return nil, err
	}
	res := &Result{Scale: sc, Features: make([]FeatureSummary, 0, len(ids))}
	for _, id := range ids {
		grp := tbl.Groups[id]
		fs := FeatureSummary{
			ID:           id,
			Rows:         grp.Len(),
			MeanDistance: means[id],
			Intensity:    sc.Intensity(means[id]),
			Color:        sc.Color(means[id]).Hex(),
			MinValue:     math.Inf(1),
			MaxValue:     math.Inf(-1),
			MeanValue:    Mean(grp.Values),
		}
		for i, t := range grp.Times {
			if fs.First.IsZero() || t.Before(fs.First) {
				fs.First = t
			}
			if t.After(fs.Last) {
				fs.Last = t
			}
			v := grp.Values[i]
			if v < fs.MinValue {
				fs.MinValue = v
			}
			if v > fs.MaxValue {
				fs.MaxValue = v
			}
		}
		res.Features = append(res.Features, fs)
	}
	return res, nil
}
