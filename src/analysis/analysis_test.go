package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iafilius/featureflux/src/table"
)

func mkTable(groups map[int][]float64) *table.Table {
	tbl := &table.Table{Groups: map[int]*table.Group{}}
	base := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	for id, dists := range groups {
		g := &table.Group{ID: id}
		for i, d := range dists {
			g.Times = append(g.Times, base.AddDate(i, 0, 0))
			g.Values = append(g.Values, float64(10*(i+1)))
			g.Distances = append(g.Distances, d)
		}
		tbl.Groups[id] = g
	}
	return tbl
}

func TestMeanOrderIndependent(t *testing.T) {
	a := Mean([]float64{1, 2, 3, 10})
	b := Mean([]float64{10, 3, 1, 2})
	if a != b || a != 4 {
		t.Fatalf("mean mismatch: %v vs %v", a, b)
	}
	if !math.IsNaN(Mean(nil)) {
		t.Fatalf("expected NaN for empty input")
	}
}

func TestSummarize_IntensityScenario(t *testing.T) {
	tbl := mkTable(map[int][]float64{
		1: {0.5, 1.5},      // mean 1.0
		2: {3.0, 2.0, 4.0}, // mean 3.0
	})
	res, err := Summarize(tbl, GistRainbow)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(res.Features) != 2 || res.Features[0].ID != 1 || res.Features[1].ID != 2 {
		t.Fatalf("unexpected feature order: %+v", res.Features)
	}
	near, far := res.Features[0], res.Features[1]
	if near.MeanDistance != 1.0 || far.MeanDistance != 3.0 {
		t.Fatalf("mean distances: %v %v", near.MeanDistance, far.MeanDistance)
	}
	if !(near.Intensity > far.Intensity) {
		t.Fatalf("nearer feature must be more intense: %v <= %v", near.Intensity, far.Intensity)
	}
	if near.Intensity != 1 || far.Intensity != 0 {
		t.Fatalf("expected extremes 1 and 0, got %v and %v", near.Intensity, far.Intensity)
	}
	if near.Rows != 2 || far.Rows != 3 {
		t.Fatalf("row counts: %d %d", near.Rows, far.Rows)
	}
	if far.First.Year() != 2010 || far.Last.Year() != 2012 {
		t.Fatalf("epoch span: %v..%v", far.First, far.Last)
	}
	if far.MinValue != 10 || far.MaxValue != 30 || far.MeanValue != 20 {
		t.Fatalf("flux stats: %+v", far)
	}
	if !strings.HasPrefix(near.Color, "#") || near.Color == far.Color {
		t.Fatalf("colors should be distinct hex: %q %q", near.Color, far.Color)
	}
}

func TestIntensityStrictlyDecreasing(t *testing.T) {
	sc, err := NewScale([]float64{0.2, 5.7, 1.1, 3.3}, GistRainbow)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	prev := math.Inf(1)
	for _, d := range []float64{0.2, 0.5, 1.1, 2.0, 3.3, 4.9, 5.7} {
		in := sc.Intensity(d)
		if !(in < prev) {
			t.Fatalf("intensity not strictly decreasing at d=%v: %v >= %v", d, in, prev)
		}
		if in < 0 || in > 1 {
			t.Fatalf("intensity out of range at d=%v: %v", d, in)
		}
		prev = in
	}
}

func TestNewScale_Errors(t *testing.T) {
	if _, err := NewScale(nil, GistRainbow); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("expected ErrNoGroups, got %v", err)
	}
	if _, err := NewScale([]float64{2.5, 2.5}, GistRainbow); !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
	if _, err := Summarize(mkTable(map[int][]float64{9: {1, 3}}), GistRainbow); !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("single group must be degenerate, got %v", err)
	}
	if _, err := Summarize(mkTable(nil), GistRainbow); !errors.Is(err, ErrNoGroups) {
		t.Fatalf("empty table must report ErrNoGroups, got %v", err)
	}
}

func TestScaleColorMatchesGradient(t *testing.T) {
	sc, _ := NewScale([]float64{1, 3}, GistRainbow)
	if sc.Color(3).Hex() != GistRainbow.At(0).Hex() {
		t.Fatalf("farthest feature must take the gradient start")
	}
	if sc.Color(1).Hex() != GistRainbow.At(1).Hex() {
		t.Fatalf("nearest feature must take the gradient end")
	}
}
