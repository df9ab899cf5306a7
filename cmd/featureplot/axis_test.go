package main

import (
	"math"
	"testing"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

func TestNiceAxisBounds(t *testing.T) {
	lo, hi := niceAxisBounds(12, 512)
	if lo > 12 || hi < 512 {
		t.Fatalf("bounds must contain data: [%v,%v]", lo, hi)
	}
	lo, hi = niceAxisBounds(7, 7)
	if !(lo < 7 && hi > 7) {
		t.Fatalf("degenerate range should widen around value: [%v,%v]", lo, hi)
	}
	lo, _ = niceAxisBounds(math.NaN(), 1)
	if !math.IsNaN(lo) {
		t.Fatalf("NaN should pass through")
	}
}

func TestNiceTicksInsideRange(t *testing.T) {
	ticks := niceTicks(-50, 600, 8)
	if len(ticks) < 2 {
		t.Fatalf("expected ticks, got %v", ticks)
	}
	for _, tk := range ticks {
		if tk.Value < -50 || tk.Value > 600 || tk.Label == "" {
			t.Fatalf("bad tick %+v", tk)
		}
	}
}

func TestBuildTimeAxis_YearTicks(t *testing.T) {
	minT := time.Date(1995, 7, 28, 0, 0, 0, 0, time.UTC)
	maxT := time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)
	xa := buildTimeAxis(minT, maxT, xAxisName)
	if len(xa.Ticks) < 2 {
		t.Fatalf("expected year ticks")
	}
	for _, tk := range xa.Ticks {
		if len(tk.Label) != 4 {
			t.Fatalf("year tick label %q", tk.Label)
		}
	}
	rng := xa.Range.(*chart.ContinuousRange)
	if rng.Min > float64(chart.TimeToFloat64(minT)) || rng.Max < float64(chart.TimeToFloat64(maxT)) {
		t.Fatalf("range must cover the data span")
	}
	if xa.Name != xAxisName {
		t.Fatalf("axis name %q", xa.Name)
	}
}

func TestBuildTimeAxis_ShortSpan(t *testing.T) {
	minT := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	xa := buildTimeAxis(minT, minT, "t")
	rng := xa.Range.(*chart.ContinuousRange)
	if rng.Max <= rng.Min {
		t.Fatalf("single instant must still give a positive range")
	}
	if len(xa.Ticks) == 0 {
		t.Fatalf("expected day ticks")
	}
}

func TestPickTimeStep(t *testing.T) {
	if st, _ := pickTimeStep(10 * time.Hour); st != 6*time.Hour {
		t.Fatalf("short span step %v", st)
	}
	if st, f := pickTimeStep(400 * 24 * time.Hour); st != 30*24*time.Hour || f != "Jan 2006" {
		t.Fatalf("long span step %v %q", st, f)
	}
}
