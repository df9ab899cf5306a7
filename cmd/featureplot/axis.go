package main

import (
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/iafilius/featureflux/cmd/featureplot/uihelpers"
)

// niceAxisBounds expands [min,max] by a small margin and rounds to "nice" numbers for readability.
func niceAxisBounds(min, max float64) (float64, float64) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return min, max
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	pad := span * 0.05
	a := min - pad
	b := max + pad
	mag := math.Pow(10, math.Floor(math.Log10(span)))
	if !math.IsInf(mag, 0) && mag > 0 {
		a = math.Floor(a/mag) * mag
		b = math.Ceil(b/mag) * mag
	}
	return a, b
}

// niceTicks maps numeric tick positions inside [min,max] to labelled chart ticks.
func niceTicks(min, max float64, n int) []chart.Tick {
	var ticks []chart.Tick
	for _, v := range uihelpers.BuildNumericTicks(min, max, n) {
		if v < min-1e-9 || v > max+1e-9 {
			continue
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: uihelpers.FormatNumericTick(v)})
	}
	return ticks
}

// pickTimeStep selects a readable step and label format for spans too short for yearly ticks.
func pickTimeStep(span time.Duration) (time.Duration, string) {
	switch {
	case span <= 2*24*time.Hour:
		return 6 * time.Hour, "Jan 2 15:04"
	case span <= 14*24*time.Hour:
		return 24 * time.Hour, "Jan 2"
	case span <= 90*24*time.Hour:
		return 7 * 24 * time.Hour, "Jan 2"
	default:
		return 30 * 24 * time.Hour, "Jan 2006"
	}
}

// makeNiceTimeTicks returns rounded ticks between min and max at the given step with labels.
func makeNiceTimeTicks(minT, maxT time.Time, step time.Duration, labelFmt string) []chart.Tick {
	if step <= 0 {
		return nil
	}
	st := int64(step.Seconds())
	if st <= 0 {
		st = 1
	}
	s := minT.UTC().Unix()
	aligned := time.Unix((s/st)*st, 0).UTC()
	ticks := []chart.Tick{}
	for t := aligned; !t.After(maxT.UTC().Add(step)); t = t.Add(step) {
		ticks = append(ticks, chart.Tick{Value: float64(chart.TimeToFloat64(t)), Label: t.Format(labelFmt)})
		if len(ticks) > 20 { // keep it readable
			break
		}
	}
	return ticks
}

// buildTimeAxis constructs the epoch axis spanning [minT,maxT]. Spans over two years get
// calendar-year ticks, shorter spans fall back to day/week/month ticks.
func buildTimeAxis(minT, maxT time.Time, name string) chart.XAxis {
	if !maxT.After(minT) {
		maxT = minT.Add(24 * time.Hour)
	}
	span := maxT.Sub(minT)
	pad := span / 50
	lo, hi := minT.Add(-pad), maxT.Add(pad)

	var ticks []chart.Tick
	if span > 2*365*24*time.Hour {
		years := uihelpers.BuildYearTicks(lo.Year(), hi.Year()+1, 12)
		for _, y := range years {
			t := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
			ticks = append(ticks, chart.Tick{Value: float64(chart.TimeToFloat64(t)), Label: t.Format("2006")})
		}
		lo = minTime(lo, time.Date(years[0], time.January, 1, 0, 0, 0, 0, time.UTC))
		hi = maxTime(hi, time.Date(years[len(years)-1], time.January, 1, 0, 0, 0, 0, time.UTC))
	} else {
		step, labFmt := pickTimeStep(span)
		ticks = makeNiceTimeTicks(lo, hi, step, labFmt)
	}
	return chart.XAxis{
		Name:           name,
		Ticks:          ticks,
		Range:          &chart.ContinuousRange{Min: float64(chart.TimeToFloat64(lo)), Max: float64(chart.TimeToFloat64(hi))},
		GridMajorStyle: gridStyle(),
	}
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
