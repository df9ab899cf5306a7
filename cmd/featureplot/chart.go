package main

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/featureflux/cmd/featureplot/uihelpers"
	"github.com/iafilius/featureflux/src/analysis"
	"github.com/iafilius/featureflux/src/logging"
	"github.com/iafilius/featureflux/src/table"
)

const (
	xAxisName     = "Year of observation"
	yAxisName     = "Flux density at 15 GHz, mJy"
	colorbarLabel = "Mean separation from core, mas"
)

// referenceRed is pure red; chart.ColorRed is a theme magenta.
var referenceRed = drawing.Color{R: 255, A: 255}

// plotOptions controls the rendered figure.
type plotOptions struct {
	Title         string
	ReferenceDate time.Time
	Width         int
	Height        int
}

// drawingColor converts a gradient colour to the go-chart colour type.
func drawingColor(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

// lineStyle renders a connected line with point markers in col.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

func referenceStyle() chart.Style {
	return chart.Style{
		StrokeColor:     referenceRed,
		StrokeWidth:     1.5,
		StrokeDashArray: []float64{6, 4},
	}
}

func gridStyle() chart.Style {
	return chart.Style{
		StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
		StrokeWidth: 1,
	}
}

// featureLabel is the legend name of a group.
func featureLabel(id int) string { return fmt.Sprintf("Feature %d", id) }

// buildFeatureChart assembles the chart definition: one series per feature in ascending
// id, coloured by mean separation, plus a dashed vertical marker at the reference date.
func buildFeatureChart(tbl *table.Table, res *analysis.Result, opts plotOptions, width, height int) (chart.Chart, error) {
	if len(res.Features) == 0 {
		return chart.Chart{}, analysis.ErrNoGroups
	}
	series := make([]chart.Series, 0, len(res.Features)+1)
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	minT := opts.ReferenceDate
	maxT := opts.ReferenceDate

	for _, f := range res.Features {
		g, ok := tbl.Groups[f.ID]
		if !ok || g.Len() == 0 {
			return chart.Chart{}, fmt.Errorf("feature %d has no observations", f.ID)
		}
		xs := append([]time.Time(nil), g.Times...)
		ys := append([]float64(nil), g.Values...)
		for i, v := range ys {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
			minT = minTime(minT, xs[i])
			maxT = maxTime(maxT, xs[i])
		}
		st := lineStyle(drawingColor(res.ColorOf(f)))
		if len(xs) == 1 {
			// Pad to two X values for go-chart; emphasize the lone point.
			st.DotWidth = 5
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{Name: featureLabel(f.ID), XValues: xs, YValues: ys, Style: st})
	}

	yMin, yMax := niceAxisBounds(minY, maxY)
	series = append(series, chart.TimeSeries{
		Name:    opts.ReferenceDate.Format("2006-01-02"),
		XValues: []time.Time{opts.ReferenceDate, opts.ReferenceDate},
		YValues: []float64{yMin, yMax},
		Style:   referenceStyle(),
	})

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      buildTimeAxis(minT, maxT, xAxisName),
		YAxis: chart.YAxis{
			Name:           yAxisName,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			Ticks:          niceTicks(yMin, yMax, 8),
			GridMajorStyle: gridStyle(),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

// renderFeatureChart renders the full figure (chart plus colour bar) as an image.
func renderFeatureChart(tbl *table.Table, res *analysis.Result, opts plotOptions) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render")
	totalW, totalH := uihelpers.ComputeChartDimensions(opts.Width, opts.Height)
	strip := uihelpers.ColorbarStrip(totalW)
	ch, err := buildFeatureChart(tbl, res, opts, totalW-strip, totalH)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return attachColorbar(img, res.Scale, colorbarLabel, strip), nil
}
