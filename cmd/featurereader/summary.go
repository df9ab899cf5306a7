package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iafilius/featureflux/src/analysis"
	"github.com/iafilius/featureflux/src/table"
)

const (
	headerFGColor = "#e0e0e0"
	mutedFGColor  = "245"
	warnFGColor   = "3"
	swatch        = "      "
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(headerFGColor)).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numStyle    = cellStyle.Align(lipgloss.Right)
	tableStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedFGColor))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(warnFGColor))
)

var columns = []string{"Feature", "Rows", "First epoch", "Last epoch", "Mean sep, mas", "Intensity", "Flux, mJy", "Color"}

// scaleRange is the mean-separation range the colours are normalised over.
type scaleRange struct {
	Min float64 `json:"min_mas"`
	Max float64 `json:"max_mas"`
}

// report is the JSON form of a summary.
type report struct {
	Lines    int                       `json:"lines"`
	Rows     int                       `json:"rows"`
	Features []analysis.FeatureSummary `json:"features"`
	Skipped  map[table.SkipReason]int  `json:"skipped,omitempty"`
	Scale    scaleRange                `json:"scale"`
}

func newReport(tbl *table.Table, res *analysis.Result) report {
	r := report{Lines: tbl.Lines, Rows: tbl.Rows, Features: res.Features}
	if len(tbl.Skipped) > 0 {
		r.Skipped = tbl.SkipCounts()
	}
	r.Scale = scaleRange{Min: res.Scale.Min, Max: res.Scale.Max}
	return r
}

// featureCells formats one summary as table cells, without the colour swatch.
func featureCells(f analysis.FeatureSummary) []string {
	return []string{
		fmt.Sprintf("%d", f.ID),
		fmt.Sprintf("%d", f.Rows),
		f.First.Format("2006-01-02"),
		f.Last.Format("2006-01-02"),
		fmt.Sprintf("%.3f", f.MeanDistance),
		fmt.Sprintf("%.2f", f.Intensity),
		fmt.Sprintf("%.1f..%.1f", f.MinValue, f.MaxValue),
	}
}

// renderColumn stacks a header and its cells with a shared width.
func renderColumn(header string, cells []string, style lipgloss.Style) string {
	width := lipgloss.Width(header)
	for _, c := range cells {
		width = max(width, lipgloss.Width(c))
	}
	parts := make([]string, 0, len(cells)+1)
	parts = append(parts, headerStyle.Width(width+2).Render(header))
	for _, c := range cells {
		parts = append(parts, style.Width(width+2).Render(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderSummary lays out the feature table, the scale and the skip counts.
func renderSummary(tbl *table.Table, res *analysis.Result) string {
	cells := make([][]string, len(columns)-1)
	var swatches []string
	for _, f := range res.Features {
		for i, c := range featureCells(f) {
			cells[i] = append(cells[i], c)
		}
		swatches = append(swatches, lipgloss.NewStyle().Background(lipgloss.Color(f.Color)).Render(swatch)+" "+f.Color)
	}
	cols := make([]string, 0, len(columns))
	for i, h := range columns[:len(columns)-1] {
		st := numStyle
		if i == 2 || i == 3 {
			st = cellStyle
		}
		cols = append(cols, renderColumn(h, cells[i], st))
	}
	cols = append(cols, renderColumn(columns[len(columns)-1], swatches, cellStyle))

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d features, %d rows from %d lines", len(res.Features), tbl.Rows, tbl.Lines)))
	b.WriteString("\n")
	b.WriteString(tableStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Mean separation from core: %.3f..%.3f mas", res.Scale.Min, res.Scale.Max)))
	if skipped := skipLines(tbl.SkipCounts()); len(skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("Skipped %d rows:", len(tbl.Skipped))))
		for _, l := range skipped {
			b.WriteString("\n  ")
			b.WriteString(l)
		}
	}
	return b.String()
}

// skipLines renders skip counts sorted by descending count, then reason.
func skipLines(counts map[table.SkipReason]int) []string {
	reasons := make([]table.SkipReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if counts[reasons[i]] != counts[reasons[j]] {
			return counts[reasons[i]] > counts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, fmt.Sprintf("%s: %d", r, counts[r]))
	}
	return out
}
