package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/featureflux/src/analysis"
	"github.com/iafilius/featureflux/src/table"
)

const header = "#RESOURCE=yCat\n#Name\tFeature\tEpoch\n---\t---\t---\n"

func row(id, epoch, flux, dist string) string {
	return strings.Join([]string{"1730-130", "U", id, "x", epoch, flux, dist, "x", "x", "x", "x", "x"}, "\t") + "\n"
}

func writeTable(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "asu.tsv")
	require.NoError(t, os.WriteFile(p, []byte(header+body), 0o644))
	return p
}

func sampleBody() string {
	return row("2", "2012-11-02", "120.4", "1.5") +
		row("1", "2009-03-25", "512.0", "0.2") +
		row("2", "2014-01-25", "98.1", "1.7") +
		"short\tline\n" +
		row("3", "2017-04-30", "12.0", "abc") +
		row("3", "2018-04-30", "11.0", "3.8") +
		"also\tshort\n"
}

func TestRenderSummary(t *testing.T) {
	tbl, err := table.Load(writeTable(t, sampleBody()))
	require.NoError(t, err)
	res, err := analysis.Summarize(tbl, analysis.GistRainbow)
	require.NoError(t, err)

	out := renderSummary(tbl, res)
	assert.Contains(t, out, "3 features, 4 rows from 7 lines")
	for _, h := range columns {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "2009-03-25")
	assert.Contains(t, out, "0.200")
	assert.Contains(t, out, "Skipped 3 rows:")
	assert.Contains(t, out, "not enough columns: 2")
	assert.Contains(t, out, "invalid distance value: 1")
	assert.Less(t, strings.Index(out, "not enough columns"), strings.Index(out, "invalid distance value"))
}

func TestSkipLinesOrdering(t *testing.T) {
	got := skipLines(map[table.SkipReason]int{
		table.ReasonInvalidValue:     1,
		table.ReasonTooFewColumns:    4,
		table.ReasonInvalidTimestamp: 1,
	})
	assert.Equal(t, []string{"not enough columns: 4", "invalid timestamp: 1", "invalid value: 1"}, got)
	assert.Empty(t, skipLines(nil))
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf, writeTable(t, sampleBody()), true))

	var rep struct {
		Lines    int                       `json:"lines"`
		Rows     int                       `json:"rows"`
		Features []analysis.FeatureSummary `json:"features"`
		Skipped  map[string]int            `json:"skipped"`
		Scale    scaleRange                `json:"scale"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, 7, rep.Lines)
	assert.Equal(t, 4, rep.Rows)
	require.Len(t, rep.Features, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{rep.Features[0].ID, rep.Features[1].ID, rep.Features[2].ID})
	assert.InDelta(t, 1.0, rep.Features[0].Intensity, 1e-12)
	assert.InDelta(t, 0.0, rep.Features[2].Intensity, 1e-12)
	assert.Equal(t, 2, rep.Skipped["not enough columns"])
	assert.InDelta(t, 0.2, rep.Scale.Min, 1e-12)
	assert.InDelta(t, 3.8, rep.Scale.Max, 1e-12)
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, writeTable(t, row("1", "2010-01-01", "1", "0.5")), false)
	require.ErrorIs(t, err, analysis.ErrDegenerateRange)
	assert.Empty(t, buf.String())
}
