package main

import (
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iafilius/featureflux/src/analysis"
	"github.com/iafilius/featureflux/src/config"
)

// writeFeatureTable writes a header plus one 12-column row per entry of rows
// (id, epoch, flux, distance).
func writeFeatureTable(t *testing.T, rows [][4]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#RESOURCE=yCat\n#Name\tFeature\tEpoch\n---\t---\t---\n")
	for _, r := range rows {
		f := []string{"1730-130", "U", r[0], "x", r[1], r[2], r[3], "x", "x", "x", "x", "x"}
		b.WriteString(strings.Join(f, "\t"))
		b.WriteByte('\n')
	}
	path := filepath.Join(t.TempDir(), "asu.tsv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write table: %v", err)
	}
	return path
}

var sampleRows = [][4]string{
	{"1", "2009-03-25", "512.0", "0.21"},
	{"1", "2011-05-26", "430.5", "0.25"},
	{"2", "2012-11-02", "120.4", "1.40"},
	{"2", "2014-01-25", "98.1", "1.62"},
	{"2", "2016-06-09", "60.2", "1.95"},
	{"3", "2017-04-30", "12.0", "3.80"},
}

func testConfig(file, out string) *config.Config {
	return &config.Config{
		File:          file,
		Out:           out,
		Headless:      true,
		Width:         1100,
		Height:        700,
		Title:         "1730-130 features",
		ReferenceDate: time.Date(2016, 1, 28, 0, 0, 0, 0, time.UTC),
		LogLevel:      "info",
	}
}

func TestRun_HeadlessWritesPNG(t *testing.T) {
	in := writeFeatureTable(t, sampleRows)
	out := filepath.Join(t.TempDir(), "plots", "features.png")

	img, err := run(testConfig(in, out))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if img.Bounds().Dx() != 1100 || img.Bounds().Dy() != 700 {
		t.Fatalf("unexpected figure size %v", img.Bounds())
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	dec, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if dec.Bounds() != img.Bounds() {
		t.Fatalf("written PNG bounds %v, rendered %v", dec.Bounds(), img.Bounds())
	}
}

func TestRun_FatalConditions(t *testing.T) {
	empty := writeFeatureTable(t, [][4]string{{"1", "2010-01-01", "1", "abc"}})
	if _, err := run(testConfig(empty, "")); !errors.Is(err, analysis.ErrNoGroups) {
		t.Fatalf("expected ErrNoGroups, got %v", err)
	}
	same := writeFeatureTable(t, [][4]string{
		{"1", "2010-01-01", "1", "0.5"},
		{"2", "2011-01-01", "2", "0.5"},
	})
	if _, err := run(testConfig(same, "")); !errors.Is(err, analysis.ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
	if _, err := run(testConfig(filepath.Join(t.TempDir(), "missing.tsv"), "")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
