package main

import (
	"bytes"
	"fmt"
	"image"
	png "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
)

// clock stamps default output names; tests swap in a fake.
var clock = clockwork.NewRealClock()

// resolveOutputPath returns the PNG path for out. When out is an existing directory or
// ends in a path separator, the file is named after the input plus a run timestamp.
func resolveOutputPath(out, input string) string {
	isDir := strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(os.PathSeparator))
	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		isDir = true
	}
	if !isDir {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." {
		base = "features"
	}
	return filepath.Join(out, fmt.Sprintf("%s_%s.png", base, clock.Now().UTC().Format("20060102_150405")))
}

// writePNG encodes img and writes it to path, creating parent directories.
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
