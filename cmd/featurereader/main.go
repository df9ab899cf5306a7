// Command featurereader loads a feature table and prints a per-feature summary to the
// terminal, or as JSON with -json.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iafilius/featureflux/src/analysis"
	"github.com/iafilius/featureflux/src/logging"
	"github.com/iafilius/featureflux/src/table"
)

func main() {
	var file string
	var asJSON bool
	var logLevel string
	flag.StringVar(&file, "file", "", "Path to the feature table (.tsv); may also be given as the first argument")
	flag.BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flag.Parse()
	if file == "" && flag.NArg() > 0 {
		file = flag.Arg(0)
	}
	if file == "" {
		flag.Usage()
		os.Exit(2)
	}
	logging.SetLogLevel(logLevel)
	defer logging.Sync()

	if err := run(os.Stdout, file, asJSON); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, file string, asJSON bool) error {
	tbl, err := table.Load(file)
	if err != nil {
		return err
	}
	res, err := analysis.Summarize(tbl, analysis.GistRainbow)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newReport(tbl, res))
	}
	_, err = fmt.Fprintln(w, renderSummary(tbl, res))
	return err
}
