// Package table reads tab-separated feature observation tables and groups their rows
// by feature id.
//
// The layout is fixed: three header lines followed by data rows of at least twelve
// tab-separated fields, of which only the feature id (index 2), epoch (4), flux
// density (5) and core separation (6) are consumed.
package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iafilius/featureflux/src/logging"
)

const (
	HeaderLines = 3
	MinColumns  = 12

	colGroupID  = 2
	colTime     = 4
	colValue    = 5
	colDistance = 6
)

// ErrTruncatedHeader is returned when the input ends before the fixed header does.
var ErrTruncatedHeader = errors.New("input ends before the 3 header lines")

// SkipReason classifies why a data line was not added to any group.
type SkipReason string

const (
	ReasonTooFewColumns    SkipReason = "not enough columns"
	ReasonInvalidGroupID   SkipReason = "invalid group id"
	ReasonInvalidDistance  SkipReason = "invalid distance value"
	ReasonInvalidTimestamp SkipReason = "invalid timestamp"
	ReasonInvalidValue     SkipReason = "invalid value"
)

// Row is one parsed observation.
type Row struct {
	GroupID  int
	Time     time.Time
	Value    float64
	Distance float64
}

// SkippedRow records a rejected data line.
type SkippedRow struct {
	Line   int // 1-based line number in the input, header included
	Raw    string
	Reason SkipReason
	Err    error // underlying parse error; nil for ReasonTooFewColumns
}

func (s SkippedRow) String() string {
	return fmt.Sprintf("Skipping line %d: %s due to %s", s.Line, s.Raw, s.Reason)
}

// Group holds the parallel sequences of one feature, in input order.
type Group struct {
	ID        int
	Times     []time.Time
	Values    []float64
	Distances []float64
}

// Len returns the number of observations in the group.
func (g *Group) Len() int { return len(g.Times) }

func (g *Group) add(r Row) {
	g.Times = append(g.Times, r.Time)
	g.Values = append(g.Values, r.Value)
	g.Distances = append(g.Distances, r.Distance)
}

// Table is the result of one load: groups keyed by feature id plus the skip log.
type Table struct {
	Groups  map[int]*Group
	Skipped []SkippedRow
	// Lines counts data lines seen after the header; Rows counts the accepted ones.
	Lines int
	Rows  int
}

// IDs returns the group ids in ascending order.
func (t *Table) IDs() []int {
	ids := make([]int, 0, len(t.Groups))
	for id := range t.Groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SkipCounts tallies skipped lines by reason.
func (t *Table) SkipCounts() map[SkipReason]int {
	out := map[SkipReason]int{}
	for _, s := range t.Skipped {
		out[s.Reason]++
	}
	return out
}

// Load opens path and reads it with Read.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	logging.Infof("reading feature table from %s", path)
	tbl, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	logging.Infof("loaded %d rows into %d groups (%d lines skipped)", tbl.Rows, len(tbl.Groups), len(tbl.Skipped))
	return tbl, nil
}

// Read parses a complete table from r. Malformed data lines are skipped and recorded;
// only I/O failures and a truncated header are returned as errors.
func Read(r io.Reader) (*Table, error) {
	defer logging.TimeTrack(time.Now(), "table read")
	reader := bufio.NewReader(r)
	tbl := &Table{Groups: map[int]*Group{}}
	lineNo := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if line == "" && err == io.EOF {
			break
		}
		lineNo++
		if lineNo <= HeaderLines {
			if err == io.EOF {
				break
			}
			continue
		}
		tbl.Lines++
		raw := strings.TrimSpace(line)
		row, reason, perr := parseRow(strings.Split(raw, "\t"))
		if reason != "" {
			s := SkippedRow{Line: lineNo, Raw: raw, Reason: reason, Err: perr}
			tbl.Skipped = append(tbl.Skipped, s)
			logging.Warnf("%s", s)
		} else {
			g, ok := tbl.Groups[row.GroupID]
			if !ok {
				g = &Group{ID: row.GroupID}
				tbl.Groups[row.GroupID] = g
			}
			g.add(row)
			tbl.Rows++
		}
		if err == io.EOF {
			break
		}
	}
	if lineNo < HeaderLines {
		return nil, ErrTruncatedHeader
	}
	return tbl, nil
}

// parseRow validates one split line. A non-empty reason means the row is rejected.
func parseRow(values []string) (Row, SkipReason, error) {
	if len(values) < MinColumns {
		return Row{}, ReasonTooFewColumns, nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(values[colGroupID]))
	if err != nil {
		return Row{}, ReasonInvalidGroupID, err
	}
	dist, err := strconv.ParseFloat(strings.TrimSpace(values[colDistance]), 64)
	if err != nil {
		return Row{}, ReasonInvalidDistance, err
	}
	if math.IsNaN(dist) || math.IsInf(dist, 0) {
		return Row{}, ReasonInvalidDistance, fmt.Errorf("non-finite distance %q", values[colDistance])
	}
	ts, err := ParseTimestamp(values[colTime])
	if err != nil {
		return Row{}, ReasonInvalidTimestamp, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(values[colValue]), 64)
	if err != nil {
		return Row{}, ReasonInvalidValue, err
	}
	return Row{GroupID: id, Time: ts, Value: v, Distance: dist}, "", nil
}
