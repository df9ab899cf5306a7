package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// mjdOffset converts a modified Julian date to a Julian date.
const mjdOffset = 2400000.5

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339Nano,
}

// ParseTimestamp parses the epoch column. Calendar forms (ISO date, date-time with
// optional fraction or zone) are read as UTC. Astronomical epochs are also accepted:
// Julian years ("J2016.08"), Besselian years ("B1950.0"), Julian dates ("JD 2457415.5")
// and modified Julian dates ("MJD 57415").
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	if jd, ok, err := parseEpoch(s); ok {
		if err != nil {
			return time.Time{}, err
		}
		return julian.JDToTime(jd).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseEpoch reports ok when s carries an epoch prefix; the JD is valid only if err is nil.
func parseEpoch(s string) (jd float64, ok bool, err error) {
	upper := strings.ToUpper(s)
	var prefix string
	for _, p := range []string{"MJD", "JD", "J", "B"} {
		if strings.HasPrefix(upper, p) {
			prefix = p
			break
		}
	}
	if prefix == "" {
		return 0, false, nil
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(s[len(prefix):]), 64)
	if err != nil {
		return 0, true, fmt.Errorf("invalid %s epoch %q: %w", prefix, s, err)
	}
	switch prefix {
	case "MJD":
		return num + mjdOffset, true, nil
	case "JD":
		return num, true, nil
	case "J":
		return base.JulianYearToJDE(num), true, nil
	default:
		return base.BesselianYearToJDE(num), true, nil
	}
}
