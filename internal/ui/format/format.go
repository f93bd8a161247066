// Package format provides UI formatting helpers.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kpumuk/nodescope/internal/thresholds"
)

// Placeholders for values that cannot be shown.
const (
	Missing = "--"
	NA      = "N/A"
)

// Fixed2 formats v with two decimals.
func Fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WithUnit appends a unit when there is one.
func WithUnit(s, unit string) string {
	if unit == "" || s == Missing || s == NA {
		return s
	}
	return s + " " + unit
}

// Range formats a threshold range, or -- when absent.
func Range(r *thresholds.Range) string {
	if r == nil {
		return Missing
	}
	return r.String()
}

// Duration formats elapsed time as "2m3s", "1h30m", etc. (max 2 segments).
func Duration(d time.Duration) string {
	seconds := max(int64(d/time.Second), 0)

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// ShortNumber formats an axis value into at most five characters
// (e.g., 0.05, 9.5, 120, 9.9K, 120K).
func ShortNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NA
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	var s string
	switch {
	case v == 0:
		return "0"
	case v < 1:
		s = trim(strconv.FormatFloat(v, 'f', 2, 64))
	case v < 10:
		s = trim(strconv.FormatFloat(v, 'f', 1, 64))
	case v < 1_000:
		s = strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	case v < 10_000:
		s = trim(strconv.FormatFloat(v/1_000, 'f', 1, 64)) + "K"
	case v < 1_000_000:
		s = strconv.FormatFloat(math.Floor(v/1_000), 'f', 0, 64) + "K"
	case v < 10_000_000:
		s = trim(strconv.FormatFloat(v/1_000_000, 'f', 1, 64)) + "M"
	default:
		s = strconv.FormatFloat(math.Floor(v/1_000_000), 'f', 0, 64) + "M"
	}
	return sign + s
}

// trim drops trailing zeros after the decimal point.
func trim(s string) string {
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
