// Package series parses time-stamped sensor readings and provides the
// aggregation, windowing and summary operations used to chart them.
package series

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"

	"github.com/kpumuk/nodescope/internal/mathutil"
)

// RawReading is one reading as delivered by the data layer. Value may be a
// number, a numeric string, or nil.
type RawReading struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Value     any    `json:"value" yaml:"value"`
}

// Value is a nullable float. Invalid values encode to JSON null.
type Value struct {
	Float float64
	Valid bool
}

// Some returns a valid Value.
func Some(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Ptr returns the value as a pointer, nil when invalid.
func (v Value) Ptr() *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float
	return &f
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// Reading is a parsed reading. Readings with an invalid Value are gaps.
type Reading struct {
	Timestamp string
	Time      time.Time
	Value     Value
}

// At implements Timed.
func (r Reading) At() time.Time {
	return r.Time
}

// ParseValue parses a reading value. Non-numeric, missing and non-finite
// values report false.
func ParseValue(v any) (float64, bool) {
	return mathutil.ParseOptionalFloat64(v)
}

var timeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
}

// ParseTime parses an opaque timestamp string. A four-digit string is an
// ISO 8601 year. Other integers are unix seconds, or milliseconds above
// 1e12. Anything else is ISO 8601, then a few common layouts.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) == 4 {
		if t, err := time.Parse("2006", s); err == nil {
			return t, true
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), true
		}
		return time.Unix(n, 0).UTC(), true
	}
	if t, err := iso8601.ParseString(s); err == nil {
		return t, true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FromRaw parses raw readings into a series sorted ascending by time.
// Readings with unparseable timestamps are dropped; readings with missing or
// non-numeric values are kept as gaps. The input is not modified.
func FromRaw(raw []RawReading) []Reading {
	out := make([]Reading, 0, len(raw))
	for _, r := range raw {
		t, ok := ParseTime(r.Timestamp)
		if !ok {
			continue
		}
		reading := Reading{Timestamp: r.Timestamp, Time: t}
		if f, ok := ParseValue(r.Value); ok {
			reading.Value = Some(f)
		}
		out = append(out, reading)
	}
	slices.SortStableFunc(out, func(a, b Reading) int {
		return a.Time.Compare(b.Time)
	})
	return out
}

// Values returns the valid values of a series in order.
func Values(readings []Reading) []float64 {
	out := make([]float64, 0, len(readings))
	for _, r := range readings {
		if r.Value.Valid {
			out = append(out, r.Value.Float)
		}
	}
	return out
}
