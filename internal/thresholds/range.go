// Package thresholds normalizes per-parameter threshold ranges and classifies
// sensor readings into Ideal, Moderate and Extreme zones.
package thresholds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/nodescope/internal/mathutil"
)

// RangeShape identifies how a range arrived from upstream.
type RangeShape int

const (
	// RangeMissing means no usable range was supplied.
	RangeMissing RangeShape = iota
	// RangeArray is the ordered [min, max] pair form.
	RangeArray
	// RangeObject is the {min, max} object form.
	RangeObject
)

// RawRange is a threshold range as received at the boundary, before
// normalization. Low and High keep the decoded values untouched so that
// numbers sent as strings survive until Normalize.
type RawRange struct {
	Shape RangeShape
	Low   any
	High  any
}

// ArrayRange builds a RawRange in the [min, max] pair form.
func ArrayRange(low, high any) RawRange {
	return RawRange{Shape: RangeArray, Low: low, High: high}
}

// ObjectRange builds a RawRange in the {min, max} object form.
func ObjectRange(low, high any) RawRange {
	return RawRange{Shape: RangeObject, Low: low, High: high}
}

// IsMissing reports whether no range was supplied at all.
func (r RawRange) IsMissing() bool {
	return r.Shape == RangeMissing
}

// UnmarshalJSON accepts null, a 2-element array or a {min, max} object.
// Anything else decodes to a missing range rather than an error.
func (r *RawRange) UnmarshalJSON(data []byte) error {
	*r = RawRange{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	switch data[0] {
	case '[':
		var values []any
		if err := dec.Decode(&values); err != nil {
			return nil //nolint:nilerr // malformed ranges are treated as absent
		}
		*r = arrayFromSlice(values)
	case '{':
		var values map[string]any
		if err := dec.Decode(&values); err != nil {
			return nil //nolint:nilerr // malformed ranges are treated as absent
		}
		*r = ObjectRange(values["min"], values["max"])
	}
	return nil
}

// MarshalJSON writes the canonical {min, max} object, or null when missing.
func (r RawRange) MarshalJSON() ([]byte, error) {
	if r.IsMissing() {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]any{"min": r.Low, "max": r.High})
}

// UnmarshalYAML accepts the same shapes as UnmarshalJSON.
func (r *RawRange) UnmarshalYAML(value *yaml.Node) error {
	*r = RawRange{}
	switch value.Kind {
	case yaml.SequenceNode:
		var values []any
		if err := value.Decode(&values); err != nil {
			return nil //nolint:nilerr // malformed ranges are treated as absent
		}
		*r = arrayFromSlice(values)
	case yaml.MappingNode:
		var values map[string]any
		if err := value.Decode(&values); err != nil {
			return nil //nolint:nilerr // malformed ranges are treated as absent
		}
		*r = ObjectRange(values["min"], values["max"])
	}
	return nil
}

// MarshalYAML writes the canonical {min, max} mapping.
func (r RawRange) MarshalYAML() (any, error) {
	if r.IsMissing() {
		return nil, nil
	}
	return map[string]any{"min": r.Low, "max": r.High}, nil
}

func arrayFromSlice(values []any) RawRange {
	r := RawRange{Shape: RangeArray}
	if len(values) > 0 {
		r.Low = values[0]
	}
	if len(values) > 1 {
		r.High = values[1]
	}
	return r
}

// Bounds is the canonical normalized form of a range. Either side may be
// absent.
type Bounds struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// Range returns the closed range when both bounds are present.
func (b Bounds) Range() (Range, bool) {
	if b.Min == nil || b.Max == nil {
		return Range{}, false
	}
	return Range{Min: *b.Min, Max: *b.Max}, true
}

// Normalize converts a raw range into canonical bounds. Index 0 of the array
// form maps to min and index 1 to max without reordering. It reports false
// when the range is missing or neither bound is a finite number.
func Normalize(raw RawRange) (Bounds, bool) {
	if raw.IsMissing() {
		return Bounds{}, false
	}

	var b Bounds
	if v, ok := mathutil.ParseOptionalFloat64(raw.Low); ok {
		b.Min = &v
	}
	if v, ok := mathutil.ParseOptionalFloat64(raw.High); ok {
		b.Max = &v
	}
	if b.Min == nil && b.Max == nil {
		return Bounds{}, false
	}
	return b, true
}

// NormalizeRange normalizes raw and requires both bounds.
func NormalizeRange(raw RawRange) *Range {
	b, ok := Normalize(raw)
	if !ok {
		return nil
	}
	r, ok := b.Range()
	if !ok {
		return nil
	}
	return &r
}

// Range is an inclusive numeric range. Tail ranges use an infinite bound.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether min <= v <= max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// String renders the range as "min - max" using ∞ for open bounds.
func (r Range) String() string {
	return formatBound(r.Min) + " - " + formatBound(r.Max)
}

// MarshalJSON writes the range as {min, max} with null for infinite bounds.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}{Min: finiteOrNil(r.Min), Max: finiteOrNil(r.Max)})
}

func finiteOrNil(v float64) *float64 {
	if !mathutil.IsFinite(v) {
		return nil
	}
	return &v
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case math.IsNaN(v):
		return "--"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExtremeTails splits a stored extreme pair into the lower tail (-∞, min]
// and the upper tail [max, +∞). A nil extreme yields no tails.
func ExtremeTails(extreme *Range) []Range {
	if extreme == nil {
		return nil
	}
	return []Range{
		{Min: math.Inf(-1), Max: extreme.Min},
		{Min: extreme.Max, Max: math.Inf(1)},
	}
}

// ParseRange parses "min,max" as typed on the command line. An empty string
// is a missing range.
func ParseRange(s string) (RawRange, error) {
	if strings.TrimSpace(s) == "" {
		return RawRange{}, nil
	}
	low, high, ok := strings.Cut(s, ",")
	if !ok {
		return RawRange{}, fmt.Errorf("parse range %q: expected MIN,MAX", s)
	}
	return ArrayRange(strings.TrimSpace(low), strings.TrimSpace(high)), nil
}
