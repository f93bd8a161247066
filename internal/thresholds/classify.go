package thresholds

import "math"

// Set holds the canonical thresholds for one parameter. A nil zone is absent.
type Set struct {
	Ideal    *Range `json:"ideal"`
	Moderate *Range `json:"moderate"`
	Extreme  *Range `json:"extreme"`
}

// NewSet normalizes the three raw zones. Each zone needs both bounds to be
// usable; it returns nil when none of them is.
func NewSet(ideal, moderate, extreme RawRange) *Set {
	s := &Set{
		Ideal:    NormalizeRange(ideal),
		Moderate: NormalizeRange(moderate),
		Extreme:  NormalizeRange(extreme),
	}
	if s.Ideal == nil && s.Moderate == nil && s.Extreme == nil {
		return nil
	}
	return s
}

// Tails returns the extreme tail ranges.
func (s *Set) Tails() []Range {
	if s == nil {
		return nil
	}
	return ExtremeTails(s.Extreme)
}

// Classify returns the zone for v. Zones are tested ideal, moderate, then
// both extreme tails; the first match wins, so overlapping misconfigured
// ranges resolve to the most benign zone.
func Classify(v float64, s *Set) Zone {
	if s == nil || math.IsNaN(v) {
		return ZoneUnknown
	}
	if s.Ideal != nil && s.Ideal.Contains(v) {
		return ZoneIdeal
	}
	if s.Moderate != nil && s.Moderate.Contains(v) {
		return ZoneModerate
	}
	for _, tail := range s.Tails() {
		if tail.Contains(v) {
			return ZoneExtreme
		}
	}
	return ZoneUnknown
}

// ClassifyOptional classifies a possibly missing value.
func ClassifyOptional(v *float64, s *Set) Zone {
	if v == nil {
		return ZoneUnknown
	}
	return Classify(*v, s)
}

// SmoothColor returns the zone color for v, or a blend of the two bracketing
// zone colors when v falls in one of the known gaps:
//
//	ideal.max    < v < moderate.min    ideal → moderate
//	moderate.max < v < extreme.max     moderate → upper tail
//	moderate.max < v < ideal.min       moderate → ideal (low side)
//	extreme.min  < v < moderate.min    lower tail → moderate
//
// Any other unclassified value is gray.
func SmoothColor(v float64, s *Set) RGB {
	if zone := Classify(v, s); zone != ZoneUnknown {
		return ZoneColor(zone)
	}
	if s == nil || math.IsNaN(v) {
		return ColorUnknown
	}

	ideal, moderate := s.Ideal, s.Moderate
	tails := s.Tails()
	hasTails := len(tails) == 2

	switch {
	case ideal != nil && moderate != nil && v > ideal.Max && v < moderate.Min:
		return blend(v, ideal.Max, moderate.Min, ColorIdeal, ColorModerate)
	case moderate != nil && hasTails && v > moderate.Max && v < tails[1].Min:
		return blend(v, moderate.Max, tails[1].Min, ColorModerate, ColorExtreme)
	case ideal != nil && moderate != nil && v < ideal.Min && v > moderate.Max:
		return blend(v, moderate.Max, ideal.Min, ColorModerate, ColorIdeal)
	case moderate != nil && hasTails && v < moderate.Min && v > tails[0].Max:
		return blend(v, tails[0].Max, moderate.Min, ColorExtreme, ColorModerate)
	}
	return ColorUnknown
}
