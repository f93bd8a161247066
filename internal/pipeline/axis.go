package pipeline

import "math"

// Axis is the value axis of a chart.
type Axis struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

const (
	defaultAxisMin = 0
	defaultAxisMax = 100
	axisPadding    = 0.05
	axisDivisions  = 5
)

// AxisFor computes rounded axis limits with 5% padding around the values.
// Without values the axis spans [0, 100].
func AxisFor(values []float64) Axis {
	low, high := lowerLimit(values), upperLimit(values)
	return Axis{Min: low, Max: high, Step: (high - low) / axisDivisions}
}

func extent(values []float64) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi, !math.IsInf(lo, 0) && !math.IsInf(hi, 0)
}

func lowerLimit(values []float64) float64 {
	lo, hi, ok := extent(values)
	if !ok {
		return defaultAxisMin
	}

	var rounded float64
	switch abs := math.Abs(lo); {
	case abs < 1:
		rounded = math.Floor(lo*100)/100 - 0.01
	case abs < 10:
		rounded = math.Floor(lo*10)/10 - 0.1
	default:
		rounded = math.Floor(lo) - 1
	}
	// Non-negative data never gets a negative axis.
	if lo >= 0 && rounded < 0 {
		return 0
	}
	return rounded - (hi-rounded)*axisPadding
}

func upperLimit(values []float64) float64 {
	lo, hi, ok := extent(values)
	if !ok {
		return defaultAxisMax
	}

	var rounded float64
	switch abs := math.Abs(hi); {
	case abs < 1:
		rounded = math.Ceil(hi*100)/100 + 0.01
	case abs < 10:
		rounded = math.Ceil(hi*10)/10 + 0.1
	default:
		rounded = math.Ceil(hi) + 1
	}
	return rounded + (rounded-lo)*axisPadding
}
