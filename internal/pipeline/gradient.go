package pipeline

import (
	"math"

	"github.com/kpumuk/nodescope/internal/mathutil"
	"github.com/kpumuk/nodescope/internal/thresholds"
)

const (
	minSegmentSteps = 5
	maxSegmentSteps = 20
)

// SegmentSteps returns how finely a segment is sampled: half the distance
// between its endpoints, kept within [5, 20]. dx is the horizontal distance
// in pixels, dy the difference in values.
func SegmentSteps(dx, dy float64) float64 {
	return mathutil.Clamp(math.Hypot(dx, dy)/2, minSegmentSteps, maxSegmentSteps)
}

// SegmentGradient samples the smooth threshold color along a segment from v0
// to v1. Stop i is taken at factor i/steps for every i <= steps, so a
// fractional step count stops short of v1.
func SegmentGradient(v0, v1, dx float64, set *thresholds.Set) []thresholds.RGB {
	steps := SegmentSteps(dx, math.Abs(v1-v0))
	stops := make([]thresholds.RGB, 0, int(steps)+1)
	for i := 0; float64(i) <= steps; i++ {
		factor := float64(i) / steps
		stops = append(stops, thresholds.SmoothColor(mathutil.Lerp(v0, v1, factor), set))
	}
	return stops
}
