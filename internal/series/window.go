package series

import "time"

// Timed is anything placed on the time axis.
type Timed interface {
	At() time.Time
}

// Window bounds the trailing part of a series that gets charted.
type Window struct {
	// Lookback keeps points at or after latest-Lookback. Zero disables the
	// time cutoff.
	Lookback time.Duration
	// MaxPoints keeps at most this many trailing points. Zero disables the cap.
	MaxPoints int
}

// DefaultWindow is the per-parameter chart window: 30 hours, 29 points.
var DefaultWindow = Window{Lookback: 30 * time.Hour, MaxPoints: 29}

// SelectWindow returns the trailing window of a series sorted ascending by
// time. The time cutoff is applied first, then the point cap. The input is
// never modified; the result does not share its backing array.
func SelectWindow[T Timed](points []T, w Window) []T {
	if len(points) == 0 {
		return points
	}

	start := 0
	if w.Lookback > 0 {
		cutoff := points[len(points)-1].At().Add(-w.Lookback)
		for start < len(points) && points[start].At().Before(cutoff) {
			start++
		}
	}
	if w.MaxPoints > 0 && len(points)-start > w.MaxPoints {
		start = len(points) - w.MaxPoints
	}

	out := make([]T, len(points)-start)
	copy(out, points[start:])
	return out
}
