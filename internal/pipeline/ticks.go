package pipeline

import "time"

const (
	tickCount       = 5
	minTickInterval = 6 * time.Hour
)

// TimeTicks returns up to five axis ticks counted back from last at a whole
// hour interval of at least six hours, oldest first. Ticks before first are
// omitted.
func TimeTicks(first, last time.Time) []time.Time {
	if last.Before(first) {
		return nil
	}
	hours := int(last.Sub(first) / time.Hour / (tickCount - 1))
	interval := max(minTickInterval, time.Duration(hours)*time.Hour)

	ticks := make([]time.Time, 0, tickCount)
	for i := tickCount - 1; i >= 0; i-- {
		t := last.Add(-time.Duration(i) * interval)
		if !t.Before(first) {
			ticks = append(ticks, t)
		}
	}
	return ticks
}
