package series

import (
	"slices"
	"strings"
	"time"
)

// NodeSeries is one node's raw readings for a single parameter.
type NodeSeries struct {
	Node     string
	Readings []RawReading
}

// AggregatedPoint summarizes the readings of every node sharing a timestamp.
type AggregatedPoint struct {
	Timestamp string    `json:"timestamp"`
	Time      time.Time `json:"-"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Avg       float64   `json:"avg"`
	Count     int       `json:"count"`
}

// At implements Timed.
func (p AggregatedPoint) At() time.Time {
	return p.Time
}

type aggregateOptions struct {
	bucket time.Duration
}

// AggregateOption configures Aggregate.
type AggregateOption func(*aggregateOptions)

// WithBucket groups readings whose parsed times fall in the same bucket of
// width d instead of requiring identical timestamp strings. Bucketed points
// are labeled with the bucket start in RFC 3339. Zero keeps exact matching.
func WithBucket(d time.Duration) AggregateOption {
	return func(o *aggregateOptions) {
		if d > 0 {
			o.bucket = d
		}
	}
}

type bucket struct {
	label  string
	at     time.Time
	values []float64
}

// Aggregate merges the series of several nodes into one series keyed by
// timestamp, computing min, max and mean over the numeric values present at
// each timestamp. Timestamps with no numeric value from any node are dropped.
// By default timestamps match by exact string equality.
func Aggregate(nodes []NodeSeries, opts ...AggregateOption) []AggregatedPoint {
	var o aggregateOptions
	for _, opt := range opts {
		opt(&o)
	}

	buckets := make(map[string]*bucket)
	for _, node := range nodes {
		for _, r := range node.Readings {
			t, ok := ParseTime(r.Timestamp)
			if !ok {
				continue
			}
			key := r.Timestamp
			if o.bucket > 0 {
				t = t.UTC().Truncate(o.bucket)
				key = t.Format(time.RFC3339)
			}
			b, ok := buckets[key]
			if !ok {
				b = &bucket{label: key, at: t}
				buckets[key] = b
			}
			if v, ok := ParseValue(r.Value); ok {
				b.values = append(b.values, v)
			}
		}
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	slices.SortFunc(ordered, func(a, b *bucket) int {
		if c := a.at.Compare(b.at); c != 0 {
			return c
		}
		return strings.Compare(a.label, b.label)
	})

	out := make([]AggregatedPoint, 0, len(ordered))
	for _, b := range ordered {
		summary := Summarize(b.values)
		if summary.Count == 0 {
			continue
		}
		out = append(out, AggregatedPoint{
			Timestamp: b.label,
			Time:      b.at,
			Min:       summary.Min,
			Max:       summary.Max,
			Avg:       summary.Avg,
			Count:     summary.Count,
		})
	}
	return out
}

// AggregateValues returns every numeric value that contributed to Aggregate,
// for whole-history statistics across nodes.
func AggregateValues(nodes []NodeSeries) []float64 {
	var out []float64
	for _, node := range nodes {
		for _, r := range node.Readings {
			if _, ok := ParseTime(r.Timestamp); !ok {
				continue
			}
			if v, ok := ParseValue(r.Value); ok {
				out = append(out, v)
			}
		}
	}
	return out
}
