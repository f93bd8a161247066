// Package pipeline turns node readings and thresholds into render-ready
// chart data: the series is aggregated for rollups, windowed, classified
// point by point and sampled into segment gradients.
package pipeline

import (
	"math"
	"time"

	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/thresholds"
)

// Layout is the canvas a chart is drawn on, in pixels.
type Layout struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Policy controls how a chart is built.
type Policy struct {
	Window series.Window
	// Bucket groups rollup readings into buckets of this width. Zero
	// aggregates by exact timestamp.
	Bucket time.Duration
	Layout Layout
}

// DefaultPolicy returns the 30 hour, 29 point window on a 600x300 canvas.
func DefaultPolicy() Policy {
	return Policy{
		Window: series.DefaultWindow,
		Layout: Layout{Width: 600, Height: 300},
	}
}

// Input is everything needed to chart one parameter.
type Input struct {
	Parameter string
	// Unit overrides the unit declared by the nodes.
	Unit   string
	Rollup bool
	Nodes  []node.Node
	// Thresholds overrides the thresholds of the first node carrying them.
	Thresholds *thresholds.Set
}

// Latest is the most recent numeric value of the whole history.
type Latest struct {
	Timestamp string          `json:"timestamp"`
	Value     float64         `json:"value"`
	Zone      thresholds.Zone `json:"zone"`
	Color     thresholds.RGB  `json:"color"`
}

// Chart is the render-ready data for one parameter. Labels, Times, Values,
// PointZones and PointColors are parallel; SegmentGradients has one entry
// per consecutive pair of points.
type Chart struct {
	Parameter  string          `json:"parameter"`
	Unit       string          `json:"unit,omitempty"`
	Rollup     bool            `json:"rollup"`
	Thresholds *thresholds.Set `json:"thresholds"`

	Labels []string       `json:"labels"`
	Times  []time.Time    `json:"-"`
	Values []series.Value `json:"values"`
	// Min and Max are the per-timestamp bands of a rollup; Values holds
	// the mean.
	Min []series.Value `json:"min,omitempty"`
	Max []series.Value `json:"max,omitempty"`

	PointZones []thresholds.Zone `json:"point_zones"`
	// PointColors is nil at gaps.
	PointColors []*thresholds.RGB `json:"point_colors"`
	// SegmentGradients is empty for a segment touching a gap.
	SegmentGradients [][]thresholds.RGB `json:"segment_gradients"`

	Stats  series.Summary `json:"stats"`
	Axis   Axis           `json:"axis"`
	Ticks  []time.Time    `json:"ticks"`
	Latest *Latest        `json:"latest"`

	Excluded []NodeFailure `json:"excluded,omitempty"`
}

// Empty reports whether the chart has no points.
func (c Chart) Empty() bool {
	return len(c.Values) == 0
}

// Build computes the chart of one parameter. It never fails: missing
// thresholds leave every point Unknown and missing data yields an empty
// chart.
func Build(policy Policy, in Input) Chart {
	chart := Chart{
		Parameter:  in.Parameter,
		Unit:       in.Unit,
		Rollup:     in.Rollup,
		Thresholds: in.Thresholds,
	}
	if chart.Unit == "" {
		chart.Unit = node.FirstUnit(in.Nodes, in.Parameter)
	}
	if chart.Thresholds == nil {
		chart.Thresholds = node.FirstThresholds(in.Nodes, in.Parameter)
	}

	if in.Rollup {
		buildRollup(&chart, policy, in.Nodes)
	} else {
		buildSingle(&chart, policy, in.Nodes)
	}

	classifyPoints(&chart)
	chart.SegmentGradients = segmentGradients(chart.Values, chart.Thresholds, policy.Layout)
	chart.Axis = AxisFor(validValues(chart.Values))
	if len(chart.Times) > 0 {
		chart.Ticks = TimeTicks(chart.Times[0], chart.Times[len(chart.Times)-1])
	}
	return chart
}

func buildSingle(chart *Chart, policy Policy, nodes []node.Node) {
	if len(nodes) == 0 {
		return
	}
	readings := series.FromRaw(nodes[0].Series(chart.Parameter))
	chart.Stats = series.Summarize(series.Values(readings))

	for i := len(readings) - 1; i >= 0; i-- {
		if r := readings[i]; r.Value.Valid {
			chart.Latest = latest(r.Timestamp, r.Value.Float, chart.Thresholds)
			break
		}
	}

	for _, r := range series.SelectWindow(readings, policy.Window) {
		chart.Labels = append(chart.Labels, r.Timestamp)
		chart.Times = append(chart.Times, r.Time)
		chart.Values = append(chart.Values, r.Value)
	}
}

func buildRollup(chart *Chart, policy Policy, nodes []node.Node) {
	perNode := node.SeriesFor(nodes, chart.Parameter)
	points := series.Aggregate(perNode, series.WithBucket(policy.Bucket))
	chart.Stats = series.Summarize(series.AggregateValues(perNode))

	if len(points) > 0 {
		last := points[len(points)-1]
		chart.Latest = latest(last.Timestamp, last.Avg, chart.Thresholds)
	}

	for _, p := range series.SelectWindow(points, policy.Window) {
		chart.Labels = append(chart.Labels, p.Timestamp)
		chart.Times = append(chart.Times, p.Time)
		chart.Values = append(chart.Values, series.Some(p.Avg))
		chart.Min = append(chart.Min, series.Some(p.Min))
		chart.Max = append(chart.Max, series.Some(p.Max))
	}
}

func latest(timestamp string, value float64, set *thresholds.Set) *Latest {
	zone := thresholds.Classify(value, set)
	return &Latest{
		Timestamp: timestamp,
		Value:     value,
		Zone:      zone,
		Color:     thresholds.ZoneColor(zone),
	}
}

func classifyPoints(chart *Chart) {
	chart.PointZones = make([]thresholds.Zone, len(chart.Values))
	chart.PointColors = make([]*thresholds.RGB, len(chart.Values))
	for i, v := range chart.Values {
		if !v.Valid {
			continue
		}
		zone := thresholds.Classify(v.Float, chart.Thresholds)
		color := thresholds.ZoneColor(zone)
		chart.PointZones[i] = zone
		chart.PointColors[i] = &color
	}
}

func segmentGradients(values []series.Value, set *thresholds.Set, layout Layout) [][]thresholds.RGB {
	if len(values) < 2 {
		return nil
	}
	dx := float64(layout.Width) / float64(len(values)-1)
	out := make([][]thresholds.RGB, len(values)-1)
	for i := range out {
		v0, v1 := values[i], values[i+1]
		if !v0.Valid || !v1.Valid {
			out[i] = []thresholds.RGB{}
			continue
		}
		out[i] = SegmentGradient(v0.Float, v1.Float, dx, set)
	}
	return out
}

func validValues(values []series.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.Valid && !math.IsNaN(v.Float) {
			out = append(out, v.Float)
		}
	}
	return out
}
