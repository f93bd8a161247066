// Package timeseries renders one or more time series as a braille line chart.
package timeseries

import (
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/ui/charts"
	"github.com/kpumuk/nodescope/internal/ui/format"
)

// Styles holds the visual styles for the timeseries chart.
type Styles struct {
	Axis  lipgloss.Style
	Label lipgloss.Style
}

// DefaultStyles returns sensible default styles.
func DefaultStyles() Styles {
	return Styles{
		Axis:  lipgloss.NewStyle(),
		Label: lipgloss.NewStyle(),
	}
}

// Series is a single line. Values parallel Times; gaps are not plotted.
type Series struct {
	Name   string
	Times  []time.Time
	Values []series.Value
	Style  lipgloss.Style
}

// Model holds the timeseries chart state.
type Model struct {
	styles       Styles
	width        int
	height       int
	series       []Series
	xFormatter   func(int, float64) string
	yFormatter   func(int, float64) string
	xSteps       int
	ySteps       int
	minValue     float64
	maxValue     float64
	emptyMessage string
}

// Option is a functional option for configuring the timeseries chart.
type Option func(*Model)

// New creates a new timeseries chart model with functional options.
func New(opts ...Option) Model {
	m := Model{
		styles:       DefaultStyles(),
		xSteps:       2,
		ySteps:       2,
		maxValue:     100,
		xFormatter:   func(_ int, v float64) string { return time.Unix(int64(v), 0).UTC().Format("15:04") },
		yFormatter:   func(_ int, v float64) string { return format.ShortNumber(v) },
		emptyMessage: "No data",
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets custom styles for the chart.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithSize sets the dimensions of the chart.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithSeries sets the data series to display. The first series is the main
// line; the rest are drawn as named datasets.
func WithSeries(series ...Series) Option {
	return func(m *Model) { m.series = series }
}

// WithXYSteps sets the number of label steps for X and Y axes.
func WithXYSteps(xSteps, ySteps int) Option {
	return func(m *Model) { m.xSteps, m.ySteps = xSteps, ySteps }
}

// WithValueRange sets the value axis range.
func WithValueRange(minValue, maxValue float64) Option {
	return func(m *Model) { m.minValue, m.maxValue = minValue, maxValue }
}

// WithEmptyMessage sets the message to display when there's no data.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) { m.emptyMessage = msg }
}

// SetSize updates the chart dimensions.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
}

// SetSeries updates the data series.
func (m *Model) SetSeries(series ...Series) {
	m.series = series
}

// SetValueRange updates the value axis range.
func (m *Model) SetValueRange(minValue, maxValue float64) {
	m.minValue, m.maxValue = minValue, maxValue
}

// Width returns the current width.
func (m Model) Width() int {
	return m.width
}

// Height returns the current height.
func (m Model) Height() int {
	return m.height
}

// Points returns the number of plotted points across all series.
func (m Model) Points() int {
	var n int
	for _, s := range m.series {
		for i := range min(len(s.Times), len(s.Values)) {
			if s.Values[i].Valid {
				n++
			}
		}
	}
	return n
}

// View renders the timeseries chart to a string.
func (m Model) View() string {
	if m.width < 1 || m.height < 1 {
		return ""
	}
	if m.Points() == 0 {
		return charts.RenderCentered(m.width, m.height, m.emptyMessage)
	}

	minTime, maxTime := m.timeRange()
	if !maxTime.After(minTime) {
		maxTime = minTime.Add(time.Second)
	}
	minValue, maxValue := m.minValue, m.maxValue
	if maxValue <= minValue {
		maxValue = minValue + 1
	}

	chart := tslc.New(m.width, m.height,
		tslc.WithXYSteps(m.xSteps, m.ySteps),
		tslc.WithXLabelFormatter(m.xFormatter),
		tslc.WithYLabelFormatter(m.yFormatter),
		tslc.WithAxesStyles(m.styles.Axis, m.styles.Label),
		tslc.WithTimeRange(minTime, maxTime),
		tslc.WithYRange(minValue, maxValue),
	)

	for i, s := range m.series {
		if i == 0 {
			chart.SetStyle(s.Style)
		} else {
			chart.SetDataSetStyle(s.Name, s.Style)
		}
		for j := range min(len(s.Times), len(s.Values)) {
			if !s.Values[j].Valid {
				continue
			}
			point := tslc.TimePoint{Time: s.Times[j], Value: s.Values[j].Float}
			if i == 0 {
				chart.Push(point)
			} else {
				chart.PushDataSet(s.Name, point)
			}
		}
	}

	chart.DrawBrailleAll()
	return chart.View()
}

func (m Model) timeRange() (time.Time, time.Time) {
	var minTime, maxTime time.Time
	for _, s := range m.series {
		for _, t := range s.Times {
			if minTime.IsZero() || t.Before(minTime) {
				minTime = t
			}
			if t.After(maxTime) {
				maxTime = t
			}
		}
	}
	return minTime, maxTime
}
