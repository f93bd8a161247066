package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/thresholds"
	"github.com/kpumuk/nodescope/internal/ui/charts"
	"github.com/kpumuk/nodescope/internal/ui/components/frame"
	"github.com/kpumuk/nodescope/internal/ui/components/stats"
	"github.com/kpumuk/nodescope/internal/ui/components/timeseries"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

// stripLines is the zone strip, the gradient line and the time labels.
const stripLines = 3

// RenderChart draws one parameter chart as a titled panel of the given size.
func RenderChart(chart pipeline.Chart, styles theme.Styles, width, height int) string {
	meta := chart.Unit
	if chart.Rollup {
		meta = strings.TrimSpace(meta + " rollup")
	}
	opts := []frame.Option{
		frame.WithStyles(frame.Styles{Title: styles.Title, Meta: styles.Muted, Border: styles.Border}),
		frame.WithTitle(chart.Parameter),
		frame.WithMeta(meta),
		frame.WithPadding(1),
		frame.WithSize(width, height),
	}
	panel := frame.New(opts...)
	innerWidth, innerHeight := panel.InnerSize()
	if innerWidth <= 0 || innerHeight <= 0 {
		return panel.View()
	}

	summary := stats.New(
		stats.WithStyles(stats.Styles{Label: styles.Label, Value: styles.Value, Muted: styles.Muted}),
		stats.WithWidth(innerWidth),
		stats.WithData(stats.FromChart(chart)),
	)
	plotHeight := innerHeight - summary.Height() - stripLines

	var sections []string
	if plotHeight >= 3 {
		sections = append(sections,
			plot(chart, styles, innerWidth, plotHeight),
			charts.ZoneStrip(innerWidth, chart.PointColors, styles.Muted),
			charts.GradientLine(innerWidth, chart.SegmentGradients),
			styles.Muted.Render(timeAxis(chart, innerWidth)),
		)
	}
	sections = append(sections, summary.View())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return frame.New(append(opts, frame.WithContent(content))...).View()
}

func plot(chart pipeline.Chart, styles theme.Styles, width, height int) string {
	line := theme.ColorStyle(thresholds.ColorIdeal)
	if chart.Latest != nil {
		line = theme.ColorStyle(chart.Latest.Color)
	}
	lines := []timeseries.Series{{Name: "value", Times: chart.Times, Values: chart.Values, Style: line}}
	if chart.Rollup {
		lines = append(lines,
			timeseries.Series{Name: "min", Times: chart.Times, Values: chart.Min, Style: styles.Muted},
			timeseries.Series{Name: "max", Times: chart.Times, Values: chart.Max, Style: styles.Muted},
		)
	}
	model := timeseries.New(
		timeseries.WithStyles(timeseries.Styles{Axis: styles.Axis, Label: styles.Muted}),
		timeseries.WithSize(width, height),
		timeseries.WithSeries(lines...),
		timeseries.WithValueRange(chart.Axis.Min, chart.Axis.Max),
		timeseries.WithXYSteps(0, 2),
		timeseries.WithEmptyMessage("No readings"),
	)
	return model.View()
}

func timeAxis(chart pipeline.Chart, width int) string {
	if len(chart.Times) == 0 {
		return strings.Repeat(" ", width)
	}
	first, last := chart.Times[0], chart.Times[len(chart.Times)-1]
	return charts.BuildLabelLine(width,
		charts.TimePositions(chart.Ticks, first, last),
		charts.BuildTimeLabels(chart.Ticks),
	)
}
