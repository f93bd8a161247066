// Package stats renders the summary panel below a chart.
package stats

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/thresholds"
	"github.com/kpumuk/nodescope/internal/ui/format"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

const gaugeWidth = 11

// Data holds the values shown in the panel.
type Data struct {
	Unit       string
	Summary    series.Summary
	Latest     *pipeline.Latest
	Thresholds *thresholds.Set
}

// FromChart extracts the panel data from a chart.
func FromChart(c pipeline.Chart) Data {
	return Data{
		Unit:       c.Unit,
		Summary:    c.Stats,
		Latest:     c.Latest,
		Thresholds: c.Thresholds,
	}
}

// Styles holds the styles needed by the panel.
type Styles struct {
	Label lipgloss.Style
	Value lipgloss.Style
	Muted lipgloss.Style
}

// DefaultStyles returns default styles for the panel.
func DefaultStyles() Styles {
	return Styles{
		Label: lipgloss.NewStyle().Faint(true),
		Value: lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Faint(true),
	}
}

// Model defines state for the stats panel.
type Model struct {
	styles Styles
	data   Data
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new stats panel.
func New(opts ...Option) Model {
	m := Model{styles: DefaultStyles()}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithData sets the data.
func WithData(d Data) Option {
	return func(m *Model) { m.data = d }
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// SetData updates the data.
func (m *Model) SetData(d Data) {
	m.data = d
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Height returns the number of lines View produces.
func (m Model) Height() int {
	return 4
}

// View renders the summary, latest value, gauge and threshold lines.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}
	lines := []string{
		m.summaryLine(),
		m.latestLine(),
		m.gaugeLine(),
		m.thresholdLine(),
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "…")
	}
	return strings.Join(lines, "\n")
}

func (m Model) pair(label, value string) string {
	return m.styles.Label.Render(label) + " " + m.styles.Value.Render(value)
}

func (m Model) summaryLine() string {
	lo, hi, avg := m.data.Summary.Fixed()
	unit := m.data.Unit
	return strings.Join([]string{
		m.pair("Min", format.WithUnit(lo, unit)),
		m.pair("Max", format.WithUnit(hi, unit)),
		m.pair("Avg", format.WithUnit(avg, unit)),
	}, "  ")
}

func (m Model) latestLine() string {
	latest := m.data.Latest
	if latest == nil {
		return m.pair("Latest", format.NA)
	}
	value := theme.ColorStyle(latest.Color).Bold(true).
		Render(format.WithUnit(format.Fixed2(latest.Value), m.data.Unit))
	line := m.styles.Label.Render("Latest") + " " + value + " " + theme.ZoneBadge(latest.Zone)
	if latest.Timestamp != "" {
		line += " " + m.styles.Muted.Render(latest.Timestamp)
	}
	return line
}

func (m Model) gaugeLine() string {
	zone := thresholds.ZoneUnknown
	if m.data.Latest != nil {
		zone = m.data.Latest.Zone
	}

	var track strings.Builder
	marker := -1
	if zone != thresholds.ZoneUnknown {
		marker = int(zone.Gauge()*float64(gaugeWidth-1) + 0.5)
	}
	for i := range gaugeWidth {
		if i == marker {
			track.WriteString(theme.ZoneStyle(zone).Render("●"))
			continue
		}
		track.WriteString(theme.ColorStyle(gaugeColor(i)).Render("─"))
	}
	return m.styles.Label.Render("Gauge") + " " + track.String()
}

// gaugeColor blends ideal to moderate over the first half of the track and
// moderate to extreme over the second.
func gaugeColor(i int) thresholds.RGB {
	half := gaugeWidth / 2
	if i < half {
		return thresholds.Interpolate(thresholds.ColorIdeal, thresholds.ColorModerate, float64(i)/float64(half))
	}
	return thresholds.Interpolate(thresholds.ColorModerate, thresholds.ColorExtreme, float64(i-half)/float64(gaugeWidth-1-half))
}

func (m Model) thresholdLine() string {
	set := m.data.Thresholds
	if set == nil {
		return m.styles.Muted.Render("No thresholds")
	}
	return strings.Join([]string{
		m.pair(thresholds.ZoneIdeal.Label(), format.Range(set.Ideal)),
		m.pair(thresholds.ZoneModerate.Label(), format.Range(set.Moderate)),
		m.pair(thresholds.ZoneExtreme.Label(), format.Range(set.Extreme)),
	}, "  ")
}
