package stats

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/series"
	"github.com/kpumuk/nodescope/internal/thresholds"
)

func sampleData() Data {
	return Data{
		Unit:    "ppm",
		Summary: series.Summary{Count: 3, Min: 400, Max: 1200.5, Avg: 800.25},
		Latest: &pipeline.Latest{
			Timestamp: "2024-01-01T12:00:00Z",
			Value:     950,
			Zone:      thresholds.ZoneModerate,
			Color:     thresholds.ColorModerate,
		},
		Thresholds: &thresholds.Set{
			Ideal:    &thresholds.Range{Min: 0, Max: 800},
			Moderate: &thresholds.Range{Min: 800, Max: 1500},
		},
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	m := New(WithWidth(120), WithData(sampleData()))
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	if len(lines) != m.Height() {
		t.Fatalf("got %d lines, want %d", len(lines), m.Height())
	}

	tests := []struct {
		line int
		want string
	}{
		{0, "Min 400.00 ppm  Max 1200.50 ppm  Avg 800.25 ppm"},
		{1, "Latest 950.00 ppm  Moderate  2024-01-01T12:00:00Z"},
		{2, "Gauge ─────●─────"},
		{3, "Ideal 0 - 800  Moderate 800 - 1500  Extreme --"},
	}
	for _, tc := range tests {
		if lines[tc.line] != tc.want {
			t.Errorf("line %d = %q, want %q", tc.line, lines[tc.line], tc.want)
		}
	}
}

func TestView_Empty(t *testing.T) {
	t.Parallel()

	m := New(WithWidth(80))
	lines := strings.Split(ansi.Strip(m.View()), "\n")

	want := []string{
		"Min --  Max --  Avg --",
		"Latest N/A",
		"Gauge ───────────",
		"No thresholds",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestView_Truncates(t *testing.T) {
	t.Parallel()

	m := New(WithWidth(10), WithData(sampleData()))
	for i, line := range strings.Split(m.View(), "\n") {
		if w := ansi.StringWidth(line); w > 10 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
}

func TestFromChart(t *testing.T) {
	t.Parallel()

	chart := pipeline.Chart{Unit: "°C", Stats: series.Summary{Count: 1, Min: 2, Max: 2, Avg: 2}}
	d := FromChart(chart)
	if d.Unit != "°C" || d.Summary.Count != 1 || d.Latest != nil {
		t.Fatalf("FromChart() = %+v", d)
	}
}
