package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

func TestRenderChart(t *testing.T) {
	t.Parallel()

	chart := sampleDashboard().Charts[0]
	chart.Rollup = true

	out := RenderChart(chart, theme.NewStyles(), 60, 20)
	lines := strings.Split(out, "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d", i, w)
		}
	}
	top := ansi.Strip(lines[0])
	if !strings.Contains(top, "co2") || !strings.Contains(top, "ppm rollup") {
		t.Errorf("top border = %q", top)
	}
}

func TestRenderChart_Small(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(RenderChart(pipeline.Chart{Parameter: "co2"}, theme.NewStyles(), 40, 7))
	if strings.Contains(out, "No readings") {
		t.Errorf("plot should be skipped when there is no room:\n%s", out)
	}
	if !strings.Contains(out, "Latest N/A") {
		t.Errorf("stats missing:\n%s", out)
	}
}
