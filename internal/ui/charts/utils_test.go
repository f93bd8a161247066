package charts_test

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/thresholds"
	"github.com/kpumuk/nodescope/internal/ui/charts"
)

func TestAxisMap(t *testing.T) {
	t.Parallel()

	if got := charts.AxisMap(3, 5); !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("AxisMap(3, 5) = %v", got)
	}
	if got := charts.AxisMap(1, 5); !slices.Equal(got, []int{0}) {
		t.Errorf("AxisMap(1, 5) = %v", got)
	}
	if got := charts.AxisMap(0, 5); got != nil {
		t.Errorf("AxisMap(0, 5) = %v", got)
	}
}

func TestBuildTimeLabels(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	got := charts.BuildTimeLabels([]time.Time{day, day.Add(6 * time.Hour)})
	if !slices.Equal(got, []string{"06:00", "12:00"}) {
		t.Errorf("same day labels = %v", got)
	}
	got = charts.BuildTimeLabels([]time.Time{day, day.Add(24 * time.Hour)})
	if !slices.Equal(got, []string{"Jan 1 06:00", "Jan 2 06:00"}) {
		t.Errorf("multi day labels = %v", got)
	}
}

func TestBuildLabelLine(t *testing.T) {
	t.Parallel()

	got := charts.BuildLabelLine(10, []float64{0, 0.5, 1}, []string{"ab", "cd", "ef"})
	if got != "ab  cd  ef" {
		t.Errorf("BuildLabelLine = %q", got)
	}
	got = charts.BuildLabelLine(6, []float64{0, 0.1}, []string{"abc", "def"})
	if got != "abc   " {
		t.Errorf("overlapping labels = %q", got)
	}
}

func TestTimePositions(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := charts.TimePositions([]time.Time{start, start.Add(time.Hour), start.Add(4 * time.Hour)}, start, start.Add(4*time.Hour))
	if !slices.Equal(got, []float64{0, 0.25, 1}) {
		t.Errorf("TimePositions = %v", got)
	}
}

func TestZoneStrip(t *testing.T) {
	t.Parallel()

	green, red := thresholds.ColorIdeal, thresholds.ColorExtreme
	got := ansi.Strip(charts.ZoneStrip(5, []*thresholds.RGB{&green, nil, &red}, lipgloss.NewStyle()))
	if got != "● · ●" {
		t.Errorf("ZoneStrip = %q", got)
	}
}

func TestGradientLine(t *testing.T) {
	t.Parallel()

	g, r := thresholds.ColorIdeal, thresholds.ColorExtreme
	got := ansi.Strip(charts.GradientLine(6, [][]thresholds.RGB{{g, g}, {}, {r}}))
	if got != "━━  ━━" {
		t.Errorf("GradientLine = %q", got)
	}
	if got := charts.GradientLine(3, nil); got != "   " {
		t.Errorf("empty GradientLine = %q", got)
	}
}

func TestRenderCentered(t *testing.T) {
	t.Parallel()

	lines := strings.Split(charts.RenderCentered(5, 3, "hi"), "\n")
	if len(lines) != 3 || lines[1] != " hi" || lines[0] != "     " {
		t.Errorf("RenderCentered = %q", lines)
	}
}
