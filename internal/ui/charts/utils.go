// Package charts holds layout helpers shared by the chart components.
package charts

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kpumuk/nodescope/internal/thresholds"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

// Glyphs used by the strips.
const (
	PointGlyph    = "●"
	GapGlyph      = "·"
	GradientGlyph = "━"
)

// AxisMap creates a mapping from source indices to target indices.
// Used to spread points across the available width.
func AxisMap(total, target int) []int {
	if total <= 0 || target <= 0 {
		return nil
	}
	mapping := make([]int, total)
	if total == 1 {
		return mapping
	}
	maxIdx := float64(target - 1)
	denom := float64(total - 1)
	for i := range total {
		mapping[i] = int(math.Round(float64(i) * maxIdx / denom))
	}
	return mapping
}

// BuildTimeLabels formats tick times, adding the date when the ticks span
// more than one day.
func BuildTimeLabels(ticks []time.Time) []string {
	if len(ticks) == 0 {
		return nil
	}

	layout := "15:04"
	if ticks[0].UTC().Format(time.DateOnly) != ticks[len(ticks)-1].UTC().Format(time.DateOnly) {
		layout = "Jan 2 15:04"
	}

	labels := make([]string, len(ticks))
	for i, tick := range ticks {
		if !tick.IsZero() {
			labels[i] = tick.UTC().Format(layout)
		}
	}
	return labels
}

// BuildLabelLine places labels at their relative positions on a line of the
// given width. Positions are fractions in [0, 1]; labels that would overlap
// a previous one are skipped.
func BuildLabelLine(width int, positions []float64, labels []string) string {
	if width <= 0 {
		return ""
	}
	line := []rune(strings.Repeat(" ", width))
	lastEnd := -1
	for i, label := range labels {
		if label == "" || i >= len(positions) {
			continue
		}
		runes := []rune(label)
		pos := int(math.Round(positions[i] * float64(width-1)))
		start := min(max(pos-len(runes)/2, 0), max(width-len(runes), 0))
		if start <= lastEnd+1 && lastEnd >= 0 {
			continue
		}
		end := min(start+len(runes), width)
		copy(line[start:end], runes[:end-start])
		lastEnd = end - 1
	}
	return string(line)
}

// TimePositions returns where each tick falls between first and last.
func TimePositions(ticks []time.Time, first, last time.Time) []float64 {
	span := last.Sub(first)
	out := make([]float64, len(ticks))
	for i, tick := range ticks {
		if span <= 0 {
			out[i] = 1
			continue
		}
		out[i] = float64(tick.Sub(first)) / float64(span)
	}
	return out
}

// ZoneStrip renders one marker per point in its zone color, spread across
// width. Gaps render as a muted dot.
func ZoneStrip(width int, colors []*thresholds.RGB, muted lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for i, pos := range AxisMap(len(colors), width) {
		if colors[i] == nil {
			cells[pos] = muted.Render(GapGlyph)
			continue
		}
		cells[pos] = theme.ColorStyle(*colors[i]).Render(PointGlyph)
	}
	return strings.Join(cells, "")
}

// GradientLine renders the segment gradients as one continuous colored line.
// Each segment gets an equal share of width and samples its stops evenly;
// segments without stops render as blanks.
func GradientLine(width int, gradients [][]thresholds.RGB) string {
	if width <= 0 || len(gradients) == 0 {
		return strings.Repeat(" ", max(width, 0))
	}
	var b strings.Builder
	owner := AxisMap(width, len(gradients))
	for cell := 0; cell < width; {
		seg := owner[cell]
		span := 0
		for cell+span < width && owner[cell+span] == seg {
			span++
		}
		stops := gradients[seg]
		if len(stops) == 0 {
			b.WriteString(strings.Repeat(" ", span))
		} else {
			for _, idx := range AxisMap(span, len(stops)) {
				b.WriteString(theme.ColorStyle(stops[idx]).Render(GradientGlyph))
			}
		}
		cell += span
	}
	return b.String()
}

// RenderCentered centers content within a given width and height.
// Handles multi-line content by centering vertically and horizontally.
func RenderCentered(width, height int, value string) string {
	if height < 1 {
		return ""
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", max(width, 0))
	}
	if width <= 0 {
		return strings.Join(lines, "\n")
	}

	contentLines := strings.Split(value, "\n")
	startLine := max((height-len(contentLines))/2, 0)

	trim := lipgloss.NewStyle().MaxWidth(width)
	for i, contentLine := range contentLines {
		lineIdx := startLine + i
		if lineIdx >= height {
			break
		}
		trimmed := trim.Render(contentLine)
		pad := max((width-lipgloss.Width(trimmed))/2, 0)
		lines[lineIdx] = strings.Repeat(" ", pad) + trimmed
	}

	return strings.Join(lines, "\n")
}
