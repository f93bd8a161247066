// Package theme defines the dashboard colors and styles.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kpumuk/nodescope/internal/thresholds"
)

// Theme defines all colors used throughout the UI.
type Theme struct {
	Primary lipgloss.CompleteAdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Border      lipgloss.AdaptiveColor
	BorderFocus lipgloss.CompleteAdaptiveColor

	TabActiveFg lipgloss.AdaptiveColor
	TabActiveBg lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Warning     lipgloss.AdaptiveColor
}

// DefaultTheme is the adaptive color scheme used by default.
var DefaultTheme = Theme{
	Primary: lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{TrueColor: "#087F5B", ANSI256: "29", ANSI: "2"},
		Dark:  lipgloss.CompleteColor{TrueColor: "#38D9A9", ANSI256: "79", ANSI: "10"},
	},

	Text:      lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"},
	TextMuted: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},

	Border: lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
	BorderFocus: lipgloss.CompleteAdaptiveColor{
		Light: lipgloss.CompleteColor{TrueColor: "#087F5B", ANSI256: "29", ANSI: "2"},
		Dark:  lipgloss.CompleteColor{TrueColor: "#38D9A9", ANSI256: "79", ANSI: "10"},
	},

	TabActiveFg: lipgloss.AdaptiveColor{Light: "229", Dark: "229"},
	TabActiveBg: lipgloss.AdaptiveColor{Light: "29", Dark: "29"},
	Error:       lipgloss.AdaptiveColor{Light: "#E03131", Dark: "#FF6B6B"},
	Warning:     lipgloss.AdaptiveColor{Light: "#E67700", Dark: "#FFD43B"},
}

// Styles holds all lipgloss styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Text  lipgloss.Style
	Muted lipgloss.Style

	Border      lipgloss.Style
	FocusBorder lipgloss.Style

	TabBar    lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Key       lipgloss.Style

	Label lipgloss.Style
	Value lipgloss.Style
	Axis  lipgloss.Style

	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates a Styles instance from the default adaptive theme.
func NewStyles() Styles {
	t := DefaultTheme
	return Styles{
		Title: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Text:  lipgloss.NewStyle().Foreground(t.Text),
		Muted: lipgloss.NewStyle().Foreground(t.TextMuted),

		Border:      lipgloss.NewStyle().Foreground(t.Border),
		FocusBorder: lipgloss.NewStyle().Foreground(t.BorderFocus),

		TabBar: lipgloss.NewStyle().Padding(0, 1),
		Tab:    lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(t.TabActiveFg).
			Background(t.TabActiveBg).
			Bold(true).
			Padding(0, 1),
		Key: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Border).
			Padding(0, 1),

		Label: lipgloss.NewStyle().Foreground(t.TextMuted),
		Value: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Axis:  lipgloss.NewStyle().Foreground(t.Border),

		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

// Color converts a palette color to a lipgloss color.
func Color(c thresholds.RGB) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// ColorStyle returns a style with c as the foreground.
func ColorStyle(c thresholds.RGB) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Color(c))
}

// ZoneStyle returns the foreground style of a zone's base color.
func ZoneStyle(z thresholds.Zone) lipgloss.Style {
	return ColorStyle(thresholds.ZoneColor(z))
}

// ZoneBadge renders a zone label on its base color.
func ZoneBadge(z thresholds.Zone) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Color(thresholds.ZoneColor(z))).
		Bold(true).
		Padding(0, 1).
		Render(z.Label())
}
