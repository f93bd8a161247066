// Package frame renders a titled panel around chart content.
package frame

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the panel styles.
type Styles struct {
	Title  lipgloss.Style
	Meta   lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns unstyled defaults.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Meta:   lipgloss.NewStyle(),
		Border: lipgloss.NewStyle(),
	}
}

// Model is a bordered panel with a title on the left of the top edge and
// meta text on the right.
type Model struct {
	styles  Styles
	title   string
	meta    string
	content string
	width   int
	height  int
	padding int
	border  lipgloss.Border
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new panel.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		border: lipgloss.RoundedBorder(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithStyles sets the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithTitle sets the title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMeta sets the text shown on the right of the top edge.
func WithMeta(meta string) Option {
	return func(m *Model) { m.meta = meta }
}

// WithContent sets the body.
func WithContent(content string) Option {
	return func(m *Model) { m.content = content }
}

// WithSize sets the outer width and height.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

// WithPadding sets horizontal padding inside the panel.
func WithPadding(padding int) Option {
	return func(m *Model) { m.padding = padding }
}

// WithBorder sets the border characters.
func WithBorder(border lipgloss.Border) Option {
	return func(m *Model) { m.border = border }
}

// InnerSize returns the space available to content.
func (m Model) InnerSize() (int, int) {
	return max(m.width-2-2*m.padding, 0), max(m.height-2, 0)
}

// View renders the panel. Content lines beyond the inner height are dropped
// and long lines are truncated.
func (m Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	inner := m.width - 2
	_, bodyHeight := m.InnerSize()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.top(inner))

	content := strings.Split(m.content, "\n")
	bar := m.styles.Border.Render(m.border.Left)
	barRight := m.styles.Border.Render(m.border.Right)
	pad := strings.Repeat(" ", m.padding)
	for i := range bodyHeight {
		var line string
		if i < len(content) {
			line = content[i]
		}
		line = fit(pad+line, inner-m.padding) + pad
		lines = append(lines, bar+fit(line, inner)+barRight)
	}

	lines = append(lines, m.styles.Border.Render(
		m.border.BottomLeft+strings.Repeat(m.border.Bottom, inner)+m.border.BottomRight))
	return strings.Join(lines, "\n")
}

func (m Model) top(inner int) string {
	h := m.border.Top
	available := max(inner-2, 0)

	title := label(m.title)
	meta := label(m.meta)
	if ansi.StringWidth(title)+ansi.StringWidth(meta) > available {
		meta = ""
	}
	title = ansi.Truncate(title, available, "…")

	fill := max(available-ansi.StringWidth(title)-ansi.StringWidth(meta), 0)
	return m.styles.Border.Render(m.border.TopLeft+h) +
		m.styles.Title.Render(title) +
		m.styles.Border.Render(strings.Repeat(h, fill)) +
		m.styles.Meta.Render(meta) +
		m.styles.Border.Render(h+m.border.TopRight)
}

func label(s string) string {
	if s == "" {
		return ""
	}
	return " " + s + " "
}

func fit(line string, width int) string {
	if width <= 0 {
		return ""
	}
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}
