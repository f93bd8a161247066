// Package errorpopup overlays a centered error panel on other content.
package errorpopup

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/ui/components/frame"
	"github.com/kpumuk/nodescope/internal/ui/format"
)

const maxWidth = 60

// Styles holds the styles needed by the error popup.
type Styles struct {
	Title   lipgloss.Style
	Message lipgloss.Style
	Border  lipgloss.Style
}

// DefaultStyles returns default styles for the error popup.
func DefaultStyles() Styles {
	errorColor := lipgloss.Color("#FF0000")
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
		Message: lipgloss.NewStyle().Faint(true),
		Border:  lipgloss.NewStyle().Foreground(errorColor),
	}
}

// Model defines state for the error popup component.
type Model struct {
	styles     Styles
	title      string
	message    string
	retry      time.Duration
	background string
	width      int
	height     int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new error popup model.
func New(opts ...Option) Model {
	m := Model{
		styles: DefaultStyles(),
		title:  "Fetch Error",
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

// WithSize sets the width and height.
func WithSize(w, h int) Option {
	return func(m *Model) { m.width, m.height = w, h }
}

// WithTitle sets the panel title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMessage sets the error message.
func WithMessage(msg string) Option {
	return func(m *Model) { m.message = msg }
}

// WithRetry sets the retry interval mentioned below the message. Zero hides
// the hint.
func WithRetry(d time.Duration) Option {
	return func(m *Model) { m.retry = d }
}

// SetSize sets the width and height.
func (m *Model) SetSize(w, h int) {
	m.width, m.height = w, h
}

// SetMessage sets the error message to display.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// SetBackground sets the content the panel is drawn over.
func (m *Model) SetBackground(content string) {
	m.background = content
}

// Message returns the current error message.
func (m Model) Message() string {
	return m.message
}

// HasError returns true if there is an error message to display.
func (m Model) HasError() bool {
	return m.message != ""
}

// View renders the panel centered over the background, which is padded to
// the popup height.
func (m Model) View() string {
	if m.message == "" || m.width < 4 || m.height < 3 {
		return m.background
	}

	panelWidth := min(m.width, maxWidth)
	body := lipgloss.NewStyle().Width(panelWidth - 4).Render(m.message)
	if m.retry > 0 {
		body += "\n\n" + "Retrying every " + format.Duration(m.retry) + "..."
	}
	bodyLines := strings.Split(body, "\n")
	for i, line := range bodyLines {
		bodyLines[i] = m.styles.Message.Render(line)
	}

	panel := frame.New(
		frame.WithStyles(frame.Styles{Title: m.styles.Title, Border: m.styles.Border}),
		frame.WithTitle(m.title),
		frame.WithPadding(1),
		frame.WithSize(panelWidth, min(len(bodyLines)+2, m.height)),
		frame.WithContent(strings.Join(bodyLines, "\n")),
	).View()

	lines := strings.Split(m.background, "\n")
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	panelLines := strings.Split(panel, "\n")
	start := max((m.height-len(panelLines))/2, 0)
	for i, line := range panelLines {
		row := start + i
		if row < len(lines) {
			lines[row] = ansi.Truncate(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line), m.width, "")
		}
	}
	return strings.Join(lines, "\n")
}
