// Package navbar renders the parameter tab bar with key hints.
package navbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Styles holds the styles needed by the navbar.
type Styles struct {
	Bar       lipgloss.Style
	Brand     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Key       lipgloss.Style
	Hint      lipgloss.Style
}

// DefaultStyles returns default styles for the navbar.
func DefaultStyles() Styles {
	return Styles{
		Bar:       lipgloss.NewStyle(),
		Brand:     lipgloss.NewStyle().Bold(true).PaddingRight(1),
		Tab:       lipgloss.NewStyle().Padding(0, 1),
		TabActive: lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		Key:       lipgloss.NewStyle().PaddingLeft(1),
		Hint:      lipgloss.NewStyle().PaddingLeft(1),
	}
}

// Model defines state for the navbar component.
type Model struct {
	styles Styles
	brand  string
	tabs   []string
	active int
	hints  []key.Binding
	width  int
}

// Option is used to set options in New.
type Option func(*Model)

// New creates a new navbar model.
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

// WithBrand sets the label shown before the tabs.
func WithBrand(brand string) Option {
	return func(m *Model) { m.brand = brand }
}

// WithTabs sets the tab labels.
func WithTabs(tabs []string) Option {
	return func(m *Model) { m.tabs = tabs }
}

// WithHints sets the key bindings listed on the right.
func WithHints(hints ...key.Binding) Option {
	return func(m *Model) { m.hints = hints }
}

// WithWidth sets the width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// SetTabs replaces the tabs and keeps the active index in range.
func (m *Model) SetTabs(tabs []string) {
	m.tabs = tabs
	m.SetActive(m.active)
}

// SetWidth sets the width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetActive selects a tab, clamped to the available tabs.
func (m *Model) SetActive(i int) {
	m.active = max(min(i, len(m.tabs)-1), 0)
}

// Active returns the index of the selected tab.
func (m Model) Active() int {
	return m.active
}

// Next selects the following tab, wrapping around.
func (m *Model) Next() {
	if len(m.tabs) > 0 {
		m.active = (m.active + 1) % len(m.tabs)
	}
}

// Prev selects the preceding tab, wrapping around.
func (m *Model) Prev() {
	if len(m.tabs) > 0 {
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
	}
}

// Height returns the height of the navbar (always 1).
func (m Model) Height() int {
	return 1
}

// View renders the navbar padded or truncated to the width.
func (m Model) View() string {
	if m.width <= 0 {
		return ""
	}

	var left strings.Builder
	if m.brand != "" {
		left.WriteString(m.styles.Brand.Render(m.brand))
	}
	for i, tab := range m.tabs {
		if i == m.active {
			left.WriteString(m.styles.TabActive.Render(tab))
		} else {
			left.WriteString(m.styles.Tab.Render(tab))
		}
	}

	var right strings.Builder
	for _, h := range m.hints {
		if !h.Enabled() {
			continue
		}
		help := h.Help()
		right.WriteString(m.styles.Key.Render(help.Key))
		right.WriteString(m.styles.Hint.Render(help.Desc))
	}

	l, r := left.String(), right.String()
	gap := m.width - ansi.StringWidth(l) - ansi.StringWidth(r)
	if gap < 1 {
		r = ""
		gap = m.width - ansi.StringWidth(l)
	}
	line := ansi.Truncate(l+strings.Repeat(" ", max(gap, 0))+r, m.width, "")
	return m.styles.Bar.Render(line)
}
