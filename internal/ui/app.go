// Package ui renders the Bubble Tea dashboard of a node scope.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/nodescope/internal/devtools"
	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/pipeline"
	"github.com/kpumuk/nodescope/internal/ui/charts"
	"github.com/kpumuk/nodescope/internal/ui/components/errorpopup"
	"github.com/kpumuk/nodescope/internal/ui/components/navbar"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

// Loader builds the dashboard of a scope.
type Loader interface {
	Dashboard(ctx context.Context, scope node.Scope, parameters []string) (pipeline.Dashboard, error)
}

// tickMsg triggers a periodic refresh.
type tickMsg time.Time

// dashboardMsg carries a freshly built dashboard.
type dashboardMsg struct {
	dashboard pipeline.Dashboard
	at        time.Time
}

// fetchErrorMsg reports a failed refresh.
type fetchErrorMsg struct {
	err error
}

// App is the main application model.
type App struct {
	ctx        context.Context
	loader     Loader
	scope      node.Scope
	parameters []string
	refresh    time.Duration

	keys       KeyMap
	styles     theme.Styles
	spinner    spinner.Model
	navbar     navbar.Model
	errorPopup errorpopup.Model

	width     int
	height    int
	ready     bool
	loading   bool
	dashboard pipeline.Dashboard
	updatedAt time.Time
	fetchErr  error
}

// Option configures an App.
type Option func(*App)

// WithParameters limits the dashboard to the given parameters.
func WithParameters(parameters []string) Option {
	return func(a *App) { a.parameters = parameters }
}

// WithRefresh sets the refresh interval. Zero disables periodic refresh.
func WithRefresh(d time.Duration) Option {
	return func(a *App) { a.refresh = d }
}

// WithContext sets the context used for fetches.
func WithContext(ctx context.Context) Option {
	return func(a *App) { a.ctx = ctx }
}

// New creates a new App instance.
func New(loader Loader, scope node.Scope, opts ...Option) App {
	styles := theme.NewStyles()
	keys := DefaultKeyMap()

	a := App{
		ctx:     context.Background(),
		loader:  loader,
		scope:   scope,
		keys:    keys,
		styles:  styles,
		loading: true,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.Title),
		),
		navbar: navbar.New(
			navbar.WithStyles(navbar.Styles{
				Brand:     styles.Title.PaddingRight(1),
				Tab:       styles.Tab,
				TabActive: styles.TabActive,
				Key:       styles.Key.MarginLeft(1),
				Hint:      styles.Muted.PaddingLeft(1),
			}),
			navbar.WithBrand("nodescope"),
			navbar.WithHints(keys.ShortHelp()...),
		),
	}
	for _, opt := range opts {
		opt(&a)
	}
	a.errorPopup = errorpopup.New(
		errorpopup.WithStyles(errorpopup.Styles{
			Title:   styles.Error,
			Message: styles.Muted,
			Border:  styles.Error.UnsetBold(),
		}),
		errorpopup.WithRetry(a.refresh),
	)
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.fetchCmd(), a.tickCmd())
}

func (a App) tickCmd() tea.Cmd {
	if a.refresh <= 0 {
		return nil
	}
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) fetchCmd() tea.Cmd {
	ctx := devtools.WithOrigin(a.ctx, "ui.refresh")
	loader, scope, parameters := a.loader, a.scope, a.parameters
	return func() tea.Msg {
		dashboard, err := loader.Dashboard(ctx, scope, parameters)
		if err != nil {
			return fetchErrorMsg{err: err}
		}
		return dashboardMsg{dashboard: dashboard, at: time.Now()}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Tab):
			a.navbar.Next()
		case key.Matches(msg, a.keys.ShiftTab):
			a.navbar.Prev()
		case key.Matches(msg, a.keys.Refresh):
			if !a.loading {
				a.loading = true
				return a, tea.Batch(a.spinner.Tick, a.fetchCmd())
			}
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.navbar.SetWidth(msg.Width)
		a.errorPopup.SetSize(msg.Width, a.contentHeight())
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{a.tickCmd()}
		if !a.loading {
			a.loading = true
			cmds = append(cmds, a.spinner.Tick, a.fetchCmd())
		}
		return a, tea.Batch(cmds...)

	case dashboardMsg:
		a.loading = false
		a.fetchErr = nil
		a.dashboard = msg.dashboard
		a.updatedAt = msg.at
		a.errorPopup.SetMessage("")
		tabs := make([]string, len(msg.dashboard.Charts))
		for i, chart := range msg.dashboard.Charts {
			tabs[i] = chart.Parameter
		}
		a.navbar.SetTabs(tabs)
		return a, nil

	case fetchErrorMsg:
		a.loading = false
		a.fetchErr = msg.err
		a.errorPopup.SetMessage(msg.err.Error())
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}
	return a, nil
}

// contentHeight is the space between the status line and the navbar.
func (a App) contentHeight() int {
	return max(a.height-1-a.navbar.Height(), 0)
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	content := a.contentView()
	if a.fetchErr != nil {
		a.errorPopup.SetBackground(content)
		content = a.errorPopup.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		a.statusView(),
		content,
		a.navbar.View(),
	)
}

func (a App) contentView() string {
	height := a.contentHeight()
	list := a.dashboard.Charts
	if len(list) == 0 {
		message := "No parameters in " + a.scope.String()
		if a.loading {
			message = a.spinner.View() + " Loading " + a.scope.String()
		}
		return charts.RenderCentered(a.width, height, a.styles.Muted.Render(message))
	}
	return RenderChart(list[a.navbar.Active()], a.styles, a.width, height)
}

func (a App) statusView() string {
	status := a.styles.Title.Render(a.scope.String())
	report := a.dashboard.Report
	if report.Requested > 0 {
		status += a.styles.Muted.Render(fmt.Sprintf("  %d/%d nodes", report.Fetched(), report.Requested))
	}
	if !a.updatedAt.IsZero() {
		status += a.styles.Muted.Render("  updated " + a.updatedAt.Format(time.TimeOnly))
	}
	if len(report.Failed) > 0 {
		status += "  " + a.styles.Warning.Render(fmt.Sprintf("%d excluded", len(report.Failed)))
	}
	if a.loading {
		status += "  " + a.spinner.View()
	}
	return ansi.Truncate(status, a.width, "…")
}
