package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/ui"
)

var errNoScopes = errors.New("no nodes found")

type dashboardOptions struct {
	parameters []string
}

func (o *dashboardOptions) register(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&o.parameters, "param", "p", nil, "parameters to chart (default all)")
}

func runDashboard(cmd *cobra.Command, opts *globalOptions, dash dashboardOptions, args []string) error {
	stopProfile, err := startProfile(opts.cpuprofile)
	if err != nil {
		return err
	}
	defer stopProfile()

	ctx := cmd.Context()
	s, err := openSession(cmd, opts, sessionMode{quiet: true})
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close(ctx)
	}()

	scope, err := resolveScope(ctx, s.source, args)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "starting dashboard", "scope", scope.String())

	app := ui.New(s.service(), scope,
		ui.WithParameters(dash.parameters),
		ui.WithRefresh(time.Duration(s.cfg.Refresh)),
		ui.WithContext(ctx),
	)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run nodescope: %w", err)
	}
	return nil
}

// resolveScope parses the scope argument, or picks the first known scope
// when there is none.
func resolveScope(ctx context.Context, source scopeSource, args []string) (node.Scope, error) {
	if len(args) > 0 {
		return node.ParseScope(args[0])
	}
	scopes, err := source.Scopes(ctx)
	if err != nil {
		return node.Scope{}, fmt.Errorf("list scopes: %w", err)
	}
	if len(scopes) == 0 {
		return node.Scope{}, errNoScopes
	}
	return scopes[0], nil
}
