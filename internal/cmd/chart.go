package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/kpumuk/nodescope/internal/node"
	"github.com/kpumuk/nodescope/internal/ui"
	"github.com/kpumuk/nodescope/internal/ui/components/jsonview"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

func newChartCommand(opts *globalOptions) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "chart SCOPE PARAMETER",
		Short: "Print one parameter chart.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := node.ParseScope(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openSession(cmd, opts, sessionMode{})
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close(ctx)
			}()

			chart, err := s.service().Chart(ctx, scope, args[1])
			if err != nil {
				return err
			}
			if len(chart.Excluded) > 0 {
				s.logger.WarnContext(ctx, "nodes excluded from chart", "count", len(chart.Excluded))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ui.RenderChart(chart, theme.NewStyles(), width, height))
			return err
		},
	}
	cmd.Flags().IntVar(&width, "width", 100, "chart width in columns")
	cmd.Flags().IntVar(&height, "height", 30, "chart height in lines")
	return cmd
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var copyOut bool
	cmd := &cobra.Command{
		Use:   "export SCOPE [PARAMETER...]",
		Short: "Print the chart data of a scope as JSON.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := node.ParseScope(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, err := openSession(cmd, opts, sessionMode{})
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close(ctx)
			}()

			dash, err := s.service().Dashboard(ctx, scope, args[1:])
			if err != nil {
				return err
			}
			text, err := jsonview.Marshal(dash)
			if err != nil {
				return fmt.Errorf("encode dashboard: %w", err)
			}

			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				s.logger.InfoContext(ctx, "copied dashboard", "bytes", len(text), "charts", len(dash.Charts))
				return nil
			}
			if stdoutIsTerminal(cmd) {
				text = jsonview.Highlight(text, jsonview.ColorStyles())
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the JSON to the clipboard instead of printing it")
	return cmd
}
