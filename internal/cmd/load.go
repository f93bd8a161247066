package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kpumuk/nodescope/internal/devtools"
	"github.com/kpumuk/nodescope/internal/store"
)

func newLoadCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load FILE...",
		Short: "Store nodes from JSON or YAML files in Redis.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := devtools.WithOrigin(cmd.Context(), "cmd.load")
			s, err := openSession(cmd, opts, sessionMode{redis: true})
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close(ctx)
			}()

			if err := s.client.Ping(ctx); err != nil {
				return fmt.Errorf("connect to %s: %w", s.client.DisplayRedisURL(), err)
			}
			for _, path := range args {
				dataset, err := store.LoadDataset(path)
				if err != nil {
					return err
				}
				nodes := dataset.Nodes()
				if err := s.client.SaveNodes(ctx, nodes); err != nil {
					return err
				}
				s.logger.InfoContext(ctx, "loaded nodes", "path", path, "nodes", len(nodes))
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes\n", path, len(nodes)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
