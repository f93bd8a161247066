package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newScopesCommand(opts *globalOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "scopes",
		Aliases: []string{"list", "ls"},
		Short:   "List the domains, sensor types and nodes.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := openSession(cmd, opts, sessionMode{})
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close(ctx)
			}()

			scopes, err := s.source.Scopes(ctx)
			if err != nil {
				return fmt.Errorf("list scopes: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(scopes)
			}
			for _, scope := range scopes {
				if _, err := fmt.Fprintln(out, scope.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
