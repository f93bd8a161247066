package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kpumuk/nodescope/internal/thresholds"
	"github.com/kpumuk/nodescope/internal/ui/theme"
)

type classification struct {
	Value float64         `json:"value"`
	Zone  thresholds.Zone `json:"zone"`
	Color string          `json:"color"`
}

func newClassifyCommand() *cobra.Command {
	var ideal, moderate, extreme string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify VALUE...",
		Short: "Classify values against thresholds.",
		Long: "Classify values against thresholds given as MIN,MAX. The extreme " +
			"range names the inner bounds of the two extreme tails.",
		Example: "  nodescope classify 45 --ideal 0,30 --moderate 30,60 --extreme 0,100",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := parseSet(ideal, moderate, extreme)
			if err != nil {
				return err
			}

			results := make([]classification, 0, len(args))
			for _, arg := range args {
				v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
				if err != nil {
					return fmt.Errorf("parse value %q: %w", arg, err)
				}
				results = append(results, classification{
					Value: v,
					Zone:  thresholds.Classify(v, set),
					Color: thresholds.SmoothColor(v, set).Hex(),
				})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			color := stdoutIsTerminal(cmd)
			for _, r := range results {
				zone := r.Zone.String()
				if color {
					zone = theme.ZoneBadge(r.Zone)
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", strconv.FormatFloat(r.Value, 'f', -1, 64), zone, r.Color); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ideal, "ideal", "", "ideal range MIN,MAX")
	cmd.Flags().StringVar(&moderate, "moderate", "", "moderate range MIN,MAX")
	cmd.Flags().StringVar(&extreme, "extreme", "", "extreme inner bounds MIN,MAX")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func parseSet(ideal, moderate, extreme string) (*thresholds.Set, error) {
	var raws [3]thresholds.RawRange
	for i, s := range []string{ideal, moderate, extreme} {
		raw, err := thresholds.ParseRange(s)
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}
	return thresholds.NewSet(raws[0], raws[1], raws[2]), nil
}
