// Package cmd provides the entrypoint and CLI command configuration for the
// nodescope application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// newRootCommand builds the command tree.
func newRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "nodescope [SCOPE]",
		Short: "Threshold-aware charts for IoT sensor nodes.",
		Long: "Classify sensor readings against ideal, moderate and extreme " +
			"thresholds and chart them per node or rolled up by sensor type or domain.\n\n" +
			"SCOPE is node:NAME, sensor_type:NAME or domain:NAME. A bare NAME is a node.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`nodescope {{printf "version %s\n" .Version}}`)

	opts.register(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		switch name {
		case "redis-url":
			name = "redis"
		case "window":
			name = "lookback"
		}
		return pflag.NormalizedName(name)
	})

	var dash dashboardOptions
	dash.register(rootCmd.Flags())
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd, opts, dash, args)
	}

	rootCmd.AddCommand(
		newChartCommand(opts),
		newExportCommand(opts),
		newClassifyCommand(),
		newLoadCommand(opts),
		newScopesCommand(opts),
	)
	return rootCmd
}

// Execute initializes and runs the nodescope application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := newRootCommand(buildVersion(version, commit, date, builtBy))
	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

// startProfile starts CPU profiling when path is set and returns the
// function stopping it.
func startProfile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpuprofile file: %w", err)
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	return func() {
		pprof.StopCPUProfile()
		_ = file.Close()
	}, nil
}
