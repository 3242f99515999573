// FILE: eventweaver/src/internal/cli/root.go

// Package cli wires the weave commands: fuse prints the merged
// timeline, insights runs the anomaly heuristics, export writes the
// fused events to a JSON file.
package cli

import (
	"github.com/spf13/cobra"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"table", "json"}

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigFile string
	Quiet      bool
	LogLevel   string
}

// NewRootCommand creates the root command for the weave CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "weave",
		Short:         "Fuse heterogeneous logs into a shared timeline",
		Long:          "weave merges independently ordered log files into one globally time-ordered stream, filters it with a sandboxed expression language, and runs windowed anomaly heuristics over the result.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to TOML config file")
	cmd.PersistentFlags().BoolVar(&opts.Quiet, "quiet", false, "suppress diagnostic logging")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level override (debug|info|warn|error)")

	cmd.AddCommand(NewFuseCommand(opts))
	cmd.AddCommand(NewInsightsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
