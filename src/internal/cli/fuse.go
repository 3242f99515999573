// FILE: eventweaver/src/internal/cli/fuse.go
package cli

import (
	"fmt"

	"eventweaver/src/internal/format"

	"github.com/spf13/cobra"
)

// FuseOptions holds flags for the fuse command.
type FuseOptions struct {
	*RootOptions
	Query  string
	Limit  int
	Format string
}

// NewFuseCommand creates the fuse command.
func NewFuseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FuseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fuse",
		Short: "Print the fused timeline",
		Long: `Merge every configured source into one time-ordered event stream.

Example:
  weave fuse --config incident.toml
  weave fuse --config incident.toml --query "severity >= 2" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFuse(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Query, "query", "", "filter expression")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "limit number of events shown")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table|json)")

	return cmd
}

func runFuse(opts *FuseOptions, cmd *cobra.Command) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	p, err := newPipeline(opts.RootOptions)
	if err != nil {
		return err
	}
	defer p.Close()

	events, err := p.collect(opts.Query)
	if err != nil {
		return err
	}
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
	}

	if opts.Format == "json" {
		out, err := format.EventsJSON(events, 2)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to render events", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), format.EventTable(events, format.MessageBudget()))
	return nil
}
