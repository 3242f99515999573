// FILE: eventweaver/src/internal/cli/export.go
package cli

import (
	"fmt"

	"eventweaver/src/internal/format"

	"github.com/spf13/cobra"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Query  string
	Output string
	Indent int
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export fused events to a JSON file",
		Long: `Fuse every configured source and write the ordered events to a
JSON file. An output path ending in .gz is gzip-compressed.

Example:
  weave export --config incident.toml --output events.json
  weave export --config incident.toml --query "'timeout' in message" --output events.json.gz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Query, "query", "", "filter expression")
	cmd.Flags().StringVar(&opts.Output, "output", "", "file to write JSON events to (required)")
	cmd.Flags().IntVar(&opts.Indent, "indent", 2, "JSON indentation")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	p, err := newPipeline(opts.RootOptions)
	if err != nil {
		return err
	}
	defer p.Close()

	events, err := p.collect(opts.Query)
	if err != nil {
		return err
	}

	if err := format.WriteExport(opts.Output, events, opts.Indent); err != nil {
		return WrapExitError(ExitFailure, "export failed", err)
	}

	p.logger.Info("msg", "Export written",
		"component", "cli",
		"path", opts.Output,
		"events", len(events))

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(events), opts.Output)
	return nil
}
