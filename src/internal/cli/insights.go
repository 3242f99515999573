// FILE: eventweaver/src/internal/cli/insights.go
package cli

import (
	"fmt"

	"eventweaver/src/internal/analysis"
	"eventweaver/src/internal/format"

	"github.com/spf13/cobra"
)

// InsightsOptions holds flags for the insights command.
type InsightsOptions struct {
	*RootOptions
	Query  string
	Format string
}

// NewInsightsCommand creates the insights command.
func NewInsightsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InsightsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Run anomaly heuristics over the fused timeline",
		Long: `Fuse every configured source, then run the enabled detectors
(time gaps, bursts, severity regressions) over the ordered stream.

Example:
  weave insights --config incident.toml
  weave insights --config incident.toml --query "source == 'api'" --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Query, "query", "", "filter expression")
	cmd.Flags().StringVar(&opts.Format, "format", "table", "output format (table|json)")

	return cmd
}

func runInsights(opts *InsightsOptions, cmd *cobra.Command) error {
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

	insights := analysis.Run(events, p.heuristics())
	p.logger.Info("msg", "Heuristics complete",
		"component", "cli",
		"events", len(events),
		"insights", len(insights))

	if opts.Format == "json" {
		out, err := format.InsightsJSON(insights, 2)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to render insights", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), format.InsightTable(insights))
	return nil
}
