package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/graph"
)

// layoutCommand computes node positions for a graph and writes the layout
// as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		docID   string
		subject string
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute node positions for a graph",
		Long: `Layout assigns hierarchical positions to each node of a knowledge graph:
nodes are grouped into ranks by dependency depth and arranged top to
bottom, each rank centered horizontally.

The graph can come from a local JSON file (produced by fetch) or directly
from the backend via --doc or --subject.`,
		Example: `  conceptgraph layout graph.json
  conceptgraph layout --doc abc123 -o layout.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)

			runner, cfg, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipelineOptions(cfg)
			opts.DocID = docID
			opts.Subject = subject
			opts.Refresh = refresh
			opts.Logger = loggerFromContext(ctx)
			if len(args) == 1 {
				opts.InputPath = args[0]
			}
			if err := opts.ValidateForFetch(); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Computing layout...")
			spinner.Start()

			start := time.Now()
			g, _, err := runner.FetchWithCacheInfo(ctx, opts)
			if err != nil {
				spinner.StopWithError("Fetch failed: %v", err)
				return err
			}
			l, hit, err := runner.LayoutWithCacheInfo(ctx, g, opts)
			if err != nil {
				spinner.StopWithError("Layout failed: %v", err)
				return err
			}
			spinner.StopWithSuccess("Positioned %d concepts in %d ranks %s",
				len(l.Nodes), l.RankCount(), elapsed(start))

			if err := graph.WriteLayoutFile(l, output); err != nil {
				return fmt.Errorf("write layout: %w", err)
			}
			printFile(output)
			printDetail("canvas %.0f x %.0f", l.Width, l.Height)
			printStats(len(l.Nodes), len(l.Edges), hit)
			printNewline()
			printNextStep("Render it", fmt.Sprintf("conceptgraph render %s", output))
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document ID to fetch and lay out")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to fetch and lay out")
	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file path")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}
