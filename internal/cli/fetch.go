package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/pipeline"
)

// fetchCommand downloads a knowledge graph from the backend and writes it
// as JSON.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		docID   string
		subject string
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a knowledge graph from the backend",
		Long: `Fetch downloads the knowledge graph for a document or subject from the
Autonotex backend, normalizes it, and writes the result as JSON.

Use --doc for a single document's graph or --subject for the aggregated
graph across a subject's notes. Fetched graphs are cached locally.`,
		Example: `  conceptgraph fetch --doc abc123
  conceptgraph fetch --subject "Database Systems" -o databases.json
  conceptgraph fetch --doc abc123 --refresh`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)

			runner, _, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := pipeline.Options{
				DocID:   docID,
				Subject: subject,
				Refresh: refresh,
				Logger:  loggerFromContext(ctx),
			}
			if err := opts.ValidateForFetch(); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Fetching graph...")
			spinner.Start()

			start := time.Now()
			g, hit, err := runner.FetchWithCacheInfo(ctx, opts)
			if err != nil {
				if spinner.Cancelled() {
					spinner.Stop()
					return nil
				}
				spinner.StopWithError("Fetch failed: %v", err)
				return err
			}
			spinner.StopWithSuccess("Fetched %s %s", sourceLabel(opts), elapsed(start))

			if err := graph.WriteGraphFile(g, output); err != nil {
				return fmt.Errorf("write graph: %w", err)
			}
			printFile(output)
			printStats(len(g.Nodes), len(g.Edges), hit)
			printNewline()
			printNextStep("Compute positions", fmt.Sprintf("conceptgraph layout %s", output))
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document ID to fetch")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to fetch the aggregated graph for")
	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output file path")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// sourceLabel describes where a graph came from, for status output.
func sourceLabel(opts pipeline.Options) string {
	switch {
	case opts.DocID != "":
		return fmt.Sprintf("document %s", StyleHighlight.Render(opts.DocID))
	case opts.Subject != "":
		return fmt.Sprintf("subject %s", StyleHighlight.Render(opts.Subject))
	default:
		return StyleHighlight.Render(opts.InputPath)
	}
}
