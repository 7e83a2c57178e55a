package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// uploadCommand sends documents to the backend for analysis.
func (c *CLI) uploadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Send documents to the backend for analysis",
		Long: `Upload sends one or more study documents (PDF or text) to the Autonotex
backend. The backend chunks and analyzes them, extracts a knowledge graph,
and generates notes and quiz questions. The returned document ID can be
used with fetch, view, and ask.`,
		Example: `  conceptgraph upload lecture-notes.pdf
  conceptgraph upload chapter1.pdf chapter2.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)

			runner, _, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Uploading %d file(s)...", len(args)))
			spinner.Start()

			start := time.Now()
			result, err := runner.Backend.Upload(ctx, args)
			if err != nil {
				if spinner.Cancelled() {
					spinner.Stop()
					return nil
				}
				spinner.StopWithError("Upload failed: %v", err)
				return err
			}
			spinner.StopWithSuccess("Analyzed %d chunk(s), extracted %d concept(s) %s",
				result.ChunkCount, result.ConceptCount, elapsed(start))

			printDetail("document ID: %s", StyleHighlight.Render(result.DocID))
			if result.Summary != "" {
				printNewline()
				fmt.Println(StyleTitle.Render("Summary"))
				fmt.Println(result.Summary)
			}
			printNewline()
			printNextStep("View the graph", fmt.Sprintf("conceptgraph view --doc %s", result.DocID))
			return nil
		},
	}

	return cmd
}
