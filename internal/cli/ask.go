package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// askCommand asks the backend a free-form question about a document.
func (c *CLI) askCommand() *cobra.Command {
	var docID string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about a document",
		Long: `Ask sends a free-form question to the backend, which answers it from the
analyzed content of the given document. Answers are generated from the
document's own text; if the document does not cover the question, the
backend says so instead of guessing.`,
		Example: `  conceptgraph ask --doc abc123 "What guarantees does two-phase commit provide?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)
			question := strings.Join(args, " ")

			runner, _, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "Thinking...")
			spinner.Start()

			start := time.Now()
			answer, err := runner.Backend.AskQuestion(ctx, question, docID)
			if err != nil {
				if spinner.Cancelled() {
					spinner.Stop()
					return nil
				}
				spinner.StopWithError("Ask failed: %v", err)
				return err
			}
			spinner.StopWithSuccess("Answered %s", elapsed(start))

			printNewline()
			fmt.Println(answer.Answer)
			if answer.InsufficientContext {
				printNewline()
				printWarning("the document may not cover this question")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document ID to answer from")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}
