package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// subjectsCommand lists subjects and their stored notes.
func (c *CLI) subjectsCommand() *cobra.Command {
	var (
		notes bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "subjects [subject]",
		Short: "List subjects with stored notes",
		Long: `Subjects lists the subjects the backend has notes for. With a subject
argument and --notes, it lists that subject's stored notes with their
document IDs, so you can pick one to fetch or view.`,
		Example: `  conceptgraph subjects
  conceptgraph subjects "Database Systems" --notes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)

			runner, _, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			if len(args) == 1 && notes {
				list, err := runner.Backend.ListNotes(ctx, args[0], limit)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("no notes stored for %s", StyleHighlight.Render(args[0]))
					return nil
				}
				fmt.Println(StyleTitle.Render(args[0]))
				for _, n := range list {
					line := "  " + StyleValue.Render(n.DocID)
					if n.Summary != "" {
						line += StyleDim.Render(" · " + truncate(n.Summary, 72))
					}
					fmt.Println(line)
				}
				return nil
			}

			subjects, err := runner.Backend.ListSubjects(ctx)
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				printInfo("no subjects yet; upload a document first")
				return nil
			}
			for _, s := range subjects {
				fmt.Println("  " + StyleValue.Render(s))
			}
			printNewline()
			printNextStep("List a subject's notes", "conceptgraph subjects <subject> --notes")
			return nil
		},
	}

	cmd.Flags().BoolVar(&notes, "notes", false, "list the subject's stored notes")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of notes to list")

	return cmd
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
