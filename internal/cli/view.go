package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/session"
)

// viewCommand opens the interactive graph browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		docID   string
		subject string
		input   string
		resume  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a graph interactively in the terminal",
		Long: `View opens an interactive browser over a knowledge graph. Nodes are
listed by rank, top rank first. Move with the arrow keys, press enter to
select a concept and see its explanation, esc to close it, q to quit.

The viewing session (document and selected concept) is saved on quit;
run view with --resume to pick up where you left off.`,
		Example: `  conceptgraph view --doc abc123
  conceptgraph view --resume`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.commandContext(cmd)

			runner, cfg, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}

			var sess *session.Session
			if resume && docID == "" && subject == "" && input == "" {
				sess, err = store.Latest(ctx)
				if err != nil {
					return fmt.Errorf("resume session: %w", err)
				}
				if sess == nil {
					return fmt.Errorf("no session to resume; run view with --doc first")
				}
				docID = sess.DocID
				subject = sess.Subject
			} else {
				sess = session.New(docID, subject)
			}

			opts := pipelineOptions(cfg)
			opts.DocID = docID
			opts.Subject = subject
			opts.InputPath = input
			opts.Logger = loggerFromContext(ctx)
			if err := opts.ValidateForFetch(); err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Loading graph...")
			spinner.Start()
			g, err := runner.Fetch(ctx, opts)
			if err != nil {
				spinner.StopWithError("Load failed: %v", err)
				return err
			}
			l, err := runner.ComputeLayout(ctx, g, opts)
			if err != nil {
				spinner.StopWithError("Layout failed: %v", err)
				return err
			}
			spinner.Stop()

			model := NewGraphView(l, sess, runner.Backend, store, c.Logger)
			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document ID to view")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to view")
	cmd.Flags().StringVar(&input, "input", "", "local graph JSON file to view")
	cmd.Flags().BoolVar(&resume, "resume", false, "resume the most recent viewing session")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}
