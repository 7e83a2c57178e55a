package cli

import (
	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/preview"
)

// serveCommand starts the local preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		docID   string
		subject string
		input   string
		style   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview a graph in the browser",
		Long: `Serve starts a local HTTP server that renders the knowledge graph on
demand. Open the printed URL in a browser; append ?selected=<node-id> to
highlight a node, or ?refresh=1 to bypass the cache.`,
		Example: `  conceptgraph serve --doc abc123
  conceptgraph serve --subject "Database Systems" --addr :8080`,
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
			opts.InputPath = input
			opts.Logger = loggerFromContext(ctx)
			if style != "" {
				opts.Style = style
			}
			if err := opts.ValidateForFetch(); err != nil {
				return err
			}

			printInfo("Serving %s on %s", sourceLabel(opts), StyleHighlight.Render("http://localhost"+addr))
			printDetail("press Ctrl-C to stop")

			srv := preview.New(runner, opts, c.Logger)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":7421", "listen address")
	cmd.Flags().StringVar(&docID, "doc", "", "document ID to serve")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to serve")
	cmd.Flags().StringVar(&input, "input", "", "local graph JSON file to serve")
	cmd.Flags().StringVar(&style, "style", "", "visual style (light or dark)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}
