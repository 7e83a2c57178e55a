package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/pipeline"
)

// renderCommand produces visual artifacts from a graph or layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		docID    string
		subject  string
		formats  string
		style    string
		selected string
		output   string
		refresh  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a graph to SVG, PNG, DOT, or JSON",
		Long: `Render produces visualization artifacts from a laid-out knowledge graph.
Positions computed by the layout stage are pinned, so the rendered output
matches the interactive viewer exactly.

The input can be a layout file (produced by layout), or the full pipeline
can run from the backend via --doc or --subject. Use --selected to
highlight a node, the way the viewer highlights a clicked concept.`,
		Example: `  conceptgraph render layout.json
  conceptgraph render --doc abc123 --formats svg,png
  conceptgraph render layout.json --style dark --selected node-4`,
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
			opts.Formats = parseFormats(formats)
			opts.Selected = selected
			opts.Logger = loggerFromContext(ctx)
			if style != "" {
				opts.Style = style
			}

			spinner := newSpinnerWithContext(ctx, "Rendering...")
			spinner.Start()
			start := time.Now()

			var (
				artifacts map[string][]byte
				hit       bool
				base      string
			)
			if len(args) == 1 {
				// Render a pre-computed layout directly.
				if err := opts.ValidateForRender(); err != nil {
					spinner.Stop()
					return err
				}
				l, err := graph.ReadLayoutFile(args[0])
				if err != nil {
					spinner.StopWithError("Read layout failed: %v", err)
					return err
				}
				artifacts, hit, err = runner.RenderWithCacheInfo(ctx, l, opts)
				if err != nil {
					spinner.StopWithError("Render failed: %v", err)
					return err
				}
				base = strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			} else {
				if err := opts.ValidateForFetch(); err != nil {
					spinner.Stop()
					return err
				}
				result, err := runner.Execute(ctx, opts)
				if err != nil {
					spinner.StopWithError("Render failed: %v", err)
					return err
				}
				artifacts = result.Artifacts
				hit = result.CacheInfo.RenderHit
				base = "graph"
				if docID != "" {
					base = docID
				} else if subject != "" {
					base = sanitizeBase(subject)
				}
			}
			if output != "" {
				base = output
			}
			spinner.StopWithSuccess("Rendered %d artifact(s) %s", len(artifacts), elapsed(start))

			for _, format := range opts.Formats {
				path := base + "." + format
				if err := os.WriteFile(path, artifacts[format], 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			if hit {
				printDetail("artifacts served from cache")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&docID, "doc", "", "document ID to fetch and render")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to fetch and render")
	cmd.Flags().StringVarP(&formats, "formats", "f", pipeline.FormatSVG, "comma-separated output formats (svg, png, dot, json)")
	cmd.Flags().StringVar(&style, "style", "", "visual style (light or dark)")
	cmd.Flags().StringVar(&selected, "selected", "", "node ID to highlight")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file base name (without extension)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// sanitizeBase converts a free-form subject into a safe file base name.
func sanitizeBase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
