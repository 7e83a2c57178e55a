// Package cli implements the conceptgraph command-line interface.
//
// This package provides commands for fetching knowledge graphs from the
// analysis backend, computing layouts, rendering visualizations, viewing
// graphs interactively, and managing the local cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - fetch: Download a document's knowledge graph from the backend
//   - layout: Compute node positions for a graph
//   - render: Generate SVG, PNG, DOT, or JSON visualizations
//   - view: Browse a graph interactively in the terminal
//   - serve: Preview a graph in the browser
//   - upload: Send documents to the backend for analysis
//   - ask: Ask a question about a document
//   - subjects: List subjects with stored notes
//   - cache: Manage the local cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/autonotex/conceptgraph/pkg/buildinfo"
	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/client"
	"github.com/autonotex/conceptgraph/pkg/config"
	"github.com/autonotex/conceptgraph/pkg/diagram"
	"github.com/autonotex/conceptgraph/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "conceptgraph",
		Short:        "Conceptgraph visualizes knowledge graphs from study notes",
		Long:         `Conceptgraph is a CLI tool for fetching, laying out, and exploring the knowledge graphs the Autonotex backend extracts from study documents.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/conceptgraph/config.toml)")

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.uploadCommand())
	root.AddCommand(c.askCommand())
	root.AddCommand(c.subjectsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// commandContext attaches the CLI logger to the command's context so nested
// helpers can retrieve it with loggerFromContext.
func (c *CLI) commandContext(cmd *cobra.Command) context.Context {
	return withLogger(cmd.Context(), c.Logger)
}

// loadConfig loads the configuration, honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	return config.LoadDefault()
}

// newRunner creates a pipeline runner for CLI use. The diagram engine is
// configured as a side effect so note exports can render flowcharts.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, cfg, err
	}
	if err := diagram.Setup(cfg.Diagram.ToDiagram()); err != nil {
		c.Logger.Warn("diagram engine already configured", "err", err)
	}
	backend := client.New(cfg.BackendURL, store)
	return pipeline.NewRunner(store, nil, backend, c.Logger), cfg, nil
}

// newCache builds the cache backend selected by the configuration.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Cache.Backend == config.CacheBackendNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.Backend == config.CacheBackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// pipelineOptions builds pipeline options from the configuration.
func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		NodeWidth:  cfg.Layout.NodeWidth,
		NodeHeight: cfg.Layout.NodeHeight,
		NodeGap:    cfg.Layout.NodeGap,
		RankGap:    cfg.Layout.RankGap,
		Style:      cfg.Render.Style,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
