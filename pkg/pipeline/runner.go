package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/client"
	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/layout"
	"github.com/autonotex/conceptgraph/pkg/observability"
	"github.com/autonotex/conceptgraph/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and preview server can use this to avoid duplicating caching
// logic.
//
// The Runner is stateless except for the cache, backend client, and logger -
// it doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Backend *client.Client
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache, keyer, and backend client.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If backend is nil, a client for the default backend address is created.
func NewRunner(c cache.Cache, keyer cache.Keyer, backend *client.Client, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if backend == nil {
		backend = client.New("", c)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Backend: backend,
		Logger:  logger,
	}
}

// Execute runs the complete fetch → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	g, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Graph = g
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.FetchHit = fetchHit

	if graphData, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	r.Logger.Info("fetched graph",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"ranks", l.RankCount(),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchWithCacheInfo acquires the graph with caching and returns cache hit
// info. Local file input is adapted directly and never cached.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (graph.Graph, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return graph.Graph{}, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnFetchStart(ctx, opts.DocID)
	start := time.Now()

	g, hit, err := r.fetch(ctx, opts)
	observability.Pipeline().OnFetchComplete(ctx, opts.DocID, len(g.Nodes), time.Since(start), err)
	return g, hit, err
}

func (r *Runner) fetch(ctx context.Context, opts Options) (graph.Graph, bool, error) {
	if opts.InputPath != "" {
		data, err := os.ReadFile(opts.InputPath)
		if err != nil {
			return graph.Graph{}, false, fmt.Errorf("read %s: %w", opts.InputPath, err)
		}
		g, err := graph.Adapt(data)
		return g, false, err
	}

	cacheKey := r.Keyer.GraphKey(opts.DocID, cache.GraphKeyOpts{Subject: opts.Subject})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.UnmarshalGraph(data); err == nil {
				return g, true, nil // Cache hit
			}
		}
	}

	var (
		g   graph.Graph
		err error
	)
	if opts.DocID != "" {
		g, err = r.Backend.FetchGraph(ctx, opts.DocID, opts.Refresh)
	} else {
		var note *client.Note
		note, err = r.Backend.SubjectNote(ctx, opts.Subject, opts.Refresh)
		if err == nil {
			g, err = graph.Adapt(note.RawGraph())
		}
	}
	if err != nil {
		return graph.Graph{}, false, err
	}

	if data, err := graph.MarshalGraph(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
	}
	return g, false, nil // Cache miss
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) (graph.Graph, error) {
	g, _, err := r.FetchWithCacheInfo(ctx, opts)
	return g, err
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	observability.Pipeline().OnLayoutStart(ctx, len(g.Nodes))
	start := time.Now()

	graphData, _ := graph.MarshalGraph(g)
	graphHash := cache.Hash(graphData)
	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := graph.UnmarshalLayout(data); err == nil {
			observability.Pipeline().OnLayoutComplete(ctx, len(g.Nodes), time.Since(start), nil)
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}

	l := layout.Compute(g, opts.LayoutConfig())
	observability.Pipeline().OnLayoutComplete(ctx, len(g.Nodes), time.Since(start), nil)
	l.Style = opts.Style

	if data, err := graph.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}
	return l, false, nil // Cache miss
}

// ComputeLayout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g graph.Graph, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}

	rendered, err := renderFormats(ctx, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// renderFormats produces every requested format. DOT is generated once and
// reused for the image formats.
func renderFormats(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	dot := render.ToDOT(l, opts.RenderOptions())

	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatJSON:
			data, err := graph.MarshalLayout(l)
			if err != nil {
				return nil, fmt.Errorf("marshal layout: %w", err)
			}
			artifacts[format] = data
		case FormatSVG:
			data, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = data
		case FormatPNG:
			data, err := render.RenderPNG(ctx, dot)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data
		default:
			return nil, fmt.Errorf("invalid format: %q", format)
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
