// Package pipeline provides the core visualization pipeline for conceptgraph.
//
// This package implements the complete fetch → layout → render pipeline that
// can be used by CLI, preview server, and viewer components. By centralizing
// this logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Acquire the knowledge graph (backend document, subject, or local file)
//  2. Layout: Compute visual positions for the graph
//  3. Render: Generate output in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, backend, logger)
//	opts := pipeline.Options{
//	    DocID:   "abc123",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Fetch only
//	g, err := runner.Fetch(ctx, opts)
//
//	// Layout with an existing graph
//	l, err := runner.ComputeLayout(ctx, g, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/layout"
	"github.com/autonotex/conceptgraph/pkg/render"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// DefaultStyle is the default visual style.
const DefaultStyle = render.StyleLight

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for preview server requests.
type Options struct {
	// Fetch options: exactly one source must be set. DocID fetches a
	// document's graph from the backend, Subject fetches the aggregated
	// subject graph, InputPath adapts a local JSON file.
	DocID     string `json:"doc_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	InputPath string `json:"input_path,omitempty"`
	Refresh   bool   `json:"refresh,omitempty"`

	// Layout options
	NodeWidth  float64 `json:"node_width,omitempty"`
	NodeHeight float64 `json:"node_height,omitempty"`
	NodeGap    float64 `json:"node_gap,omitempty"`
	RankGap    float64 `json:"rank_gap,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Style    string   `json:"style,omitempty"`
	Selected string   `json:"selected,omitempty"` // highlighted node ID

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the adapted knowledge graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout contains the computed node positions.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !render.ValidStyle(style) {
		return fmt.Errorf("invalid style: %q (must be one of: light, dark)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for the fetch stage.
func (o *Options) ValidateForFetch() error {
	if o.DocID == "" && o.Subject == "" && o.InputPath == "" {
		return fmt.Errorf("doc_id, subject, or input_path is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.NodeWidth == 0 {
		o.NodeWidth = layout.DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = layout.DefaultNodeHeight
	}
	if o.NodeGap == 0 {
		o.NodeGap = layout.DefaultNodeGap
	}
	if o.RankGap == 0 {
		o.RankGap = layout.DefaultRankGap
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// LayoutConfig returns the layout engine configuration for these options.
func (o *Options) LayoutConfig() layout.Config {
	return layout.Config{
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		NodeGap:    o.NodeGap,
		RankGap:    o.RankGap,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		NodeGap:    o.NodeGap,
		RankGap:    o.RankGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Style:    o.Style,
		Selected: o.Selected,
	}
}

// RenderOptions returns the render package options for these options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Style:      o.Style,
		Selected:   o.Selected,
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
	}
}
