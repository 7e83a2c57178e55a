// Package pkg provides the core libraries for the conceptgraph client.
//
// # Overview
//
// Conceptgraph fetches the knowledge graphs the Autonotex backend extracts
// from study documents, lays them out hierarchically, and renders or browses
// them. The pkg directory is organized into these areas:
//
//  1. [graph] - Graph types, data-shape adapter, layout serialization
//  2. [layout] - Hierarchical rank assignment and positioning
//  3. [render] - DOT/SVG/PNG/Mermaid rendering with pinned positions
//  4. [selection] - Selection state machine for the interactive view
//  5. [client] - HTTP client for the analysis backend
//  6. [pipeline] - Orchestration (fetch → layout → render) with caching
//  7. [cache], [session], [config], [diagram] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Autonotex backend (or local JSON)
//	         ↓
//	    [graph] package (adapt raw shapes into Graph)
//	         ↓
//	    [layout] package (ranks + positions)
//	         ↓
//	    [render] package (DOT → SVG/PNG, Mermaid)
//	         ↓
//	    files, preview server, or terminal viewer
//
// # Quick Start
//
//	runner := pipeline.NewRunner(store, nil, backend, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//		DocID:   "abc123",
//		Formats: []string{pipeline.FormatSVG},
//	})
package pkg
