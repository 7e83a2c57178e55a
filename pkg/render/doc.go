// Package render turns computed layouts into viewable artifacts.
//
// # Overview
//
// The layout engine decides where every node goes; this package draws the
// result. It produces:
//
//   - Graphviz DOT source with pinned node positions ([ToDOT])
//   - SVG and PNG images rendered in-process ([RenderSVG], [RenderPNG])
//   - Mermaid flowchart source for embedding in notes ([ToMermaid])
//
// # Pinned positions
//
// Generated DOT pins every node with a pos="x,y!" attribute so the external
// engine respects the computed layout instead of running its own. Rendering
// therefore uses the neato engine, which honors pinned positions; the dot
// engine would recompute ranks and discard them.
//
// # Selection highlight
//
// When [Options.Selected] names a node, that node is drawn with a distinct
// fill and a heavier border so the active concept stands out in exported
// images the same way it does in the interactive viewer.
//
// # Dependencies
//
// SVG and PNG rendering use [github.com/goccy/go-graphviz], which embeds
// Graphviz; no external binaries are required.
package render
