// Package layout computes hierarchical top-to-bottom positions for knowledge
// graphs.
//
// The engine assigns each node to a rank (horizontal layer) by longest-path
// distance from the graph's sources, orders nodes within a rank by input
// order, and spaces them with fixed gaps so boxes never overlap. The input is
// treated as a general directed graph: cycles are tolerated (back edges are
// ignored for rank computation) and edges referencing unknown node IDs are
// skipped silently.
//
// Layout is a pure function of (nodes, edges, config): identical input
// produces identical positions on every run.
package layout

import "github.com/autonotex/conceptgraph/pkg/graph"

// Default layout constants, in canvas units.
const (
	DefaultNodeWidth  = 172.0
	DefaultNodeHeight = 36.0
	DefaultNodeGap    = 80.0
	DefaultRankGap    = 100.0
)

// Config holds the fixed spacing parameters for a layout run.
// Every node is laid out with the same bounding box; NodeGap separates nodes
// within a rank, RankGap separates consecutive ranks.
type Config struct {
	NodeWidth  float64
	NodeHeight float64
	NodeGap    float64
	RankGap    float64
}

// DefaultConfig returns the standard layout configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		NodeGap:    DefaultNodeGap,
		RankGap:    DefaultRankGap,
	}
}

// withDefaults fills zero-valued fields with the standard constants.
func (c Config) withDefaults() Config {
	if c.NodeWidth == 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = DefaultNodeHeight
	}
	if c.NodeGap == 0 {
		c.NodeGap = DefaultNodeGap
	}
	if c.RankGap == 0 {
		c.RankGap = DefaultRankGap
	}
	return c
}

// Compute lays out the graph and returns positioned nodes alongside the
// unchanged edge list.
//
// An empty node list returns the input unchanged with no layout attempted.
// Any internal failure degrades to nodes positioned at the origin rather
// than propagating a panic into the host view.
func Compute(g graph.Graph, cfg Config) graph.Layout {
	if len(g.Nodes) == 0 {
		return graph.Layout{Nodes: g.Nodes, Edges: g.Edges}
	}
	cfg = cfg.withDefaults()

	l, ok := compute(g, cfg)
	if !ok {
		return fallback(g, cfg)
	}
	return l
}

// compute runs the actual layout. The recover guard converts a panic from
// unexpected input into a fallback result.
func compute(g graph.Graph, cfg Config) (l graph.Layout, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	ranks := assignRanks(g, g.NodeIndex())

	// Group node IDs by rank, preserving input order within each rank.
	// Duplicate IDs are placed once and share the first occurrence's slot.
	rows := make(map[int][]string, len(ranks))
	seen := make(map[string]bool, len(g.Nodes))
	maxRank := 0
	for _, n := range g.Nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		r := ranks[n.ID]
		rows[r] = append(rows[r], n.ID)
		if r > maxRank {
			maxRank = r
		}
	}

	// Widest rank defines the canvas width; narrower ranks are centered.
	maxCount := 0
	for _, ids := range rows {
		if len(ids) > maxCount {
			maxCount = len(ids)
		}
	}
	totalWidth := float64(maxCount)*cfg.NodeWidth + float64(maxCount-1)*cfg.NodeGap
	totalHeight := float64(maxRank+1)*cfg.NodeHeight + float64(maxRank)*cfg.RankGap

	positions := make(map[string]graph.Position, len(ranks))
	for r, ids := range rows {
		rowWidth := float64(len(ids))*cfg.NodeWidth + float64(len(ids)-1)*cfg.NodeGap
		offset := (totalWidth - rowWidth) / 2
		for i, id := range ids {
			centerX := offset + float64(i)*(cfg.NodeWidth+cfg.NodeGap) + cfg.NodeWidth/2
			centerY := float64(r)*(cfg.NodeHeight+cfg.RankGap) + cfg.NodeHeight/2
			positions[id] = graph.Position{
				X: centerX - cfg.NodeWidth/2,
				Y: centerY - cfg.NodeHeight/2,
			}
		}
	}

	out := graph.Layout{
		Nodes:  make([]graph.Node, len(g.Nodes)),
		Edges:  g.Edges,
		Ranks:  rows,
		Width:  totalWidth,
		Height: totalHeight,
	}
	for i, n := range g.Nodes {
		pos := positions[n.ID]
		n.Rank = ranks[n.ID]
		n.Position = &graph.Position{X: pos.X, Y: pos.Y}
		out.Nodes[i] = n
	}
	return out, true
}

// fallback leaves every node unpositioned at the origin.
func fallback(g graph.Graph, cfg Config) graph.Layout {
	out := graph.Layout{
		Nodes:  make([]graph.Node, len(g.Nodes)),
		Edges:  g.Edges,
		Width:  cfg.NodeWidth,
		Height: cfg.NodeHeight,
	}
	for i, n := range g.Nodes {
		n.Position = &graph.Position{}
		out.Nodes[i] = n
	}
	return out
}
