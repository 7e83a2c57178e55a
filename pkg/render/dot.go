package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/layout"
)

// Style names accepted by [Options.Style].
const (
	StyleLight = graph.StyleLight
	StyleDark  = graph.StyleDark
)

// Selection highlight colors. The selected node keeps its shape but gets a
// distinct fill and a heavier border.
const (
	selectedFill   = "#fde68a"
	selectedStroke = "#b45309"
	selectedPenW   = 2.4
)

const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Style selects the visual style ("light" or "dark"). Empty means light.
	Style string

	// Selected is the ID of the highlighted node, empty for none.
	Selected string

	// NodeWidth and NodeHeight are the box dimensions used when pinning
	// positions. Zero values fall back to the layout engine defaults.
	NodeWidth  float64
	NodeHeight float64
}

func (o Options) withDefaults() Options {
	if o.NodeWidth == 0 {
		o.NodeWidth = layout.DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = layout.DefaultNodeHeight
	}
	return o
}

// ValidStyle reports whether s names a known visual style.
// The empty string is valid and means the default (light) style.
func ValidStyle(s string) bool {
	return s == "" || s == StyleLight || s == StyleDark
}

// ToDOT converts a computed layout to Graphviz DOT format.
//
// Node positions are pinned with pos="x,y!" attributes so the engine keeps
// the computed layout; render the result with [RenderSVG] or [RenderPNG],
// which use the neato engine. Layout coordinates grow downward while
// Graphviz coordinates grow upward, so y is negated on output.
func ToDOT(l graph.Layout, opts Options) string {
	opts = opts.withDefaults()
	dark := opts.Style == StyleDark

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	if dark {
		buf.WriteString("  bgcolor=\"#0f172a\";\n")
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12, fontcolor=\"#e2e8f0\"];\n")
		buf.WriteString("  edge [color=\"#64748b\", fontcolor=\"#94a3b8\", fontsize=10];\n")
	} else {
		buf.WriteString("  bgcolor=\"transparent\";\n")
		buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=12];\n")
		buf.WriteString("  edge [color=\"#475569\", fontcolor=\"#475569\", fontsize=10];\n")
	}
	buf.WriteString("\n")

	for i := range l.Nodes {
		n := &l.Nodes[i]
		attrs := nodeAttrs(n, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *graph.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", n.DisplayLabel())}

	if n.Position != nil {
		// Graphviz pins the node center, not the top-left corner.
		cx := n.Position.X + opts.NodeWidth/2
		cy := n.Position.Y + opts.NodeHeight/2
		attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", cx, -cy))
		attrs = append(attrs,
			fmt.Sprintf("width=%.4f", opts.NodeWidth/pointsPerInch),
			fmt.Sprintf("height=%.4f", opts.NodeHeight/pointsPerInch),
			"fixedsize=true")
	}

	fill, stroke := nodeColors(n)
	penwidth := 1.0
	if opts.Selected != "" && n.ID == opts.Selected {
		fill, stroke = selectedFill, selectedStroke
		penwidth = selectedPenW
	}
	attrs = append(attrs,
		fmt.Sprintf("fillcolor=%q", fill),
		fmt.Sprintf("color=%q", stroke),
		fmt.Sprintf("penwidth=%.1f", penwidth))
	return attrs
}

func edgeAttrs(e graph.Edge) []string {
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if e.MarkerEnd == "" {
		attrs = append(attrs, "arrowhead=none")
	}
	return attrs
}

func nodeColors(n *graph.Node) (fill, stroke string) {
	if n.Style != nil {
		return n.Style.Fill, n.Style.Stroke
	}
	s := graph.DefaultStyle(n.Type)
	return s.Fill, s.Stroke
}
