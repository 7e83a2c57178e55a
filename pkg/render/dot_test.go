package render

import (
	"strings"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/layout"
)

func testLayout(t *testing.T) graph.Layout {
	t.Helper()
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Label: "Normalization", Type: graph.TypeTopic},
			{ID: "b", Label: "1NF"},
		},
		Edges: []graph.Edge{
			{ID: "e0", Source: "a", Target: "b", Label: "includes", MarkerEnd: graph.MarkerArrowClosed},
		},
	}
	return layout.Compute(g, layout.Config{})
}

func TestToDOTPinnedPositions(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{})

	if !strings.Contains(dot, "digraph G {") {
		t.Error("ToDOT() missing digraph header")
	}
	// Node a sits at the origin; its pinned center is half the box size,
	// with y negated for Graphviz's upward axis.
	if !strings.Contains(dot, `pos="86.00,-18.00!"`) {
		t.Errorf("ToDOT() missing pinned position for node a:\n%s", dot)
	}
	if !strings.Contains(dot, "fixedsize=true") {
		t.Error("ToDOT() nodes should be fixed-size")
	}
	if !strings.Contains(dot, `"a" -> "b" [label="includes"]`) {
		t.Errorf("ToDOT() missing labeled edge:\n%s", dot)
	}
}

func TestToDOTSelectedHighlight(t *testing.T) {
	l := testLayout(t)

	plain := ToDOT(l, Options{})
	if strings.Contains(plain, selectedFill) {
		t.Error("unselected render should not use the highlight fill")
	}

	dot := ToDOT(l, Options{Selected: "b"})
	if !strings.Contains(dot, selectedFill) || !strings.Contains(dot, selectedStroke) {
		t.Errorf("selected node should use highlight colors:\n%s", dot)
	}
	if !strings.Contains(dot, "penwidth=2.4") {
		t.Error("selected node should have a heavier border")
	}
}

func TestToDOTDarkStyle(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{Style: StyleDark})
	if !strings.Contains(dot, `bgcolor="#0f172a"`) {
		t.Errorf("dark style should set a dark background:\n%s", dot)
	}
}

func TestToDOTDefaultStyles(t *testing.T) {
	dot := ToDOT(testLayout(t), Options{})
	topic := graph.DefaultStyle(graph.TypeTopic)
	if !strings.Contains(dot, topic.Fill) {
		t.Errorf("topic node should carry the topic fill %s:\n%s", topic.Fill, dot)
	}
}

func TestToDOTArrowheadNone(t *testing.T) {
	l := testLayout(t)
	l.Edges[0].MarkerEnd = ""
	dot := ToDOT(l, Options{})
	if !strings.Contains(dot, "arrowhead=none") {
		t.Errorf("edge without marker should disable the arrowhead:\n%s", dot)
	}
}

func TestValidStyle(t *testing.T) {
	for _, s := range []string{"", StyleLight, StyleDark} {
		if !ValidStyle(s) {
			t.Errorf("ValidStyle(%q) = false, want true", s)
		}
	}
	if ValidStyle("sepia") {
		t.Error(`ValidStyle("sepia") = true, want false`)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="10.00 -40.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg">ok</svg>`)
	got := string(normalizeViewBox(svg))
	if !strings.Contains(got, `viewBox="0 0 200.00 100.00"`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}
	if !strings.Contains(got, `width="200" height="100"`) {
		t.Errorf("normalizeViewBox() should set pixel dimensions: %s", got)
	}
}

func TestNormalizeViewBoxNoMatch(t *testing.T) {
	svg := []byte("<svg>plain</svg>")
	if got := normalizeViewBox(svg); string(got) != string(svg) {
		t.Errorf("normalizeViewBox() should leave unmatched SVG alone, got %s", got)
	}
}
