package graph

import (
	"bytes"
	"path/filepath"
	"testing"
)

func sampleGraph() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "0", Label: "Cell", Type: TypeTopic},
			{ID: "1", Label: "Mitosis", Type: TypeConcept},
		},
		Edges: []Edge{
			{ID: "e0-1", Source: "0", Target: "1", Label: "includes", MarkerEnd: MarkerArrowClosed},
		},
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := sampleGraph()

	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	got, err := UnmarshalGraph(data)
	if err != nil {
		t.Fatalf("UnmarshalGraph: %v", err)
	}

	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Fatalf("round trip lost elements: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
	if got.Nodes[0].Label != "Cell" || got.Edges[0].Label != "includes" {
		t.Error("round trip lost labels")
	}
	// Order must be preserved: layout tie-breaks depend on it
	if got.Nodes[0].ID != "0" || got.Nodes[1].ID != "1" {
		t.Error("round trip changed node order")
	}
}

func TestGraphFileRoundTrip(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if len(got.Nodes) != len(g.Nodes) {
		t.Errorf("got %d nodes, want %d", len(got.Nodes), len(g.Nodes))
	}
}

func TestNodeIndexFirstOccurrenceWins(t *testing.T) {
	g := Graph{Nodes: []Node{
		{ID: "a", Label: "first"},
		{ID: "b"},
		{ID: "a", Label: "second"},
	}}
	idx := g.NodeIndex()
	if len(idx) != 2 {
		t.Fatalf("index size = %d, want 2", len(idx))
	}
	if idx["a"] != 0 {
		t.Errorf("index[a] = %d, want 0", idx["a"])
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{
		Nodes: []Node{
			{ID: "0", Label: "Cell", Rank: 0, Position: &Position{X: 10, Y: 20}},
			{ID: "1", Label: "Mitosis", Rank: 1, Position: &Position{X: 30, Y: 156}},
		},
		Edges: []Edge{{ID: "e0-1", Source: "0", Target: "1"}},
		Ranks: map[int][]string{0: {"0"}, 1: {"1"}},
		Width: 172, Height: 172,
	}

	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	got, err := UnmarshalLayout(buf.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}

	n := got.Node("1")
	if n == nil {
		t.Fatal("node 1 missing after round trip")
	}
	if n.Position == nil || n.Position.X != 30 || n.Position.Y != 156 {
		t.Errorf("position = %+v", n.Position)
	}
	if got.RankCount() != 2 {
		t.Errorf("RankCount = %d, want 2", got.RankCount())
	}
	if got.Node("nope") != nil {
		t.Error("lookup of unknown node should return nil")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := Layout{Nodes: []Node{{ID: "x", Position: &Position{}}}, Width: 100, Height: 36}
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.Width != 100 {
		t.Errorf("Width = %v, want 100", got.Width)
	}
}
