package layout

import (
	"reflect"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/graph"
)

func TestEngineRecomputesOnlyOnChange(t *testing.T) {
	e := NewEngine(DefaultConfig())

	g := graph.Graph{
		Nodes: []graph.Node{node("a"), node("b")},
		Edges: []graph.Edge{edge("a", "b")},
	}

	first, recomputed := e.Layout(g)
	if !recomputed {
		t.Error("first call should compute")
	}

	second, recomputed := e.Layout(g)
	if recomputed {
		t.Error("identical input should not recompute")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached result should equal the computed one")
	}

	// Adding a node changes the content hash
	g.Nodes = append(g.Nodes, node("c"))
	third, recomputed := e.Layout(g)
	if !recomputed {
		t.Error("changed input should recompute")
	}
	if third.Node("c") == nil {
		t.Error("new node missing from recomputed layout")
	}
}

func TestEngineReset(t *testing.T) {
	e := NewEngine(DefaultConfig())
	g := graph.Graph{Nodes: []graph.Node{node("a")}}

	e.Layout(g)
	e.Reset()

	if _, recomputed := e.Layout(g); !recomputed {
		t.Error("Layout after Reset should recompute")
	}
}

func TestEngineLatestWins(t *testing.T) {
	e := NewEngine(DefaultConfig())

	first := graph.Graph{Nodes: []graph.Node{node("a")}}
	second := graph.Graph{Nodes: []graph.Node{node("b")}}

	e.Layout(first)
	out, _ := e.Layout(second)
	if out.Node("b") == nil || out.Node("a") != nil {
		t.Error("latest snapshot should supersede the prior result")
	}
}
