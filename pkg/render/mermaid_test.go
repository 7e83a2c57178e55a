package render

import (
	"strings"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/diagram"
	"github.com/autonotex/conceptgraph/pkg/graph"
)

func TestToMermaid(t *testing.T) {
	diagram.Reset()
	t.Cleanup(diagram.Reset)
	if err := diagram.Setup(diagram.Config{Theme: diagram.ThemeDark}); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "concept 1", Label: "ACID", Type: graph.TypeTopic},
			{ID: "concept 2", Label: "Durability"},
		},
		Edges: []graph.Edge{
			{Source: "concept 1", Target: "concept 2", Label: "ensures", MarkerEnd: graph.MarkerArrowClosed},
			{Source: "concept 1", Target: "ghost"},
		},
	}

	src := ToMermaid(g)

	if !strings.Contains(src, `"theme": "dark"`) {
		t.Errorf("ToMermaid() should emit the configured theme:\n%s", src)
	}
	if !strings.Contains(src, "flowchart TD\n") {
		t.Error("ToMermaid() missing flowchart header")
	}
	if !strings.Contains(src, `n0["ACID"]:::topic`) {
		t.Errorf("ToMermaid() missing typed node:\n%s", src)
	}
	if !strings.Contains(src, "n0 -->|ensures| n1") {
		t.Errorf("ToMermaid() missing labeled edge:\n%s", src)
	}
	if strings.Contains(src, "ghost") {
		t.Error("ToMermaid() should skip edges to unknown nodes")
	}
	if !strings.Contains(src, "classDef topic") {
		t.Error("ToMermaid() missing class definitions")
	}
}

func TestEscapeMermaid(t *testing.T) {
	got := escapeMermaid(`say "hi" | bye`)
	if strings.ContainsAny(got, `"|`) {
		t.Errorf("escapeMermaid() left unsafe characters: %q", got)
	}
}
