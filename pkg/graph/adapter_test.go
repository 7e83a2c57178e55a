package graph

import "testing"

func TestAdaptCoercesNumericIDs(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": 0, "label": "Cell", "type": "topic"},
			{"id": "1", "label": "Mitosis"}
		],
		"edges": [
			{"id": "e0-1", "source": 0, "target": "1", "label": "includes"}
		]
	}`)

	g, err := Adapt(payload)
	if err != nil {
		t.Fatalf("Adapt: %v", err)
	}

	if len(g.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(g.Nodes))
	}
	if g.Nodes[0].ID != "0" || g.Nodes[1].ID != "1" {
		t.Errorf("node IDs = %q, %q; want \"0\", \"1\"", g.Nodes[0].ID, g.Nodes[1].ID)
	}
	if g.Edges[0].Source != "0" || g.Edges[0].Target != "1" {
		t.Errorf("edge endpoints = %q -> %q", g.Edges[0].Source, g.Edges[0].Target)
	}
}

func TestAdaptMissingArraysAreEmpty(t *testing.T) {
	for _, payload := range []string{`{}`, `{"nodes": null}`, `{"edges": null}`} {
		g, err := Adapt([]byte(payload))
		if err != nil {
			t.Fatalf("Adapt(%s): %v", payload, err)
		}
		if g.Nodes == nil || g.Edges == nil {
			t.Errorf("Adapt(%s): slices should be non-nil", payload)
		}
		if len(g.Nodes) != 0 || len(g.Edges) != 0 {
			t.Errorf("Adapt(%s): expected empty graph", payload)
		}
	}
}

func TestAdaptAttachesDefaults(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{"id": "a", "label": "Topic A", "type": "topic"},
			{"id": "b", "label": "Plain B"}
		],
		"edges": [
			{"source": "a", "target": "b"}
		]
	}`)

	g, err := Adapt(payload)
	if err != nil {
		t.Fatalf("Adapt: %v", err)
	}

	// Untyped nodes default to concept with concept styling
	if g.Nodes[1].Type != TypeConcept {
		t.Errorf("default type = %q, want %q", g.Nodes[1].Type, TypeConcept)
	}
	for _, n := range g.Nodes {
		if n.Style == nil || n.Style.Fill == "" || n.Style.Stroke == "" {
			t.Errorf("node %s missing default style", n.ID)
		}
	}
	if g.Nodes[0].Style.Fill == g.Nodes[1].Style.Fill {
		t.Error("topic and concept styles should differ")
	}

	// Edges get the default arrowhead and a generated ID
	e := g.Edges[0]
	if e.MarkerEnd != MarkerArrowClosed {
		t.Errorf("marker = %q, want %q", e.MarkerEnd, MarkerArrowClosed)
	}
	if e.ID == "" {
		t.Error("adapter should generate an edge ID when missing")
	}
}

func TestAdaptMalformedPayload(t *testing.T) {
	if _, err := Adapt([]byte(`{"nodes": "oops"}`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestCoerceID(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{float64(5), "5"},
		{float64(5.5), "5.5"},
		{nil, ""},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := coerceID(tt.in); got != tt.want {
			t.Errorf("coerceID(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	n := Node{ID: "n1", Label: "Photosynthesis"}
	if n.DisplayLabel() != "Photosynthesis" {
		t.Errorf("DisplayLabel = %q", n.DisplayLabel())
	}
	bare := Node{ID: "n2"}
	if bare.DisplayLabel() != "n2" {
		t.Errorf("DisplayLabel fallback = %q", bare.DisplayLabel())
	}
}
