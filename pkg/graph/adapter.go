package graph

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Data-Shape Adapter
// =============================================================================

// Default style attached to nodes by the adapter, keyed by node type.
// The rendering surface treats these as fallbacks.
var defaultStyles = map[string]NodeStyle{
	TypeTopic:   {Fill: "#e0f2fe", Stroke: "#0284c7", StrokeWidth: 1.5},
	TypeWarning: {Fill: "#fef3c7", Stroke: "#d97706", StrokeWidth: 1.5},
	TypeConcept: {Fill: "#ffffff", Stroke: "#64748b", StrokeWidth: 1},
}

// DefaultStyle returns the fallback style for a node type.
// Unknown types get the concept style.
func DefaultStyle(nodeType string) NodeStyle {
	if s, ok := defaultStyles[nodeType]; ok {
		return s
	}
	return defaultStyles[TypeConcept]
}

// rawGraph mirrors the analysis backend's loose payload shape.
// IDs may arrive as JSON strings or numbers depending on which extraction
// path produced the graph, so they are decoded untyped and coerced.
type rawGraph struct {
	Nodes []rawNode `json:"nodes"`
	Edges []rawEdge `json:"edges"`
}

type rawNode struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type rawEdge struct {
	ID     any    `json:"id"`
	Source any    `json:"source"`
	Target any    `json:"target"`
	Label  string `json:"label"`
}

// Adapt translates the backend's raw {nodes, edges} JSON into the canonical
// Graph shape:
//   - IDs are coerced to strings (numeric IDs accepted)
//   - default style metadata is attached per node type
//   - edges get a default arrowhead marker
//   - missing nodes/edges arrays are treated as empty, not as an error
//
// Adapt is pure and stateless; callers re-run it on every data change.
func Adapt(data []byte) (Graph, error) {
	var raw rawGraph
	if err := json.Unmarshal(data, &raw); err != nil {
		return Graph{}, fmt.Errorf("decode backend payload: %w", err)
	}
	return adaptRaw(raw), nil
}

// adaptRaw converts an already-decoded raw payload.
// The returned slices are always non-nil so downstream code can range over
// them without nil checks.
func adaptRaw(raw rawGraph) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(raw.Nodes)),
		Edges: make([]Edge, 0, len(raw.Edges)),
	}

	for _, rn := range raw.Nodes {
		n := Node{
			ID:    coerceID(rn.ID),
			Label: rn.Label,
			Type:  rn.Type,
		}
		if n.Type == "" {
			n.Type = TypeConcept
		}
		if style, ok := defaultStyles[n.Type]; ok {
			s := style
			n.Style = &s
		} else {
			s := defaultStyles[TypeConcept]
			n.Style = &s
		}
		g.Nodes = append(g.Nodes, n)
	}

	for i, re := range raw.Edges {
		e := Edge{
			ID:        coerceID(re.ID),
			Source:    coerceID(re.Source),
			Target:    coerceID(re.Target),
			Label:     re.Label,
			MarkerEnd: MarkerArrowClosed,
		}
		if e.ID == "" {
			e.ID = fmt.Sprintf("e%d-%s-%s", i, e.Source, e.Target)
		}
		g.Edges = append(g.Edges, e)
	}

	return g
}

// coerceID converts an untyped JSON value into a string node ID.
// JSON numbers decode as float64; integral values are rendered without a
// decimal point so "5" and 5 coerce to the same ID.
func coerceID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}
