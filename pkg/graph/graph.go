// Package graph defines the canonical knowledge-graph types for conceptgraph.
//
// The analysis backend emits a raw {nodes, edges} JSON document per analyzed
// upload or subject. This package owns the canonical in-memory shape of that
// graph, the adapter that normalizes the backend payload (see adapter.go),
// and the Layout serialization format consumed by renderers and the preview
// server.
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node types emitted by the analysis backend.
const (
	TypeConcept = "concept"
	TypeTopic   = "topic"
	TypeWarning = "warning"
)

// Visual styles for rendering.
const (
	StyleLight = "light"
	StyleDark  = "dark"
)

// MarkerArrowClosed is the default arrowhead marker attached to edges by the
// adapter. The rendering surface interprets it as a filled arrow at the edge
// target.
const MarkerArrowClosed = "arrowclosed"

// =============================================================================
// Graph - Knowledge Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for knowledge graphs.
// Used for API payloads, caching, and file-based snapshots.
//
// Node and edge order is preserved from the source: layout tie-breaking is
// defined in terms of input order, so reordering would change positions.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeIndex returns a lookup map from node ID to its index in Nodes.
// When duplicate IDs are present the first occurrence wins.
func (g *Graph) NodeIndex() map[string]int {
	idx := make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, seen := idx[n.ID]; !seen {
			idx[n.ID] = i
		}
	}
	return idx
}

// =============================================================================
// Node
// =============================================================================

// Position is a point in the 2D canvas coordinate space.
// For layouted nodes it is the node's rendered top-left corner.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a concept in the knowledge graph.
//
// Position is nil until a layout has been computed; a layouted node carries
// its top-left corner in canvas coordinates. Rank is the horizontal layer
// assigned by the layout engine (0 = top).
type Node struct {
	ID       string    `json:"id" bson:"id"`
	Label    string    `json:"label,omitempty" bson:"label,omitempty"` // Display text, not unique
	Type     string    `json:"type,omitempty" bson:"type,omitempty"`   // "concept", "topic", "warning"
	Rank     int       `json:"rank,omitempty" bson:"rank,omitempty"`
	Position *Position `json:"position,omitempty" bson:"position,omitempty"`

	// Style carries default presentation metadata attached by the adapter.
	// The rendering surface may override it per node.
	Style *NodeStyle `json:"style,omitempty" bson:"style,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// IsTopic reports whether the backend flagged this node as a main topic.
func (n *Node) IsTopic() bool { return n.Type == TypeTopic }

// NodeStyle is presentation metadata for a node.
type NodeStyle struct {
	Fill        string  `json:"fill,omitempty" bson:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty" bson:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty" bson:"stroke_width,omitempty"`
}

// =============================================================================
// Edge
// =============================================================================

// Edge is a directed relationship between two concepts.
// Source and Target reference node IDs; duplicate edges between the same
// pair are permitted and preserved.
type Edge struct {
	ID        string `json:"id" bson:"id"`
	Source    string `json:"source" bson:"source"`
	Target    string `json:"target" bson:"target"`
	Label     string `json:"label,omitempty" bson:"label,omitempty"`
	MarkerEnd string `json:"marker_end,omitempty" bson:"marker_end,omitempty"`
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a Graph to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
// The payload must already be in canonical form; use Adapt for raw backend
// payloads with loose typing.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// WriteGraph writes a Graph as indented JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraphFile writes a Graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
