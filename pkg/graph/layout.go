package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Layout - Positioned Graph Serialization
// =============================================================================

// Layout is the serialization format for a positioned knowledge graph.
//
// Nodes carry their computed top-left Position and Rank; Edges pass through
// from the input graph unchanged. Ranks maps each layer index to the node IDs
// in that layer, in left-to-right order. Width and Height are the extents of
// the occupied canvas area.
type Layout struct {
	Nodes []Node           `json:"nodes" bson:"nodes"`
	Edges []Edge           `json:"edges" bson:"edges"`
	Ranks map[int][]string `json:"ranks,omitempty" bson:"ranks,omitempty"`

	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`
}

// Node returns the layouted node with the given ID, or nil if absent.
func (l *Layout) Node(id string) *Node {
	for i := range l.Nodes {
		if l.Nodes[i].ID == id {
			return &l.Nodes[i]
		}
	}
	return nil
}

// RankCount returns the number of distinct ranks in the layout.
func (l *Layout) RankCount() int { return len(l.Ranks) }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout converts a Layout to indented JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalLayout deserializes JSON bytes to a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteLayout writes a Layout as indented JSON to an io.Writer.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteLayout(l, f)
}

// ReadLayoutFile reads a JSON file and returns the decoded Layout.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var l Layout
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return l, nil
}
