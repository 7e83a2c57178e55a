// Package selection tracks the currently selected node in the interactive
// graph view.
//
// The machine has two states, Unselected and Selected(nodeID). Clicking a
// node selects it; clicking the already-selected node keeps it selected
// (clicks never toggle off); an explicit close and loading a new graph both
// return to Unselected. Entering the selected state notifies a registered
// Notifier with the node's label so the surrounding application can drive a
// concept-details lookup.
//
// The machine is owned by a single UI event loop and is not safe for
// concurrent use.
package selection

import "github.com/autonotex/conceptgraph/pkg/graph"

// Notifier receives one-way notifications when a node becomes selected.
// The notification carries the node's display label and the identifier of
// the document the graph was loaded from (empty when unknown). The receiver
// owns its own fetch and display lifecycle.
type Notifier interface {
	ConceptSelected(label, docID string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(label, docID string)

// ConceptSelected calls f.
func (f NotifierFunc) ConceptSelected(label, docID string) { f(label, docID) }

// Machine is the selection state machine.
// The zero value is usable and starts Unselected with no notifier.
type Machine struct {
	notifier Notifier
	docID    string
	selected string
	active   bool
}

// New creates a selection machine that notifies n on every selection.
// A nil notifier is allowed; selections then happen silently.
func New(n Notifier) *Machine {
	return &Machine{notifier: n}
}

// Click selects the given node and notifies the observer with its label.
// Clicking the node that is already selected re-enters the selected state
// rather than toggling it off; the observer is notified again.
func (m *Machine) Click(n graph.Node) {
	m.selected = n.ID
	m.active = true
	if m.notifier != nil {
		m.notifier.ConceptSelected(n.DisplayLabel(), m.docID)
	}
}

// Close clears the selection.
func (m *Machine) Close() {
	m.selected = ""
	m.active = false
}

// LoadGraph resets the selection for a newly loaded graph and records the
// document ID carried in subsequent selection notifications.
func (m *Machine) LoadGraph(docID string) {
	m.docID = docID
	m.selected = ""
	m.active = false
}

// Selected returns the selected node ID and whether a selection is active.
func (m *Machine) Selected() (string, bool) {
	return m.selected, m.active
}

// IsSelected reports whether the given node ID is the active selection.
// The rendering layer uses this to apply the highlight style.
func (m *Machine) IsSelected(id string) bool {
	return m.active && m.selected == id
}
