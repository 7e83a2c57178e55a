package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/autonotex/conceptgraph/pkg/client"
	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/selection"
	"github.com/autonotex/conceptgraph/pkg/session"
)

// detailTimeout bounds the concept-details lookup triggered by a selection.
const detailTimeout = 15 * time.Second

// conceptDetailsMsg carries the result of a concept-details lookup.
type conceptDetailsMsg struct {
	details *client.ConceptDetails
	err     error
}

// GraphViewModel is the interactive graph browser. Nodes are listed in rank
// order, top rank first; selecting one fetches and shows its explanation.
type GraphViewModel struct {
	items   []graph.Node
	cursor  int
	machine *selection.Machine
	backend *client.Client
	store   session.Store
	sess    *session.Session
	docID   string
	logger  *log.Logger

	details    *client.ConceptDetails
	detailsErr error
	loading    bool

	width  int
	height int
}

// NewGraphView creates a viewer over a laid-out graph. The backend is used
// for concept-details lookups; store persists the viewing session and may be
// nil. A previous selection recorded in sess is restored.
func NewGraphView(l graph.Layout, sess *session.Session, backend *client.Client, store session.Store, logger *log.Logger) GraphViewModel {
	if logger == nil {
		logger = log.Default()
	}

	machine := selection.New(selection.NotifierFunc(func(label, docID string) {
		logger.Debug("concept selected", "label", label, "doc", docID)
	}))
	machine.LoadGraph(sess.DocID)

	m := GraphViewModel{
		items:   rankOrdered(l),
		machine: machine,
		backend: backend,
		store:   store,
		sess:    sess,
		docID:   sess.DocID,
		logger:  logger,
	}

	// Restore the previous selection if its node is still present.
	if sess.SelectedNode != "" {
		for i, n := range m.items {
			if n.ID == sess.SelectedNode {
				m.cursor = i
				m.machine.Click(n)
				break
			}
		}
	}
	return m
}

// rankOrdered flattens a layout into a node list ordered by rank, each rank
// left to right.
func rankOrdered(l graph.Layout) []graph.Node {
	ranks := make([]int, 0, len(l.Ranks))
	for r := range l.Ranks {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	nodes := make([]graph.Node, 0, len(l.Nodes))
	for _, r := range ranks {
		for _, id := range l.Ranks[r] {
			if n := l.Node(id); n != nil {
				nodes = append(nodes, *n)
			}
		}
	}
	if len(nodes) == 0 {
		nodes = append(nodes, l.Nodes...)
	}
	return nodes
}

// Init implements tea.Model. If a selection was restored, its details are
// fetched immediately.
func (m GraphViewModel) Init() tea.Cmd {
	if _, ok := m.machine.Selected(); ok && m.cursor < len(m.items) {
		return m.fetchDetails(m.items[m.cursor])
	}
	return nil
}

// Update implements tea.Model.
func (m GraphViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case conceptDetailsMsg:
		m.loading = false
		m.details = msg.details
		m.detailsErr = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.saveSession()
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case "enter", " ":
			if m.cursor >= len(m.items) {
				return m, nil
			}
			node := m.items[m.cursor]
			m.machine.Click(node)
			m.sess.Select(node.ID, node.DisplayLabel())
			m.details = nil
			m.detailsErr = nil
			m.loading = true
			return m, m.fetchDetails(node)

		case "esc":
			m.machine.Close()
			m.sess.Select("", "")
			m.details = nil
			m.detailsErr = nil
			m.loading = false
			return m, nil
		}
	}
	return m, nil
}

// fetchDetails looks up the explanation for a node in the background.
func (m GraphViewModel) fetchDetails(n graph.Node) tea.Cmd {
	backend, docID := m.backend, m.docID
	label := n.DisplayLabel()
	return func() tea.Msg {
		if backend == nil || docID == "" {
			return conceptDetailsMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), detailTimeout)
		defer cancel()
		details, err := backend.ConceptDetails(ctx, label, docID, false)
		return conceptDetailsMsg{details: details, err: err}
	}
}

// saveSession persists the viewing session, if a store is configured.
func (m GraphViewModel) saveSession() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.store.Set(ctx, m.sess); err != nil {
		m.logger.Warn("save session", "err", err)
	}
}

// View implements tea.Model.
func (m GraphViewModel) View() string {
	var b strings.Builder

	title := "Concept Graph"
	if m.docID != "" {
		title += " · " + m.docID
	}
	b.WriteString(StyleTitle.Render(title) + "\n\n")

	prevRank := -1
	for i, n := range m.items {
		if n.Rank != prevRank {
			if prevRank != -1 {
				b.WriteString("\n")
			}
			b.WriteString(StyleDim.Render(fmt.Sprintf("rank %d", n.Rank)) + "\n")
			prevRank = n.Rank
		}

		cursor := "  "
		if i == m.cursor {
			cursor = StyleHighlight.Render("❯ ")
		}

		label := n.DisplayLabel()
		switch {
		case m.machine.IsSelected(n.ID):
			label = StyleSelected.Render(label)
		case n.IsTopic():
			label = StyleValue.Render(label)
		default:
			label = StyleDim.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}

	b.WriteString("\n" + m.detailView())
	b.WriteString("\n" + StyleDim.Render("↑/↓ move · enter select · esc close · q quit") + "\n")
	return b.String()
}

// detailView renders the concept-details panel for the current selection.
func (m GraphViewModel) detailView() string {
	if _, ok := m.machine.Selected(); !ok {
		return StyleDim.Render("select a concept to see its explanation")
	}
	if m.loading {
		return StyleDim.Render("loading explanation...")
	}
	if m.detailsErr != nil {
		return StyleWarning.Render(fmt.Sprintf("explanation unavailable: %v", m.detailsErr))
	}
	if m.details == nil {
		return StyleDim.Render("no explanation available")
	}

	var b strings.Builder
	b.WriteString(StyleSelected.Render(m.details.Concept) + "\n")
	b.WriteString(wrapText(m.details.Explanation, m.wrapWidth()) + "\n")
	return b.String()
}

// wrapWidth returns the text wrap width for the details panel.
func (m GraphViewModel) wrapWidth() int {
	if m.width > 4 && m.width < 84 {
		return m.width - 4
	}
	return 80
}

// wrapText wraps s at word boundaries to at most width columns.
func wrapText(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
