package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/autonotex/conceptgraph/pkg/diagram"
	"github.com/autonotex/conceptgraph/pkg/graph"
)

// ToMermaid converts a graph to Mermaid flowchart source for embedding in
// exported notes. The engine must be configured with [diagram.Setup] first;
// its theme and security level are emitted as an init directive so the
// definition renders the same wherever it is pasted.
//
// Node IDs are replaced with synthetic identifiers since Mermaid is strict
// about identifier characters; labels carry the original text.
func ToMermaid(g graph.Graph) string {
	cfg := diagram.Current()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%%%{init: {\"theme\": %q, \"securityLevel\": %q}}%%%%\n", cfg.Theme, cfg.SecurityLevel)
	buf.WriteString("flowchart TD\n")

	ids := make(map[string]string, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		mid := fmt.Sprintf("n%d", i)
		ids[n.ID] = mid
		fmt.Fprintf(&buf, "    %s[%q]", mid, escapeMermaid(n.DisplayLabel()))
		if n.Type != "" && n.Type != graph.TypeConcept {
			fmt.Fprintf(&buf, ":::%s", n.Type)
		}
		buf.WriteString("\n")
	}

	for _, e := range g.Edges {
		src, okSrc := ids[e.Source]
		dst, okDst := ids[e.Target]
		if !okSrc || !okDst {
			continue
		}
		arrow := "-->"
		if e.MarkerEnd == "" {
			arrow = "---"
		}
		if e.Label != "" {
			fmt.Fprintf(&buf, "    %s %s|%s| %s\n", src, arrow, escapeMermaid(e.Label), dst)
		} else {
			fmt.Fprintf(&buf, "    %s %s %s\n", src, arrow, dst)
		}
	}

	for _, t := range []string{graph.TypeTopic, graph.TypeWarning} {
		s := graph.DefaultStyle(t)
		fmt.Fprintf(&buf, "    classDef %s fill:%s,stroke:%s\n", t, s.Fill, s.Stroke)
	}

	return buf.String()
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	return strings.ReplaceAll(s, "|", "#124;")
}
