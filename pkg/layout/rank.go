package layout

import "github.com/autonotex/conceptgraph/pkg/graph"

// assignRanks assigns every node to a rank by longest-path distance from the
// graph's sources.
//
// The computation runs in two phases:
//
//  1. Back edges are found with a depth-first search (white/gray/black
//     coloring) and excluded from the working edge set, so cyclic input
//     degrades to a spanning DAG instead of stalling the layering.
//  2. Kahn's algorithm layers the remaining DAG: sources start at rank 0
//     and each node lands one below its deepest parent.
//
// Edges whose endpoints are missing from the node set are skipped. Traversal
// follows node and edge input order throughout, so equal-rank ties resolve
// the same way on every run with the same input.
func assignRanks(g graph.Graph, idx map[string]int) map[string]int {
	adj := buildAdjacency(g, idx)

	dropBackEdges(g, adj)

	// Kahn layering over the acyclic remainder.
	inDegree := make(map[string]int, len(adj.order))
	for _, id := range adj.order {
		inDegree[id] = 0
	}
	for _, id := range adj.order {
		for _, child := range adj.out[id] {
			inDegree[child]++
		}
	}

	ranks := make(map[string]int, len(adj.order))
	queue := make([]string, 0, len(adj.order))
	for _, id := range adj.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range adj.out[curr] {
			if r := ranks[curr] + 1; r > ranks[child] {
				ranks[child] = r
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return ranks
}

// adjacency is the working edge index for rank assignment.
// order lists unique node IDs in input order; out maps a node to its
// children in edge input order.
type adjacency struct {
	order []string
	out   map[string][]string
	in    map[string]int
}

// buildAdjacency indexes valid edges. Edges referencing IDs absent from the
// node set are dropped here, which is the single point where dangling
// references leave the computation.
func buildAdjacency(g graph.Graph, idx map[string]int) *adjacency {
	a := &adjacency{
		order: make([]string, 0, len(idx)),
		out:   make(map[string][]string, len(idx)),
		in:    make(map[string]int, len(idx)),
	}

	seen := make(map[string]bool, len(idx))
	for _, n := range g.Nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		a.order = append(a.order, n.ID)
	}

	for _, e := range g.Edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		a.out[e.Source] = append(a.out[e.Source], e.Target)
		a.in[e.Target]++
	}

	return a
}

// dropBackEdges removes edges that close a cycle, using DFS with
// white/gray/black coloring. Sourceless nodes are expanded first so that the
// spanning structure keeps true roots at the top; remaining unvisited nodes
// (those inside source-free cycles) are expanded in input order.
func dropBackEdges(g graph.Graph, adj *adjacency) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(adj.order))
	type edge struct{ from, to string }
	var backEdges []edge

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range adj.out[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, edge{id, child})
			}
		}
		color[id] = black
	}

	for _, id := range adj.order {
		if adj.in[id] == 0 && color[id] == white {
			dfs(id)
		}
	}
	for _, id := range adj.order {
		if color[id] == white {
			dfs(id)
		}
	}

	for _, e := range backEdges {
		children := adj.out[e.from]
		for i, c := range children {
			if c == e.to {
				adj.out[e.from] = append(children[:i], children[i+1:]...)
				break
			}
		}
	}
}
