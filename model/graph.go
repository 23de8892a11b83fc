package model

import (
	"fmt"
	"sort"
)

// Pair is a canonical unordered pair of node (or variable) labels.
// U is always the lesser label, so Pair values compare and hash
// consistently regardless of construction order.
type Pair struct {
	U string `json:"u"`
	V string `json:"v"`
}

// NewPair returns the canonical pair for the two labels.
func NewPair(u, v string) Pair {
	if v < u {
		u, v = v, u
	}
	return Pair{U: u, V: v}
}

// Graph is an undirected topology: a node set and an edge set, optionally
// carrying a human name and a 2D layout. Parallel edges and self-loops are
// invalid; Normalize deduplicates, Validate rejects loops and undeclared
// endpoints.
type Graph struct {
	Name   string                `json:"name,omitempty"`
	Nodes  []string              `json:"nodes"`
	Edges  []Pair                `json:"edges"`
	Layout map[string][2]float64 `json:"layout,omitempty"`
}

// NewGraph builds a graph from nodes and edges, canonicalizing and
// deduplicating both.
func NewGraph(nodes []string, edges []Pair) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges}
	g.Normalize()
	return g
}

// AddEdge inserts an edge, declaring missing endpoints.
func (g *Graph) AddEdge(u, v string) {
	p := NewPair(u, v)
	for _, e := range g.Edges {
		if e == p {
			return
		}
	}
	g.Edges = append(g.Edges, p)
	g.addNode(u)
	g.addNode(v)
}

func (g *Graph) addNode(n string) {
	for _, existing := range g.Nodes {
		if existing == n {
			return
		}
	}
	g.Nodes = append(g.Nodes, n)
}

// Normalize sorts nodes, canonicalizes edge orientation, sorts edges, and
// drops duplicates. Serialization and fingerprinting both rely on this
// producing one representation per structure.
func (g *Graph) Normalize() {
	sort.Strings(g.Nodes)
	g.Nodes = dedupeStrings(g.Nodes)

	for i, e := range g.Edges {
		g.Edges[i] = NewPair(e.U, e.V)
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].U != g.Edges[j].U {
			return g.Edges[i].U < g.Edges[j].U
		}
		return g.Edges[i].V < g.Edges[j].V
	})
	g.Edges = dedupePairs(g.Edges)
}

// Validate checks the graph invariants: edges reference only declared
// nodes and there are no self-loops.
func (g *Graph) Validate() error {
	declared := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		declared[n] = struct{}{}
	}
	for _, e := range g.Edges {
		if e.U == e.V {
			return fmt.Errorf("graph %q: self-loop on node %q", g.Name, e.U)
		}
		if _, ok := declared[e.U]; !ok {
			return fmt.Errorf("graph %q: edge references undeclared node %q", g.Name, e.U)
		}
		if _, ok := declared[e.V]; !ok {
			return fmt.Errorf("graph %q: edge references undeclared node %q", g.Name, e.V)
		}
	}
	return nil
}

// Degrees returns the degree of every declared node, including isolated
// nodes at degree zero.
func (g *Graph) Degrees() map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		deg[n] = 0
	}
	for _, e := range g.Edges {
		deg[e.U]++
		deg[e.V]++
	}
	return deg
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return len(g.Edges) }

func dedupeStrings(in []string) []string {
	out := in[:0]
	for i, s := range in {
		if i == 0 || s != in[i-1] {
			out = append(out, s)
		}
	}
	return out
}

func dedupePairs(in []Pair) []Pair {
	out := in[:0]
	for i, p := range in {
		if i == 0 || p != in[i-1] {
			out = append(out, p)
		}
	}
	return out
}
