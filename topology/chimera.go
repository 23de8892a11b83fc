package topology

import (
	"math/rand"

	"github.com/hupe1980/embergo/model"
)

// Chimera returns the Chimera graph C(m,n,t): an m x n grid of K(t,t)
// tiles with vertical couplers between row-adjacent tiles and horizontal
// couplers between column-adjacent tiles. Nodes are labeled by linear
// index, matching the usual device numbering.
func Chimera(m, n, t int) *model.Graph {
	g := &model.Graph{Name: "chimera"}

	// Linear index of qubit k on side s (0 = vertical, 1 = horizontal)
	// of tile (i, j).
	idx := func(i, j, s, k int) string {
		return label(((i*n)+j)*2*t + s*t + k)
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			// Intra-tile K(t,t).
			for a := 0; a < t; a++ {
				for b := 0; b < t; b++ {
					g.AddEdge(idx(i, j, 0, a), idx(i, j, 1, b))
				}
			}
			// Vertical couplers to the tile below.
			if i+1 < m {
				for k := 0; k < t; k++ {
					g.AddEdge(idx(i, j, 0, k), idx(i+1, j, 0, k))
				}
			}
			// Horizontal couplers to the tile to the right.
			if j+1 < n {
				for k := 0; k < t; k++ {
					g.AddEdge(idx(i, j, 1, k), idx(i, j+1, 1, k))
				}
			}
		}
	}
	g.Normalize()
	return g
}

// Rainier returns the D-Wave One "Rainier" device graph, C(4,4,4).
func Rainier() *model.Graph {
	g := Chimera(4, 4, 4)
	g.Name = "Rainier"
	return g
}

// Vesuvius returns the D-Wave Two "Vesuvius" device graph, C(8,8,4).
func Vesuvius() *model.Graph {
	g := Chimera(8, 8, 4)
	g.Name = "Vesuvius"
	return g
}

// DW2X returns the D-Wave 2X device graph, C(12,12,4).
func DW2X() *model.Graph {
	g := Chimera(12, 12, 4)
	g.Name = "DW2X"
	return g
}

// DW2000Q returns the D-Wave 2000Q device graph, C(16,16,4).
func DW2000Q() *model.Graph {
	g := Chimera(16, 16, 4)
	g.Name = "DW2000Q"
	return g
}

// Faulty degrades a device graph to the given node and edge yields,
// mimicking fabrication faults. The seed fully determines which nodes and
// edges are dropped; the name records the yields.
func Faulty(g *model.Graph, nodeYield, edgeYield float64, seed int64) *model.Graph {
	rng := rand.New(rand.NewSource(seed))

	dropNodes := int(float64(len(g.Nodes)) * (1 - nodeYield))
	dropEdges := int(float64(len(g.Edges)) * (1 - edgeYield))

	dead := make(map[string]struct{}, dropNodes)
	for _, i := range rng.Perm(len(g.Nodes))[:dropNodes] {
		dead[g.Nodes[i]] = struct{}{}
	}

	out := &model.Graph{Name: g.Name + "-faulty"}
	for _, n := range g.Nodes {
		if _, gone := dead[n]; !gone {
			out.Nodes = append(out.Nodes, n)
		}
	}

	kept := make([]model.Pair, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, gone := dead[e.U]; gone {
			continue
		}
		if _, gone := dead[e.V]; gone {
			continue
		}
		kept = append(kept, e)
	}
	if dropEdges > len(kept) {
		dropEdges = len(kept)
	}
	cut := make(map[int]struct{}, dropEdges)
	for _, i := range rng.Perm(len(kept))[:dropEdges] {
		cut[i] = struct{}{}
	}
	for i, e := range kept {
		if _, gone := cut[i]; !gone {
			out.Edges = append(out.Edges, e)
		}
	}

	if g.Layout != nil {
		out.Layout = make(map[string][2]float64, len(out.Nodes))
		for _, n := range out.Nodes {
			if pos, ok := g.Layout[n]; ok {
				out.Layout[n] = pos
			}
		}
	}
	out.Normalize()
	return out
}
