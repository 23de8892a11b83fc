// Package topology generates standard graph topologies used as benchmark
// sources and device targets.
//
// Given a size, each generator builds the closest graph in its family.
// Some graphs include a 2D layout (a position per node) for plotting
// tools; layouts carry no identity, fingerprints ignore them.
package topology

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hupe1980/embergo/model"
)

func label(i int) string { return fmt.Sprintf("%d", i) }

func label2(i, j int) string { return fmt.Sprintf("%d,%d", i, j) }

func label3(i, j, k int) string { return fmt.Sprintf("%d,%d,%d", i, j, k) }

// Complete returns the complete graph on n nodes.
func Complete(n int) *model.Graph {
	g := &model.Graph{Name: "complete"}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.AddEdge(label(i), label(j))
		}
	}
	if n == 1 {
		g.Nodes = []string{label(0)}
	}
	g.Normalize()
	return g
}

// Bipartite returns the complete bipartite graph K(m,n). With m < 0 the
// n nodes are split evenly.
func Bipartite(n, m int) *model.Graph {
	if m < 0 {
		n = n / 2
		m = n
	}
	g := &model.Graph{Name: "bipartite"}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			g.AddEdge(label(i), label(m+j))
		}
	}
	g.Normalize()
	return g
}

// Grid2D returns the rows x cols grid graph with its natural layout.
func Grid2D(rows, cols int) *model.Graph {
	g := &model.Graph{Name: "grid2d", Layout: make(map[string][2]float64)}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			node := label2(i, j)
			g.Nodes = append(g.Nodes, node)
			g.Layout[node] = [2]float64{float64(i), float64(j)}
			if i+1 < rows {
				g.AddEdge(node, label2(i+1, j))
			}
			if j+1 < cols {
				g.AddEdge(node, label2(i, j+1))
			}
		}
	}
	g.Normalize()
	return g
}

// Grid3D returns the x*y*z grid graph, projected onto 2D for its layout.
func Grid3D(x, y, z int) *model.Graph {
	g := &model.Graph{Name: "grid3d", Layout: make(map[string][2]float64)}
	for i := 0; i < x; i++ {
		for j := 0; j < y; j++ {
			for k := 0; k < z; k++ {
				node := label3(i, j, k)
				g.Nodes = append(g.Nodes, node)
				g.Layout[node] = [2]float64{float64(i + k), float64(j + k)}
				if i+1 < x {
					g.AddEdge(node, label3(i+1, j, k))
				}
				if j+1 < y {
					g.AddEdge(node, label3(i, j+1, k))
				}
				if k+1 < z {
					g.AddEdge(node, label3(i, j, k+1))
				}
			}
		}
	}
	g.Normalize()
	return g
}

// Hypercube returns the hypercube graph of the given dimension; nodes are
// labeled by their binary coordinates.
func Hypercube(dim int) *model.Graph {
	g := &model.Graph{Name: "hypercube"}
	total := 1 << dim
	bits := func(v int) string {
		s := make([]byte, dim)
		for b := 0; b < dim; b++ {
			if v&(1<<b) != 0 {
				s[dim-1-b] = '1'
			} else {
				s[dim-1-b] = '0'
			}
		}
		return string(s)
	}
	for v := 0; v < total; v++ {
		g.Nodes = append(g.Nodes, bits(v))
		for b := 0; b < dim; b++ {
			w := v ^ (1 << b)
			if w > v {
				g.AddEdge(bits(v), bits(w))
			}
		}
	}
	g.Normalize()
	return g
}

// HypercubeFor returns the hypercube closest to n nodes.
func HypercubeFor(n int) *model.Graph {
	return Hypercube(int(math.Round(math.Log2(float64(n)))))
}

// Rooks returns the n x m rooks graph (cartesian product of two complete
// graphs): nodes attack along rows and columns.
func Rooks(n, m int) *model.Graph {
	g := &model.Graph{Name: "rooks", Layout: make(map[string][2]float64)}
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			node := label2(i, j)
			g.Nodes = append(g.Nodes, node)
			g.Layout[node] = [2]float64{float64(i), float64(j)}
			for jj := j + 1; jj < m; jj++ {
				g.AddEdge(node, label2(i, jj))
			}
			for ii := i + 1; ii < n; ii++ {
				g.AddEdge(node, label2(ii, j))
			}
		}
	}
	g.Normalize()
	return g
}

// Prism returns the k x m periodic grid (a prism over a k-cycle), with a
// concentric-shell layout.
func Prism(k, m int) *model.Graph {
	g := &model.Graph{Name: "prism", Layout: make(map[string][2]float64)}
	for j := 0; j < k; j++ {
		for i := 0; i < m; i++ {
			node := label2(j, i)
			g.Nodes = append(g.Nodes, node)
			angle := 2 * math.Pi * float64(j) / float64(k)
			radius := float64(i + 1)
			g.Layout[node] = [2]float64{radius * math.Cos(angle), radius * math.Sin(angle)}
			g.AddEdge(node, label2((j+1)%k, i))
			if i+1 < m {
				g.AddEdge(node, label2(j, i+1))
			}
		}
	}
	g.Normalize()
	return g
}

// Random returns a random graph on n nodes where each node draws between 1
// and maxDegree-1 neighbors. maxDegree <= 0 defaults to n/4. The seed
// fully determines the result.
func Random(n, maxDegree int, seed int64) *model.Graph {
	if maxDegree <= 0 {
		maxDegree = n / 4
	}
	if maxDegree < 2 {
		maxDegree = 2
	}
	rng := rand.New(rand.NewSource(seed))

	g := &model.Graph{Name: fmt.Sprintf("random%d", maxDegree)}
	for v := 0; v < n; v++ {
		g.Nodes = append(g.Nodes, label(v))
	}
	for v := 0; v < n; v++ {
		degree := 1 + rng.Intn(maxDegree-1)
		perm := rng.Perm(n)
		for _, w := range perm {
			if degree == 0 {
				break
			}
			if w == v {
				continue
			}
			g.AddEdge(label(v), label(w))
			degree--
		}
	}
	g.Normalize()
	return g
}
