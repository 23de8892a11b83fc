// Package bench runs embedding methods against benchmark topologies and
// wraps their output into store-ready embedding artifacts.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/fingerprint"
	"github.com/hupe1980/embergo/model"
	"github.com/hupe1980/embergo/topology"
)

// Embedder is the external minor-embedding collaborator: given a source
// and a target graph and a seed, it returns a chain per source node. The
// store wraps its output but does not implement it.
type Embedder func(ctx context.Context, source, target *model.Graph, seed int64) (map[string][]string, error)

// EmbedAndReport runs method against (source, target), timing it and
// stamping the run report (method name, runtime, validity) into the
// returned embedding's properties.
func EmbedAndReport(ctx context.Context, method Embedder, methodName string, source, target *model.Graph, seed int64) (*embedding.Embedding, error) {
	start := time.Now()
	chains, err := method(ctx, source, target, seed)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("bench: method %s: %w", methodName, err)
	}

	emb := embedding.New(fingerprint.Graph(source), fingerprint.Graph(target), chains)
	emb.WithProperty("valid", emb.Validate() == nil && len(chains) > 0).
		WithProperty("embedding_method", methodName).
		WithProperty("embedding_runtime", elapsed.Seconds()).
		WithProperty("embedding_seed", seed)
	return emb, nil
}

// Geometry returns the geometric benchmark set: rooks 8x8, prism 24x12,
// grid 16x16, grid3d 10x10x2, and the 128-node hypercube.
func Geometry() []*model.Graph {
	return []*model.Graph{
		topology.Rooks(8, 8),
		topology.Prism(24, 12),
		topology.Grid2D(16, 16),
		topology.Grid3D(10, 10, 2),
		topology.HypercubeFor(128),
	}
}

// Cliques returns complete graphs K(n) for n in [from, to].
func Cliques(from, to int) []*model.Graph {
	var out []*model.Graph
	for n := from; n <= to; n++ {
		g := topology.Complete(n)
		g.Name = "clique"
		out = append(out, g)
	}
	return out
}

// Bicliques returns complete bipartite graphs K(n,n) for n in [from, to].
func Bicliques(from, to int) []*model.Graph {
	var out []*model.Graph
	for n := from; n <= to; n++ {
		g := topology.Bipartite(n, n)
		g.Name = "biclique"
		out = append(out, g)
	}
	return out
}
