// Package fingerprint computes deterministic structural identities for
// problems, graphs, and embeddings.
//
// Identity is derived from content alone: no random seeds, no process-local
// hash salts, no map iteration order. Two runs of the same process, or two
// different processes, produce identical fingerprints for identical content.
// Graph and problem identity is insensitive to node labels and to bias
// values; the scheme deliberately optimizes "same topology" reuse over
// "identical numeric problem" (a precision/recall trade-off, not a bug).
package fingerprint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/embergo/alias"
	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/model"
)

// ErrInvalidArtifactKind is returned when a reference carries neither a
// structured artifact nor a name.
var ErrInvalidArtifactKind = errors.New("invalid artifact kind")

// emptyStructure is the fingerprint of a structure with no nodes at all.
const emptyStructure = "0-0"

// Graph fingerprints an edge structure by its degree histogram: for each
// distinct degree value, the count of nodes with that degree, encoded as
// "<degree>-<count>" pairs sorted by descending degree and joined with "_".
// Relabeling nodes with any bijection yields the same fingerprint.
func Graph(g *model.Graph) string {
	return degreeHistogram(g.Degrees())
}

// Problem fingerprints a problem by the degree histogram of its
// variable-interaction structure. Bias values and the offset do not
// contribute; structurally identical problems share one fingerprint.
func Problem(p *model.Problem) string {
	return degreeHistogram(p.InteractionGraph().Degrees())
}

// Embedding fingerprints an embedding: quality-key digits plus a
// structural-hash suffix (see embedding.Embedding.Fingerprint).
func Embedding(e *embedding.Embedding) string {
	return e.Fingerprint()
}

func degreeHistogram(degrees map[string]int) string {
	if len(degrees) == 0 {
		return emptyStructure
	}

	hist := make(map[int]int)
	for _, d := range degrees {
		hist[d]++
	}

	values := make([]int, 0, len(hist))
	for d := range hist {
		values = append(values, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	parts := make([]string, 0, len(values))
	for _, d := range values {
		parts = append(parts, fmt.Sprintf("%d-%d", d, hist[d]))
	}
	return strings.Join(parts, "_")
}

// Engine resolves artifact references to fingerprints, consulting the
// alias table for named references and auto-registering the names of
// explicitly supplied artifacts that carry one.
type Engine struct {
	aliases *alias.Table
}

// NewEngine creates an engine backed by the given alias table.
func NewEngine(aliases *alias.Table) *Engine {
	return &Engine{aliases: aliases}
}

// ResolveSource resolves a source-graph reference.
func (e *Engine) ResolveSource(ref GraphRef) (string, error) {
	return e.resolveGraph(alias.KindSource, ref)
}

// ResolveTarget resolves a target-graph reference.
func (e *Engine) ResolveTarget(ref GraphRef) (string, error) {
	return e.resolveGraph(alias.KindTarget, ref)
}

func (e *Engine) resolveGraph(kind alias.Kind, ref GraphRef) (string, error) {
	switch {
	case ref.graph != nil:
		fp := Graph(ref.graph)
		if ref.graph.Name != "" {
			if err := e.aliases.Register(kind, ref.graph.Name, fp); err != nil {
				return "", err
			}
		}
		return fp, nil
	case ref.name != "":
		return e.aliases.Resolve(kind, ref.name), nil
	default:
		return "", fmt.Errorf("%w: graph reference is neither explicit nor named", ErrInvalidArtifactKind)
	}
}

// ResolveProblem resolves a problem reference.
func (e *Engine) ResolveProblem(ref ProblemRef) (string, error) {
	switch {
	case ref.problem != nil:
		fp := Problem(ref.problem)
		if ref.problem.Name != "" {
			if err := e.aliases.Register(alias.KindProblem, ref.problem.Name, fp); err != nil {
				return "", err
			}
		}
		return fp, nil
	case ref.name != "":
		return e.aliases.Resolve(alias.KindProblem, ref.name), nil
	default:
		return "", fmt.Errorf("%w: problem reference is neither explicit nor named", ErrInvalidArtifactKind)
	}
}

// ResolveEmbedding resolves an embedding reference.
func (e *Engine) ResolveEmbedding(ref EmbeddingRef) (string, error) {
	switch {
	case ref.embedding != nil:
		return Embedding(ref.embedding), nil
	case ref.name != "":
		return e.aliases.Resolve(alias.KindEmbedding, ref.name), nil
	default:
		return "", fmt.Errorf("%w: embedding reference is neither explicit nor named", ErrInvalidArtifactKind)
	}
}
