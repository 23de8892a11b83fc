package fingerprint

import (
	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/model"
)

// GraphRef is a tagged reference to a graph: either an explicit object or
// a name (an alias, or a literal fingerprint). The variant is fixed at
// construction; resolution happens once at the store boundary.
type GraphRef struct {
	graph *model.Graph
	name  string
}

// GraphOf references an explicit graph.
func GraphOf(g *model.Graph) GraphRef { return GraphRef{graph: g} }

// GraphNamed references a graph by alias or literal fingerprint.
func GraphNamed(name string) GraphRef { return GraphRef{name: name} }

// Graph returns the explicit graph, or nil for a named reference.
func (r GraphRef) Graph() *model.Graph { return r.graph }

// IsZero reports whether the reference carries nothing.
func (r GraphRef) IsZero() bool { return r.graph == nil && r.name == "" }

// ProblemRef is a tagged reference to a problem.
type ProblemRef struct {
	problem *model.Problem
	name    string
}

// ProblemOf references an explicit problem.
func ProblemOf(p *model.Problem) ProblemRef { return ProblemRef{problem: p} }

// ProblemNamed references a problem by alias or literal fingerprint.
func ProblemNamed(name string) ProblemRef { return ProblemRef{name: name} }

// Problem returns the explicit problem, or nil for a named reference.
func (r ProblemRef) Problem() *model.Problem { return r.problem }

// IsZero reports whether the reference carries nothing.
func (r ProblemRef) IsZero() bool { return r.problem == nil && r.name == "" }

// EmbeddingRef is a tagged reference to an embedding.
type EmbeddingRef struct {
	embedding *embedding.Embedding
	name      string
}

// EmbeddingOf references an explicit embedding.
func EmbeddingOf(e *embedding.Embedding) EmbeddingRef { return EmbeddingRef{embedding: e} }

// EmbeddingNamed references an embedding by alias or literal fingerprint.
func EmbeddingNamed(name string) EmbeddingRef { return EmbeddingRef{name: name} }

// Embedding returns the explicit embedding, or nil for a named reference.
func (r EmbeddingRef) Embedding() *embedding.Embedding { return r.embedding }

// IsZero reports whether the reference carries nothing.
func (r EmbeddingRef) IsZero() bool { return r.embedding == nil && r.name == "" }
