package embergo

import (
	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/fingerprint"
	"github.com/hupe1980/embergo/model"
)

// Artifact references accepted by store operations. Each reference is
// either an explicit object (fingerprinted on the fly, its name
// auto-registered as an alias) or a name (an alias or a literal
// fingerprint).
type (
	GraphRef     = fingerprint.GraphRef
	ProblemRef   = fingerprint.ProblemRef
	EmbeddingRef = fingerprint.EmbeddingRef
)

// GraphOf references an explicit graph.
func GraphOf(g *model.Graph) GraphRef { return fingerprint.GraphOf(g) }

// GraphNamed references a graph by alias or literal fingerprint.
func GraphNamed(name string) GraphRef { return fingerprint.GraphNamed(name) }

// ProblemOf references an explicit problem.
func ProblemOf(p *model.Problem) ProblemRef { return fingerprint.ProblemOf(p) }

// ProblemNamed references a problem by alias or literal fingerprint.
func ProblemNamed(name string) ProblemRef { return fingerprint.ProblemNamed(name) }

// EmbeddingOf references an explicit embedding.
func EmbeddingOf(e *embedding.Embedding) EmbeddingRef { return fingerprint.EmbeddingOf(e) }

// EmbeddingNamed references an embedding by alias or literal fingerprint.
func EmbeddingNamed(name string) EmbeddingRef { return fingerprint.EmbeddingNamed(name) }
