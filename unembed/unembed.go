// Package unembed resolves target-level sample sets back to problem
// variables.
//
// The store consumes this as a collaborator: any Func can be injected, the
// shipped implementation is deterministic majority vote per chain.
package unembed

import (
	"fmt"
	"sort"

	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/model"
)

// Func resolves a sample set recorded over target-graph nodes into one
// over the problem's variables, using the embedding that produced it.
type Func func(ss *model.SampleSet, emb *embedding.Embedding, p *model.Problem) (*model.SampleSet, error)

// MajorityVote resolves each chain to the value held by the majority of
// its target nodes. Ties resolve to the domain's lower value (-1 for spin,
// 0 for binary), so resolution is deterministic. Energies are recomputed
// against the problem after resolution; metadata is carried over.
func MajorityVote(ss *model.SampleSet, emb *embedding.Embedding, p *model.Problem) (*model.SampleSet, error) {
	if ss == nil {
		return nil, fmt.Errorf("unembed: nil sample set")
	}
	if emb == nil {
		return nil, fmt.Errorf("unembed: nil embedding")
	}
	if p == nil {
		return nil, fmt.Errorf("unembed: nil problem")
	}

	up, down := 1, -1
	if p.Vartype == model.Binary {
		down = 0
	}

	vars := make([]string, 0, len(emb.Chains))
	for v := range emb.Chains {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	out := model.NewSampleSet()
	for k, v := range ss.Metadata {
		out.Metadata[k] = v
	}

	for _, sample := range ss.Samples {
		assignment := make(map[string]int, len(vars))
		for _, v := range vars {
			votes := 0
			for _, node := range emb.Chains[v] {
				if value, ok := sample.Assignment[node]; ok && value == up {
					votes++
				}
			}
			if 2*votes > len(emb.Chains[v]) {
				assignment[v] = up
			} else {
				assignment[v] = down
			}
		}
		out.Append(assignment, p.Energy(assignment), sample.Occurrences)
	}
	return out, nil
}
