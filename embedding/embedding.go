// Package embedding defines the embedding artifact: a mapping from each
// problem variable to a chain of target-graph nodes, plus the derived
// quality measures used to rank competing embeddings.
package embedding

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
)

// EmptyFingerprint is the quality part of the fingerprint for an embedding
// with zero chains.
const EmptyFingerprint = "EMPTY"

// Embedding maps each problem variable to a non-empty chain of target
// nodes. It carries the fingerprints of the source and target graphs it
// connects and free-form properties (originating method, runtime, ...).
// Embeddings are immutable once written; two independent embeddings for
// the same graphs are historically distinct variants, never merged.
type Embedding struct {
	SourceID   string
	TargetID   string
	Chains     map[string][]string
	Properties map[string]any
}

// New creates an embedding between two fingerprinted graphs. The chain and
// property maps are copied so no two embeddings share state.
func New(sourceID, targetID string, chains map[string][]string) *Embedding {
	e := &Embedding{
		SourceID:   sourceID,
		TargetID:   targetID,
		Chains:     make(map[string][]string, len(chains)),
		Properties: make(map[string]any),
	}
	for v, chain := range chains {
		e.Chains[v] = append([]string(nil), chain...)
	}
	return e
}

// WithProperty sets a property and returns the embedding for chaining.
func (e *Embedding) WithProperty(key string, value any) *Embedding {
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	e.Properties[key] = value
	return e
}

// Validate checks that every chain is non-empty and that chains for
// distinct variables are pairwise disjoint. The store does not call this
// on write; an overlapping embedding is still stored and ranked.
func (e *Embedding) Validate() error {
	owner := make(map[string]string)
	for _, v := range e.variables() {
		chain := e.Chains[v]
		if len(chain) == 0 {
			return fmt.Errorf("embedding: empty chain for variable %q", v)
		}
		for _, node := range chain {
			if prev, taken := owner[node]; taken {
				return fmt.Errorf("embedding: target node %q claimed by %q and %q", node, prev, v)
			}
			owner[node] = v
		}
	}
	return nil
}

// ChainHistogram counts chains by size.
func (e *Embedding) ChainHistogram() map[int]int {
	hist := make(map[int]int)
	for _, chain := range e.Chains {
		hist[len(chain)]++
	}
	return hist
}

// QualityKey flattens the chain histogram, sorted by descending chain
// size, into a comparable sequence [size1, count1, size2, count2, ...].
// Larger or more numerous long chains rank worse; keys compare
// lexicographically and smaller keys sort first.
//
// Based on dwavesystems/minorminer quality_key by Boothby, K.
func (e *Embedding) QualityKey() QualityKey {
	hist := e.ChainHistogram()
	sizes := make([]int, 0, len(hist))
	for size := range hist {
		sizes = append(sizes, size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	key := make(QualityKey, 0, 2*len(sizes))
	for _, size := range sizes {
		key = append(key, size, hist[size])
	}
	return key
}

// MaxChain returns the largest chain size, 0 for an empty embedding.
func (e *Embedding) MaxChain() int {
	key := e.QualityKey()
	if len(key) == 0 {
		return 0
	}
	return key[0]
}

// TotalQubits returns the total number of target nodes claimed by chains.
func (e *Embedding) TotalQubits() int {
	total := 0
	key := e.QualityKey()
	for i := 0; i+1 < len(key); i += 2 {
		total += key[i] * key[i+1]
	}
	return total
}

// Fingerprint returns the content-derived identity: the quality key
// rendered as a digit string, plus a short structural-hash suffix so two
// embeddings with equal quality but different chain placement stay
// distinguishable. Deterministic across processes.
func (e *Embedding) Fingerprint() string {
	quality := EmptyFingerprint
	if len(e.Chains) > 0 {
		quality = ""
		for _, v := range e.QualityKey() {
			quality += fmt.Sprintf("%d", v)
		}
	}
	return fmt.Sprintf("%s_%s", quality, e.structuralSuffix())
}

// structuralSuffix hashes source id, target id, and the sorted chain
// assignment with FNV-1a. The sort gives one canonical byte stream per
// structure; no map iteration order leaks in.
func (e *Embedding) structuralSuffix() string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(e.SourceID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(e.TargetID))
	_, _ = h.Write([]byte{0})
	for _, v := range e.variables() {
		_, _ = h.Write([]byte(v))
		_, _ = h.Write([]byte{1})
		chain := append([]string(nil), e.Chains[v]...)
		sort.Strings(chain)
		for _, node := range chain {
			_, _ = h.Write([]byte(node))
			_, _ = h.Write([]byte{2})
		}
	}
	sum := fmt.Sprintf("%016x", h.Sum64())
	return sum[len(sum)-8:]
}

func (e *Embedding) variables() []string {
	vars := make([]string, 0, len(e.Chains))
	for v := range e.Chains {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// QualityKey is a comparable summary of a chain-size distribution.
type QualityKey []int

// Compare orders keys lexicographically; a shorter key that is a prefix of
// a longer one sorts first.
func (k QualityKey) Compare(other QualityKey) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		switch {
		case k[i] < other[i]:
			return -1
		case k[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}

// Less reports whether e ranks strictly better than other: smaller quality
// key first, embedding fingerprint as the deterministic tie-break.
func (e *Embedding) Less(other *Embedding) bool {
	if c := e.QualityKey().Compare(other.QualityKey()); c != 0 {
		return c < 0
	}
	return e.Fingerprint() < other.Fingerprint()
}

// Sort orders embeddings best-first: ascending quality key, then
// fingerprint. rank 0 after Sort is deterministic even on quality ties.
func Sort(embs []*Embedding) {
	sort.SliceStable(embs, func(i, j int) bool { return embs[i].Less(embs[j]) })
}

// embeddingDoc is the persisted form; the quality key is stored alongside
// the chains so external tools can rank without recomputing.
type embeddingDoc struct {
	SourceID   string              `json:"source_id"`
	TargetID   string              `json:"target_id"`
	Chains     map[string][]string `json:"chains"`
	Properties map[string]any      `json:"properties,omitempty"`
	QualityKey QualityKey          `json:"quality_key"`
}

// MarshalJSON encodes the embedding with its computed quality key.
func (e *Embedding) MarshalJSON() ([]byte, error) {
	return json.Marshal(embeddingDoc{
		SourceID:   e.SourceID,
		TargetID:   e.TargetID,
		Chains:     e.Chains,
		Properties: e.Properties,
		QualityKey: e.QualityKey(),
	})
}

// UnmarshalJSON decodes the persisted form. The stored quality key is
// advisory; derived values are always recomputed from the chains.
func (e *Embedding) UnmarshalJSON(data []byte) error {
	var doc embeddingDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	e.SourceID = doc.SourceID
	e.TargetID = doc.TargetID
	e.Chains = doc.Chains
	if e.Chains == nil {
		e.Chains = make(map[string][]string)
	}
	e.Properties = doc.Properties
	if e.Properties == nil {
		e.Properties = make(map[string]any)
	}
	return nil
}
