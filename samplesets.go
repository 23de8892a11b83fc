package embergo

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/model"
	"github.com/hupe1980/embergo/pathindex"
)

// PutSampleSet stores a sample set under the full provenance chain
// (source, problem, target, embedding, tags) and returns the stored entry
// name.
//
// Writes merge: an existing sample set at the same location is
// concatenated with the new one, the merged set is written under a fresh
// timestamped name, and the superseded entries are removed. Sample sets
// only grow; occurrence counts are additive. In-process writers to one
// location are serialized; across processes the last rename wins, so
// concurrent cross-process merges may drop one writer's increment.
func (s *Store) PutSampleSet(ctx context.Context, problem ProblemRef, target GraphRef, emb EmbeddingRef, ss *model.SampleSet, tags ...string) (string, error) {
	segments, err := s.sampleSegments(problem, target, emb)
	if err != nil {
		return "", err
	}
	segments = append(segments, tags...)

	location := strings.Join(segments, "/")
	unlock := s.merges.lock(location)
	defer unlock()

	keys, err := s.index.List(ctx, pathindex.KindSampleSets, segments, nil)
	if err != nil {
		return "", translateError(err)
	}

	merged := ss
	var stale []pathindex.Key
	for _, key := range keys {
		// Deeper tag namespaces are separate locations, not merge input.
		if len(key.Segments) != len(segments) {
			continue
		}
		prev, err := s.readSampleSet(ctx, key)
		if err != nil {
			return "", err
		}
		merged = model.Concat(prev, merged)
		stale = append(stale, key)
	}

	name := fmt.Sprintf("%d_%d", s.now().Unix(), merged.TotalOccurrences())
	data, err := s.codec.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("embergo: encode sample set: %w", err)
	}

	key := pathindex.Key{Kind: pathindex.KindSampleSets, Segments: segments, Name: name}
	err = s.index.Write(ctx, key, data)
	s.logger.LogPut(ctx, "sampleset", name, len(data), err)
	if err != nil {
		return "", err
	}

	for _, old := range stale {
		if old.Name == name {
			continue
		}
		if err := s.index.Delete(ctx, old); err != nil {
			return "", translateError(err)
		}
	}
	if len(stale) > 0 {
		s.logger.LogMerge(ctx, location, len(stale)+1, merged.TotalOccurrences())
	}
	return name, nil
}

// GetSampleSets returns the sample sets stored for the provenance chain,
// in path order.
//
// A zero embedding reference widens the query to every embedding of the
// pair and resolves each sample set back to problem variables with the
// store's unembedder; that path needs the explicit problem (energies are
// recomputed), so a name-only problem reference yields ErrProblemRequired.
// With a concrete embedding reference, sample sets are returned raw, at
// target level.
func (s *Store) GetSampleSets(ctx context.Context, problem ProblemRef, target GraphRef, emb EmbeddingRef, tags ...string) ([]*model.SampleSet, error) {
	if emb.IsZero() {
		return s.getResolvedSampleSets(ctx, problem, target, tags)
	}

	segments, err := s.sampleSegments(problem, target, emb)
	if err != nil {
		return nil, err
	}

	keys, err := s.index.List(ctx, pathindex.KindSampleSets, segments, tags)
	if err != nil {
		s.logger.LogGet(ctx, "sampleset", 0, err)
		return nil, translateError(err)
	}

	sets := make([]*model.SampleSet, 0, len(keys))
	for _, key := range keys {
		ss, err := s.readSampleSet(ctx, key)
		if err != nil {
			s.logger.LogGet(ctx, "sampleset", 0, err)
			return nil, err
		}
		sets = append(sets, ss)
	}
	s.logger.LogGet(ctx, "sampleset", len(sets), nil)
	return sets, nil
}

// GetSampleSet concatenates every match of GetSampleSets into one sample
// set. No match at all yields ErrNotFound.
func (s *Store) GetSampleSet(ctx context.Context, problem ProblemRef, target GraphRef, emb EmbeddingRef, tags ...string) (*model.SampleSet, error) {
	sets, err := s.GetSampleSets(ctx, problem, target, emb, tags...)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no sample sets stored", ErrNotFound)
	}
	return model.Concat(sets...), nil
}

// getResolvedSampleSets enumerates sample sets across all embeddings of
// the pair and unembeds each with the embedding that produced it.
func (s *Store) getResolvedSampleSets(ctx context.Context, problem ProblemRef, target GraphRef, tags []string) ([]*model.SampleSet, error) {
	p := problem.Problem()
	if p == nil {
		return nil, ErrProblemRequired
	}

	probFP, err := s.engine.ResolveProblem(problem)
	if err != nil {
		return nil, err
	}
	tgtFP, err := s.engine.ResolveTarget(target)
	if err != nil {
		return nil, err
	}

	keys, err := s.index.List(ctx, pathindex.KindSampleSets, []string{probFP, probFP, tgtFP}, tags)
	if err != nil {
		s.logger.LogGet(ctx, "sampleset", 0, err)
		return nil, translateError(err)
	}

	embs, err := s.embeddingsByFingerprint(ctx, probFP, tgtFP)
	if err != nil {
		return nil, err
	}

	sets := make([]*model.SampleSet, 0, len(keys))
	for _, key := range keys {
		if len(key.Segments) < 4 {
			continue
		}
		ss, err := s.readSampleSet(ctx, key)
		if err != nil {
			return nil, err
		}

		embFP := key.Segments[3]
		if strings.HasPrefix(embFP, embedding.EmptyFingerprint) {
			// Sampled without an embedding: already at problem level.
			sets = append(sets, ss)
			continue
		}

		e, ok := embs[embFP]
		if !ok {
			return nil, fmt.Errorf("%w: embedding %s for sample set %s", ErrNotFound, embFP, key)
		}
		resolved, err := s.unembedder(ss, e, p)
		if err != nil {
			return nil, fmt.Errorf("embergo: unembed %s: %w", key, err)
		}
		sets = append(sets, resolved)
	}
	s.logger.LogGet(ctx, "sampleset", len(sets), nil)
	return sets, nil
}

// embeddingsByFingerprint loads every embedding of the pair, keyed by
// fingerprint, regardless of the tags it was stored under.
func (s *Store) embeddingsByFingerprint(ctx context.Context, srcFP, tgtFP string) (map[string]*embedding.Embedding, error) {
	keys, err := s.index.List(ctx, pathindex.KindEmbeddings, []string{srcFP, tgtFP}, nil)
	if err != nil {
		return nil, translateError(err)
	}

	embs := make(map[string]*embedding.Embedding, len(keys))
	for _, key := range keys {
		data, err := s.index.Read(ctx, key)
		if err != nil {
			return nil, translateError(err)
		}
		var e embedding.Embedding
		if err := s.codec.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("embergo: decode embedding %s: %w", key, err)
		}
		embs[key.Name] = &e
	}
	return embs, nil
}

// sampleSegments resolves the fingerprint chain below the sample-set
// kind: source, problem, target, embedding. Problem and source
// fingerprints coincide (both hash the interaction structure); the chain
// keeps both levels so the layout stays greppable by either role.
func (s *Store) sampleSegments(problem ProblemRef, target GraphRef, emb EmbeddingRef) ([]string, error) {
	probFP, err := s.engine.ResolveProblem(problem)
	if err != nil {
		return nil, err
	}
	tgtFP, err := s.engine.ResolveTarget(target)
	if err != nil {
		return nil, err
	}
	embFP, err := s.engine.ResolveEmbedding(emb)
	if err != nil {
		return nil, err
	}
	return []string{probFP, probFP, tgtFP, embFP}, nil
}

func (s *Store) readSampleSet(ctx context.Context, key pathindex.Key) (*model.SampleSet, error) {
	data, err := s.index.Read(ctx, key)
	if err != nil {
		return nil, translateError(err)
	}
	var ss model.SampleSet
	if err := s.codec.Unmarshal(data, &ss); err != nil {
		return nil, fmt.Errorf("embergo: decode sample set %s: %w", key, err)
	}
	return &ss, nil
}
