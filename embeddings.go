package embergo

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/pathindex"
)

// PutEmbedding stores an embedding under the (source, target) graph pair
// and returns the embedding fingerprint. The embedding's SourceID and
// TargetID are stamped from the resolved references before fingerprinting,
// so the stored artifact and its location always agree.
//
// Competing embeddings for the same pair coexist as siblings; nothing is
// merged or replaced unless fingerprints collide exactly.
func (s *Store) PutEmbedding(ctx context.Context, source, target GraphRef, emb *embedding.Embedding, tags ...string) (string, error) {
	srcFP, err := s.engine.ResolveSource(source)
	if err != nil {
		return "", err
	}
	tgtFP, err := s.engine.ResolveTarget(target)
	if err != nil {
		return "", err
	}

	emb.SourceID = srcFP
	emb.TargetID = tgtFP
	fp := emb.Fingerprint()

	data, err := s.codec.Marshal(emb)
	if err != nil {
		return "", fmt.Errorf("embergo: encode embedding %s: %w", fp, err)
	}

	key := pathindex.Key{
		Kind:     pathindex.KindEmbeddings,
		Segments: append([]string{srcFP, tgtFP}, tags...),
		Name:     fp,
	}
	err = s.index.Write(ctx, key, data)
	s.logger.LogPut(ctx, "embedding", fp, len(data), err)
	if err != nil {
		return "", err
	}
	return fp, nil
}

// GetEmbeddings returns every embedding stored for the (source, target)
// pair carrying all required tags, ranked best-first: ascending quality
// key, fingerprint as the deterministic tie-break. An unmatched pair
// yields an empty slice.
func (s *Store) GetEmbeddings(ctx context.Context, source, target GraphRef, tags ...string) ([]*embedding.Embedding, error) {
	srcFP, err := s.engine.ResolveSource(source)
	if err != nil {
		return nil, err
	}
	tgtFP, err := s.engine.ResolveTarget(target)
	if err != nil {
		return nil, err
	}

	keys, err := s.index.List(ctx, pathindex.KindEmbeddings, []string{srcFP, tgtFP}, tags)
	if err != nil {
		s.logger.LogGet(ctx, "embedding", 0, err)
		return nil, translateError(err)
	}

	embs := make([]*embedding.Embedding, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			data, err := s.index.Read(gctx, key)
			if err != nil {
				return translateError(err)
			}
			var e embedding.Embedding
			if err := s.codec.Unmarshal(data, &e); err != nil {
				return fmt.Errorf("embergo: decode embedding %s: %w", key, err)
			}
			embs[i] = &e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.LogGet(ctx, "embedding", 0, err)
		return nil, err
	}

	embedding.Sort(embs)
	s.logger.LogGet(ctx, "embedding", len(embs), nil)
	return embs, nil
}

// GetEmbedding returns the embedding at rank in the best-first order of
// GetEmbeddings; rank 0 is the best stored embedding for the pair.
func (s *Store) GetEmbedding(ctx context.Context, source, target GraphRef, rank int, tags ...string) (*embedding.Embedding, error) {
	embs, err := s.GetEmbeddings(ctx, source, target, tags...)
	if err != nil {
		return nil, err
	}
	if rank < 0 || rank >= len(embs) {
		return nil, &ErrRankOutOfRange{Rank: rank, Count: len(embs)}
	}
	return embs[rank], nil
}
