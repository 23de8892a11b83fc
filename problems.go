package embergo

import (
	"context"
	"fmt"

	"github.com/hupe1980/embergo/fingerprint"
	"github.com/hupe1980/embergo/model"
	"github.com/hupe1980/embergo/pathindex"
)

// PutProblem stores a problem under its structural fingerprint and
// returns that fingerprint. A named problem also registers its name as a
// problem alias. Tags sub-namespace the entry; writing the same problem
// twice with the same tags overwrites the (identical) payload in place.
//
// A problem's source-graph fingerprint equals its own: both hash the
// interaction structure, so the problem subtree nests each problem under
// its source without storing anything twice.
func (s *Store) PutProblem(ctx context.Context, p *model.Problem, tags ...string) (string, error) {
	fp, err := s.engine.ResolveProblem(fingerprint.ProblemOf(p))
	if err != nil {
		return "", err
	}

	data, err := s.codec.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("embergo: encode problem %s: %w", fp, err)
	}

	key := pathindex.Key{
		Kind:     pathindex.KindProblems,
		Segments: append([]string{fp}, tags...),
		Name:     fp,
	}
	err = s.index.Write(ctx, key, data)
	s.logger.LogPut(ctx, "problem", fp, len(data), err)
	if err != nil {
		return "", err
	}
	return fp, nil
}

// GetProblems returns every stored problem matching ref and carrying all
// required tags, in path order. An unmatched ref yields an empty slice.
func (s *Store) GetProblems(ctx context.Context, ref ProblemRef, tags ...string) ([]*model.Problem, error) {
	fp, err := s.engine.ResolveProblem(ref)
	if err != nil {
		return nil, err
	}

	keys, err := s.index.List(ctx, pathindex.KindProblems, []string{fp}, tags)
	if err != nil {
		s.logger.LogGet(ctx, "problem", 0, err)
		return nil, translateError(err)
	}

	problems := make([]*model.Problem, 0, len(keys))
	for _, key := range keys {
		data, err := s.index.Read(ctx, key)
		if err != nil {
			s.logger.LogGet(ctx, "problem", 0, err)
			return nil, translateError(err)
		}
		var p model.Problem
		if err := s.codec.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("embergo: decode problem %s: %w", key, err)
		}
		problems = append(problems, &p)
	}
	s.logger.LogGet(ctx, "problem", len(problems), nil)
	return problems, nil
}

// GetProblem returns the stored problem at rank among the matches of
// GetProblems. A rank beyond the matches yields ErrRankOutOfRange, which
// satisfies errors.Is(err, ErrNotFound).
func (s *Store) GetProblem(ctx context.Context, ref ProblemRef, rank int, tags ...string) (*model.Problem, error) {
	problems, err := s.GetProblems(ctx, ref, tags...)
	if err != nil {
		return nil, err
	}
	if rank < 0 || rank >= len(problems) {
		return nil, &ErrRankOutOfRange{Rank: rank, Count: len(problems)}
	}
	return problems[rank], nil
}
