package unembed

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/embergo/embedding"
	"github.com/hupe1980/embergo/model"
)

func chainProblem() *model.Problem {
	p := model.NewProblem(model.Spin)
	p.SetQuadratic("a", "b", -1)
	return p
}

func chainEmbedding() *embedding.Embedding {
	return embedding.New("s", "t", map[string][]string{
		"a": {"q0", "q1", "q2"},
		"b": {"q3"},
	})
}

func TestMajorityVoteResolvesChains(t *testing.T) {
	ss := model.NewSampleSet()
	// Chain for "a" votes 2-1 for up; "b" is down.
	ss.Append(map[string]int{"q0": 1, "q1": 1, "q2": -1, "q3": -1}, 0, 4)

	out, err := MajorityVote(ss, chainEmbedding(), chainProblem())
	require.NoError(t, err)
	require.Len(t, out.Samples, 1)

	got := out.Samples[0]
	require.Equal(t, map[string]int{"a": 1, "b": -1}, got.Assignment)
	require.Equal(t, 4, got.Occurrences)
	// Energy is recomputed against the problem: -1 * (1 * -1) = 1.
	require.InDelta(t, 1.0, got.Energy, 1e-12)
}

func TestMajorityVoteTieResolvesToLowerValue(t *testing.T) {
	emb := embedding.New("s", "t", map[string][]string{
		"a": {"q0", "q1"},
		"b": {"q2"},
	})
	ss := model.NewSampleSet()
	ss.Append(map[string]int{"q0": 1, "q1": -1, "q2": 1}, 0, 1)

	out, err := MajorityVote(ss, emb, chainProblem())
	require.NoError(t, err)
	require.Equal(t, -1, out.Samples[0].Assignment["a"])
	require.Equal(t, 1, out.Samples[0].Assignment["b"])
}

func TestMajorityVoteBinaryDomain(t *testing.T) {
	p := model.NewProblem(model.Binary)
	p.SetQuadratic("a", "b", 2)
	p.SetLinear("a", -1)

	emb := embedding.New("s", "t", map[string][]string{
		"a": {"q0", "q1", "q2"},
		"b": {"q3"},
	})
	ss := model.NewSampleSet()
	ss.Append(map[string]int{"q0": 1, "q1": 1, "q2": 0, "q3": 1}, 0, 2)

	out, err := MajorityVote(ss, emb, p)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"a": 1, "b": 1}, out.Samples[0].Assignment)
	// -1*1 + 2*1*1 = 1
	require.InDelta(t, 1.0, out.Samples[0].Energy, 1e-12)
}

func TestMajorityVoteCarriesMetadata(t *testing.T) {
	ss := model.NewSampleSet()
	ss.Metadata["sampler"] = "exact"
	ss.Append(map[string]int{"q0": 1, "q1": 1, "q2": 1, "q3": 1}, 0, 1)

	out, err := MajorityVote(ss, chainEmbedding(), chainProblem())
	require.NoError(t, err)
	require.Equal(t, "exact", out.Metadata["sampler"])
}

func TestMajorityVoteNilArguments(t *testing.T) {
	_, err := MajorityVote(nil, chainEmbedding(), chainProblem())
	require.Error(t, err)
	_, err = MajorityVote(model.NewSampleSet(), nil, chainProblem())
	require.Error(t, err)
	_, err = MajorityVote(model.NewSampleSet(), chainEmbedding(), nil)
	require.Error(t, err)
}
