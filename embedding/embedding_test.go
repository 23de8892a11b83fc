package embedding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func identityEmbedding() *Embedding {
	return New("src", "tgt", map[string][]string{
		"a": {"q0"},
		"b": {"q1"},
		"c": {"q2"},
		"d": {"q3"},
	})
}

func TestQualityKeyIdentityEmbedding(t *testing.T) {
	e := identityEmbedding()

	require.Equal(t, QualityKey{1, 4}, e.QualityKey())
	require.Equal(t, 1, e.MaxChain())
	require.Equal(t, 4, e.TotalQubits())
}

func TestQualityKeyMixedChainSizes(t *testing.T) {
	e := New("src", "tgt", map[string][]string{
		"a": {"q0", "q1", "q2"},
		"b": {"q3"},
		"c": {"q4", "q5"},
		"d": {"q6", "q7"},
	})

	// Histogram {3:1, 2:2, 1:1}, descending by size.
	require.Equal(t, QualityKey{3, 1, 2, 2, 1, 1}, e.QualityKey())
	require.Equal(t, 3, e.MaxChain())
	require.Equal(t, 8, e.TotalQubits())
}

func TestQualityOrderShorterChainsFirst(t *testing.T) {
	even := New("s", "t", map[string][]string{
		"a": {"q0"}, "b": {"q1"}, "c": {"q2"},
	})
	long := New("s", "t", map[string][]string{
		"a": {"q0"}, "b": {"q1"}, "c": {"q2", "q3"},
	})

	// {1,1,1} sorts strictly before {1,1,2}.
	require.True(t, even.Less(long))
	require.False(t, long.Less(even))
	require.Equal(t, -1, even.QualityKey().Compare(long.QualityKey()))
}

func TestSortIsDeterministicOnQualityTies(t *testing.T) {
	a := New("s", "t", map[string][]string{"a": {"q0"}, "b": {"q1"}})
	b := New("s", "t", map[string][]string{"a": {"q1"}, "b": {"q0"}})
	require.Equal(t, a.QualityKey(), b.QualityKey())

	first := []*Embedding{a, b}
	second := []*Embedding{b, a}
	Sort(first)
	Sort(second)

	require.Equal(t, first[0].Fingerprint(), second[0].Fingerprint())
	require.True(t, first[0].Fingerprint() < first[1].Fingerprint())
}

func TestFingerprintStableAndPlacementSensitive(t *testing.T) {
	e := identityEmbedding()

	fp := e.Fingerprint()
	require.Equal(t, fp, identityEmbedding().Fingerprint())
	require.Contains(t, fp, "14_")

	// Same quality, different placement: same prefix, different suffix.
	swapped := New("src", "tgt", map[string][]string{
		"a": {"q1"},
		"b": {"q0"},
		"c": {"q2"},
		"d": {"q3"},
	})
	require.Equal(t, e.QualityKey(), swapped.QualityKey())
	require.NotEqual(t, fp, swapped.Fingerprint())
}

func TestFingerprintEmptyEmbedding(t *testing.T) {
	e := New("src", "tgt", nil)

	require.Contains(t, e.Fingerprint(), EmptyFingerprint+"_")
	require.Empty(t, e.QualityKey())
	require.Equal(t, 0, e.MaxChain())
	require.Equal(t, 0, e.TotalQubits())
}

func TestFingerprintIgnoresChainNodeOrder(t *testing.T) {
	a := New("s", "t", map[string][]string{"v": {"q0", "q1"}})
	b := New("s", "t", map[string][]string{"v": {"q1", "q0"}})

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestValidate(t *testing.T) {
	require.NoError(t, identityEmbedding().Validate())

	overlapping := New("s", "t", map[string][]string{
		"a": {"q0"},
		"b": {"q0"},
	})
	require.ErrorContains(t, overlapping.Validate(), "claimed by")

	empty := New("s", "t", map[string][]string{"a": {}})
	require.ErrorContains(t, empty.Validate(), "empty chain")
}

func TestNewCopiesChains(t *testing.T) {
	chains := map[string][]string{"a": {"q0"}}
	e := New("s", "t", chains)

	chains["a"][0] = "mutated"
	require.Equal(t, []string{"q0"}, e.Chains["a"])
}

func TestJSONRoundTrip(t *testing.T) {
	e := identityEmbedding().
		WithProperty("embedding_method", "minorminer").
		WithProperty("embedding_runtime", 1.25)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var got Embedding
	require.NoError(t, json.Unmarshal(data, &got))

	require.Equal(t, e.SourceID, got.SourceID)
	require.Equal(t, e.TargetID, got.TargetID)
	require.Equal(t, e.Chains, got.Chains)
	require.Equal(t, "minorminer", got.Properties["embedding_method"])
	require.Equal(t, e.Fingerprint(), got.Fingerprint())
}
