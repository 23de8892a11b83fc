package pathindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFS(t *testing.T) (*FS, string) {
	t.Helper()
	root := t.TempDir()
	idx, err := NewFS(root, nil)
	require.NoError(t, err)
	return idx, root
}

func TestFSWriteCreatesIntermediateLevels(t *testing.T) {
	idx, root := newFS(t)
	ctx := context.Background()

	key := Key{
		Kind:     KindEmbeddings,
		Segments: []string{"2-2_1-2", "4-4_2-8", "minorminer"},
		Name:     "14_00c0ffee",
	}
	require.NoError(t, idx.Write(ctx, key, []byte(`{"chains":{}}`)))

	onDisk := filepath.Join(root, "embeddings", "2-2_1-2", "4-4_2-8", "minorminer", "14_00c0ffee")
	_, err := os.Stat(onDisk)
	require.NoError(t, err)

	data, err := idx.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, `{"chains":{}}`, string(data))
}

func TestFSWriteReplacesExisting(t *testing.T) {
	idx, _ := newFS(t)
	ctx := context.Background()

	key := Key{Kind: KindProblems, Segments: []string{"2-2_1-2"}, Name: "2-2_1-2"}
	require.NoError(t, idx.Write(ctx, key, []byte("v1")))
	require.NoError(t, idx.Write(ctx, key, []byte("v2")))

	data, err := idx.Read(ctx, key)
	require.NoError(t, err)
	require.Equal(t, "v2", string(data))
}

func TestFSReadMissing(t *testing.T) {
	idx, _ := newFS(t)

	_, err := idx.Read(context.Background(), Key{Kind: KindProblems, Segments: []string{"x"}, Name: "y"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFSListTagFilterIsConjunctive(t *testing.T) {
	idx, _ := newFS(t)
	ctx := context.Background()

	write := func(segments []string, name string) {
		t.Helper()
		require.NoError(t, idx.Write(ctx, Key{Kind: KindEmbeddings, Segments: segments, Name: name}, []byte("{}")))
	}
	write([]string{"src", "tgt", "heuristic-x"}, "e1")
	write([]string{"src", "tgt", "heuristic-x", "heuristic-y"}, "e2")
	write([]string{"src", "tgt", "heuristic-y"}, "e3")
	write([]string{"src", "tgt"}, "e4")

	list := func(tags ...string) []string {
		keys, err := idx.List(ctx, KindEmbeddings, []string{"src", "tgt"}, tags)
		require.NoError(t, err)
		names := make([]string, 0, len(keys))
		for _, k := range keys {
			names = append(names, k.Name)
		}
		return names
	}

	require.Equal(t, []string{"e4", "e1", "e2", "e3"}, list())
	require.Equal(t, []string{"e1", "e2"}, list("heuristic-x"))
	require.Equal(t, []string{"e2"}, list("heuristic-x", "heuristic-y"))
	require.Empty(t, list("heuristic-x", "heuristic-z"))
}

func TestFSListReturnsFullSegments(t *testing.T) {
	idx, _ := newFS(t)
	ctx := context.Background()

	key := Key{
		Kind:     KindSampleSets,
		Segments: []string{"src", "prob", "tgt", "14_00c0ffee", "run-1"},
		Name:     "1700000000_100",
	}
	require.NoError(t, idx.Write(ctx, key, []byte("{}")))

	keys, err := idx.List(ctx, KindSampleSets, []string{"src", "prob", "tgt"}, nil)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.Equal(t, key.Segments, keys[0].Segments)
	require.Equal(t, key.Name, keys[0].Name)
}

func TestFSListMissingPrefixIsEmpty(t *testing.T) {
	idx, _ := newFS(t)

	keys, err := idx.List(context.Background(), KindProblems, []string{"nope"}, nil)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestFSDelete(t *testing.T) {
	idx, _ := newFS(t)
	ctx := context.Background()

	key := Key{Kind: KindSampleSets, Segments: []string{"a", "b", "c", "d"}, Name: "1_10"}
	require.NoError(t, idx.Write(ctx, key, []byte("{}")))
	require.NoError(t, idx.Delete(ctx, key))
	require.ErrorIs(t, idx.Delete(ctx, key), ErrNotFound)
}

func TestKeyValidate(t *testing.T) {
	valid := Key{Kind: KindProblems, Segments: []string{"fp"}, Name: "fp"}
	require.NoError(t, valid.Validate())

	tests := []Key{
		{Kind: "", Segments: []string{"fp"}, Name: "fp"},
		{Kind: KindProblems, Segments: []string{""}, Name: "fp"},
		{Kind: KindProblems, Segments: []string{".."}, Name: "fp"},
		{Kind: KindProblems, Segments: []string{"a/b"}, Name: "fp"},
		{Kind: KindProblems, Segments: []string{"fp"}, Name: ""},
	}
	for _, key := range tests {
		require.Error(t, key.Validate(), key.String())
	}
}
