package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	// Test MkdirAll
	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, lfs.MkdirAll(dir, 0o755))

	// Test OpenFile (Create)
	fpath := filepath.Join(dir, "test.txt")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)

	// Write
	_, err = f.Write([]byte("hello"))
	assert.NoError(t, err)

	// Sync
	assert.NoError(t, f.Sync())

	// Stat via File
	info, err := f.Stat()
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	assert.NoError(t, f.Close())

	// Stat via FS
	info2, err := lfs.Stat(fpath)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), info2.Size())

	// ReadFile
	data, err := lfs.ReadFile(fpath)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// ReadDir
	entries, err := lfs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	// Rename
	newPath := filepath.Join(dir, "renamed.txt")
	assert.NoError(t, lfs.Rename(fpath, newPath))

	// Remove
	assert.NoError(t, lfs.Remove(newPath))
	_, err = lfs.Stat(newPath)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic(t *testing.T) {
	tmp := t.TempDir()
	fpath := filepath.Join(tmp, "artifact.json")

	require.NoError(t, WriteFileAtomic(Default, fpath, []byte("v1"), 0o644))
	data, err := Default.ReadFile(fpath)
	require.NoError(t, err)
	require.Equal(t, "v1", string(data))

	// Overwrite replaces content in one step.
	require.NoError(t, WriteFileAtomic(Default, fpath, []byte("v2"), 0o644))
	data, err = Default.ReadFile(fpath)
	require.NoError(t, err)
	require.Equal(t, "v2", string(data))

	// No temp files left behind.
	entries, err := Default.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteFileAtomic_FaultLeavesNoPartialFile(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("broken", Fault{FailOnWrite: true})

	fpath := filepath.Join(tmp, "broken.json")
	err := WriteFileAtomic(ffs, fpath, []byte("payload"), 0o644)
	require.ErrorIs(t, err, ErrInjected)

	// Neither the target nor the temp file survives a failed write.
	entries, err := Default.ReadDir(tmp)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFaultyFS_Delegation(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(LocalFS{})

	dir := filepath.Join(tmp, "subdir")
	assert.NoError(t, ffs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "test.txt")
	f, err := ffs.OpenFile(fpath, os.O_CREATE, 0o644)
	require.NoError(t, err)
	assert.NoError(t, f.Close())

	assert.NoError(t, ffs.Rename(fpath, fpath+".renamed"))
	_, err = ffs.Stat(fpath + ".renamed")
	assert.NoError(t, err)

	assert.NoError(t, ffs.Remove(fpath+".renamed"))

	entries, err := ffs.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
