// Package alias persists user-chosen names for fingerprinted artifacts.
//
// One table holds four independent sub-tables, one per artifact kind.
// Aliasing is optional: resolving an unregistered name returns the name
// unchanged, so callers may pass fingerprints and aliases interchangeably.
package alias

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/hupe1980/embergo/codec"
	internalfs "github.com/hupe1980/embergo/internal/fs"
)

// Kind selects one of the four alias sub-tables.
type Kind string

const (
	KindProblem   Kind = "problem"
	KindSource    Kind = "source"
	KindTarget    Kind = "target"
	KindEmbedding Kind = "embedding"
)

// Table is a persisted mapping from user-chosen names to fingerprints.
//
// Every mutation is flushed back to the persisted document immediately
// (write-through, no batching). There is no delete: append-only growth is
// an accepted design limitation. Concurrent registrants in separate
// processes are last-flush-wins.
type Table struct {
	mu      sync.Mutex
	fsys    internalfs.FileSystem
	codec   codec.Codec
	path    string
	entries map[Kind]map[string]string
}

// Load reads the persisted table at path, or starts an empty one if no
// document exists yet. The codec must match the one that wrote the file.
func Load(fsys internalfs.FileSystem, c codec.Codec, path string) (*Table, error) {
	if fsys == nil {
		fsys = internalfs.Default
	}
	if c == nil {
		c = codec.Default
	}

	t := &Table{
		fsys:    fsys,
		codec:   c,
		path:    path,
		entries: make(map[Kind]map[string]string),
	}

	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("alias: load %s: %w", path, err)
	}
	if err := c.Unmarshal(data, &t.entries); err != nil {
		return nil, fmt.Errorf("alias: decode %s: %w", path, err)
	}
	return t, nil
}

// Resolve returns the fingerprint registered for name, or name itself if
// no alias is registered.
func (t *Table) Resolve(kind Kind, name string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fp, ok := t.entries[kind][name]; ok {
		return fp
	}
	return name
}

// Register binds an alias to a fingerprint and flushes the table.
// Re-registering an alias overwrites it; last writer wins.
func (t *Table) Register(kind Kind, aliasName, fingerprint string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	sub, ok := t.entries[kind]
	if !ok {
		sub = make(map[string]string)
		t.entries[kind] = sub
	}
	sub[aliasName] = fingerprint
	return t.flushLocked()
}

// Flush rewrites the persisted document.
func (t *Table) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *Table) flushLocked() error {
	data, err := t.codec.Marshal(t.entries)
	if err != nil {
		return fmt.Errorf("alias: encode: %w", err)
	}
	if err := internalfs.WriteFileAtomic(t.fsys, t.path, data, 0o644); err != nil {
		return fmt.Errorf("alias: flush %s: %w", t.path, err)
	}
	return nil
}
