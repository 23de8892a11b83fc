package pathindex

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/embergo/internal/fs"
)

// FS is the filesystem-backed index: one directory level per segment, one
// file per artifact, written atomically via temp-file + rename.
type FS struct {
	root string
	fsys fs.FileSystem
}

// NewFS creates a filesystem index rooted at root, creating it on demand.
func NewFS(root string, fsys fs.FileSystem) (*FS, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("pathindex: create root %s: %w", root, err)
	}
	return &FS{root: root, fsys: fsys}, nil
}

func (f *FS) path(key Key) string {
	parts := append([]string{f.root, string(key.Kind)}, key.Segments...)
	return filepath.Join(append(parts, key.Name)...)
}

// Write stores data at key, creating every missing directory level.
func (f *FS) Write(ctx context.Context, key Key, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}

	target := f.path(key)
	if err := f.fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("pathindex: create %s: %w", filepath.Dir(target), err)
	}
	if err := fs.WriteFileAtomic(f.fsys, target, data, 0o644); err != nil {
		return fmt.Errorf("pathindex: write %s: %w", target, err)
	}
	return nil
}

// Read returns the content at key.
func (f *FS) Read(ctx context.Context, key Key) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	data, err := f.fsys.ReadFile(f.path(key))
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("pathindex: read %s: %w", key, err)
	}
	return data, nil
}

// List recursively enumerates leaf entries under (kind, prefix), applying
// the conjunctive tag filter to segments below the prefix.
func (f *FS) List(ctx context.Context, kind Kind, prefix []string, tags []string) ([]Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := append([]string{f.root, string(kind)}, prefix...)
	base := filepath.Join(parts...)

	var keys []Key
	var walk func(dir string, below []string) error
	walk = func(dir string, below []string) error {
		entries, err := f.fsys.ReadDir(dir)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("pathindex: list %s: %w", dir, err)
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				// Skip in-flight temp files.
				continue
			}
			next := make([]string, len(below)+1)
			copy(next, below)
			next[len(below)] = name

			if entry.IsDir() {
				if err := walk(filepath.Join(dir, name), next); err != nil {
					return err
				}
				continue
			}
			if !matchTags(next, tags) {
				continue
			}
			segments := make([]string, 0, len(prefix)+len(below))
			segments = append(segments, prefix...)
			segments = append(segments, below...)
			keys = append(keys, Key{Kind: kind, Segments: segments, Name: name})
		}
		return nil
	}
	if err := walk(base, nil); err != nil {
		return nil, err
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys, nil
}

// Delete removes the entry at key.
func (f *FS) Delete(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}

	err := f.fsys.Remove(f.path(key))
	if errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("pathindex: delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op for the filesystem backend.
func (f *FS) Close() error { return nil }
