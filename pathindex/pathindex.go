// Package pathindex maps artifact fingerprint chains and tag segments to
// storage locations.
//
// The Index interface isolates traversal and tag filtering from store
// logic, so the filesystem layout can be swapped for an embedded database
// (see the sqliteindex subpackage) without touching the store.
package pathindex

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no entry exists at a key.
//
// Implementations must return an error satisfying
// errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("index entry not found")

// Kind names one of the sibling artifact subtrees.
type Kind string

const (
	KindProblems   Kind = "problems"
	KindEmbeddings Kind = "embeddings"
	KindSampleSets Kind = "samplesets"
)

// Key addresses one stored artifact: its kind, the ordered path segments
// below the kind (fingerprints outer to inner, then tag segments), and the
// leaf entry name.
//
// Tags are caller-supplied namespace segments, not content-derived; two
// writers using different tags for identical content are never merged.
type Key struct {
	Kind     Kind
	Segments []string
	Name     string
}

// Validate rejects keys whose segments would escape the subtree or be
// unrepresentable as a single path level.
func (k Key) Validate() error {
	if k.Kind == "" {
		return fmt.Errorf("pathindex: key has empty kind")
	}
	if err := validateSegment(k.Name); err != nil {
		return fmt.Errorf("pathindex: invalid name: %w", err)
	}
	for _, seg := range k.Segments {
		if err := validateSegment(seg); err != nil {
			return fmt.Errorf("pathindex: invalid segment: %w", err)
		}
	}
	return nil
}

func validateSegment(seg string) error {
	switch {
	case seg == "":
		return errors.New("empty segment")
	case seg == "." || seg == "..":
		return fmt.Errorf("reserved segment %q", seg)
	case strings.ContainsAny(seg, "/\\"):
		return fmt.Errorf("segment %q contains a path separator", seg)
	default:
		return nil
	}
}

// String renders the key as a slash-joined path below the index root.
func (k Key) String() string {
	parts := append([]string{string(k.Kind)}, k.Segments...)
	parts = append(parts, k.Name)
	return strings.Join(parts, "/")
}

// Index is the storage substrate for artifacts.
//
// Write must be atomic per key: a concurrent Read observes either the
// previous or the new content, never a partial write. Enumeration order of
// List is path-sorted, not content-ordered; callers needing quality order
// sort explicitly.
type Index interface {
	// Write stores data at key, creating intermediate levels eagerly and
	// silently replacing existing content.
	Write(ctx context.Context, key Key, data []byte) error

	// Read returns the content at key, or ErrNotFound.
	Read(ctx context.Context, key Key) ([]byte, error)

	// List enumerates leaf entries under (kind, prefix), keeping only keys
	// that carry every required tag among their segments beyond the prefix
	// (conjunctive filter, not an exact suffix match). Results are sorted
	// by path.
	List(ctx context.Context, kind Kind, prefix []string, tags []string) ([]Key, error)

	// Delete removes the entry at key. Deleting a missing entry returns
	// ErrNotFound.
	Delete(ctx context.Context, key Key) error

	// Close releases backend resources.
	Close() error
}

// matchTags reports whether every required tag appears among segments.
func matchTags(segments, tags []string) bool {
	for _, tag := range tags {
		found := false
		for _, seg := range segments {
			if seg == tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
