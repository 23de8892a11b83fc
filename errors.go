package embergo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/embergo/fingerprint"
	"github.com/hupe1980/embergo/pathindex"
)

var (
	// ErrNotFound is returned when no stored artifact matches a resolved
	// location and filter.
	ErrNotFound = errors.New("no artifacts found")

	// ErrInvalidArtifactKind is returned when an input is neither a
	// recognized structured artifact nor a name.
	ErrInvalidArtifactKind = fingerprint.ErrInvalidArtifactKind

	// ErrProblemRequired is returned by GetSampleSet when unembedding is
	// requested but the problem was referenced by name only.
	ErrProblemRequired = errors.New("explicit problem required to unembed")
)

// ErrRankOutOfRange indicates a rank beyond the number of stored entries.
//
// It unwraps to ErrNotFound, so errors.Is(err, ErrNotFound) holds.
type ErrRankOutOfRange struct {
	Rank  int
	Count int
}

func (e *ErrRankOutOfRange) Error() string {
	return fmt.Sprintf("rank %d out of range: %d entries", e.Rank, e.Count)
}

func (e *ErrRankOutOfRange) Unwrap() error { return ErrNotFound }

// translateError unifies backend errors at the store boundary.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pathindex.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
