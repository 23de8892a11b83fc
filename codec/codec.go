// Package codec centralizes artifact payload encoding.
//
// Embergo treats codec selection as a breaking-change boundary: if you change
// codecs, persisted artifacts created by older codecs may no longer decode.
// Fingerprints are codec-independent, so two stores using different codecs
// still agree on artifact identity.
package codec

import "fmt"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "json+zstd":
		return Zstd{Inner: JSON{}}, true
	case "json+lz4":
		return LZ4{Inner: JSON{}}, true
	default:
		return nil, false
	}
}

// Default is the default codec used by the store.
var Default Codec = JSON{}

// MustMarshal is a helper for internal tests/benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
