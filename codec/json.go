package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Notes:
//   - Artifact documents (problems, graphs, embeddings, sample sets) are
//     plain structs/maps/slices and round-trip losslessly.
//   - Embedding/sample-set property maps may carry arbitrary user values;
//     time, complex numbers, funcs, channels, etc. are not supported.
//
// If you need custom encoding (e.g. protobuf/msgpack), implement Codec and
// pass it to the store via WithCodec.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
