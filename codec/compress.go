package codec

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressed payload layout: 8-byte little-endian uncompressed size, then
// the compressed block. The size prefix lets LZ4 allocate the exact
// destination buffer and lets both codecs reject truncated files early.

const sizePrefixLen = 8

// zstd encoder/decoder pools, shared by all Zstd codec instances.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Zstd wraps an inner codec with ZSTD block compression. Good default for
// large sample sets that keep accumulating merged records.
type Zstd struct {
	Inner Codec
}

func (c Zstd) inner() Codec {
	if c.Inner == nil {
		return JSON{}
	}
	return c.Inner
}

// Marshal encodes via the inner codec and compresses the result.
func (c Zstd) Marshal(v any) ([]byte, error) {
	raw, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}

	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)

	out := make([]byte, sizePrefixLen, sizePrefixLen+len(raw)/2+64)
	binary.LittleEndian.PutUint64(out, uint64(len(raw)))
	return enc.EncodeAll(raw, out), nil
}

// Unmarshal decompresses the data and decodes via the inner codec.
func (c Zstd) Unmarshal(data []byte, v any) error {
	raw, err := decompressPrefix(data, func(block []byte, size int) ([]byte, error) {
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(block, make([]byte, 0, size))
	})
	if err != nil {
		return err
	}
	return c.inner().Unmarshal(raw, v)
}

// Name returns the unique name of the codec.
func (c Zstd) Name() string { return c.inner().Name() + "+zstd" }

// LZ4 wraps an inner codec with LZ4 block compression (faster, lower ratio
// than ZSTD; suits frequently re-read embedding files).
type LZ4 struct {
	Inner Codec
}

func (c LZ4) inner() Codec {
	if c.Inner == nil {
		return JSON{}
	}
	return c.Inner
}

// Marshal encodes via the inner codec and compresses the result.
func (c LZ4) Marshal(v any) ([]byte, error) {
	raw, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}

	out := make([]byte, sizePrefixLen+lz4.CompressBlockBound(len(raw)))
	binary.LittleEndian.PutUint64(out, uint64(len(raw)))

	n, err := lz4.CompressBlock(raw, out[sizePrefixLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if n == 0 {
		// Incompressible input is stored raw; size prefix disambiguates.
		return append(out[:sizePrefixLen], raw...), nil
	}
	return out[:sizePrefixLen+n], nil
}

// Unmarshal decompresses the data and decodes via the inner codec.
func (c LZ4) Unmarshal(data []byte, v any) error {
	raw, err := decompressPrefix(data, func(block []byte, size int) ([]byte, error) {
		if len(block) == size {
			// Stored raw (incompressible input).
			return block, nil
		}
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(block, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 uncompress: %w", err)
		}
		return dst[:n], nil
	})
	if err != nil {
		return err
	}
	return c.inner().Unmarshal(raw, v)
}

// Name returns the unique name of the codec.
func (c LZ4) Name() string { return c.inner().Name() + "+lz4" }

func decompressPrefix(data []byte, fn func(block []byte, size int) ([]byte, error)) ([]byte, error) {
	if len(data) < sizePrefixLen {
		return nil, fmt.Errorf("compressed payload too short: %d bytes", len(data))
	}
	size := binary.LittleEndian.Uint64(data)
	const maxPayload = 1 << 40
	if size > maxPayload {
		return nil, fmt.Errorf("compressed payload declares implausible size %d", size)
	}
	raw, err := fn(data[sizePrefixLen:], int(size))
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != size {
		return nil, fmt.Errorf("compressed payload size mismatch: declared %d, got %d", size, len(raw))
	}
	return raw, nil
}
