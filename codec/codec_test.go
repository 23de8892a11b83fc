package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type payload struct {
	ID    string             `json:"id"`
	Score float64            `json:"score"`
	Tags  []string           `json:"tags"`
	Attrs map[string]float64 `json:"attrs"`
}

func samplePayload() payload {
	return payload{
		ID:    "3-2_2-4",
		Score: -4.25,
		Tags:  []string{"minorminer", "seed42"},
		Attrs: map[string]float64{"runtime": 1.5, "chains": 12},
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "json+zstd", "json+lz4"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		require.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	require.False(t, ok)
}

func TestCodecRoundTrip(t *testing.T) {
	codecs := []Codec{
		JSON{},
		Zstd{Inner: JSON{}},
		LZ4{Inner: JSON{}},
	}

	for _, c := range codecs {
		t.Run(c.Name(), func(t *testing.T) {
			in := samplePayload()

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out payload
			require.NoError(t, c.Unmarshal(data, &out))
			require.Equal(t, in, out)
		})
	}
}

func TestCompressedCodecsRejectTruncatedPayload(t *testing.T) {
	for _, c := range []Codec{Zstd{}, LZ4{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var out payload
			err := c.Unmarshal([]byte{0x01, 0x02}, &out)
			require.Error(t, err)
		})
	}
}

func TestZstdCompressesRepetitiveInput(t *testing.T) {
	c := Zstd{}
	in := strings.Repeat("sampleset-record;", 2048)

	data, err := c.Marshal(in)
	require.NoError(t, err)
	require.Less(t, len(data), len(in)/4)

	var out string
	require.NoError(t, c.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestLZ4IncompressibleFallback(t *testing.T) {
	c := LZ4{}
	// Short random-ish input that LZ4 cannot shrink takes the raw path.
	in := "x"

	data, err := c.Marshal(in)
	require.NoError(t, err)

	var out string
	require.NoError(t, c.Unmarshal(data, &out))
	require.Equal(t, in, out)
}
