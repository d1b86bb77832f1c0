package codec

import (
	"testing"

	"github.com/s3bk/clog/compress"
	"github.com/stretchr/testify/require"
)

func TestHashStrings_RoundTrip(t *testing.T) {
	h := NewHashStrings()

	values := []string{"GET", "POST", "GET", "GET", "DELETE"}
	handles := make([]uint32, len(values))
	for i, v := range values {
		handles[i] = h.Add(v)
	}

	outer := compress.NewZstdCompressor()
	payload, size, err := h.Encode(handles, outer)
	require.NoError(t, err)
	require.Equal(t, uint32(3), size.DictCount)

	decoded, decHandles, err := DecodeHashStrings(payload, outer, len(values), size)
	require.NoError(t, err)
	require.Equal(t, handles, decHandles)

	for i, v := range values {
		got, ok := decoded.Get(decHandles[i])
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}

func TestHashStrings_Empty(t *testing.T) {
	h := NewHashStrings()
	outer := compress.NewZstdCompressor()

	payload, size, err := h.Encode(nil, outer)
	require.NoError(t, err)
	require.Equal(t, uint32(0), size.DictCount)

	decoded, handles, err := DecodeHashStrings(payload, outer, 0, size)
	require.NoError(t, err)
	require.Empty(t, handles)
	require.Equal(t, 0, decoded.interner.Count())
}

func TestHashStrings_SameStringSameHandle(t *testing.T) {
	h := NewHashStrings()

	a := h.Add("/index.html")
	b := h.Add("/index.html")
	require.Equal(t, a, b)
}
