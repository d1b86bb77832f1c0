package codec

import (
	"testing"

	"github.com/s3bk/clog/compress"
	"github.com/stretchr/testify/require"
)

func TestHashStringsOpt_RoundTrip(t *testing.T) {
	h := NewHashStringsOpt()
	outer := compress.NewZstdCompressor()

	ua := "curl/8.0"
	values := []*string{&ua, nil, &ua}

	handles := make([]uint32, len(values))
	for i, v := range values {
		handles[i] = h.Add(v)
	}
	require.Equal(t, uint32(0), handles[1])

	payload, size, err := h.Encode(handles, outer)
	require.NoError(t, err)

	decoded, decHandles, err := DecodeHashStringsOpt(payload, outer, len(values), size)
	require.NoError(t, err)

	for i, want := range values {
		got, ok := decoded.Get(decHandles[i])
		require.True(t, ok)
		if want == nil {
			require.Nil(t, got)
		} else {
			require.Equal(t, *want, *got)
		}
	}
}

func TestHashStringsOpt_AllAbsent(t *testing.T) {
	h := NewHashStringsOpt()
	outer := compress.NewZstdCompressor()

	handles := []uint32{h.Add(nil), h.Add(nil)}

	payload, size, err := h.Encode(handles, outer)
	require.NoError(t, err)
	require.Equal(t, uint32(0), size.DictCount)

	decoded, decHandles, err := DecodeHashStringsOpt(payload, outer, 2, size)
	require.NoError(t, err)

	for _, h := range decHandles {
		got, ok := decoded.Get(h)
		require.True(t, ok)
		require.Nil(t, got)
	}
}
