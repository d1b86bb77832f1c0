package codec

import (
	"testing"

	"github.com/s3bk/clog/endian"
	"github.com/stretchr/testify/require"
)

func TestStringDict_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	values := []string{"host", "x-trace", "line one\nline two", ""}

	payload, err := encodeStringDict(values, engine)
	require.NoError(t, err)

	got, err := decodeStringDict(payload, engine)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestStringDict_Empty(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	payload, err := encodeStringDict(nil, engine)
	require.NoError(t, err)

	got, err := decodeStringDict(payload, engine)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStringDict_TruncatedPayload(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	payload, err := encodeStringDict([]string{"abc"}, engine)
	require.NoError(t, err)

	_, err = decodeStringDict(payload[:len(payload)-1], engine)
	require.Error(t, err)
}
