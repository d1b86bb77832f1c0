package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSyncHeader_RoundTrip(t *testing.T) {
	h := SyncHeader{Start: 100, BlockSize: 10000, FirstBlock: 0, FirstBacklog: 50}

	got, err := ParseSyncHeader(h.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestParseSyncHeader_TooShort(t *testing.T) {
	_, err := ParseSyncHeader([]byte{1, 2, 3})
	require.Error(t, err)
}
