package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientMessage_SubscribeRoundTrip(t *testing.T) {
	m := Subscribe()

	got, err := ParseClientMessage(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestClientMessage_SubscribeWithBacklogRoundTrip(t *testing.T) {
	m := SubscribeWithBacklog(500)

	got, err := ParseClientMessage(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestClientMessage_FetchRangeRoundTrip(t *testing.T) {
	m := FetchRange(10, 20)

	got, err := ParseClientMessage(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestParseClientMessage_UnknownKind(t *testing.T) {
	_, err := ParseClientMessage([]byte{0xff})
	require.Error(t, err)
}

func TestParseClientMessage_TruncatedBacklog(t *testing.T) {
	_, err := ParseClientMessage([]byte{byte(ClientMsgSubscribeWithBacklog), 1, 2})
	require.Error(t, err)
}
