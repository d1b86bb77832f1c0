package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServerMsg_NotAttachedRoundTrip(t *testing.T) {
	m := ServerMsg{Kind: ServerMsgNotAttached}

	got, err := ParseServerMsg(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestServerMsg_DetachedRoundTrip(t *testing.T) {
	m := ServerMsg{Kind: ServerMsgDetached}

	got, err := ParseServerMsg(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestServerMsg_ErrorRoundTrip(t *testing.T) {
	m := ServerMsg{Kind: ServerMsgError, Text: "disk full"}

	got, err := ParseServerMsg(m.MarshalBinary())
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestParseServerMsg_UnknownKind(t *testing.T) {
	_, err := ParseServerMsg([]byte{0xff})
	require.Error(t, err)
}

func TestParseServerMsg_TruncatedErrorText(t *testing.T) {
	m := ServerMsg{Kind: ServerMsgError, Text: "boom"}
	data := m.MarshalBinary()

	_, err := ParseServerMsg(data[:len(data)-2])
	require.Error(t, err)
}
