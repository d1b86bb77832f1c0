package view

import (
	"net"
	"testing"
	"time"

	"github.com/s3bk/clog/client"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
	"github.com/stretchr/testify/require"
)

func entry(uri string) record.RequestEntry {
	return record.RequestEntry{
		Status: 200, Method: "GET", URI: uri, IP: net.ParseIP("127.0.0.1"),
		Port: 80, Time: time.Unix(1700000000, 0), Host: "localhost", Proto: format.ProtoHTTP,
	}
}

func seedMirror(t *testing.T, n int) *client.Mirror {
	t.Helper()

	m := client.NewMirror()

	_, err := m.HandlePacket(format.PacketSync, wire.SyncHeader{Start: 0}.MarshalBinary())
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		_, err := m.HandlePacket(format.PacketRow, wire.EncodeRow(entry(uriFor(i))))
		require.NoError(t, err)
	}

	return m
}

func uriFor(i int) string {
	return string(rune('a' + i%26))
}

func TestScroll_RenderWindowsForwardAndBackward(t *testing.T) {
	m := seedMirror(t, 10)

	sv := NewScroll(func(n uint64, e record.RequestEntry) string { return e.URI }, 3)

	got := sv.Render(m)
	require.Equal(t, []string{uriFor(0), uriFor(1), uriFor(2)}, got)

	sv.ScrollBy(m, 4)
	got = sv.Render(m)
	require.Equal(t, []string{uriFor(4), uriFor(5), uriFor(6)}, got)

	sv.ScrollBy(m, -2)
	got = sv.Render(m)
	require.Equal(t, []string{uriFor(2), uriFor(3), uriFor(4)}, got)
}

func TestScroll_ScrollByClampsAtEnds(t *testing.T) {
	m := seedMirror(t, 5)

	sv := NewScroll(func(n uint64, e record.RequestEntry) string { return e.URI }, 3)

	sv.ScrollBy(m, -100)
	require.Equal(t, uint64(0), sv.Pos())

	sv.ScrollBy(m, 100)
	require.Equal(t, uint64(2), sv.Pos())
}
