package wire

import (
	"net"
	"testing"
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRow_RoundTrip(t *testing.T) {
	ua := "curl/8.0"
	e := record.RequestEntry{
		Status:  200,
		Method:  "GET",
		URI:     "/healthz",
		IP:      net.ParseIP("2001:db8::1"),
		Port:    443,
		Time:    time.Date(2026, 7, 30, 9, 0, 0, 0, time.UTC),
		UA:      &ua,
		Referer: nil,
		Body:    []byte(`{"ok":true}`),
		Headers: []record.HeaderPair{{Key: "host", Value: "example.com"}},
		Host:    "example.com",
		Proto:   format.ProtoHTTPS,
	}

	got, err := DecodeRow(EncodeRow(e))
	require.NoError(t, err)
	require.Equal(t, e.Status, got.Status)
	require.Equal(t, e.Method, got.Method)
	require.Equal(t, e.URI, got.URI)
	require.True(t, e.IP.Equal(got.IP))
	require.Equal(t, e.Port, got.Port)
	require.Equal(t, e.Time.Unix(), got.Time.Unix())
	require.Equal(t, *e.UA, *got.UA)
	require.Nil(t, got.Referer)
	require.Equal(t, e.Body, got.Body)
	require.Equal(t, e.Headers, got.Headers)
	require.Equal(t, e.Host, got.Host)
	require.Equal(t, e.Proto, got.Proto)
}

func TestDecodeRow_Truncated(t *testing.T) {
	e := record.RequestEntry{Method: "GET", URI: "/", IP: net.ParseIP("::1")}
	data := EncodeRow(e)

	_, err := DecodeRow(data[:len(data)-3])
	require.Error(t, err)
}
