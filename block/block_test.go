package block

import (
	"net"
	"testing"
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []record.RequestEntry {
	ua := "curl/8.0"
	t0 := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	return []record.RequestEntry{
		{
			Status: 200, Method: "GET", URI: "/", IP: net.ParseIP("2001:db8::1"), Port: 443,
			Time: t0, Body: nil,
			Headers: []record.HeaderPair{{Key: "host", Value: "example.com"}},
			Host:    "example.com", Proto: format.ProtoHTTPS,
		},
		{
			Status: 404, Method: "GET", URI: "/missing", IP: net.ParseIP("2001:db8::2"), Port: 443,
			Time: t0.Add(time.Second), Body: []byte("not found"),
			Headers: []record.HeaderPair{{Key: "host", Value: "example.com"}},
			Host:    "example.com", Proto: format.ProtoHTTPS, UA: &ua,
		},
		{
			Status: 200, Method: "POST", URI: "/submit", IP: net.ParseIP("2001:db8::1"), Port: 80,
			Time: t0.Add(2 * time.Second), Body: []byte(`{"ok":true}`),
			Headers: []record.HeaderPair{{Key: "content-type", Value: "application/json"}},
			Host:    "other.example.com", Proto: format.ProtoHTTP,
		},
	}
}

func TestBuilder_EncodeDecode_RoundTrip(t *testing.T) {
	b := NewBuilder(100, 4)
	entries := sampleEntries()
	for _, e := range entries {
		b.Add(e)
	}

	data, err := b.Encode(format.CompressionZstd, 0)
	require.NoError(t, err)

	blk, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, uint64(100), blk.Header.Start)
	require.Equal(t, len(entries), blk.Len())

	for i, want := range entries {
		got, ok := blk.Get(i)
		require.True(t, ok)
		require.Equal(t, want.Status, got.Status)
		require.Equal(t, want.Method, got.Method)
		require.Equal(t, want.URI, got.URI)
		require.True(t, want.IP.Equal(got.IP))
		require.Equal(t, want.Port, got.Port)
		require.Equal(t, want.Time.Unix(), got.Time.Unix())
		require.Equal(t, want.Body, got.Body)
		require.Equal(t, want.Headers, got.Headers)
		require.Equal(t, want.Host, got.Host)
		require.Equal(t, want.Proto, got.Proto)

		// ua is gated out of blocks written at the current schema
		// version, so it reads back absent even where the input set it.
		require.Nil(t, got.UA)
	}

	_, ok := blk.Get(len(entries))
	require.False(t, ok)
}

func TestBuilder_Encode_DeduplicatesSharedStrings(t *testing.T) {
	b := NewBuilder(0, 4)
	b.Add(record.RequestEntry{Method: "GET", URI: "/", Host: "example.com", IP: net.ParseIP("::1")})
	b.Add(record.RequestEntry{Method: "GET", URI: "/", Host: "example.com", IP: net.ParseIP("::1")})

	require.Equal(t, 1, b.method.Count())
	require.Equal(t, 1, b.uri.Count())
	require.Equal(t, 1, b.host.Count())
}

// TestBuilder_EncodeDecode_SpanExceedingFourPointThreeSeconds guards
// against the time column's u32 handle wrapping: a block whose records
// span well over the ~4.3 seconds a nanosecond-scaled delta could hold
// before overflowing must still round-trip exactly once the column is
// seconds-scaled.
func TestBuilder_EncodeDecode_SpanExceedingFourPointThreeSeconds(t *testing.T) {
	b := NewBuilder(0, 3)
	t0 := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)

	times := []time.Time{t0, t0.Add(10 * time.Second), t0.Add(24 * time.Hour)}
	for _, ti := range times {
		b.Add(record.RequestEntry{Method: "GET", URI: "/", IP: net.ParseIP("::1"), Time: ti})
	}

	data, err := b.Encode(format.CompressionNone, 0)
	require.NoError(t, err)

	blk, err := Decode(data)
	require.NoError(t, err)

	for i, want := range times {
		got, ok := blk.Get(i)
		require.True(t, ok)
		require.Equal(t, want.Unix(), got.Time.Unix())
	}
}

func TestDecode_RejectsFutureSchemaVersion(t *testing.T) {
	b := NewBuilder(0, 2)
	b.Add(record.RequestEntry{Status: 200, Method: "GET", URI: "/", IP: net.ParseIP("::1"), Port: 80})

	data, err := b.Encode(format.CompressionNone, 0)
	require.NoError(t, err)

	// Bump the header's version past what this binary understands;
	// Decode must refuse rather than misparse the section stream.
	data[4] = byte(format.SchemaVersion + 1)

	_, err = Decode(data)
	require.Error(t, err)
}
