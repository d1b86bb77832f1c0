package record

import (
	"net"
	"testing"
	"time"

	"github.com/s3bk/clog/format"
	"github.com/stretchr/testify/require"
)

func TestRequestEntry_UnixSeconds(t *testing.T) {
	ts := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	e := RequestEntry{
		Status: 200,
		Method: "GET",
		URI:    "/",
		IP:     net.ParseIP("2001:db8::1"),
		Port:   443,
		Time:   ts,
		Proto:  format.ProtoHTTPS,
	}

	require.Equal(t, uint64(ts.Unix()), e.UnixSeconds()) //nolint:gosec
}
