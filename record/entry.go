package record

import (
	"net"
	"time"

	"github.com/s3bk/clog/format"
)

// RequestEntry is one HTTP request observation as the embedding application
// reports it. Fields added after schema version 1 (Body, Headers, Host,
// Proto) are zero-valued on entries produced by an older caller; the block
// writer gates each field's column against the running schema version, not
// against whether the caller populated it.
type RequestEntry struct {
	Status  uint16
	Method  string
	URI     string
	IP      net.IP
	Port    uint16
	Time    time.Time
	UA      *string
	Referer *string
	Body    []byte
	Headers []HeaderPair
	Host    string
	Proto   format.Protocol
}

// HeaderPair is one request header, in the order it was observed.
type HeaderPair struct {
	Key   string
	Value string
}

// UnixSeconds returns e.Time as a Unix second timestamp, the representation
// the time column codec and the wire protocol both store (spec's time
// field is defined in whole seconds, not nanoseconds).
func (e RequestEntry) UnixSeconds() uint64 {
	return uint64(e.Time.Unix()) //nolint:gosec
}
