package block

import (
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
)

// Get reconstructs the i-th record accumulated so far. Unlike Block.Get, a
// Builder always has every field populated, since it always writes at the
// current schema version.
func (b *Builder) Get(i int) (record.RequestEntry, bool) {
	if i < 0 || i >= b.Len() {
		return record.RequestEntry{}, false
	}

	var e record.RequestEntry

	e.Status = b.status.Slice()[i]
	e.Method, _ = b.method.Get(b.methodH.Slice()[i])
	e.URI, _ = b.uri.Get(b.uriH.Slice()[i])
	e.IP, _ = b.ip.Get(b.ipPrefixH.Slice()[i], b.ipSuffixH.Slice()[i])
	e.Port = b.port.Slice()[i]
	e.Time = time.Unix(int64(b.timeCodec.Get(b.timeH.Slice()[i])), 0) //nolint:gosec
	e.UA, _ = b.ua.Get(b.uaH.Slice()[i])
	e.Referer, _ = b.referer.Get(b.refererH.Slice()[i])
	e.Body, _ = b.body.Get(b.bodyH.Slice()[i])

	pairs, _ := b.headers.Get(b.headersH.Slice()[i])
	e.Headers = make([]record.HeaderPair, len(pairs))

	for j, p := range pairs {
		e.Headers[j] = record.HeaderPair{Key: p.Key, Value: p.Value}
	}

	e.Host, _ = b.host.Get(b.hostH.Slice()[i])
	e.Proto = format.Protocol(b.proto.Slice()[i])

	return e, true
}
