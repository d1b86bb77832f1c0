package block

import (
	"github.com/s3bk/clog/codec"
	"github.com/s3bk/clog/column"
	"github.com/s3bk/clog/record"
)

// Builder accumulates records into one not-yet-sealed block. It is the
// only mutable block in the system: Add grows it one record at a time,
// Encode seals the accumulated columns into a block payload.
type Builder struct {
	start uint64

	status *column.Array[uint16]

	method  *codec.HashStrings
	methodH *column.Array[uint32]

	uri  *codec.HashStrings
	uriH *column.Array[uint32]

	ip        *codec.HashIpv6
	ipPrefixH *column.Array[uint32]
	ipSuffixH *column.Array[uint32]

	port *column.Array[uint16]

	timeCodec *codec.TimeSeries
	timeH     *column.Array[uint32]

	ua  *codec.HashStringsOpt
	uaH *column.Array[uint32]

	referer  *codec.HashStringsOpt
	refererH *column.Array[uint32]

	body  *codec.DataSeries
	bodyH *column.Array[uint32]

	headers  *codec.HeaderMap
	headersH *column.Array[uint32]

	host  *codec.HashStrings
	hostH *column.Array[uint32]

	proto *column.Array[uint8]
}

// NewBuilder constructs an empty Builder for a block starting at sequence
// number start, with room for capacity records before its columns grow.
func NewBuilder(start uint64, capacity int) *Builder {
	return &Builder{
		start: start,

		status: column.NewArray[uint16](capacity),

		method:  codec.NewHashStrings(),
		methodH: column.NewArray[uint32](capacity),

		uri:  codec.NewHashStrings(),
		uriH: column.NewArray[uint32](capacity),

		ip:        codec.NewHashIpv6(),
		ipPrefixH: column.NewArray[uint32](capacity),
		ipSuffixH: column.NewArray[uint32](capacity),

		port: column.NewArray[uint16](capacity),

		timeCodec: codec.NewTimeSeries(),
		timeH:     column.NewArray[uint32](capacity),

		ua:  codec.NewHashStringsOpt(),
		uaH: column.NewArray[uint32](capacity),

		referer:  codec.NewHashStringsOpt(),
		refererH: column.NewArray[uint32](capacity),

		body:  codec.NewDataSeries(),
		bodyH: column.NewArray[uint32](capacity),

		headers:  codec.NewHeaderMap(),
		headersH: column.NewArray[uint32](capacity),

		host:  codec.NewHashStrings(),
		hostH: column.NewArray[uint32](capacity),

		proto: column.NewArray[uint8](capacity),
	}
}

// Len returns the number of records pushed so far.
func (b *Builder) Len() int { return b.status.Len() }

// Start returns the sequence number of this builder's first record.
func (b *Builder) Start() uint64 { return b.start }

// Add pushes one record's fields into their respective columns.
func (b *Builder) Add(e record.RequestEntry) {
	b.status.Push(e.Status)
	b.methodH.Push(b.method.Add(e.Method))
	b.uriH.Push(b.uri.Add(e.URI))

	prefixIdx, suffix := b.ip.Add(e.IP)
	b.ipPrefixH.Push(prefixIdx)
	b.ipSuffixH.Push(suffix)

	b.port.Push(e.Port)
	b.timeH.Push(b.timeCodec.Add(e.UnixSeconds()))
	b.uaH.Push(b.ua.Add(e.UA))
	b.refererH.Push(b.referer.Add(e.Referer))
	b.bodyH.Push(b.body.Add(e.Body))

	pairs := make([]codec.HeaderPair, len(e.Headers))
	for i, h := range e.Headers {
		pairs[i] = codec.HeaderPair{Key: h.Key, Value: h.Value}
	}

	b.headersH.Push(b.headers.Add(pairs))
	b.hostH.Push(b.host.Add(e.Host))
	b.proto.Push(uint8(e.Proto)) //nolint:gosec
}
