package wire

import (
	"github.com/s3bk/clog/endian"
	"github.com/s3bk/clog/errs"
)

// BatchHeader precedes a block body in a Batch packet, on disk or on the
// wire: the sequence number of the batch's first record.
type BatchHeader struct {
	Start uint64
}

const batchHeaderSize = 8

// MarshalBinary serializes h.
func (h BatchHeader) MarshalBinary() []byte {
	b := make([]byte, batchHeaderSize)
	engine.PutUint64(b, h.Start)

	return b
}

// ParseBatchHeader reads a BatchHeader from the front of data, returning the
// remaining bytes.
func ParseBatchHeader(data []byte) (BatchHeader, []byte, error) {
	if len(data) < batchHeaderSize {
		return BatchHeader{}, nil, errs.ErrInvalidHeaderSize
	}

	return BatchHeader{Start: engine.Uint64(data)}, data[batchHeaderSize:], nil
}

var engine = endian.GetLittleEndianEngine()
