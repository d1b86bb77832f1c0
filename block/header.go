package block

import (
	"fmt"

	"github.com/s3bk/clog/endian"
	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
)

// magic identifies a clog block file; it is the first four bytes of
// every block payload.
const magic uint32 = 0x636c6f67 // "clog"

// headerSize is the fixed-size portion of a block: magic, schema version,
// starting sequence number, record count, and outer compression tag.
const headerSize = 4 + 4 + 8 + 4 + 1

// Header is the fixed-size preamble of a block.
type Header struct {
	Version     uint32
	Start       uint64
	Length      uint32
	Compression format.CompressionType
}

var engine = endian.GetLittleEndianEngine()

// MarshalBinary serializes h into headerSize bytes.
func (h Header) MarshalBinary() []byte {
	b := make([]byte, headerSize)

	engine.PutUint32(b[0:4], magic)
	engine.PutUint32(b[4:8], h.Version)
	engine.PutUint64(b[8:16], h.Start)
	engine.PutUint32(b[16:20], h.Length)
	b[20] = byte(h.Compression)

	return b
}

// parseHeader reads the fixed header from the front of data, returning the
// parsed Header and the remaining bytes.
func parseHeader(data []byte) (Header, []byte, error) {
	if len(data) < headerSize {
		return Header{}, nil, errs.ErrInvalidHeaderSize
	}

	if engine.Uint32(data[0:4]) != magic {
		return Header{}, nil, fmt.Errorf("block: bad magic")
	}

	h := Header{
		Version:     engine.Uint32(data[4:8]),
		Start:       engine.Uint64(data[8:16]),
		Length:      engine.Uint32(data[16:20]),
		Compression: format.CompressionType(data[20]),
	}

	if h.Version > format.SchemaVersion {
		return Header{}, nil, errs.ErrVersionTooNew
	}

	return h, data[headerSize:], nil
}
