package collector

import (
	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
)

// encodeBatch seals builder into a full Batch wire frame: a PacketType
// byte, the packet-level BatchHeader naming the first sequence number, and
// the block payload itself.
func encodeBatch(start uint64, b *block.Builder, ctype format.CompressionType, quality int) ([]byte, error) {
	body, err := b.Encode(ctype, quality)
	if err != nil {
		return nil, err
	}

	header := wire.BatchHeader{Start: start}.MarshalBinary()

	frame := make([]byte, 0, 1+len(header)+len(body))
	frame = append(frame, byte(format.PacketBatch))
	frame = append(frame, header...)
	frame = append(frame, body...)

	return frame, nil
}

// encodeRow wraps a single record as a Row wire frame.
func encodeRow(e record.RequestEntry) []byte {
	body := wire.EncodeRow(e)
	frame := make([]byte, 0, 1+len(body))
	frame = append(frame, byte(format.PacketRow))
	frame = append(frame, body...)

	return frame
}

// encodeSync wraps a SyncHeader as a Sync wire frame.
func encodeSync(h wire.SyncHeader) []byte {
	body := h.MarshalBinary()
	frame := make([]byte, 0, 1+len(body))
	frame = append(frame, byte(format.PacketSync))
	frame = append(frame, body...)

	return frame
}

// encodeServerMsg wraps a ServerMsg as a ServerMsg wire frame.
func encodeServerMsg(m wire.ServerMsg) []byte {
	body := m.MarshalBinary()
	frame := make([]byte, 0, 1+len(body))
	frame = append(frame, byte(format.PacketServerMsg))
	frame = append(frame, body...)

	return frame
}

// decodeBatch reverses encodeBatch, returning the packet-level start and
// the decoded block.
func decodeBatch(data []byte) (uint64, *block.Block, error) {
	if len(data) < 1 {
		return 0, nil, errs.ErrTruncated
	}

	h, rest, err := wire.ParseBatchHeader(data[1:])
	if err != nil {
		return 0, nil, err
	}

	blk, err := block.Decode(rest)
	if err != nil {
		return 0, nil, err
	}

	return h.Start, blk, nil
}
