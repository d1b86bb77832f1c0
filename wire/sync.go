package wire

import "github.com/s3bk/clog/errs"

// SyncHeader is the body of a Sync packet: it tells a freshly attached
// subscriber where the server's live tail begins and how much backlog is
// available before that point.
type SyncHeader struct {
	Start        uint64 // sequence number of the next live row: the open block's start plus its length
	BlockSize    uint64 // configured block size, for the subscriber's own bookkeeping
	FirstBlock   uint64 // lowest sequence number covered by a sealed block the server still has
	FirstBacklog uint64 // lowest sequence number the server will stream on an Attach-with-backlog request
}

const syncHeaderSize = 8 * 4

// MarshalBinary serializes h.
func (h SyncHeader) MarshalBinary() []byte {
	b := make([]byte, syncHeaderSize)
	engine.PutUint64(b[0:8], h.Start)
	engine.PutUint64(b[8:16], h.BlockSize)
	engine.PutUint64(b[16:24], h.FirstBlock)
	engine.PutUint64(b[24:32], h.FirstBacklog)

	return b
}

// ParseSyncHeader reads a SyncHeader from the front of data.
func ParseSyncHeader(data []byte) (SyncHeader, error) {
	if len(data) < syncHeaderSize {
		return SyncHeader{}, errs.ErrInvalidHeaderSize
	}

	return SyncHeader{
		Start:        engine.Uint64(data[0:8]),
		BlockSize:    engine.Uint64(data[8:16]),
		FirstBlock:   engine.Uint64(data[16:24]),
		FirstBacklog: engine.Uint64(data[24:32]),
	}, nil
}
