// Package format declares the small value types shared across clog's wire
// and on-disk framing: the compression algorithm tag, the numeric frame's
// delta strategy, the wire packet type, and the HTTP protocol enum carried
// in a RequestEntry.
package format

import "fmt"

// CompressionType identifies the outer byte-pool compressor used for a
// column's string/blob payload.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone applies no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses the S2 (Snappy-family) codec.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return fmt.Sprintf("CompressionType(%d)", uint8(c))
	}
}

// DeltaKind selects how a numeric frame's handle column is pre-processed
// before being handed to the numeric compressor.
type DeltaKind uint8

const (
	// DeltaNone writes raw values with no delta transform.
	DeltaNone DeltaKind = iota
	// DeltaAuto lets the frame codec pick whichever of None/lookback
	// produces the smaller encoding for this column's actual data.
	DeltaAuto
	// DeltaTryLookback encodes each value as a signed delta against the
	// best of a small window of previously emitted values.
	DeltaTryLookback
	// DeltaTryConsecutive encodes each value as a delta against the best of
	// the N values before it (N == DeltaSpec.Lookback), or raw when no such
	// delta is shorter; N=1 is delta-from-previous.
	DeltaTryConsecutive
)

// DeltaSpec fully describes a numeric frame's delta strategy.
type DeltaSpec struct {
	Kind     DeltaKind
	Lookback int // only meaningful when Kind == DeltaTryConsecutive
}

func (d DeltaKind) String() string {
	switch d {
	case DeltaNone:
		return "None"
	case DeltaAuto:
		return "Auto"
	case DeltaTryLookback:
		return "TryLookback"
	case DeltaTryConsecutive:
		return "TryConsecutive"
	default:
		return fmt.Sprintf("DeltaKind(%d)", uint8(d))
	}
}

// PacketType is the one-byte tag that begins every on-disk block and every
// WebSocket frame sent from collector to subscriber.
type PacketType uint8

const (
	PacketBatch     PacketType = 1
	PacketRow       PacketType = 2
	PacketSync      PacketType = 3
	PacketServerMsg PacketType = 4
)

// ParsePacketType maps a wire byte back to a PacketType, reporting whether
// it was recognized.
func ParsePacketType(b byte) (PacketType, bool) {
	switch PacketType(b) {
	case PacketBatch, PacketRow, PacketSync, PacketServerMsg:
		return PacketType(b), true
	default:
		return 0, false
	}
}

func (p PacketType) String() string {
	switch p {
	case PacketBatch:
		return "Batch"
	case PacketRow:
		return "Row"
	case PacketSync:
		return "Sync"
	case PacketServerMsg:
		return "ServerMsg"
	default:
		return fmt.Sprintf("PacketType(%d)", uint8(p))
	}
}

// Protocol is the HTTP scheme a RequestEntry was observed over.
type Protocol uint16

const (
	ProtoUnknown Protocol = 0
	ProtoHTTP    Protocol = 1
	ProtoHTTPS   Protocol = 2
)

func (p Protocol) String() string {
	switch p {
	case ProtoHTTP:
		return "http"
	case ProtoHTTPS:
		return "https"
	default:
		return "unknown"
	}
}

// SchemaVersion is the current, compiled block schema version. Readers
// reject any block whose header version exceeds this.
//
// Earlier drafts of this schema reused the literal 3 for what was meant to
// be version 4 (see the gating table in package block); this constant is
// the authoritative value and the gating table is written to match it.
const SchemaVersion uint32 = 4
