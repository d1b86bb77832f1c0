package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/format"
)

// TimeSeries is the codec for the time field: a monotonic-ish column of
// Unix-second timestamps (the field's spec-defined unit; callers must not
// feed sub-second precision in here, or the u32 handle's ~4.295e9 budget
// wraps across any block spanning more than ~4.3 seconds of wall-clock
// time). The column's offset is lazily set to the first non-zero timestamp
// seen (or 1, if the very first record's timestamp is exactly zero, so the
// offset is never itself zero), and every handle is that record's
// timestamp minus the offset, truncated to 32 bits. Truncation wraps the
// same way a Rust `wrapping_sub(...) as u32` would: only the low 32 bits
// of the difference survive.
type TimeSeries struct {
	offset uint64
}

// NewTimeSeries constructs an empty TimeSeries codec.
func NewTimeSeries() *TimeSeries {
	return &TimeSeries{}
}

// Add records item and returns its handle.
func (t *TimeSeries) Add(item uint64) uint32 {
	if t.offset == 0 {
		if item != 0 {
			t.offset = item
		} else {
			t.offset = 1
		}
	}

	return uint32(item - t.offset) //nolint:gosec
}

// Get reconstructs a timestamp from a handle. The handle is read as a
// signed 32-bit difference, so a timestamp below the offset (such as a
// leading zero, whose offset is 1) also comes back exactly.
func (t *TimeSeries) Get(handle uint32) uint64 {
	return t.offset + uint64(int64(int32(handle))) //nolint:gosec
}

// Encode writes the offset as 8 raw little-endian bytes followed by a
// delta-from-previous numeric frame over the handles.
func (t *TimeSeries) Encode(handles []uint32) []byte {
	out := make([]byte, 8, 8+len(handles)*2)
	binary.LittleEndian.PutUint64(out, t.offset)

	return append(out, encoding.EncodeFrame(handles, format.DeltaSpec{Kind: format.DeltaTryConsecutive, Lookback: 1})...)
}

// DecodeTimeSeries reads the offset and n handles, returning the
// reconstructed TimeSeries codec (so further Get calls resolve against the
// same offset) and the decoded timestamps.
func DecodeTimeSeries(data []byte, n int) (*TimeSeries, []uint64, error) {
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("time series: truncated offset")
	}

	t := &TimeSeries{offset: binary.LittleEndian.Uint64(data)}

	handles, err := encoding.DecodeFrame[uint32](data[8:], n)
	if err != nil {
		return nil, nil, fmt.Errorf("time series: %w", err)
	}

	values := make([]uint64, n)
	for i, h := range handles {
		values[i] = t.Get(h)
	}

	return t, values, nil
}
