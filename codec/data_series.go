package codec

import (
	"fmt"

	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/format"
)

// DataSeries is the codec for a concatenated byte-blob column: body.
// Records are appended into one growing arena; handle 0 is reserved for an
// absent blob, and handle i (i >= 1) marks the end offset of the i-th
// stored blob within the arena (its start is the previous stored blob's
// end offset, or 0 for the first).
type DataSeries struct {
	data    []byte
	offsets []uint32
}

// NewDataSeries constructs an empty DataSeries codec.
func NewDataSeries() *DataSeries {
	return &DataSeries{}
}

// Add appends item to the arena and returns its handle; a nil item returns
// the reserved absent handle 0.
func (d *DataSeries) Add(item []byte) uint32 {
	if item == nil {
		return 0
	}

	d.data = append(d.data, item...)
	d.offsets = append(d.offsets, uint32(len(d.data))) //nolint:gosec

	return uint32(len(d.offsets)) //nolint:gosec
}

// Get resolves a handle back to its blob; a nil result with ok==true means
// the field was absent for that record.
func (d *DataSeries) Get(handle uint32) ([]byte, bool) {
	if handle == 0 {
		return nil, true
	}

	i := int(handle) - 1
	if i < 0 || i >= len(d.offsets) {
		return nil, false
	}

	start := uint32(0)
	if i > 0 {
		start = d.offsets[i-1]
	}

	return d.data[start:d.offsets[i]], true
}

// DataSeriesSize is the size descriptor returned by Encode.
type DataSeriesSize struct {
	HandleLen  uint32
	OffsetsLen uint32
	DataLen    uint32
	NumBlobs   uint32 // number of distinct stored blobs, may be < record count
}

// Encode writes the handle column (best-of-a-small-window delta, since
// repeated bodies produce repeated handles out of strict sequence), the
// per-blob end-offset column (delta-from-two-back, since offsets are
// monotonic), and the compressed arena bytes.
func (d *DataSeries) Encode(handles []uint32, outer compress.Codec) ([]byte, DataSeriesSize, error) {
	handleBytes := encoding.EncodeFrame(handles, format.DeltaSpec{Kind: format.DeltaTryLookback})

	var offsetBytes []byte
	if len(d.offsets) > 0 {
		offsetBytes = encoding.EncodeFrame(d.offsets, format.DeltaSpec{Kind: format.DeltaTryConsecutive, Lookback: 2})
	}

	compressed, err := outer.Compress(d.data)
	if err != nil {
		return nil, DataSeriesSize{}, fmt.Errorf("data series: compress arena: %w", err)
	}

	size := DataSeriesSize{
		HandleLen:  uint32(len(handleBytes)), //nolint:gosec
		OffsetsLen: uint32(len(offsetBytes)), //nolint:gosec
		DataLen:    uint32(len(compressed)), //nolint:gosec
		NumBlobs:   uint32(len(d.offsets)), //nolint:gosec
	}

	payload := make([]byte, 0, len(handleBytes)+len(offsetBytes)+len(compressed))
	payload = append(payload, handleBytes...)
	payload = append(payload, offsetBytes...)
	payload = append(payload, compressed...)

	return payload, size, nil
}

// DecodeDataSeries reverses Encode.
func DecodeDataSeries(data []byte, outer compress.Codec, n int, size DataSeriesSize) (*DataSeries, []uint32, error) {
	total := size.HandleLen + size.OffsetsLen + size.DataLen
	if uint32(len(data)) < total { //nolint:gosec
		return nil, nil, fmt.Errorf("data series: truncated payload")
	}

	handles, err := encoding.DecodeFrame[uint32](data[:size.HandleLen], n)
	if err != nil {
		return nil, nil, fmt.Errorf("data series: handles: %w", err)
	}

	var offsets []uint32
	if size.NumBlobs > 0 {
		offsets, err = encoding.DecodeFrame[uint32](data[size.HandleLen:size.HandleLen+size.OffsetsLen], int(size.NumBlobs))
		if err != nil {
			return nil, nil, fmt.Errorf("data series: offsets: %w", err)
		}
	}

	compressed := data[size.HandleLen+size.OffsetsLen : total]

	arena, err := outer.Decompress(compressed)
	if err != nil {
		return nil, nil, fmt.Errorf("data series: decompress arena: %w", err)
	}

	return &DataSeries{data: arena, offsets: offsets}, handles, nil
}
