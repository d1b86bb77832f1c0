package codec

import (
	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/format"
)

// NumberSeries is the codec for a bare numeric column: status, port, proto.
// It carries no auxiliary state, since the handle written to the column is
// the value itself; Add/Get are identity functions kept only so every
// codec in this package shares the same add/get/encode/decode shape.
type NumberSeries[T encoding.Number] struct{}

// NewNumberSeries constructs a NumberSeries codec for T.
func NewNumberSeries[T encoding.Number]() NumberSeries[T] {
	return NumberSeries[T]{}
}

// Add returns item unchanged; it is the handle stored in the column.
func (NumberSeries[T]) Add(item T) T { return item }

// Get returns handle unchanged.
func (NumberSeries[T]) Get(handle T) T { return handle }

// Encode writes values as a delta-auto numeric frame.
func (NumberSeries[T]) Encode(values []T) []byte {
	return encoding.EncodeFrame(values, format.DeltaSpec{Kind: format.DeltaAuto})
}

// DecodeNumberSeries reads n values from a frame produced by Encode.
func DecodeNumberSeries[T encoding.Number](data []byte, n int) ([]T, error) {
	return encoding.DecodeFrame[T](data, n)
}
