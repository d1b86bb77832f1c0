package encoding

import (
	"encoding/binary"
	"fmt"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/internal/pool"
)

// Number is the set of integer types a numeric frame can carry. Handles
// are always non-negative in practice (dictionary indices, offsets,
// status/port values) but frames zigzag-encode through int64 so a delta
// can go negative without a separate signed/unsigned code path.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

const (
	tagNone        byte = 0
	tagAutoRaw     byte = 1
	tagAutoDelta   byte = 2
	tagLookback    byte = 3
	tagConsecutive byte = 4

	lookbackWindow = 16
)

func zigzagEncode(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63) //nolint:gosec
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1) //nolint:gosec
}

// EncodeFrame writes values as a numeric frame using the given delta
// strategy, returning the frame bytes (tag byte, optional parameter byte,
// then the varint payload).
func EncodeFrame[T Number](values []T, spec format.DeltaSpec) []byte {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	switch spec.Kind {
	case format.DeltaNone:
		buf.MustWrite([]byte{tagNone})
		writeRaw(buf, values)
	case format.DeltaTryLookback:
		buf.MustWrite([]byte{tagLookback})
		writeLookback(buf, values, lookbackWindow)
	case format.DeltaTryConsecutive:
		n := spec.Lookback
		if n < 1 {
			n = 1
		}
		buf.MustWrite([]byte{tagConsecutive, byte(n)}) //nolint:gosec
		writeLookback(buf, values, n)
	case format.DeltaAuto:
		fallthrough
	default:
		rawSize := estimateRawSize(values)
		deltaSize := estimateLookbackSize(values, 1)
		if deltaSize < rawSize {
			buf.MustWrite([]byte{tagAutoDelta})
			writeLookback(buf, values, 1)
		} else {
			buf.MustWrite([]byte{tagAutoRaw})
			writeRaw(buf, values)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// DecodeFrame reads count values from a numeric frame produced by EncodeFrame.
func DecodeFrame[T Number](data []byte, count int) ([]T, error) {
	if count == 0 {
		return nil, nil
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("numeric frame: empty data for %d values", count)
	}

	tag := data[0]
	rest := data[1:]

	switch tag {
	case tagNone, tagAutoRaw:
		return readRaw[T](rest, count)
	case tagAutoDelta:
		return readLookback[T](rest, count, 1)
	case tagLookback:
		return readLookback[T](rest, count, lookbackWindow)
	case tagConsecutive:
		if len(rest) == 0 {
			return nil, fmt.Errorf("numeric frame: missing lookback parameter")
		}

		n := int(rest[0])
		if n < 1 {
			n = 1
		}

		return readLookback[T](rest[1:], count, n)
	default:
		return nil, fmt.Errorf("numeric frame: unknown tag %d", tag)
	}
}

func writeRaw[T Number](buf *pool.ByteBuffer, values []T) {
	var tmp [binary.MaxVarintLen64]byte
	for _, v := range values {
		z := zigzagEncode(int64(v))
		n := binary.PutUvarint(tmp[:], z)
		buf.Grow(n)
		buf.MustWrite(tmp[:n])
	}
}

func estimateRawSize[T Number](values []T) int {
	size := 0
	for _, v := range values {
		size += uvarintSize(zigzagEncode(int64(v)))
	}

	return size
}

// writeLookback encodes each value as (distance:uvarint, zigzag-delta:uvarint)
// against the best match within the trailing maxWindow values; distance 0
// marks a raw (non-delta) value.
func writeLookback[T Number](buf *pool.ByteBuffer, values []T, maxWindow int) {
	var tmp [binary.MaxVarintLen64]byte

	for i, v := range values {
		distance, delta := bestLookback(values, i, maxWindow)

		n := binary.PutUvarint(tmp[:], uint64(distance)) //nolint:gosec
		buf.Grow(n)
		buf.MustWrite(tmp[:n])

		n = binary.PutUvarint(tmp[:], delta)
		buf.Grow(n)
		buf.MustWrite(tmp[:n])
	}
}

func estimateLookbackSize[T Number](values []T, maxWindow int) int {
	size := 0
	for i := range values {
		distance, delta := bestLookback(values, i, maxWindow)
		size += uvarintSize(uint64(distance)) + uvarintSize(delta) //nolint:gosec
	}

	return size
}

func bestLookback[T Number](values []T, i int, maxWindow int) (distance int, delta uint64) {
	raw := zigzagEncode(int64(values[i]))
	bestSize := uvarintSize(raw)
	bestDelta := raw
	bestDistance := 0

	window := maxWindow
	if i < window {
		window = i
	}

	for d := 1; d <= window; d++ {
		diff := int64(values[i]) - int64(values[i-d])
		z := zigzagEncode(diff)
		size := uvarintSize(z)
		if size < bestSize {
			bestSize = size
			bestDelta = z
			bestDistance = d
		}
	}

	return bestDistance, bestDelta
}

func readRaw[T Number](data []byte, count int) ([]T, error) {
	out := make([]T, count)
	offset := 0

	for i := range count {
		z, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, fmt.Errorf("numeric frame: truncated raw value at index %d", i)
		}
		offset += n
		out[i] = T(zigzagDecode(z)) //nolint:gosec
	}

	return out, nil
}

func readLookback[T Number](data []byte, count int, maxWindow int) ([]T, error) {
	out := make([]T, count)
	offset := 0

	for i := range count {
		distU, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, fmt.Errorf("numeric frame: truncated distance at index %d", i)
		}
		offset += n

		deltaU, n := binary.Uvarint(data[offset:])
		if n <= 0 {
			return nil, fmt.Errorf("numeric frame: truncated delta at index %d", i)
		}
		offset += n

		distance := int(distU) //nolint:gosec
		if distance == 0 {
			out[i] = T(zigzagDecode(deltaU)) //nolint:gosec
			continue
		}
		if distance > i || distance > maxWindow {
			return nil, fmt.Errorf("numeric frame: invalid lookback distance %d at index %d", distance, i)
		}

		out[i] = T(int64(out[i-distance]) + zigzagDecode(deltaU)) //nolint:gosec
	}

	return out, nil
}

func uvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}
