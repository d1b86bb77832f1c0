package codec

import (
	"fmt"

	"github.com/s3bk/clog/endian"
	"github.com/s3bk/clog/errs"
)

// encodeStringDict encodes an ordered list of strings into a length-prefixed
// binary payload: [Count: uint16] [Len1: uint16][Bytes1] [Len2: uint16]
// [Bytes2] ... Used for the header key and value dictionaries, where a
// naive newline-joined encoding would corrupt on a value that itself
// contains "\n".
func encodeStringDict(values []string, engine endian.EndianEngine) ([]byte, error) {
	if len(values) > 65535 {
		return nil, fmt.Errorf("clog: string dict count %d exceeds maximum 65535", len(values))
	}

	size := 2
	for _, v := range values {
		if len(v) > 65535 {
			return nil, fmt.Errorf("clog: string dict entry %q exceeds maximum length 65535 bytes", v)
		}
		size += 2 + len(v)
	}

	buf := make([]byte, size)
	offset := 0

	engine.PutUint16(buf[offset:], uint16(len(values))) //nolint:gosec
	offset += 2

	for _, v := range values {
		b := []byte(v)
		engine.PutUint16(buf[offset:], uint16(len(b))) //nolint:gosec
		offset += 2
		copy(buf[offset:], b)
		offset += len(b)
	}

	return buf, nil
}

// decodeStringDict reverses encodeStringDict.
func decodeStringDict(data []byte, engine endian.EndianEngine) ([]string, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: string dict count", errs.ErrTruncated)
	}

	count := engine.Uint16(data)
	offset := 2

	values := make([]string, count)

	for i := range int(count) {
		if len(data) < offset+2 {
			return nil, fmt.Errorf("%w: string dict entry %d length", errs.ErrTruncated, i)
		}

		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, fmt.Errorf("%w: string dict entry %d body", errs.ErrTruncated, i)
		}

		values[i] = string(data[offset : offset+n])
		offset += n
	}

	return values, nil
}
