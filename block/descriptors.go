package block

import "github.com/s3bk/clog/errs"

// putU32s packs vals as consecutive little-endian uint32s, the wire form
// every codec's size descriptor uses.
func putU32s(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		engine.PutUint32(b[i*4:], v)
	}

	return b
}

// parseU32s unpacks exactly n little-endian uint32s from b.
func parseU32s(b []byte, n int) ([]uint32, error) {
	if len(b) != n*4 {
		return nil, errs.ErrInvalidSizeDescriptor
	}

	out := make([]uint32, n)
	for i := range out {
		out[i] = engine.Uint32(b[i*4:])
	}

	return out, nil
}
