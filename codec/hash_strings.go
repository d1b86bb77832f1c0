package codec

import (
	"fmt"
	"strings"

	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/internal/collision"
	"github.com/s3bk/clog/internal/hash"
)

// HashStrings is the codec for a deduplicating string dictionary column:
// method, uri, host. Each distinct string is interned once; the handle
// stored per record is the interner's symbol index.
type HashStrings struct {
	interner *collision.Interner
}

// NewHashStrings constructs an empty HashStrings codec.
func NewHashStrings() *HashStrings {
	return &HashStrings{interner: collision.NewInterner()}
}

// Add interns s and returns its symbol as a handle.
func (h *HashStrings) Add(s string) uint32 {
	return uint32(h.interner.Intern(s, hash.ID(s))) //nolint:gosec
}

// Get resolves a handle back to its string.
func (h *HashStrings) Get(handle uint32) (string, bool) {
	return h.interner.Lookup(int32(handle)) //nolint:gosec
}

// Count returns the number of distinct strings interned so far.
func (h *HashStrings) Count() int { return h.interner.Count() }

// HashStringsSize is the size descriptor returned by Encode.
type HashStringsSize struct {
	DictCount  uint32 // number of distinct strings interned
	HandleLen  uint32 // length, in bytes, of the handle column frame
	StringsLen uint32 // length, in bytes, of the compressed dictionary payload
}

// Encode writes the handle column (no delta, since dictionary symbols carry
// no useful ordering) followed by the dictionary's strings newline-joined
// and run through the outer compressor.
func (h *HashStrings) Encode(handles []uint32, outer compress.Codec) ([]byte, HashStringsSize, error) {
	handleBytes := encoding.EncodeFrame(handles, format.DeltaSpec{Kind: format.DeltaNone})

	strs := h.interner.Strings()
	joined := strings.Join(strs, "\n")

	compressed, err := outer.Compress([]byte(joined))
	if err != nil {
		return nil, HashStringsSize{}, fmt.Errorf("hash strings: compress dictionary: %w", err)
	}

	size := HashStringsSize{
		DictCount:  uint32(len(strs)), //nolint:gosec
		HandleLen:  uint32(len(handleBytes)), //nolint:gosec
		StringsLen: uint32(len(compressed)), //nolint:gosec
	}

	payload := make([]byte, 0, len(handleBytes)+len(compressed))
	payload = append(payload, handleBytes...)
	payload = append(payload, compressed...)

	return payload, size, nil
}

// DecodeHashStrings reads a payload produced by Encode, returning the
// reconstructed codec and the per-record handles.
func DecodeHashStrings(data []byte, outer compress.Codec, n int, size HashStringsSize) (*HashStrings, []uint32, error) {
	if uint32(len(data)) < size.HandleLen+size.StringsLen { //nolint:gosec
		return nil, nil, fmt.Errorf("hash strings: truncated payload")
	}

	handles, err := encoding.DecodeFrame[uint32](data[:size.HandleLen], n)
	if err != nil {
		return nil, nil, fmt.Errorf("hash strings: %w", err)
	}

	h := NewHashStrings()
	if size.DictCount > 0 {
		compressed := data[size.HandleLen : size.HandleLen+size.StringsLen]

		joined, err := outer.Decompress(compressed)
		if err != nil {
			return nil, nil, fmt.Errorf("hash strings: decompress dictionary: %w", err)
		}

		strs := strings.SplitN(string(joined), "\n", int(size.DictCount))
		for _, s := range strs {
			h.Add(s)
		}
	}

	return h, handles, nil
}
