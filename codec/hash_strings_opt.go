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

// HashStringsOpt is HashStrings for an optional field: ua, referer. Handle
// 0 is reserved to mean "absent"; handle i (i >= 1) resolves to the
// interner's symbol i-1.
type HashStringsOpt struct {
	interner *collision.Interner
}

// NewHashStringsOpt constructs an empty HashStringsOpt codec.
func NewHashStringsOpt() *HashStringsOpt {
	return &HashStringsOpt{interner: collision.NewInterner()}
}

// Add interns s, if present, and returns its handle; a nil s returns the
// reserved absent handle 0.
func (h *HashStringsOpt) Add(s *string) uint32 {
	if s == nil {
		return 0
	}

	return uint32(h.interner.Intern(*s, hash.ID(*s))) + 1 //nolint:gosec
}

// Get resolves a handle back to its optional string; a nil result with
// ok==true means the field was absent for that record.
func (h *HashStringsOpt) Get(handle uint32) (*string, bool) {
	if handle == 0 {
		return nil, true
	}

	s, ok := h.interner.Lookup(int32(handle) - 1) //nolint:gosec
	if !ok {
		return nil, false
	}

	return &s, true
}

// Encode mirrors HashStrings.Encode; the dictionary never stores the
// absent sentinel, only interned values.
func (h *HashStringsOpt) Encode(handles []uint32, outer compress.Codec) ([]byte, HashStringsSize, error) {
	handleBytes := encoding.EncodeFrame(handles, format.DeltaSpec{Kind: format.DeltaNone})

	strs := h.interner.Strings()
	joined := strings.Join(strs, "\n")

	compressed, err := outer.Compress([]byte(joined))
	if err != nil {
		return nil, HashStringsSize{}, fmt.Errorf("hash strings opt: compress dictionary: %w", err)
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

// DecodeHashStringsOpt reverses Encode.
func DecodeHashStringsOpt(data []byte, outer compress.Codec, n int, size HashStringsSize) (*HashStringsOpt, []uint32, error) {
	if uint32(len(data)) < size.HandleLen+size.StringsLen { //nolint:gosec
		return nil, nil, fmt.Errorf("hash strings opt: truncated payload")
	}

	handles, err := encoding.DecodeFrame[uint32](data[:size.HandleLen], n)
	if err != nil {
		return nil, nil, fmt.Errorf("hash strings opt: %w", err)
	}

	h := NewHashStringsOpt()
	if size.DictCount > 0 {
		compressed := data[size.HandleLen : size.HandleLen+size.StringsLen]

		joined, err := outer.Decompress(compressed)
		if err != nil {
			return nil, nil, fmt.Errorf("hash strings opt: decompress dictionary: %w", err)
		}

		strs := strings.SplitN(string(joined), "\n", int(size.DictCount))
		for _, s := range strs {
			str := s
			h.Add(&str)
		}
	}

	return h, handles, nil
}
