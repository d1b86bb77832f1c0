package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/endian"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/internal/collision"
	"github.com/s3bk/clog/internal/hash"
)

// HeaderPair is one key/value entry of a record's header set.
type HeaderPair struct {
	Key   string
	Value string
}

// HeaderMap is the codec for the headers field. Header names and values
// are interned into two separate dictionaries; a record's whole ordered
// header list is itself interned as one "entry" in an ordered set, so
// records sharing an identical header set (the common case for a given
// route) share a single handle.
type HeaderMap struct {
	keys    *collision.Interner
	vals    *collision.Interner
	entries [][]headerIdxPair
	index   map[string]uint32
}

type headerIdxPair struct {
	key uint32
	val uint32
}

// NewHeaderMap constructs an empty HeaderMap codec.
func NewHeaderMap() *HeaderMap {
	return &HeaderMap{
		keys:  collision.NewInterner(),
		vals:  collision.NewInterner(),
		index: make(map[string]uint32),
	}
}

func entryKey(entry []headerIdxPair) string {
	var b strings.Builder
	for _, p := range entry {
		b.WriteString(strconv.FormatUint(uint64(p.key), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.val), 36))
		b.WriteByte(',')
	}

	return b.String()
}

// Add interns pairs's keys and values, then interns the whole ordered
// entry, returning its handle.
func (m *HeaderMap) Add(pairs []HeaderPair) uint32 {
	entry := make([]headerIdxPair, len(pairs))
	for i, p := range pairs {
		entry[i] = headerIdxPair{
			key: uint32(m.keys.Intern(p.Key, hash.ID(p.Key))),   //nolint:gosec
			val: uint32(m.vals.Intern(p.Value, hash.ID(p.Value))), //nolint:gosec
		}
	}

	k := entryKey(entry)
	if idx, ok := m.index[k]; ok {
		return idx
	}

	idx := uint32(len(m.entries)) //nolint:gosec
	m.entries = append(m.entries, entry)
	m.index[k] = idx

	return idx
}

// Get resolves a handle back to its ordered header list.
func (m *HeaderMap) Get(handle uint32) ([]HeaderPair, bool) {
	if int(handle) >= len(m.entries) {
		return nil, false
	}

	entry := m.entries[handle]
	pairs := make([]HeaderPair, len(entry))

	for i, p := range entry {
		key, ok := m.keys.Lookup(int32(p.key)) //nolint:gosec
		if !ok {
			return nil, false
		}

		val, ok := m.vals.Lookup(int32(p.val)) //nolint:gosec
		if !ok {
			return nil, false
		}

		pairs[i] = HeaderPair{Key: key, Value: val}
	}

	return pairs, true
}

// HeaderMapSize is the size descriptor returned by Encode.
type HeaderMapSize struct {
	KeysLen    uint32
	ValsLen    uint32
	LengthsLen uint32
	KeyIdxLen  uint32
	ValIdxLen  uint32
	HandleLen  uint32
	EntryCount uint32 // number of distinct entries in the ordered set
}

// Encode writes, in order: the compressed key dictionary, the compressed
// value dictionary, a per-entry length column (how many pairs each
// distinct entry holds), the concatenated key-index column, the
// concatenated value-index column, and finally the per-record handle
// column (the index into the ordered entry set).
func (m *HeaderMap) Encode(handles []uint32, outer compress.Codec) ([]byte, HeaderMapSize, error) {
	engine := endian.GetLittleEndianEngine()

	keysDict, err := encodeStringDict(m.keys.Strings(), engine)
	if err != nil {
		return nil, HeaderMapSize{}, fmt.Errorf("header map: encode key dictionary: %w", err)
	}

	valsDict, err := encodeStringDict(m.vals.Strings(), engine)
	if err != nil {
		return nil, HeaderMapSize{}, fmt.Errorf("header map: encode value dictionary: %w", err)
	}

	keysPayload, err := outer.Compress(keysDict)
	if err != nil {
		return nil, HeaderMapSize{}, fmt.Errorf("header map: compress keys: %w", err)
	}

	valsPayload, err := outer.Compress(valsDict)
	if err != nil {
		return nil, HeaderMapSize{}, fmt.Errorf("header map: compress values: %w", err)
	}

	lengths := make([]uint16, len(m.entries))
	var keyIdx, valIdx []uint32

	for i, entry := range m.entries {
		lengths[i] = uint16(len(entry)) //nolint:gosec
		for _, p := range entry {
			keyIdx = append(keyIdx, p.key)
			valIdx = append(valIdx, p.val)
		}
	}

	lengthBytes := encoding.EncodeFrame(lengths, format.DeltaSpec{Kind: format.DeltaNone})
	keyIdxBytes := encoding.EncodeFrame(keyIdx, format.DeltaSpec{Kind: format.DeltaNone})
	valIdxBytes := encoding.EncodeFrame(valIdx, format.DeltaSpec{Kind: format.DeltaNone})
	handleBytes := encoding.EncodeFrame(handles, format.DeltaSpec{Kind: format.DeltaNone})

	size := HeaderMapSize{
		KeysLen:    uint32(len(keysPayload)), //nolint:gosec
		ValsLen:    uint32(len(valsPayload)), //nolint:gosec
		LengthsLen: uint32(len(lengthBytes)), //nolint:gosec
		KeyIdxLen:  uint32(len(keyIdxBytes)), //nolint:gosec
		ValIdxLen:  uint32(len(valIdxBytes)), //nolint:gosec
		HandleLen:  uint32(len(handleBytes)), //nolint:gosec
		EntryCount: uint32(len(m.entries)), //nolint:gosec
	}

	payload := make([]byte, 0, len(keysPayload)+len(valsPayload)+len(lengthBytes)+len(keyIdxBytes)+len(valIdxBytes)+len(handleBytes))
	payload = append(payload, keysPayload...)
	payload = append(payload, valsPayload...)
	payload = append(payload, lengthBytes...)
	payload = append(payload, keyIdxBytes...)
	payload = append(payload, valIdxBytes...)
	payload = append(payload, handleBytes...)

	return payload, size, nil
}

// DecodeHeaderMap reverses Encode.
func DecodeHeaderMap(data []byte, outer compress.Codec, n int, size HeaderMapSize) (*HeaderMap, []uint32, error) {
	offsets := []uint32{0, size.KeysLen, size.ValsLen, size.LengthsLen, size.KeyIdxLen, size.ValIdxLen, size.HandleLen}
	cum := make([]uint32, len(offsets)+1)
	for i, o := range offsets {
		cum[i+1] = cum[i] + o
	}

	if uint32(len(data)) < cum[len(cum)-1] { //nolint:gosec
		return nil, nil, fmt.Errorf("header map: truncated payload")
	}

	keysRaw, err := outer.Decompress(data[cum[0]:cum[1]])
	if err != nil {
		return nil, nil, fmt.Errorf("header map: decompress keys: %w", err)
	}

	valsRaw, err := outer.Decompress(data[cum[1]:cum[2]])
	if err != nil {
		return nil, nil, fmt.Errorf("header map: decompress values: %w", err)
	}

	lengths, err := encoding.DecodeFrame[uint16](data[cum[2]:cum[3]], int(size.EntryCount))
	if err != nil {
		return nil, nil, fmt.Errorf("header map: lengths: %w", err)
	}

	totalPairs := 0
	for _, l := range lengths {
		totalPairs += int(l)
	}

	keyIdx, err := encoding.DecodeFrame[uint32](data[cum[3]:cum[4]], totalPairs)
	if err != nil {
		return nil, nil, fmt.Errorf("header map: key index: %w", err)
	}

	valIdx, err := encoding.DecodeFrame[uint32](data[cum[4]:cum[5]], totalPairs)
	if err != nil {
		return nil, nil, fmt.Errorf("header map: value index: %w", err)
	}

	handles, err := encoding.DecodeFrame[uint32](data[cum[5]:cum[6]], n)
	if err != nil {
		return nil, nil, fmt.Errorf("header map: handles: %w", err)
	}

	engine := endian.GetLittleEndianEngine()

	keys, err := decodeStringDict(keysRaw, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("header map: key dictionary: %w", err)
	}

	vals, err := decodeStringDict(valsRaw, engine)
	if err != nil {
		return nil, nil, fmt.Errorf("header map: value dictionary: %w", err)
	}

	m := NewHeaderMap()
	for _, s := range keys {
		m.keys.Intern(s, hash.ID(s))
	}

	for _, s := range vals {
		m.vals.Intern(s, hash.ID(s))
	}

	cursor := 0

	for _, l := range lengths {
		entry := make([]headerIdxPair, l)
		for i := range int(l) {
			entry[i] = headerIdxPair{key: keyIdx[cursor], val: valIdx[cursor]}
			cursor++
		}

		m.entries = append(m.entries, entry)
	}

	return m, handles, nil
}
