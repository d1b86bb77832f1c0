package codec

import (
	"encoding/binary"
	"fmt"
	"net"

	"github.com/s3bk/clog/encoding"
	"github.com/s3bk/clog/format"
)

// ipv6Prefix is the top 96 bits of an address: the part that tends to
// repeat across records from the same client or CIDR block.
type ipv6Prefix [3]uint32

// HashIpv6 is the codec for the ip field. Each address is split into a
// 96-bit prefix and a 32-bit suffix; prefixes are deduplicated into an
// order-preserving table, so the handle is (prefix table index, suffix).
type HashIpv6 struct {
	prefixes []ipv6Prefix
	index    map[ipv6Prefix]uint32
}

// NewHashIpv6 constructs an empty HashIpv6 codec.
func NewHashIpv6() *HashIpv6 {
	return &HashIpv6{index: make(map[ipv6Prefix]uint32)}
}

func splitIP(ip net.IP) (ipv6Prefix, uint32) {
	b := ip.To16()

	return ipv6Prefix{
		binary.BigEndian.Uint32(b[0:4]),
		binary.BigEndian.Uint32(b[4:8]),
		binary.BigEndian.Uint32(b[8:12]),
	}, binary.BigEndian.Uint32(b[12:16])
}

// Add interns ip's prefix and returns the two-part handle.
func (h *HashIpv6) Add(ip net.IP) (prefixIdx, suffix uint32) {
	prefix, suffix := splitIP(ip)

	if idx, ok := h.index[prefix]; ok {
		return idx, suffix
	}

	idx := uint32(len(h.prefixes)) //nolint:gosec
	h.prefixes = append(h.prefixes, prefix)
	h.index[prefix] = idx

	return idx, suffix
}

// Get reconstructs an address from a handle.
func (h *HashIpv6) Get(prefixIdx, suffix uint32) (net.IP, bool) {
	if int(prefixIdx) >= len(h.prefixes) {
		return nil, false
	}

	p := h.prefixes[prefixIdx]
	b := make(net.IP, 16)
	binary.BigEndian.PutUint32(b[0:4], p[0])
	binary.BigEndian.PutUint32(b[4:8], p[1])
	binary.BigEndian.PutUint32(b[8:12], p[2])
	binary.BigEndian.PutUint32(b[12:16], suffix)

	return b, true
}

// HashIpv6Size is the size descriptor returned by Encode.
type HashIpv6Size struct {
	PrefixIdxLen uint32
	SuffixLen    uint32
	PrefixCount  uint32 // number of distinct prefixes in the table
}

// Encode writes the prefix-index column and suffix column, both
// best-of-a-small-window delta (repeated clients cluster but aren't
// strictly consecutive), then the prefix table as 12 raw bytes per entry.
func (h *HashIpv6) Encode(prefixIdx, suffix []uint32) ([]byte, HashIpv6Size) {
	idxBytes := encoding.EncodeFrame(prefixIdx, format.DeltaSpec{Kind: format.DeltaTryLookback})
	sufBytes := encoding.EncodeFrame(suffix, format.DeltaSpec{Kind: format.DeltaTryLookback})

	size := HashIpv6Size{
		PrefixIdxLen: uint32(len(idxBytes)), //nolint:gosec
		SuffixLen:    uint32(len(sufBytes)), //nolint:gosec
		PrefixCount:  uint32(len(h.prefixes)), //nolint:gosec
	}

	payload := make([]byte, 0, len(idxBytes)+len(sufBytes)+len(h.prefixes)*12)
	payload = append(payload, idxBytes...)
	payload = append(payload, sufBytes...)

	for _, p := range h.prefixes {
		var b [12]byte
		binary.BigEndian.PutUint32(b[0:4], p[0])
		binary.BigEndian.PutUint32(b[4:8], p[1])
		binary.BigEndian.PutUint32(b[8:12], p[2])
		payload = append(payload, b[:]...)
	}

	return payload, size
}

// DecodeHashIpv6 reverses Encode.
func DecodeHashIpv6(data []byte, n int, size HashIpv6Size) (*HashIpv6, []uint32, []uint32, error) {
	tableStart := size.PrefixIdxLen + size.SuffixLen
	total := tableStart + size.PrefixCount*12
	if uint32(len(data)) < total { //nolint:gosec
		return nil, nil, nil, fmt.Errorf("hash ipv6: truncated payload")
	}

	prefixIdx, err := encoding.DecodeFrame[uint32](data[:size.PrefixIdxLen], n)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("hash ipv6: prefix index: %w", err)
	}

	suffix, err := encoding.DecodeFrame[uint32](data[size.PrefixIdxLen:tableStart], n)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("hash ipv6: suffix: %w", err)
	}

	h := NewHashIpv6()
	table := data[tableStart:total]

	for i := range int(size.PrefixCount) {
		b := table[i*12 : i*12+12]
		p := ipv6Prefix{
			binary.BigEndian.Uint32(b[0:4]),
			binary.BigEndian.Uint32(b[4:8]),
			binary.BigEndian.Uint32(b[8:12]),
		}
		h.prefixes = append(h.prefixes, p)
		h.index[p] = uint32(i) //nolint:gosec
	}

	return h, prefixIdx, suffix, nil
}
