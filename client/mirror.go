package client

import (
	"fmt"
	"sort"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
)

// Mirror is a sparse, append-only replica of a collector's block sequence:
// sealed blocks keyed by their first sequence number, plus one open tail
// that grows one record at a time as Row packets arrive.
type Mirror struct {
	entries map[uint64]*block.Builder
	starts  []uint64 // keys of entries, kept sorted ascending

	current      *block.Builder
	currentStart uint64
}

// NewMirror returns an empty mirror. It holds no records until the first
// Sync packet establishes where the server's open tail begins.
func NewMirror() *Mirror {
	return &Mirror{
		entries: make(map[uint64]*block.Builder),
		current: block.NewBuilder(0, 0),
	}
}

// Event describes what HandlePacket did to the mirror.
type Event struct {
	Start, End  uint64 // sequence-number range touched, when Changed
	Changed     bool
	Resubscribe bool // the server reported this subscription gone
}

// HandlePacket applies one decoded wire packet to the mirror.
func (m *Mirror) HandlePacket(pt format.PacketType, body []byte) (Event, error) {
	switch pt {
	case format.PacketBatch:
		return m.handleBatch(body)
	case format.PacketRow:
		return m.handleRow(body)
	case format.PacketSync:
		return m.handleSync(body)
	case format.PacketServerMsg:
		return m.handleServerMsg(body)
	default:
		return Event{}, fmt.Errorf("client: unhandled packet type %v", pt)
	}
}

func (m *Mirror) handleBatch(body []byte) (Event, error) {
	h, rest, err := wire.ParseBatchHeader(body)
	if err != nil {
		return Event{}, err
	}

	blk, err := block.Decode(rest)
	if err != nil {
		return Event{}, err
	}

	builder := block.Rebuild(blk)
	m.insertEntry(h.Start, builder)

	return Event{Start: h.Start, End: h.Start + uint64(builder.Len()), Changed: true}, nil //nolint:gosec
}

func (m *Mirror) handleRow(body []byte) (Event, error) {
	e, err := wire.DecodeRow(body)
	if err != nil {
		return Event{}, err
	}

	start := m.currentStart + uint64(m.current.Len()) //nolint:gosec
	m.current.Add(e)

	return Event{Start: start, End: start + 1, Changed: true}, nil
}

func (m *Mirror) handleSync(body []byte) (Event, error) {
	h, err := wire.ParseSyncHeader(body)
	if err != nil {
		return Event{}, err
	}

	m.currentStart = h.Start
	m.current = block.NewBuilder(h.Start, 0)

	return Event{}, nil
}

func (m *Mirror) handleServerMsg(body []byte) (Event, error) {
	msg, err := wire.ParseServerMsg(body)
	if err != nil {
		return Event{}, err
	}

	switch msg.Kind {
	case wire.ServerMsgNotAttached, wire.ServerMsgDetached:
		return Event{Resubscribe: true}, nil
	case wire.ServerMsgError:
		return Event{}, fmt.Errorf("client: server reported error: %s", msg.Text)
	default:
		return Event{}, nil
	}
}

// GetEntry returns the record at sequence number n, if the mirror holds it.
func (m *Mirror) GetEntry(n uint64) (record.RequestEntry, bool) {
	if n >= m.currentStart {
		if e, ok := m.current.Get(int(n - m.currentStart)); ok { //nolint:gosec
			return e, true
		}
	}

	start, ok := m.floorStart(n)
	if !ok {
		return record.RequestEntry{}, false
	}

	b := m.entries[start]
	if n >= start+uint64(b.Len()) { //nolint:gosec
		return record.RequestEntry{}, false
	}

	return b.Get(int(n - start)) //nolint:gosec
}

// End returns one past the highest sequence number the mirror holds.
func (m *Mirror) End() uint64 {
	end := m.currentStart + uint64(m.current.Len()) //nolint:gosec

	if n := len(m.starts); n > 0 {
		last := m.starts[n-1]
		if e := last + uint64(m.entries[last].Len()); e > end { //nolint:gosec
			end = e
		}
	}

	return end
}

type rangeChunk struct {
	start   uint64
	builder *block.Builder
}

// Range calls yield for every record in [start, end) the mirror holds, in
// ascending sequence order, stopping early if yield returns false. It
// includes the one sealed block straddling below start, if any, since that
// block may still hold records inside the requested range.
func (m *Mirror) Range(start, end uint64, yield func(n uint64, e record.RequestEntry) bool) {
	for _, c := range m.chunksForRange(start, end) {
		lo := clampIndex(saturatingSub(start, c.start), c.builder.Len())
		hi := clampIndex(saturatingSub(end, c.start), c.builder.Len())

		for i := lo; i < hi; i++ {
			e, ok := c.builder.Get(i)
			if !ok {
				continue
			}

			if !yield(c.start+uint64(i), e) { //nolint:gosec
				return
			}
		}
	}
}

// RangeReverse calls yield for every record in [start, end) the mirror
// holds, in descending sequence order, stopping early if yield returns
// false.
func (m *Mirror) RangeReverse(start, end uint64, yield func(n uint64, e record.RequestEntry) bool) {
	chunks := m.chunksForRange(start, end)

	for i := len(chunks) - 1; i >= 0; i-- {
		c := chunks[i]
		lo := clampIndex(saturatingSub(start, c.start), c.builder.Len())
		hi := clampIndex(saturatingSub(end, c.start), c.builder.Len())

		for idx := hi - 1; idx >= lo; idx-- {
			e, ok := c.builder.Get(idx)
			if !ok {
				continue
			}

			if !yield(c.start+uint64(idx), e) { //nolint:gosec
				return
			}
		}
	}
}

func (m *Mirror) chunksForRange(start, end uint64) []rangeChunk {
	var chunks []rangeChunk

	if i := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] >= start }); i > 0 {
		s := m.starts[i-1]
		chunks = append(chunks, rangeChunk{s, m.entries[s]})
	}

	for _, s := range m.starts {
		if s >= start && s < end {
			chunks = append(chunks, rangeChunk{s, m.entries[s]})
		}
	}

	chunks = append(chunks, rangeChunk{m.currentStart, m.current})

	return chunks
}

func (m *Mirror) insertEntry(start uint64, b *block.Builder) {
	if _, exists := m.entries[start]; !exists {
		i := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] >= start })
		m.starts = append(m.starts, 0)
		copy(m.starts[i+1:], m.starts[i:])
		m.starts[i] = start
	}

	m.entries[start] = b
}

// floorStart returns the largest registered block start <= n.
func (m *Mirror) floorStart(n uint64) (uint64, bool) {
	i := sort.Search(len(m.starts), func(i int) bool { return m.starts[i] > n })
	if i == 0 {
		return 0, false
	}

	return m.starts[i-1], true
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}

func clampIndex(n uint64, max int) int {
	if n > uint64(max) { //nolint:gosec
		return max
	}

	return int(n) //nolint:gosec
}
