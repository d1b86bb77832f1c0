package view

import (
	"math"

	"github.com/s3bk/clog/client"
	"github.com/s3bk/clog/record"
)

// Match reports whether e should be visible in a Filter view. A nil Match
// passed to SetMatch matches everything.
type Match func(e record.RequestEntry) bool

// Filter is a predicate-scoped scrolling view over a Mirror: it shows the
// next length records matching its predicate starting at an absolute
// sequence-number cursor, rebuilding its render cache from only the
// currently visible matches on every call.
type Filter[T any] struct {
	produce Produce[T]
	length  int
	match   Match

	cache map[uint64]T
	start uint64
}

// NewFilter returns a Filter of length rows, rendering each with produce.
func NewFilter[T any](produce Produce[T], length int) *Filter[T] {
	return &Filter[T]{produce: produce, length: length, cache: make(map[uint64]T)}
}

// ScrollTo moves the cursor to an absolute sequence number.
func (f *Filter[T]) ScrollTo(pos uint64) { f.start = pos }

// SetMatch replaces the visibility predicate.
func (f *Filter[T]) SetMatch(m Match) { f.match = m }

func (f *Filter[T]) matches(e record.RequestEntry) bool {
	if f.match == nil {
		return true
	}

	return f.match(e)
}

// ScrollBy moves the cursor forward or backward by by matching records.
// Forward, the first match at or after the cursor counts as the current
// row; when fewer than by further matches exist the cursor lands on the
// last match found, and it stays put when nothing matches. Backward, only
// matches strictly before the cursor count; when fewer than by exist the
// cursor lands on the lowest match found, or on 0 when there is none.
func (f *Filter[T]) ScrollBy(m *client.Mirror, by int) {
	switch {
	case by > 0:
		f.scrollForward(m, by)
	case by < 0:
		f.scrollBackward(m, -by)
	}
}

func (f *Filter[T]) scrollForward(m *client.Mirror, by int) {
	target := by + 1
	count := 0
	found := false

	var last uint64

	m.Range(f.start, math.MaxUint64, func(n uint64, e record.RequestEntry) bool {
		if !f.matches(e) {
			return true
		}

		last = n
		found = true
		count++

		return count < target
	})

	if found {
		f.start = last
	}
}

func (f *Filter[T]) scrollBackward(m *client.Mirror, by int) {
	target := by
	count := 0

	var pos uint64

	m.RangeReverse(0, f.start, func(n uint64, e record.RequestEntry) bool {
		if !f.matches(e) {
			return true
		}

		pos = n
		count++

		return count < target
	})

	f.start = pos
}

// Render produces the view's currently visible matches, reusing cached
// values for sequence numbers still visible and dropping everything else.
func (f *Filter[T]) Render(m *client.Mirror) []T {
	newCache := make(map[uint64]T, f.length)
	out := make([]T, 0, f.length)

	m.Range(f.start, math.MaxUint64, func(n uint64, e record.RequestEntry) bool {
		if !f.matches(e) {
			return true
		}

		val, ok := f.cache[n]
		if !ok {
			val = f.produce(n, e)
		}

		newCache[n] = val
		out = append(out, val)

		return len(out) < f.length
	})

	f.cache = newCache

	return out
}
