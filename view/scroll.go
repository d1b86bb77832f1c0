package view

import (
	"github.com/s3bk/clog/client"
	"github.com/s3bk/clog/record"
)

// Produce converts one mirrored record into the value a view renders.
type Produce[T any] func(n uint64, e record.RequestEntry) T

// Scroll is an absolute-position windowed view over a Mirror. It keeps the
// previous render's values and shifts them incrementally as the window
// moves, calling produce only for rows newly entering the window.
type Scroll[T any] struct {
	produce Produce[T]
	length  int

	cache      []T
	cacheStart uint64

	start uint64
}

// NewScroll returns a Scroll of length rows, rendering each with produce.
func NewScroll[T any](produce Produce[T], length int) *Scroll[T] {
	return &Scroll[T]{produce: produce, length: length, cache: make([]T, 0, length)}
}

// Pos returns the sequence number the window currently starts at.
func (s *Scroll[T]) Pos() uint64 { return s.start }

// ScrollTo moves the window to start at an absolute sequence number.
func (s *Scroll[T]) ScrollTo(pos uint64) { s.start = pos }

// ScrollBy moves the window by a relative offset, clamped so it never runs
// past the mirror's end or below zero.
func (s *Scroll[T]) ScrollBy(m *client.Mirror, by int64) {
	if by > 0 {
		max := saturatingSubU64(m.End(), uint64(s.length)) //nolint:gosec
		s.start = minU64(s.start+uint64(by), max)           //nolint:gosec
	} else {
		s.start = saturatingSubU64(s.start, uint64(-by)) //nolint:gosec
	}
}

// Render produces the window's current rows, reusing cached values for
// sequence numbers the previous render already covered.
func (s *Scroll[T]) Render(m *client.Mirror) []T {
	switch {
	case s.start > s.cacheStart:
		s.shiftForward(m)
	default:
		s.shiftBackward(m)
	}

	s.cacheStart = s.start

	out := make([]T, len(s.cache))
	copy(out, s.cache)

	return out
}

func (s *Scroll[T]) shiftForward(m *client.Mirror) {
	offset := int(s.start - s.cacheStart) //nolint:gosec

	if offset >= len(s.cache) {
		s.cache = s.cache[:0]
	} else {
		s.cache = append(s.cache[:0], s.cache[offset:]...)
	}

	for i := len(s.cache); i < s.length; i++ {
		n := s.start + uint64(i) //nolint:gosec
		if e, ok := m.GetEntry(n); ok {
			s.cache = append(s.cache, s.produce(n, e))
		}
	}
}

func (s *Scroll[T]) shiftBackward(m *client.Mirror) {
	offset := int(s.cacheStart - s.start) //nolint:gosec

	end := len(s.cache) - offset
	if end < 0 {
		end = 0
	}

	s.cache = s.cache[:end]

	missing := s.length - len(s.cache)
	front := make([]T, 0, missing)

	for i := 0; i < missing; i++ {
		n := s.start + uint64(i) //nolint:gosec
		if e, ok := m.GetEntry(n); ok {
			front = append(front, s.produce(n, e))
		}
	}

	s.cache = append(front, s.cache...)
}

func saturatingSubU64(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}

func minU64(a, b uint64) uint64 {
	if a < b {
		return a
	}

	return b
}
