package main

import (
	"container/heap"
	"fmt"
	"os"
)

// sourceHeap is a min-heap of sources ordered by their current entry's
// time, implementing the k-way merge's "always take the earliest pending
// record across every input" step.
type sourceHeap []source

func (h sourceHeap) Len() int { return len(h) }

func (h sourceHeap) Less(i, j int) bool {
	a, _ := h[i].peek()
	b, _ := h[j].peek()

	return a.Time.Before(b.Time)
}

func (h sourceHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *sourceHeap) Push(x any) { *h = append(*h, x.(source)) }

func (h *sourceHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]

	return x
}

// merge performs a k-way merge on time across every opened source,
// writing blockSize-sized output blocks with sequence numbers reset to 0.
func merge(inputs []string, output string, blockSize int) error {
	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var sources sourceHeap

	defer func() {
		for _, s := range sources {
			_ = s.close()
		}
	}()

	for _, path := range inputs {
		s, err := openSource(path)
		if err != nil {
			return fmt.Errorf("open input %s: %w", path, err)
		}

		if _, ok := s.peek(); ok {
			sources = append(sources, s)
		} else {
			_ = s.close()
		}
	}

	heap.Init(&sources)

	w := newBlockWriter(output, blockSize)

	for sources.Len() > 0 {
		s := sources[0]

		e, _ := s.peek() // invariant: every heap member has a pending entry

		if err := w.push(e); err != nil {
			return fmt.Errorf("write merged block: %w", err)
		}

		if err := s.advance(); err != nil {
			return fmt.Errorf("read next record: %w", err)
		}

		if _, ok := s.peek(); ok {
			heap.Fix(&sources, 0)
		} else {
			heap.Pop(&sources)
		}
	}

	return w.flush()
}
