package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
)

// blockWriter accumulates merged records into fixed-size blocks and writes
// each sealed one to dir as a whole Batch wire frame, the same on-disk
// shape persistentManager produces, so merge output is itself a valid
// input directory.
type blockWriter struct {
	dir        string
	blockLimit int

	current *block.Builder
	start   uint64
}

func newBlockWriter(dir string, blockLimit int) *blockWriter {
	return &blockWriter{
		dir:        dir,
		blockLimit: blockLimit,
		current:    block.NewBuilder(0, blockLimit),
	}
}

func (w *blockWriter) push(e record.RequestEntry) error {
	w.current.Add(e)

	if w.current.Len() >= w.blockLimit {
		return w.flush()
	}

	return nil
}

func (w *blockWriter) flush() error {
	if w.current.Len() == 0 {
		return nil
	}

	frame, err := encodeBatchFrame(w.start, w.current)
	if err != nil {
		return err
	}

	path := filepath.Join(w.dir, fmt.Sprintf("block-%d.clog", w.start))
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return err
	}

	w.start += uint64(w.current.Len()) //nolint:gosec
	w.current = block.NewBuilder(w.start, w.blockLimit)

	return nil
}

// encodeBatchFrame seals b into a whole Batch wire frame: a PacketType
// byte, a BatchHeader naming start, and the block body, compressed at the
// same quality the collector backend uses when sealing a block for
// long-term storage.
func encodeBatchFrame(start uint64, b *block.Builder) ([]byte, error) {
	body, err := b.Encode(format.CompressionZstd, compress.QualitySeal)
	if err != nil {
		return nil, err
	}

	header := wire.BatchHeader{Start: start}.MarshalBinary()

	frame := make([]byte, 0, 1+len(header)+len(body))
	frame = append(frame, byte(format.PacketBatch))
	frame = append(frame, header...)
	frame = append(frame, body...)

	return frame, nil
}
