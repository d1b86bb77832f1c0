package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
)

// source yields RequestEntry values in whatever order its backing storage
// holds them; the merge step is what imposes a global time order across
// many sources.
type source interface {
	// peek returns the current entry without consuming it. ok is false
	// once the source is exhausted.
	peek() (record.RequestEntry, bool)
	// advance consumes the current entry and loads the next one.
	advance() error
	close() error
}

// openSource picks a blockDirSource or a jsonLogSource depending on
// whether path names a directory, per the merge tool's "directory of
// block files or newline-delimited JSON log" input contract.
func openSource(path string) (source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return newBlockDirSource(path)
	}

	return newJSONLogSource(path)
}

// blockDirSource replays a directory's block-<start>.clog files in
// ascending start order, each one a whole Batch wire frame as
// persistentManager writes it: a PacketType byte, a BatchHeader, then the
// block body.
type blockDirSource struct {
	dir    string
	starts []uint64
	next   int

	blk *block.Block
	pos int

	cur record.RequestEntry
	has bool
}

func newBlockDirSource(dir string) (*blockDirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var starts []uint64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if filepath.Ext(name) != ".clog" {
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(name), ".clog")

		digits, ok := strings.CutPrefix(stem, "block-")
		if !ok {
			continue
		}

		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			continue
		}

		starts = append(starts, n)
	}

	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	s := &blockDirSource{dir: dir, starts: starts}
	if err := s.loadNext(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *blockDirSource) loadNext() error {
	for s.next < len(s.starts) {
		path := filepath.Join(s.dir, fmt.Sprintf("block-%d.clog", s.starts[s.next]))
		s.next++

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		blk, err := decodeBatchFrame(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		s.blk = blk
		s.pos = 0

		if blk.Len() > 0 {
			e, _ := blk.Get(0)
			s.cur, s.has = e, true

			return nil
		}
	}

	s.has = false

	return nil
}

func (s *blockDirSource) peek() (record.RequestEntry, bool) { return s.cur, s.has }

func (s *blockDirSource) advance() error {
	s.pos++

	if s.blk != nil && s.pos < s.blk.Len() {
		e, _ := s.blk.Get(s.pos)
		s.cur = e

		return nil
	}

	return s.loadNext()
}

func (s *blockDirSource) close() error { return nil }

// decodeBatchFrame strips the leading PacketType byte and BatchHeader off
// a persisted block file and decodes the remaining block body.
func decodeBatchFrame(data []byte) (*block.Block, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("empty block file")
	}

	if format.PacketType(data[0]) != format.PacketBatch {
		return nil, fmt.Errorf("not a Batch frame")
	}

	_, rest, err := wire.ParseBatchHeader(data[1:])
	if err != nil {
		return nil, err
	}

	return block.Decode(rest)
}

// jsonLogSource reads one RequestEntry per line from a newline-delimited
// JSON log, in the field shape the embedding application historically
// reported before columnar ingestion (status/method/uri/user_agent/
// referer/ip/port/time, plus the later host/proto additions).
type jsonLogSource struct {
	f       *os.File
	scanner *bufio.Scanner
	cur     record.RequestEntry
	has     bool
}

func newJSONLogSource(path string) (*jsonLogSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s := &jsonLogSource{f: f, scanner: bufio.NewScanner(f)}
	s.scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if err := s.loadNext(); err != nil {
		_ = f.Close()

		return nil, err
	}

	return s, nil
}

type jsonEntry struct {
	Status    uint16            `json:"status"`
	Method    string            `json:"method"`
	URI       string            `json:"uri"`
	UserAgent *string           `json:"user_agent,omitempty"`
	Referer   *string           `json:"referer,omitempty"`
	IP        string            `json:"ip"`
	Port      uint16            `json:"port"`
	Time      uint64            `json:"time"`
	Body      []byte            `json:"body,omitempty"`
	Headers   []jsonHeaderEntry `json:"headers,omitempty"`
	Host      string            `json:"host,omitempty"`
	Proto     format.Protocol   `json:"proto,omitempty"`
}

type jsonHeaderEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *jsonLogSource) loadNext() error {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}

		var je jsonEntry
		if err := json.Unmarshal([]byte(line), &je); err != nil {
			return fmt.Errorf("decode json log line: %w", err)
		}

		headers := make([]record.HeaderPair, len(je.Headers))
		for i, h := range je.Headers {
			headers[i] = record.HeaderPair{Key: h.Key, Value: h.Value}
		}

		s.cur = record.RequestEntry{
			Status:  je.Status,
			Method:  je.Method,
			URI:     je.URI,
			IP:      net.ParseIP(je.IP),
			Port:    je.Port,
			Time:    time.Unix(int64(je.Time), 0).UTC(), //nolint:gosec
			UA:      je.UserAgent,
			Referer: je.Referer,
			Body:    je.Body,
			Headers: headers,
			Host:    je.Host,
			Proto:   je.Proto,
		}
		s.has = true

		return nil
	}

	s.has = false

	return s.scanner.Err()
}

func (s *jsonLogSource) peek() (record.RequestEntry, bool) { return s.cur, s.has }

func (s *jsonLogSource) advance() error { return s.loadNext() }

func (s *jsonLogSource) close() error { return s.f.Close() }
