package main

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/record"
)

func writeJSONLog(t *testing.T, path string, times []uint64) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	defer f.Close()

	for _, ts := range times {
		line, err := json.Marshal(jsonEntry{
			Status: 200,
			Method: "GET",
			URI:    "/a",
			IP:     "1.2.3.4",
			Port:   443,
			Time:   ts,
		})
		require.NoError(t, err)

		_, err = f.Write(append(line, '\n'))
		require.NoError(t, err)
	}
}

func writeBlockDir(t *testing.T, dir string, times []uint64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	b := block.NewBuilder(0, len(times))
	for _, ts := range times {
		b.Add(record.RequestEntry{
			Status: 200,
			Method: "POST",
			URI:    "/b",
			IP:     net.ParseIP("5.6.7.8"),
			Port:   80,
			Time:   time.Unix(int64(ts), 0).UTC(), //nolint:gosec
		})
	}

	frame, err := encodeBatchFrame(0, b)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "block-0.clog"), frame, 0o644))
}

func readAllMerged(t *testing.T, dir string) []record.RequestEntry {
	t.Helper()

	s, err := newBlockDirSource(dir)
	require.NoError(t, err)

	defer s.close()

	var out []record.RequestEntry

	for {
		e, ok := s.peek()
		if !ok {
			break
		}

		out = append(out, e)
		require.NoError(t, s.advance())
	}

	return out
}

func TestMerge_InterleavesAndOrdersByTime(t *testing.T) {
	root := t.TempDir()

	jsonPath := filepath.Join(root, "a.log")
	writeJSONLog(t, jsonPath, []uint64{10, 30, 50})

	blockDir := filepath.Join(root, "blocks")
	writeBlockDir(t, blockDir, []uint64{20, 40})

	output := filepath.Join(root, "out")

	require.NoError(t, merge([]string{jsonPath, blockDir}, output, 10_000))

	merged := readAllMerged(t, output)
	require.Len(t, merged, 5)

	var times []int64
	for _, e := range merged {
		times = append(times, e.Time.Unix())
	}

	assert.Equal(t, []int64{10, 20, 30, 40, 50}, times)
}

func TestMerge_ResetsSequenceNumbersAndRespectsBlockSize(t *testing.T) {
	root := t.TempDir()

	jsonPath := filepath.Join(root, "a.log")
	writeJSONLog(t, jsonPath, []uint64{1, 2, 3, 4, 5})

	output := filepath.Join(root, "out")
	require.NoError(t, merge([]string{jsonPath}, output, 2))

	entries, err := os.ReadDir(output)
	require.NoError(t, err)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	assert.ElementsMatch(t, []string{"block-0.clog", "block-2.clog", "block-4.clog"}, names)
}

func TestMerge_MissingOutputInputsErrors(t *testing.T) {
	root := t.TempDir()
	err := merge([]string{filepath.Join(root, "nope.log")}, filepath.Join(root, "out"), 10)
	assert.Error(t, err)
}
