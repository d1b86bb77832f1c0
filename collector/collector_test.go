package collector

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/logging"
	"github.com/s3bk/clog/record"
	"github.com/stretchr/testify/require"
)

func testEntry(uri string) record.RequestEntry {
	return record.RequestEntry{
		Status: 200, Method: "GET", URI: uri, IP: net.ParseIP("127.0.0.1"),
		Port: 80, Time: time.Now(), Host: "localhost", Proto: format.ProtoHTTP,
	}
}

func newTestCollector(t *testing.T, dir string, blockLimit int) *Collector {
	t.Helper()

	cfg := DefaultConfig(dir)
	cfg.BlockLimit = blockLimit
	cfg.Logger = logging.Noop()

	c, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})

	return c
}

func TestCollector_IngestAndFlushSealsBlock(t *testing.T) {
	dir := t.TempDir()
	c := newTestCollector(t, dir, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, c.Ingest(ctx, testEntry("/a")))
	require.NoError(t, c.Ingest(ctx, testEntry("/b")))
	require.NoError(t, c.Flush(ctx))

	snap := c.Metrics()
	require.Equal(t, uint64(2), snap.RecordsIngested)
	require.Equal(t, uint64(1), snap.BlocksSealed)
}

func TestCollector_SealsAutomaticallyAtBlockLimit(t *testing.T) {
	dir := t.TempDir()
	c := newTestCollector(t, dir, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, c.Ingest(ctx, testEntry("/a")))
	require.NoError(t, c.Ingest(ctx, testEntry("/b")))

	require.NoError(t, c.Flush(ctx))

	snap := c.Metrics()
	require.Equal(t, uint64(1), snap.BlocksSealed)
}

func TestCollector_AttachWithBacklogReceivesSyncThenRows(t *testing.T) {
	dir := t.TempDir()
	c := newTestCollector(t, dir, 100)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub, err := c.AttachWithBacklog(ctx, 0)
	require.NoError(t, err)

	select {
	case frame, ok := <-sub.Batches():
		require.True(t, ok)
		require.Equal(t, byte(format.PacketSync), frame[0])
	case <-ctx.Done():
		t.Fatal("timed out waiting for sync frame")
	}

	require.NoError(t, c.Ingest(ctx, testEntry("/live")))

	select {
	case frame, ok := <-sub.Rows():
		require.True(t, ok)
		require.Equal(t, byte(format.PacketRow), frame[0])
	case <-ctx.Done():
		t.Fatal("timed out waiting for row frame")
	}
}

func TestCollector_GetRangeReturnsSealedBlocks(t *testing.T) {
	dir := t.TempDir()
	c := newTestCollector(t, dir, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, c.Ingest(ctx, testEntry("/a")))
	require.NoError(t, c.Flush(ctx))

	ch, err := c.GetRange(ctx, 0, 1)
	require.NoError(t, err)

	var got [][]byte
	for frame := range ch {
		got = append(got, frame)
	}

	require.Len(t, got, 1)
	require.Equal(t, byte(format.PacketBatch), got[0][0])
}

func TestCollector_ResumesOpenBlockFromDisk(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c1 := newTestCollector(t, dir, 10)
	require.NoError(t, c1.Ingest(ctx, testEntry("/a")))
	require.NoError(t, c1.Flush(ctx))

	cfg := DefaultConfig(dir)
	cfg.BlockLimit = 10
	cfg.Logger = logging.Noop()

	c2, err := Open(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		cctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = c2.Close(cctx)
	})

	sub, err := c2.AttachWithBacklog(ctx, 0)
	require.NoError(t, err)

	frame := <-sub.Batches()
	require.Equal(t, byte(format.PacketSync), frame[0])
}
