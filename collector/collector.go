package collector

import (
	"context"
	"fmt"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/internal/metrics"
	"github.com/s3bk/clog/record"
)

// Collector is the library entry point: it owns the backend actor and
// persistent-block manager goroutines and exposes the operations an
// embedding HTTP/WebSocket application calls into.
type Collector struct {
	cfg    Config
	events chan record.RequestEntry
	cmds   chan beCmd
	reg    *metrics.Registry
	cancel context.CancelFunc
}

// Open scans cfg.DataDir for existing block files, resumes the highest-
// numbered one as the open tail if present, and starts the backend and
// persistent-block manager goroutines.
func Open(ctx context.Context, cfg Config) (*Collector, error) {
	if cfg.BlockLimit <= 0 {
		return nil, fmt.Errorf("collector: BlockLimit must be positive")
	}

	reg := metrics.New()
	mgr := newPersistentManager(cfg, reg)

	if err := mgr.scanDir(); err != nil {
		return nil, fmt.Errorf("collector: scan data dir: %w", err)
	}

	current := block.NewBuilder(0, cfg.BlockLimit)

	if start, data, ok, err := mgr.takeLast(); err != nil {
		cfg.Logger.Warn("resume: failed to read last block", "err", err)
	} else if ok {
		if _, blk, decErr := decodeBatch(data); decErr == nil {
			current = block.Rebuild(blk)
			cfg.Logger.Info("resumed open block", "start", start, "len", current.Len())
		} else {
			cfg.Logger.Warn("resume: failed to decode last block", "start", start, "err", decErr)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)

	be := newBackend(cfg, mgr.cmds, reg, current)
	events := make(chan record.RequestEntry, 128)
	cmds := make(chan beCmd, 128)

	go mgr.run(runCtx)
	go be.run(runCtx, events, cmds)

	return &Collector{cfg: cfg, events: events, cmds: cmds, reg: reg, cancel: cancel}, nil
}

// Ingest appends one record to the open block, broadcasting it to live
// subscribers first.
func (c *Collector) Ingest(ctx context.Context, e record.RequestEntry) error {
	select {
	case c.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// AttachWithBacklog subscribes the caller to live rows and requests up to
// backlog records of history preceding the current tail.
func (c *Collector) AttachWithBacklog(ctx context.Context, backlog uint64) (*Subscription, error) {
	result := make(chan *Subscription, 1)

	select {
	case c.cmds <- beAttachWithBacklog{backlog: backlog, result: result}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case sub := <-result:
		return sub, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GetRange requests a one-shot replay of [start, end) as Batch frames on
// the returned channel, which is closed once the range has been fully
// delivered.
func (c *Collector) GetRange(ctx context.Context, start, end uint64) (<-chan []byte, error) {
	tx := make(chan []byte, 16)

	select {
	case c.cmds <- beGetRange{start: start, end: end, tx: tx}:
		return tx, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Flush seals the open block, if non-empty, and blocks until the
// persistent-block manager has acknowledged writing it.
func (c *Collector) Flush(ctx context.Context) error {
	done := make(chan error, 1)

	select {
	case c.cmds <- beFlush{done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err, ok := <-done:
		if ok {
			return err
		}

		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Metrics returns a point-in-time snapshot of the collector's counters.
func (c *Collector) Metrics() metrics.Snapshot { return c.reg.Snapshot() }

// Close flushes the open block and stops the backend and manager
// goroutines.
func (c *Collector) Close(ctx context.Context) error {
	err := c.Flush(ctx)
	c.cancel()

	return err
}
