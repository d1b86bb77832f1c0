package collector

import (
	"context"

	"github.com/s3bk/clog/block"
	"github.com/s3bk/clog/compress"
	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/internal/metrics"
	"github.com/s3bk/clog/logging"
	"github.com/s3bk/clog/record"
	"github.com/s3bk/clog/wire"
)

// beCmd is a command sent to the backend loop from a Collector method.
type beCmd interface{ isBECmd() }

type beAttachWithBacklog struct {
	backlog uint64
	result  chan *Subscription
}

type beGetRange struct {
	start, end uint64
	tx         chan []byte
}

type beFlush struct {
	done chan error
}

func (beAttachWithBacklog) isBECmd() {}
func (beGetRange) isBECmd()          {}
func (beFlush) isBECmd()             {}

// backend is the single-owner actor holding the open block, the live
// subscriber set, and the sequence-number bookkeeping. All mutation happens
// on its own goroutine; every other goroutine reaches it only through cmds
// or events.
type backend struct {
	cfg     Config
	current *block.Builder
	subs    map[*Subscription]struct{}
	toMgr   chan pmCmd
	logger  logging.Logger
	metrics *metrics.Registry
}

func newBackend(cfg Config, toMgr chan pmCmd, reg *metrics.Registry, current *block.Builder) *backend {
	return &backend{
		cfg:     cfg,
		current: current,
		subs:    make(map[*Subscription]struct{}),
		toMgr:   toMgr,
		logger:  cfg.Logger,
		metrics: reg,
	}
}

func (b *backend) run(ctx context.Context, events <-chan record.RequestEntry, cmds <-chan beCmd) {
	for {
		select {
		case <-ctx.Done():
			for sub := range b.subs {
				sub.detach()
			}

			return
		case e, ok := <-events:
			if !ok {
				events = nil

				continue
			}

			b.push(e)
		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil

				continue
			}

			b.handle(cmd)
		}
	}
}

func (b *backend) push(e record.RequestEntry) {
	b.metrics.IncRecordsIngested()

	if len(b.subs) > 0 {
		frame := encodeRow(e)
		for sub := range b.subs {
			if !sub.trySendRow(frame) {
				b.metrics.IncSubscribersLagged()
				b.logger.Warn("subscriber lagged, detaching")
				sub.batches <- encodeServerMsg(wire.ServerMsg{Kind: wire.ServerMsgDetached})
				sub.detach()
				delete(b.subs, sub)
				b.metrics.DecSubscribers()
			}
		}
	}

	b.current.Add(e)

	if b.current.Len() >= b.cfg.BlockLimit {
		b.seal(nil)
	}
}

// seal moves the open block onto the persistent-block manager and starts a
// fresh one. When done is non-nil it is closed once the manager has
// acknowledged the write, for Flush's synchronous handshake.
func (b *backend) seal(done chan error) {
	if b.current.Len() == 0 {
		if done != nil {
			close(done)
		}

		return
	}

	builder := b.current
	start := builder.Start()
	b.current = block.NewBuilder(start+uint64(builder.Len()), b.cfg.BlockLimit) //nolint:gosec

	go func() {
		frame, err := encodeBatch(start, builder, b.cfg.SealCompression, compress.QualitySeal)
		if err != nil {
			b.logger.Error("encode sealed block failed", "start", start, "err", err)
		} else {
			b.toMgr <- pmAddBuffer{start: start, data: frame}
			b.metrics.IncBlocksSealed()
		}

		if done == nil {
			return
		}

		flushDone := make(chan struct{})
		b.toMgr <- pmFlush{done: flushDone}
		<-flushDone

		if err != nil {
			done <- err
		}

		close(done)
	}()
}

func (b *backend) handle(cmd beCmd) {
	switch c := cmd.(type) {
	case beAttachWithBacklog:
		c.result <- b.attachWithBacklog(c.backlog)
	case beGetRange:
		b.getRange(c.start, c.end, c.tx)
	case beFlush:
		b.seal(c.done)
	}
}

func (b *backend) attachWithBacklog(backlog uint64) *Subscription {
	start := b.currentStart()
	firstBacklog := saturatingSub(start, backlog)

	sub := newSubscription(b.cfg.BroadcastCapacity)
	b.subs[sub] = struct{}{}
	b.metrics.IncSubscribers()

	sub.batches <- encodeSync(wire.SyncHeader{
		Start:        start + uint64(b.current.Len()), //nolint:gosec
		BlockSize:    uint64(b.cfg.BlockLimit),         //nolint:gosec
		FirstBlock:   0,
		FirstBacklog: firstBacklog,
	})

	if b.current.Len() > 0 {
		if frame, err := encodeBatch(start, b.current, format.CompressionZstd, compress.QualityAttachSnapshot); err == nil {
			sub.batches <- frame
		} else {
			b.logger.Error("encode open tail snapshot failed", "err", err)
		}
	}

	go b.requestRange(firstBacklog, start, sub.batches)

	return sub
}

func (b *backend) getRange(start, end uint64, tx chan []byte) {
	go b.requestRange(start, end, tx)
}

// requestRange forwards the manager's range stream onto tx and closes tx
// once the manager is done, whether tx is a subscriber's batches channel or
// a one-shot GetRange caller's channel.
func (b *backend) requestRange(start, end uint64, tx chan []byte) {
	defer close(tx)

	inner := make(chan []byte, 16)
	b.toMgr <- pmGetRange{start: start, end: end, tx: inner}

	for frame := range inner {
		tx <- frame
	}
}

func (b *backend) currentStart() uint64 { return b.current.Start() }

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}
