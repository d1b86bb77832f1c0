package collector

import (
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/logging"
)

// Config configures a Collector. The zero value is not usable; start from
// DefaultConfig and override individual fields.
type Config struct {
	// DataDir holds this collector's block-<start>.clog files. Required.
	DataDir string

	// BlockLimit is the number of records an open block accumulates
	// before it is sealed.
	BlockLimit int

	// BroadcastCapacity bounds each subscriber's live-row channel; a
	// subscriber slower than this falls behind and is detached.
	BroadcastCapacity int

	// KeepAliveInterval holds a subscriber ping interval. Nothing in this
	// module reads it: neither the collector nor wire.Conn sends pings or
	// evicts a silent subscriber.
	KeepAliveInterval time.Duration

	// SealCompression is the outer compressor used when sealing a block
	// for disk/backlog storage.
	SealCompression format.CompressionType

	// Logger receives structured events from the backend and manager
	// loops. Defaults to logging.Default.
	Logger logging.Logger

	// RehydrationRate bounds how often the persistent-block manager may
	// read a block back off disk to satisfy a FetchRange, in reads per
	// second. A burst of newly-attached subscribers requesting
	// overlapping backlog ranges would otherwise serialize behind disk
	// I/O on the manager's single goroutine, starving its command
	// channel recv.
	RehydrationRate float64

	// RehydrationBurst is the rate limiter's burst size: how many
	// rehydration reads may happen back-to-back before the steady-state
	// RehydrationRate takes over.
	RehydrationBurst int
}

// DefaultConfig returns a Config with the format's default block size and
// broadcast capacity.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:           dataDir,
		BlockLimit:        10_000,
		BroadcastCapacity: 4096,
		KeepAliveInterval: 10 * time.Second,
		SealCompression:   format.CompressionZstd,
		Logger:            logging.Default,
		RehydrationRate:   200,
		RehydrationBurst:  20,
	}
}
