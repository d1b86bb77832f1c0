package collector

import (
	"fmt"
	"time"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/internal/options"
	"github.com/s3bk/clog/logging"
)

// Option configures a Config on top of DefaultConfig's values.
type Option = options.Option[*Config]

// NewConfig returns DefaultConfig(dataDir) with opts applied in order. An
// option that rejects its value (e.g. WithBlockLimit(0)) aborts and returns
// its error; the returned Config is only valid when err is nil.
func NewConfig(dataDir string, opts ...Option) (Config, error) {
	cfg := DefaultConfig(dataDir)
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithBlockLimit overrides the number of records an open block accumulates
// before it is sealed.
func WithBlockLimit(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("collector: block limit must be positive, got %d", n)
		}
		c.BlockLimit = n

		return nil
	})
}

// WithBroadcastCapacity overrides each subscriber's live-row channel depth.
func WithBroadcastCapacity(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("collector: broadcast capacity must be positive, got %d", n)
		}
		c.BroadcastCapacity = n

		return nil
	})
}

// WithKeepAliveInterval overrides the attached-subscriber ping interval.
func WithKeepAliveInterval(d time.Duration) Option {
	return options.NoError(func(c *Config) { c.KeepAliveInterval = d })
}

// WithSealCompression overrides the outer compressor used when sealing a
// block for disk/backlog storage.
func WithSealCompression(t format.CompressionType) Option {
	return options.NoError(func(c *Config) { c.SealCompression = t })
}

// WithLogger overrides the logger the backend and manager loops emit to.
func WithLogger(l logging.Logger) Option {
	return options.New(func(c *Config) error {
		if l == nil {
			return fmt.Errorf("collector: logger must not be nil")
		}
		c.Logger = l

		return nil
	})
}

// WithRehydration overrides the persistent-block manager's disk re-read
// rate limit. rate <= 0 means unlimited.
func WithRehydration(rate float64, burst int) Option {
	return options.NoError(func(c *Config) {
		c.RehydrationRate = rate
		c.RehydrationBurst = burst
	})
}
