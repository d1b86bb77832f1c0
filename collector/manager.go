package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/s3bk/clog/internal/metrics"
	"github.com/s3bk/clog/logging"
)

// pmCmd is a command sent to the persistent-block manager loop.
type pmCmd interface{ isPMCmd() }

type pmAddBuffer struct {
	start uint64
	data  []byte
}

type pmGetRange struct {
	start, end uint64
	tx         chan []byte
}

type pmFlush struct {
	done chan struct{}
}

func (pmAddBuffer) isPMCmd() {}
func (pmGetRange) isPMCmd()  {}
func (pmFlush) isPMCmd()     {}

// persistentManager owns the block file index: a start-sequence-number
// keyed cache of encoded batch frames, some of which may only live on
// disk (nil entries). It runs on its own goroutine and is the only thing
// that touches the data directory.
type persistentManager struct {
	dir       string
	blocks    map[uint64][]byte
	cmds      chan pmCmd
	logger    logging.Logger
	metrics   *metrics.Registry
	rehydrate *rate.Limiter
}

func newPersistentManager(cfg Config, reg *metrics.Registry) *persistentManager {
	limit := rate.Limit(cfg.RehydrationRate)
	burst := cfg.RehydrationBurst

	if cfg.RehydrationRate <= 0 {
		limit = rate.Inf
	}

	if burst <= 0 {
		burst = 1
	}

	return &persistentManager{
		dir:       cfg.DataDir,
		blocks:    make(map[uint64][]byte),
		cmds:      make(chan pmCmd, 128),
		logger:    cfg.Logger,
		metrics:   reg,
		rehydrate: rate.NewLimiter(limit, burst),
	}
}

func blockPath(dir string, start uint64) string {
	return filepath.Join(dir, fmt.Sprintf("block-%d.clog", start))
}

// scanDir registers every block-<n>.clog file in the data directory as a
// not-yet-cached entry.
func (m *persistentManager) scanDir() error {
	if m.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

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

		start, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			continue
		}

		m.blocks[start] = nil
	}

	return nil
}

// takeLast removes and returns the highest-start block known to the index,
// loading it from disk if it was not already cached. It is used once at
// startup to reinstate a sealed tail block as the resumed open block.
func (m *persistentManager) takeLast() (start uint64, data []byte, ok bool, err error) {
	if len(m.blocks) == 0 {
		return 0, nil, false, nil
	}

	var last uint64

	for k := range m.blocks {
		if k >= last {
			last = k
		}
	}

	data = m.blocks[last]
	delete(m.blocks, last)

	if data == nil {
		data, err = os.ReadFile(blockPath(m.dir, last))
		if err != nil {
			return 0, nil, false, err
		}
	}

	return last, data, true, nil
}

func (m *persistentManager) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-m.cmds:
			switch c := cmd.(type) {
			case pmAddBuffer:
				m.handleAddBuffer(c)
			case pmGetRange:
				m.handleGetRange(ctx, c)
			case pmFlush:
				close(c.done)
			}
		}
	}
}

func (m *persistentManager) handleAddBuffer(c pmAddBuffer) {
	if m.dir != "" {
		if err := os.WriteFile(blockPath(m.dir, c.start), c.data, 0o644); err != nil {
			m.logger.Error("write block file failed", "start", c.start, "err", err)
		} else {
			m.metrics.AddBytesWritten(uint64(len(c.data))) //nolint:gosec
		}
	}

	m.blocks[c.start] = c.data
	m.logger.Info("block sealed", "start", c.start, "bytes", len(c.data))
}

func (m *persistentManager) handleGetRange(ctx context.Context, c pmGetRange) {
	defer close(c.tx)

	keys := make([]uint64, 0, len(m.blocks))
	for k := range m.blocks {
		if k < c.end {
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })

	for _, pos := range keys {
		data := m.blocks[pos]
		if data == nil {
			if err := m.rehydrate.Wait(ctx); err != nil {
				return
			}

			loaded, err := os.ReadFile(blockPath(m.dir, pos))
			if err != nil {
				m.logger.Warn("read block file failed", "start", pos, "err", err)
			} else {
				data = loaded
				m.blocks[pos] = loaded
			}
		}

		if data != nil {
			c.tx <- data
		}

		if pos < c.start {
			break
		}
	}
}
