// Package metrics is a minimal in-process counter registry for the
// collector backend: atomic counters behind a snapshot method, deliberately
// not a Prometheus exporter. The counters are the seam a host application
// would wire to one.
package metrics

import "sync/atomic"

// Registry holds the collector's running counters.
type Registry struct {
	recordsIngested   atomic.Uint64
	blocksSealed      atomic.Uint64
	bytesWritten      atomic.Uint64
	subscribers       atomic.Int64
	subscribersLagged atomic.Uint64
	decodeErrors      atomic.Uint64
}

// New constructs an empty Registry.
func New() *Registry { return &Registry{} }

func (r *Registry) IncRecordsIngested()      { r.recordsIngested.Add(1) }
func (r *Registry) IncBlocksSealed()         { r.blocksSealed.Add(1) }
func (r *Registry) AddBytesWritten(n uint64) { r.bytesWritten.Add(n) }
func (r *Registry) IncSubscribers()          { r.subscribers.Add(1) }
func (r *Registry) DecSubscribers()          { r.subscribers.Add(-1) }
func (r *Registry) IncSubscribersLagged()    { r.subscribersLagged.Add(1) }
func (r *Registry) IncDecodeErrors()         { r.decodeErrors.Add(1) }

// Snapshot is a point-in-time copy of every counter's value.
type Snapshot struct {
	RecordsIngested   uint64
	BlocksSealed      uint64
	BytesWritten      uint64
	Subscribers       int64
	SubscribersLagged uint64
	DecodeErrors      uint64
}

// Snapshot reads every counter without blocking writers.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		RecordsIngested:   r.recordsIngested.Load(),
		BlocksSealed:      r.blocksSealed.Load(),
		BytesWritten:      r.bytesWritten.Load(),
		Subscribers:       r.subscribers.Load(),
		SubscribersLagged: r.subscribersLagged.Load(),
		DecodeErrors:      r.decodeErrors.Load(),
	}
}
