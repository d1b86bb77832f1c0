package collector

// Subscription is what AttachWithBacklog hands back to a client: a stream of
// live Row packets and a stream carrying the initial Sync, the open tail's
// Batch, and any requested historical Batch packets. Both channels carry
// whole wire frames (a leading PacketType byte followed by its body) ready
// to forward verbatim to a transport.
type Subscription struct {
	rows    chan []byte
	batches chan []byte
	done    chan struct{}
}

// Rows returns the live-row channel. It is closed when the subscriber is
// detached (lagged, or the collector shut down).
func (s *Subscription) Rows() <-chan []byte { return s.rows }

// Batches returns the sync/backlog channel. It is closed once the
// collector has finished streaming the requested backlog and the open
// tail's snapshot.
func (s *Subscription) Batches() <-chan []byte { return s.batches }

// Detached reports whether the backend has dropped this subscription
// (lagged row channel, or collector shutdown).
func (s *Subscription) Detached() <-chan struct{} { return s.done }

func newSubscription(rowCap int) *Subscription {
	return &Subscription{
		rows:    make(chan []byte, rowCap),
		batches: make(chan []byte, 128),
		done:    make(chan struct{}),
	}
}

func (s *Subscription) detach() {
	select {
	case <-s.done:
	default:
		close(s.done)
		close(s.rows)
	}
}

// trySendRow attempts a non-blocking send; it reports false if the
// subscriber's row channel is full (lagged).
func (s *Subscription) trySendRow(frame []byte) bool {
	select {
	case s.rows <- frame:
		return true
	default:
		return false
	}
}
