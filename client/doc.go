// Package client is a read-side replica of a collector's record stream,
// rebuilt entirely from the Batch/Row/Sync packets a subscriber receives
// over the wire. It holds every sealed block it has been sent plus one
// open tail, and answers point and range lookups with no network access,
// the way a browser tab mirrors a server's log without re-fetching it for
// every scroll or filter change.
//
// Mirror is not safe for concurrent use. It is meant to be owned by the
// single goroutine reading a WebSocket connection, mirroring the
// single-threaded event loop a browser tab would run it under.
package client
