// Package wire implements clog's binary packet framing for the collector's
// WebSocket transport and on-disk block files: the PacketType tag byte, the
// BatchHeader/SyncHeader/ServerMsg frame bodies, the client→server
// command messages, and a flat (non-columnar) encoding for a single
// RequestEntry used by Row packets. It also provides a thin Conn wrapper
// around a gorilla/websocket connection for sending and receiving whole
// packets.
//
// wire does not implement an HTTP server or a WebSocket handshake handler;
// the embedding application owns the upgrade and routing, and calls into
// Conn once it has a live connection.
package wire
