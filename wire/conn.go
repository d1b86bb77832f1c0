package wire

import (
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/s3bk/clog/errs"
	"github.com/s3bk/clog/format"
)

// Conn sends and receives whole clog packets over a live WebSocket
// connection. It owns no handshake or routing logic; the embedding
// application upgrades the HTTP request and hands the resulting
// *websocket.Conn to NewConn.
type Conn struct {
	ws *websocket.Conn
}

// NewConn wraps an already-established WebSocket connection.
func NewConn(ws *websocket.Conn) *Conn { return &Conn{ws: ws} }

// WritePacket sends one binary frame: the PacketType tag byte followed by
// body.
func (c *Conn) WritePacket(pt format.PacketType, body []byte) error {
	frame := make([]byte, 0, 1+len(body))
	frame = append(frame, byte(pt))
	frame = append(frame, body...)

	return c.ws.WriteMessage(websocket.BinaryMessage, frame)
}

// ReadPacket blocks for the next binary frame and splits it into its
// PacketType tag and body.
func (c *Conn) ReadPacket() (format.PacketType, []byte, error) {
	mt, data, err := c.ws.ReadMessage()
	if err != nil {
		return 0, nil, err
	}

	if mt != websocket.BinaryMessage {
		return 0, nil, fmt.Errorf("wire: unexpected websocket message type %d", mt)
	}

	if len(data) < 1 {
		return 0, nil, errs.ErrInvalidHeaderSize
	}

	pt, ok := format.ParsePacketType(data[0])
	if !ok {
		return 0, nil, fmt.Errorf("%w: %d", errs.ErrUnknownPacketType, data[0])
	}

	return pt, data[1:], nil
}

// WriteClientMessage sends a ClientMessage frame. Unlike WritePacket, it
// carries no outer PacketType tag: a subscriber's command channel is its
// own tagged union, disjoint from the four kinds a collector streams back.
func (c *Conn) WriteClientMessage(m ClientMessage) error {
	return c.ws.WriteMessage(websocket.BinaryMessage, m.MarshalBinary())
}

// ReadClientMessage blocks for the next client command frame.
func (c *Conn) ReadClientMessage() (ClientMessage, error) {
	mt, data, err := c.ws.ReadMessage()
	if err != nil {
		return ClientMessage{}, err
	}

	if mt != websocket.BinaryMessage {
		return ClientMessage{}, fmt.Errorf("wire: unexpected websocket message type %d", mt)
	}

	return ParseClientMessage(data)
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.ws.Close() }
