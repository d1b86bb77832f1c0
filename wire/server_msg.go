package wire

import (
	"fmt"

	"github.com/s3bk/clog/errs"
)

// ServerMsgKind tags the variant of a ServerMsg packet body.
type ServerMsgKind uint8

const (
	ServerMsgNotAttached ServerMsgKind = 1
	ServerMsgDetached    ServerMsgKind = 2
	ServerMsgError       ServerMsgKind = 3
)

// ServerMsg is the body of a ServerMsg packet: a tagged union carrying no
// payload for NotAttached/Detached, and an error string for Error.
type ServerMsg struct {
	Kind ServerMsgKind
	Text string // only meaningful when Kind == ServerMsgError
}

// MarshalBinary serializes m as a one-byte kind tag, followed by a
// length-prefixed message string when Kind is ServerMsgError.
func (m ServerMsg) MarshalBinary() []byte {
	if m.Kind != ServerMsgError {
		return []byte{byte(m.Kind)}
	}

	b := make([]byte, 1, 1+4+len(m.Text))
	b[0] = byte(m.Kind)
	b = engine.AppendUint32(b, uint32(len(m.Text))) //nolint:gosec
	b = append(b, m.Text...)

	return b
}

// ParseServerMsg reads a ServerMsg from data.
func ParseServerMsg(data []byte) (ServerMsg, error) {
	if len(data) < 1 {
		return ServerMsg{}, errs.ErrInvalidHeaderSize
	}

	kind := ServerMsgKind(data[0])

	switch kind {
	case ServerMsgNotAttached, ServerMsgDetached:
		return ServerMsg{Kind: kind}, nil
	case ServerMsgError:
		rest := data[1:]
		if len(rest) < 4 {
			return ServerMsg{}, errs.ErrTruncated
		}

		n := engine.Uint32(rest)
		rest = rest[4:]

		if uint32(len(rest)) < n { //nolint:gosec
			return ServerMsg{}, errs.ErrTruncated
		}

		return ServerMsg{Kind: kind, Text: string(rest[:n])}, nil
	default:
		return ServerMsg{}, fmt.Errorf("wire: unknown server message kind %d", kind)
	}
}
