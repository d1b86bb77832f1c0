package wire

import (
	"fmt"

	"github.com/s3bk/clog/errs"
)

// ClientMsgKind tags the variant of a client→server command message.
type ClientMsgKind uint8

const (
	ClientMsgSubscribe            ClientMsgKind = 1
	ClientMsgSubscribeWithBacklog ClientMsgKind = 2
	ClientMsgFetchRange           ClientMsgKind = 3
)

// ClientMessage is the tagged union of commands a subscriber sends over its
// WebSocket connection. Backlog is only meaningful for
// ClientMsgSubscribeWithBacklog; Start/End only for ClientMsgFetchRange.
type ClientMessage struct {
	Kind    ClientMsgKind
	Backlog uint64
	Start   uint64
	End     uint64
}

// Subscribe requests the server's live tail with no backlog.
func Subscribe() ClientMessage { return ClientMessage{Kind: ClientMsgSubscribe} }

// SubscribeWithBacklog requests the live tail plus up to n records of
// history preceding it.
func SubscribeWithBacklog(n uint64) ClientMessage {
	return ClientMessage{Kind: ClientMsgSubscribeWithBacklog, Backlog: n}
}

// FetchRange requests a one-shot replay of [start, end) with no subscription.
func FetchRange(start, end uint64) ClientMessage {
	return ClientMessage{Kind: ClientMsgFetchRange, Start: start, End: end}
}

// MarshalBinary serializes m.
func (m ClientMessage) MarshalBinary() []byte {
	switch m.Kind {
	case ClientMsgSubscribe:
		return []byte{byte(m.Kind)}
	case ClientMsgSubscribeWithBacklog:
		b := make([]byte, 1, 1+8)
		b[0] = byte(m.Kind)

		return engine.AppendUint64(b, m.Backlog)
	case ClientMsgFetchRange:
		b := make([]byte, 1, 1+16)
		b[0] = byte(m.Kind)
		b = engine.AppendUint64(b, m.Start)
		b = engine.AppendUint64(b, m.End)

		return b
	default:
		return []byte{byte(m.Kind)}
	}
}

// ParseClientMessage reads a ClientMessage from data.
func ParseClientMessage(data []byte) (ClientMessage, error) {
	if len(data) < 1 {
		return ClientMessage{}, errs.ErrInvalidHeaderSize
	}

	kind := ClientMsgKind(data[0])
	rest := data[1:]

	switch kind {
	case ClientMsgSubscribe:
		return ClientMessage{Kind: kind}, nil
	case ClientMsgSubscribeWithBacklog:
		if len(rest) < 8 {
			return ClientMessage{}, errs.ErrTruncated
		}

		return ClientMessage{Kind: kind, Backlog: engine.Uint64(rest)}, nil
	case ClientMsgFetchRange:
		if len(rest) < 16 {
			return ClientMessage{}, errs.ErrTruncated
		}

		return ClientMessage{Kind: kind, Start: engine.Uint64(rest[0:8]), End: engine.Uint64(rest[8:16])}, nil
	default:
		return ClientMessage{}, fmt.Errorf("wire: unknown client message kind %d", kind)
	}
}
