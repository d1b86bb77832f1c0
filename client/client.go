package client

import (
	"context"

	"github.com/s3bk/clog/wire"
)

// Client drives one WebSocket connection against a collector: it
// subscribes with backlog on connect, applies every incoming packet to its
// Mirror, and resubscribes automatically if the server reports the
// subscription detached or never attached.
type Client struct {
	conn   *wire.Conn
	Mirror *Mirror
}

// Connect subscribes over conn with the given backlog and returns a Client
// ready to have Run called on it.
func Connect(conn *wire.Conn, backlog uint64) (*Client, error) {
	if err := conn.WriteClientMessage(wire.SubscribeWithBacklog(backlog)); err != nil {
		return nil, err
	}

	return &Client{conn: conn, Mirror: NewMirror()}, nil
}

// Run reads packets until ctx is canceled or the connection fails,
// applying each to the Mirror and invoking onChange with the touched
// sequence range. onChange may be nil.
func (c *Client) Run(ctx context.Context, onChange func(start, end uint64)) error {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			_ = c.conn.Close()
		case <-stop:
		}
	}()

	for {
		pt, body, err := c.conn.ReadPacket()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return err
		}

		ev, err := c.Mirror.HandlePacket(pt, body)
		if err != nil {
			return err
		}

		if ev.Resubscribe {
			if err := c.conn.WriteClientMessage(wire.SubscribeWithBacklog(1000)); err != nil {
				return err
			}

			continue
		}

		if ev.Changed && onChange != nil {
			onChange(ev.Start, ev.End)
		}
	}
}
