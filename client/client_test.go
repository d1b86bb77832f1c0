package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/s3bk/clog/format"
	"github.com/s3bk/clog/wire"
)

// TestClient_Run_ResubscribesWithThousandRecordBacklog drives a real
// WebSocket round trip: the server subscribes the client, reports the
// subscription detached, and must observe the client resubscribing with a
// 1 000-record backlog rather than a bare Subscribe.
func TestClient_Run_ResubscribesWithThousandRecordBacklog(t *testing.T) {
	upgrader := websocket.Upgrader{}
	resubscribed := make(chan wire.ClientMessage, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer ws.Close()

		conn := wire.NewConn(ws)

		_, err = conn.ReadClientMessage() // initial Connect subscription
		require.NoError(t, err)

		require.NoError(t, conn.WritePacket(format.PacketServerMsg, wire.ServerMsg{Kind: wire.ServerMsgDetached}.MarshalBinary()))

		msg, err := conn.ReadClientMessage()
		if err == nil {
			resubscribed <- msg
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	c, err := Connect(wire.NewConn(ws), 10)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go c.Run(ctx, nil) //nolint:errcheck

	select {
	case msg := <-resubscribed:
		require.Equal(t, wire.ClientMsgSubscribeWithBacklog, msg.Kind)
		require.Equal(t, uint64(1000), msg.Backlog)
	case <-time.After(4 * time.Second):
		t.Fatal("timed out waiting for resubscribe")
	}
}
