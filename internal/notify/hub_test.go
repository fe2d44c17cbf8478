package notify

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	return ws
}

func TestHub_BroadcastsToClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	ws := dialHub(t, hub)

	hub.Emit(MenuZoom, "out")

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, websocket.JSON.Receive(ws, &msg))

	assert.Equal(t, MenuZoom, msg.Event)
	assert.Equal(t, "out", msg.Payload)
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestHub_PreservesOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	ws := dialHub(t, hub)

	urls := []string{"gruenerator://auth/callback?a", "gruenerator://auth/callback?b", "gruenerator://auth/callback?c"}
	for _, u := range urls {
		hub.Emit(DeepLinkAuth, u)
	}

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	for _, want := range urls {
		var msg Message
		require.NoError(t, websocket.JSON.Receive(ws, &msg))
		assert.Equal(t, want, msg.Payload)
	}
}

func TestHub_PingPong(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	ws := dialHub(t, hub)

	require.NoError(t, websocket.Message.Send(ws, "ping"))
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var reply string
	require.NoError(t, websocket.Message.Receive(ws, &reply))
	assert.Equal(t, "pong", reply)
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Close()

	ws := dialHub(t, hub)
	ws.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_EmitWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	done := make(chan struct{})
	go func() {
		// More than the buffer; Run is not started so the backlog fills.
		for i := 0; i < 300; i++ {
			hub.Emit(MenuReload, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Emit blocked on a full backlog")
	}
}
