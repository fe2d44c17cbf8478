package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/gruenerator/shell/internal/logging"
)

// Message is the wire form of a notification sent to websocket clients.
type Message struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub broadcasts notifications to every connected websocket client. It is
// the delivery path for a UI that runs outside a webview host, e.g. the
// headless shell with the UI open in a browser tab.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns after Close.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				c.Close()
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			var dead []*websocket.Conn
			h.mu.RLock()
			for c := range h.clients {
				if _, err := c.Write(msg); err != nil {
					dead = append(dead, c)
				}
			}
			h.mu.RUnlock()
			for _, c := range dead {
				h.drop(c)
			}
		}
	}
}

func (h *Hub) drop(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.Close()
	}
}

// Close stops Run and disconnects all clients.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Emit implements Emitter. When the broadcast buffer is full the
// notification is dropped rather than blocking the caller.
func (h *Hub) Emit(name string, payload any) {
	data, err := json.Marshal(Message{
		ID:        uuid.NewString(),
		Event:     name,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logging.WithComponent("notify").Warn("cannot encode notification", "event", name, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		logging.WithComponent("notify").Warn("notification dropped, hub backlog full", "event", name)
	}
}

// ServeWS handles one websocket client until it disconnects.
func (h *Hub) ServeWS(ws *websocket.Conn) {
	select {
	case h.register <- ws:
	case <-h.done:
		ws.Close()
		return
	}
	defer func() {
		select {
		case h.unregister <- ws:
		case <-h.done:
		}
	}()

	for {
		var msg string
		if err := websocket.Message.Receive(ws, &msg); err != nil {
			return
		}
		if msg == "ping" {
			_ = websocket.Message.Send(ws, "pong")
		}
	}
}

// Handler returns the websocket HTTP handler for the hub.
func (h *Hub) Handler() websocket.Handler {
	return websocket.Handler(h.ServeWS)
}
