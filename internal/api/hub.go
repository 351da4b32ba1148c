package api

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	sendBuffer   = 16
	maxWSMessage = 4 << 10
)

// Hub fans section changes out to every connected websocket client.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	log     *zap.Logger
}

type client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	control bool
}

// NewHub creates an empty hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{clients: make(map[string]*client), log: log}
}

func (h *Hub) register(conn *websocket.Conn, control bool) *client {
	c := &client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		control: control,
	}
	h.mu.Lock()
	h.clients[c.id] = c
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client connected", zap.String("client", c.id), zap.Int("clients", n))
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Debug("websocket client disconnected", zap.String("client", c.id), zap.Int("clients", n))
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast queues v for every client without blocking. Clients whose
// buffer is full miss the message.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal broadcast", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.queue(c, data)
	}
}

// sendTo queues v for one client.
func (h *Hub) sendTo(c *client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal message", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		h.queue(c, data)
	}
}

func (h *Hub) queue(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.log.Warn("websocket client too slow, message dropped", zap.String("client", c.id))
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		c.conn.Close()
	}
}

// writePump owns all writes to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
