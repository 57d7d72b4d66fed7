package events

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1024
	sendBuffer = 64
)

// Event is pushed to admin clients whenever a booking or the settings change.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

type connection struct {
	id      string
	adminID string
	conn    *websocket.Conn
	send    chan []byte
	// topics is nil while the client wants everything.
	topics map[string]bool
}

// Hub fans events out to every connected admin session.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*connection
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[string]*connection),
		now:         time.Now,
	}
}

// Publish broadcasts an event. Slow clients miss events rather than block the caller.
func (h *Hub) Publish(eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload, At: h.now().UTC()})
	if err != nil {
		slog.Error("failed to encode event", "type", eventType, "error", err)
		return
	}

	topic := topicOf(eventType)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.connections {
		if c.topics != nil && !c.topics[topic] {
			continue
		}
		select {
		case c.send <- data:
		default:
			slog.Warn("dropping event for slow admin client", "conn_id", c.id, "type", eventType)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.connections {
		close(c.send)
		delete(h.connections, id)
	}
}

// Serve registers conn and pumps events to it until the client goes away.
func (h *Hub) Serve(conn *websocket.Conn, adminID string) {
	c := &connection{
		id:      uuid.NewString(),
		adminID: adminID,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
	}
	h.register(c)
	slog.Info("admin events connected", "conn_id", c.id, "admin_id", adminID)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c.id] = c
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.connections[c.id]; ok && existing == c {
		delete(h.connections, c.id)
		close(c.send)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
		slog.Info("admin events disconnected", "conn_id", c.id)
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("admin events read failed", "conn_id", c.id, "error", err)
			}
			return
		}

		var cmd struct {
			Type  string `json:"type"`
			Topic string `json:"topic"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil {
			continue
		}

		h.mu.Lock()
		switch cmd.Type {
		case "subscribe":
			if c.topics == nil {
				c.topics = make(map[string]bool)
			}
			c.topics[cmd.Topic] = true
		case "unsubscribe":
			if c.topics != nil {
				delete(c.topics, cmd.Topic)
			}
		}
		h.mu.Unlock()
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// topicOf maps "booking.status_updated" to "booking".
func topicOf(eventType string) string {
	topic, _, _ := strings.Cut(eventType, ".")
	return topic
}
