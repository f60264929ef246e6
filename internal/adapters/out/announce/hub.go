// Package announce broadcasts counter announcements to the screens of a unit
// over WebSocket. The hub keeps a per-unit client registry and drops slow
// consumers instead of blocking the rotation.
package announce

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"rotafila/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// announcement is the wire format pushed to counter screens.
type announcement struct {
	Type string    `json:"type"`
	Unit string    `json:"unit"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Hub implements the Announcer port. Announce never reports an error: a
// screen that missed a message catches up on the next queue refresh.
type Hub struct {
	mu      sync.RWMutex
	clients map[kernel.Unit]map[*client]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[kernel.Unit]map[*client]struct{}),
		logger:  slog.With("component", "announce"),
	}
}

// Announce pushes the text to every screen registered for the unit.
func (h *Hub) Announce(unit kernel.Unit, text string) {
	payload, err := json.Marshal(announcement{
		Type: "announcement",
		Unit: unit.String(),
		Text: text,
		At:   time.Now(),
	})
	if err != nil {
		h.logger.Error("marshal announcement", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients[unit] {
		select {
		case c.send <- payload:
		default:
			h.logger.Warn("dropping slow announcement client", "unit", unit.String())
			go h.unregister(c)
		}
	}
}

// Register attaches an upgraded connection to the unit's registry and starts
// its pumps. It returns once the client is registered.
func (h *Hub) Register(unit kernel.Unit, conn *websocket.Conn) {
	c := &client{
		unit: unit,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		hub:  h,
	}

	h.mu.Lock()
	if h.clients[unit] == nil {
		h.clients[unit] = make(map[*client]struct{})
	}
	h.clients[unit][c] = struct{}{}
	count := len(h.clients[unit])
	h.mu.Unlock()

	h.logger.Info("screen connected", "unit", unit.String(), "screens", count)

	go c.writePump()
	go c.readPump()
}

// ClientCount reports the number of screens connected for a unit.
func (h *Hub) ClientCount(unit kernel.Unit) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[unit])
}

// Close disconnects every registered screen.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for unit, clients := range h.clients {
		for c := range clients {
			close(c.send)
		}
		delete(h.clients, unit)
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[c.unit]; ok {
		if _, registered := clients[c]; registered {
			delete(clients, c)
			close(c.send)
		}
		if len(clients) == 0 {
			delete(h.clients, c.unit)
		}
	}
}

type client struct {
	unit kernel.Unit
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

// readPump drains the connection. Screens never send application messages,
// the pump only keeps pong handling alive and detects disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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
