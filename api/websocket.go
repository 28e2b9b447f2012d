package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cosmossdk.io/log"

	"github.com/thryx-chain/thryx/x/shared/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer.
		return true
	},
}

// WSMessage is what the hub pushes to clients.
type WSMessage struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	EmittedAt  time.Time         `json:"emitted_at"`
}

// wsCommand is what clients send to manage their subscriptions.
type wsCommand struct {
	Action string `json:"action"`
	Type   string `json:"type"`
}

// Hub fans module events out to WebSocket clients. Each client filters by
// event type; an empty subscription set means everything.
type Hub struct {
	em      *events.Manager
	clients map[*wsClient]struct{}
	mu      sync.RWMutex
	logger  log.Logger
}

type wsClient struct {
	conn   *websocket.Conn
	send   chan WSMessage
	types  map[string]struct{}
	typeMu sync.RWMutex
}

// NewHub creates a hub on the given event bus.
func NewHub(em *events.Manager, logger log.Logger) *Hub {
	return &Hub{
		em:      em,
		clients: make(map[*wsClient]struct{}),
		logger:  logger.With("module", "ws"),
	}
}

// Run pumps bus events to clients until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ch, cancel := h.em.Subscribe(256)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev, ok := <-ch:
			if !ok {
				h.closeAll()
				return
			}
			h.broadcast(ev)
		}
	}
}

func (h *Hub) broadcast(ev events.Event) {
	msg := WSMessage{
		Type:       ev.Type,
		Attributes: make(map[string]string, len(ev.Attributes)),
		EmittedAt:  ev.EmittedAt,
	}
	for _, attr := range ev.Attributes {
		msg.Attributes[attr.Key] = attr.Value
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		if !client.wants(ev.Type) {
			continue
		}
		select {
		case client.send <- msg:
		default:
			// Slow consumer: drop the message, not the connection.
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) remove(client *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
}

func (c *wsClient) wants(eventType string) bool {
	c.typeMu.RLock()
	defer c.typeMu.RUnlock()
	if len(c.types) == 0 {
		return true
	}
	_, ok := c.types[eventType]
	return ok
}

// handleWebSocket upgrades the connection and streams module events.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	client := &wsClient{
		conn:  conn,
		send:  make(chan WSMessage, 64),
		types: make(map[string]struct{}),
	}
	s.hub.mu.Lock()
	s.hub.clients[client] = struct{}{}
	s.hub.mu.Unlock()

	go client.writePump()
	go client.readPump(s.hub)
}

func (c *wsClient) readPump(h *Hub) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var cmd wsCommand
		if err := c.conn.ReadJSON(&cmd); err != nil {
			return
		}
		c.typeMu.Lock()
		switch cmd.Action {
		case "subscribe":
			if cmd.Type != "" {
				c.types[cmd.Type] = struct{}{}
			}
		case "unsubscribe":
			delete(c.types, cmd.Type)
		}
		c.typeMu.Unlock()
	}
}

func (c *wsClient) writePump() {
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
			if err := c.conn.WriteJSON(msg); err != nil {
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
