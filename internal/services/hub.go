package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"seatwell/monitoring"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub serves the websocket market feed. Every client receives the market
// channel; a client that connects with ?userId=N also receives user-N.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	monitor *monitoring.Monitor
	logger  *slog.Logger
}

type wsClient struct {
	hub      *Hub
	conn     *websocket.Conn
	channels map[string]bool
	send     chan []byte
	once     sync.Once
}

func NewHub(monitor *monitoring.Monitor, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*wsClient]struct{}),
		monitor: monitor,
		logger:  logger,
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}

// Publish queues the event for every client subscribed to channel. Clients
// whose buffer is full are disconnected.
func (h *Hub) Publish(ctx context.Context, channel string, event MarketEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode market event: %w", err)
	}

	h.mu.RLock()
	var slow []*wsClient
	for c := range h.clients {
		if !c.channels[channel] {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow websocket client", "channel", channel)
		h.remove(c)
	}
	return ctx.Err()
}

// ServeHTTP upgrades the connection and blocks until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channels := map[string]bool{MarketChannel: true}
	if raw := r.URL.Query().Get("userId"); raw != "" {
		userID, err := strconv.Atoi(raw)
		if err != nil || userID < 1 {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}
		channels[UserChannel(userID)] = true
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		hub:      h,
		conn:     conn,
		channels: channels,
		send:     make(chan []byte, clientSendSize),
	}
	h.add(c)

	go c.writePump()
	c.readPump()
}

func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	h.monitor.SetWebsocketClients(len(h.clients))
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.monitor.SetWebsocketClients(len(h.clients))
	h.mu.Unlock()

	if ok {
		c.close()
	}
}

func (c *wsClient) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// readPump discards client messages; it exists to process control frames and
// to notice disconnects.
func (c *wsClient) readPump() {
	defer c.hub.remove(c)

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Debug("Websocket read error", "error", err)
			}
			return
		}
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
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.logger.Debug("Websocket write error", "error", err)
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
