package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/taskme/pkg/idx"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024

	sendBuffer    = 32
	publishBuffer = 256
)

type client struct {
	id     idx.ID
	userID int64
	conn   *websocket.Conn
	send   chan []byte
}

// Hub tracks connections per user. All map access happens on the Run
// goroutine.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	clients    map[int64]map[*client]struct{}
	register   chan *client
	unregister chan *client
	publish    chan Event
	done       chan struct{}

	connected atomic.Int64
}

// NewHub builds a hub. An empty origins list accepts any origin.
func NewHub(logger *slog.Logger, origins []string) *Hub {
	if logger == nil {
		logger = slog.Default()
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return &Hub{
		logger: logger.With(slog.String("component", "events")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		clients:    make(map[int64]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		publish:    make(chan Event, publishBuffer),
		done:       make(chan struct{}),
	}
}

// Connected reports the number of open connections.
func (h *Hub) Connected() int { return int(h.connected.Load()) }

// Publish queues e for delivery. Events are dropped when the queue is full
// or the hub has stopped.
func (h *Hub) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	select {
	case <-h.done:
	case h.publish <- e:
	default:
		h.logger.Warn("event queue full, dropping event",
			slog.String("type", string(e.Type)),
			slog.Int64("user_id", e.UserID),
		)
	}
}

// Run serves registrations and fan-out until ctx is cancelled, then closes
// every connection.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for _, set := range h.clients {
			for c := range set {
				close(c.send)
			}
		}
		h.clients = map[int64]map[*client]struct{}{}
		h.connected.Store(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			h.connected.Add(1)
			h.logger.Debug("client connected", slog.String("client_id", c.id.String()), slog.Int64("user_id", c.userID))

		case c := <-h.unregister:
			h.remove(c)

		case e := <-h.publish:
			set := h.clients[e.UserID]
			if len(set) == 0 {
				continue
			}

			msg, err := json.Marshal(e)
			if err != nil {
				h.logger.Error("failed to encode event", slog.Any("error", err))
				continue
			}

			for c := range set {
				select {
				case c.send <- msg:
				default:
					// Slow reader, drop the connection.
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
	h.connected.Add(-1)
	h.logger.Debug("client disconnected", slog.String("client_id", c.id.String()), slog.Int64("user_id", c.userID))
}

// Serve upgrades the request and streams userID's events until the peer goes
// away. The upgrader has already answered the request when an error is
// returned.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, userID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{id: idx.New(), userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
		return conn.Close()
	}

	go h.writePump(c)
	go h.readPump(c)
	return nil
}

// readPump only exists to process control frames and notice disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Debug("websocket read failed", slog.String("client_id", c.id.String()), slog.Any("error", err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
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
