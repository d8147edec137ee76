// Package wsprogress broadcasts sampling progress to websocket clients.
package wsprogress

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/user/vidframes/pkg/ports"
)

// SendBuffer is the number of pending messages kept per client. Further
// messages for a client whose buffer is full are dropped.
const SendBuffer = 64

const writeTimeout = 5 * time.Second

// Event is the JSON message sent to clients.
type Event struct {
	Type          string  `json:"type"` // "progress" or "done"
	FramesRead    int     `json:"frames_read"`
	FramesWritten int     `json:"frames_written"`
	TotalFrames   int     `json:"total_frames,omitempty"`
	Percent       float64 `json:"percent,omitempty"`
	FrameRate     float64 `json:"frame_rate,omitempty"`
	Throughput    float64 `json:"throughput,omitempty"`
	ElapsedMs     int64   `json:"elapsed_ms"`
	Error         string  `json:"error,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub is an http.Handler that upgrades requests to websockets and a
// ports.ProgressSink that fans events out to every connected client.
// Publishing never blocks on a client.
type Hub struct {
	upgrader websocket.Upgrader
	logger   ports.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub creates a hub. Any origin is accepted.
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  logger.WithComponent("ws"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection and keeps it registered until the peer
// goes away or the hub is closed.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, SendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug("Progress client connected: %s", r.RemoteAddr)

	go h.writePump(c)

	// Read until the peer disconnects; incoming messages are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.remove(c)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Progress implements ports.ProgressSink.
func (h *Hub) Progress(p ports.Progress) {
	ev := Event{
		Type:          "progress",
		FramesRead:    p.FramesRead,
		FramesWritten: p.FramesWritten,
		TotalFrames:   p.TotalFrames,
		FrameRate:     p.FrameRate,
		Throughput:    p.Throughput,
		ElapsedMs:     p.Elapsed.Milliseconds(),
	}
	if pct := p.Percent(); pct >= 0 {
		ev.Percent = pct
	}
	h.publish(ev)
}

// Done implements ports.ProgressSink.
func (h *Hub) Done(c ports.Completion) {
	ev := Event{
		Type:          "done",
		FramesRead:    c.FramesRead,
		FramesWritten: c.FramesWritten,
		ElapsedMs:     c.Elapsed.Milliseconds(),
	}
	if c.Err != nil {
		ev.Error = c.Err.Error()
	}
	h.publish(ev)
}

func (h *Hub) publish(ev Event) {
	msg, err := sonic.Marshal(ev)
	if err != nil {
		h.logger.Debug("Encode progress event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Slow client, drop.
		}
	}
}

// Close disconnects all clients after their pending messages are sent.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := h.clients
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

var (
	_ ports.ProgressSink = (*Hub)(nil)
	_ http.Handler       = (*Hub)(nil)
)
