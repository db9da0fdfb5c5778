package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	outboxSize   = 256
	pingInterval = 45 * time.Second
	readTimeout  = 90 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin:       func(*http.Request) bool { return true },
	EnableCompression: true,
}

// StatusMsg is a connection level notice sent to one client.
type StatusMsg struct {
	Type  string `json:"type"`
	Level string `json:"level"`
	Text  string `json:"text"`
}

// ControlMsg is a client request such as pause or resume.
type ControlMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Value  any    `json:"value,omitempty"`
}

type Client struct {
	conn   *websocket.Conn
	out    chan any
	done   chan struct{}
	paused atomic.Bool
}

// Send queues v for this client. It never blocks; a full outbox drops v.
func (cl *Client) Send(v any) bool {
	select {
	case cl.out <- v:
		return true
	default:
		return false
	}
}

// Hub fans messages out to every connected WebSocket client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	greet   func() []any
	logger  *logrus.Entry
}

// NewHub builds a hub. greet, when set, returns the messages sent to each
// new client right after it connects.
func NewHub(greet func() []any, logger *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		greet:   greet,
		logger:  logger.WithField("component", "ws_hub"),
	}
}

func (h *Hub) Broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.Send(v)
	}
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and pumps messages until the client leaves.
// onConnect and onDisconnect bracket the client's lifetime; onControl gets
// control messages other than pause and resume.
func (h *Hub) ServeWS(onConnect, onDisconnect func(), onControl func(cl *Client, ctrl ControlMsg)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsUpgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.WithError(err).Debug("websocket upgrade failed")
			return
		}
		defer conn.Close()
		cl := &Client{conn: conn, out: make(chan any, outboxSize), done: make(chan struct{})}
		h.mu.Lock()
		h.clients[cl] = struct{}{}
		h.mu.Unlock()
		if onConnect != nil {
			onConnect()
		}

		go h.writeLoop(cl)

		cl.Send(StatusMsg{Type: "status", Level: "info", Text: "Connected"})
		if h.greet != nil {
			for _, msg := range h.greet() {
				cl.Send(msg)
			}
		}

		h.readLoop(cl, onControl)

		close(cl.done)
		h.mu.Lock()
		delete(h.clients, cl)
		h.mu.Unlock()
		if onDisconnect != nil {
			onDisconnect()
		}
	}
}

func (h *Hub) writeLoop(cl *Client) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	for {
		select {
		case v := <-cl.out:
			if cl.paused.Load() {
				if _, ok := v.(StatusMsg); !ok {
					continue
				}
			}
			if err := cl.conn.WriteJSON(v); err != nil {
				h.logger.WithError(err).Debug("websocket write failed")
			}
		case <-ping.C:
			_ = cl.conn.WriteMessage(websocket.PingMessage, nil)
		case <-cl.done:
			return
		}
	}
}

func (h *Hub) readLoop(cl *Client, onControl func(cl *Client, ctrl ControlMsg)) {
	_ = cl.conn.SetReadDeadline(time.Now().Add(readTimeout))
	cl.conn.SetPongHandler(func(string) error {
		_ = cl.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})
	for {
		mt, data, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		var ctrl ControlMsg
		if err := json.Unmarshal(data, &ctrl); err != nil || ctrl.Type != "control" {
			continue
		}
		switch strings.ToLower(ctrl.Action) {
		case "pause":
			cl.paused.Store(true)
			cl.Send(StatusMsg{Type: "status", Level: "info", Text: "Paused"})
		case "resume":
			cl.paused.Store(false)
			cl.Send(StatusMsg{Type: "status", Level: "success", Text: "Resumed"})
		default:
			if onControl != nil {
				onControl(cl, ctrl)
			}
		}
	}
}
