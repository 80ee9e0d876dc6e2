package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"readiness/internal/metrics"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans progress events out to admin dashboards and to the respondent of each session
type Hub struct {
	// all admin dashboards
	dashboardConns map[*Connection]struct{}
	// sessionID -> respondent connections
	sessionConns map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	quit       chan struct{}
	closeOnce  sync.Once

	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string // Empty for dashboard connections
	IsAdmin   bool
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast. Disconnect closes the session's
// connections after everything queued before it was delivered.
type BroadcastMessage struct {
	SessionID   string
	ToDashboard bool
	Disconnect  bool
	Message     *Message
}

// NewHub creates a new WebSocket hub and starts its loop
func NewHub(logger *slog.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		dashboardConns: make(map[*Connection]struct{}),
		sessionConns:   make(map[string]map[*Connection]struct{}),
		register:       make(chan *Connection),
		unregister:     make(chan *Connection),
		broadcast:      make(chan *BroadcastMessage, 256),
		quit:           make(chan struct{}),
		logger:         logger,
		metrics:        m,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case <-h.quit:
			h.mu.Lock()
			for conn := range h.dashboardConns {
				h.drop(conn)
			}
			for _, conns := range h.sessionConns {
				for conn := range conns {
					h.drop(conn)
				}
			}
			h.mu.Unlock()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if conn.IsAdmin {
				h.dashboardConns[conn] = struct{}{}
				h.logger.Debug("dashboard connected")
			} else {
				if h.sessionConns[conn.SessionID] == nil {
					h.sessionConns[conn.SessionID] = make(map[*Connection]struct{})
				}
				h.sessionConns[conn.SessionID][conn] = struct{}{}
				h.logger.Debug("respondent connected", "session", conn.SessionID)
			}
			h.metrics.SocketOpened()
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.drop(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Disconnect {
				h.mu.Lock()
				for conn := range h.sessionConns[msg.SessionID] {
					h.drop(conn)
				}
				h.mu.Unlock()
				continue
			}

			h.mu.RLock()
			data, err := json.Marshal(msg.Message)
			if err != nil {
				h.logger.Error("failed to encode websocket message", "type", msg.Message.Type, "error", err)
				h.mu.RUnlock()
				continue
			}

			if msg.ToDashboard {
				for conn := range h.dashboardConns {
					deliver(conn, data)
				}
			} else {
				for conn := range h.sessionConns[msg.SessionID] {
					deliver(conn, data)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// drop removes conn and closes its send channel; callers hold h.mu
func (h *Hub) drop(conn *Connection) {
	if conn.IsAdmin {
		if _, ok := h.dashboardConns[conn]; !ok {
			return
		}
		delete(h.dashboardConns, conn)
		h.logger.Debug("dashboard disconnected")
	} else {
		conns, ok := h.sessionConns[conn.SessionID]
		if !ok {
			return
		}
		if _, ok := conns[conn]; !ok {
			return
		}
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.sessionConns, conn.SessionID)
		}
		h.logger.Debug("respondent disconnected", "session", conn.SessionID)
	}
	close(conn.Send)
	h.metrics.SocketClosed()
}

// deliver drops the message if the connection buffer is full
func deliver(conn *Connection, data []byte) {
	select {
	case conn.Send <- data:
	default:
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.quit:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.quit:
	}
}

// Close disconnects every client and stops the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}

func (h *Hub) send(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.quit:
	}
}

func envelope(msgType string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{
		Type:    MessageType(msgType),
		Payload: data,
	}
}

// BroadcastToDashboard sends a message to every admin dashboard (implements service.Broadcaster)
func (h *Hub) BroadcastToDashboard(msgType string, payload interface{}) {
	h.send(&BroadcastMessage{
		ToDashboard: true,
		Message:     envelope(msgType, payload),
	})
}

// BroadcastToSession sends a message to the respondent of one session (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	h.send(&BroadcastMessage{
		SessionID: sessionID,
		Message:   envelope(msgType, payload),
	})
}

// DisconnectSession closes every connection of a session (implements service.Broadcaster)
func (h *Hub) DisconnectSession(sessionID string) {
	h.send(&BroadcastMessage{
		SessionID:  sessionID,
		Disconnect: true,
	})
}
