package services

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type WSClient struct {
	Topic string
	Conn  Conn

	mu     sync.Mutex
	closed bool
}

// Send writes one text frame. Writes after Close are dropped.
func (c *WSClient) Send(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrCloseSent
	}
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

func (c *WSClient) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		_ = c.Conn.Close()
	}
}

// RealtimeHub fans snapshots out to websocket subscribers by topic
// ("daily:2024-05-01", "grocery").
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func DailyTopic(date string) string { return "daily:" + date }

const GroceryTopic = "grocery"

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.Topic] == nil {
		h.clients[c.Topic] = make(map[*WSClient]struct{})
	}
	h.clients[c.Topic][c] = struct{}{}
	h.mu.Unlock()
}

// Subscribe registers c and writes the frame built by initial before any
// broadcast can reach it. initial runs after registration, so a broadcast
// racing the subscription is delivered after the first frame, never before.
// A nil frame sends nothing.
func (h *RealtimeHub) Subscribe(c *WSClient, initial func() []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	h.Register(c)
	msg := initial()
	if msg == nil || c.closed {
		return nil
	}
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.Topic]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.Topic)
		}
	}
	h.mu.Unlock()
	c.close()
}

func (h *RealtimeHub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

func (h *RealtimeHub) Broadcast(topic string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		slog.Error("realtime: marshal payload", "topic", topic, "err", err)
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[topic]))
	for c := range h.clients[topic] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(msg); err != nil {
			h.Unregister(c)
		}
	}
}
