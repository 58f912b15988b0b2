package notify

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is one admin-dashboard notification. Kind is dotted
// ("offer.created", "offer.accepted", "inquiry.created"); Payload is the
// entity that triggered it.
type Event struct {
	Kind      string    `json:"kind"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the side services see: fire an event, never block.
type Publisher interface {
	Publish(kind string, payload any)
}

// subscriber is one connected admin dashboard.
type subscriber struct {
	id   string
	conn *websocket.Conn
	send chan Event
	done chan struct{}
}

// Hub fans events out to every connected admin dashboard.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]*subscriber)}
}

func (h *Hub) add(id string, conn *websocket.Conn) *subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{
		id:   id,
		conn: conn,
		send: make(chan Event, 32), // buffered to absorb bursts
		done: make(chan struct{}),
	}
	h.subs[id] = sub
	return sub
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subs[id]; ok {
		close(sub.done)
		delete(h.subs, id)
	}
}

// SubscriberCount reports how many dashboards are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs)
}

// Publish delivers the event to every subscriber. Slow subscribers whose
// buffers are full are skipped rather than blocking the caller.
func (h *Hub) Publish(kind string, payload any) {
	event := Event{Kind: kind, Payload: payload, Timestamp: time.Now().UTC()}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subs {
		select {
		case sub.send <- event:
		case <-sub.done:
		default:
		}
	}
}
