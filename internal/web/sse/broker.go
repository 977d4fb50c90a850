package sse

import (
	"sync"

	"github.com/boozedog/contextcrafter/internal/logger"
)

// Message is one server-sent event.
type Message struct {
	Event string `json:"event"`
	Path  string `json:"path,omitempty"`
}

// Broker manages SSE client connections and broadcasts messages.
type Broker struct {
	mu      sync.RWMutex
	clients map[chan Message]struct{}
	log     *logger.Logger
}

// NewBroker creates a new SSE broker. A nil log discards messages.
func NewBroker(log *logger.Logger) *Broker {
	if log == nil {
		log = logger.Nop()
	}
	return &Broker{
		clients: make(map[chan Message]struct{}),
		log:     log.With("component", "sse"),
	}
}

// Subscribe registers a new client and returns its message channel.
// The caller must call Unsubscribe when done.
func (b *Broker) Subscribe() chan Message {
	ch := make(chan Message, 64)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	b.log.Debug("sse client connected", "total", b.Count())
	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
	b.log.Debug("sse client disconnected", "total", b.Count())
}

// Broadcast sends a message to all connected clients.
// Slow clients that can't keep up will have the message dropped.
func (b *Broker) Broadcast(m Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- m:
		default:
			b.log.Warn("dropping message for slow sse client")
		}
	}
}

// Count returns the number of connected clients.
func (b *Broker) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
