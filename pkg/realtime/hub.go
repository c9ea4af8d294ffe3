package realtime

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Hub fans events out to the open streams of each recipient. Slow
// subscribers miss events rather than block the publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[int64]map[chan []byte]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]map[chan []byte]struct{})}
}

func (h *Hub) Subscribe(recipientID int64) chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	set, ok := h.clients[recipientID]
	if !ok {
		set = make(map[chan []byte]struct{})
		h.clients[recipientID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(recipientID int64, ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[recipientID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.clients, recipientID)
	}
	close(ch)
}

// Publish never blocks and never fails; it satisfies domain.Broadcaster
func (h *Hub) Publish(_ context.Context, recipientID int64, payload []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients[recipientID] {
		select {
		case ch <- payload:
		default:
			// drop if slow
		}
	}
	return nil
}
