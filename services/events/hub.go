package events

import (
	"context"
	"sync"

	"coladay/models"

	"github.com/google/uuid"
)

// Hub is the in-process Bus. Dispatch is synchronous, in subscription
// order, on the publishing goroutine.
type Hub struct {
	mu       sync.Mutex
	handlers map[string]Handler
	order    []string
}

func NewHub() *Hub {
	return &Hub{handlers: make(map[string]Handler)}
}

func (h *Hub) Publish(ctx context.Context, confirmation models.Confirmation) {
	h.mu.Lock()
	handlers := make([]Handler, 0, len(h.order))
	for _, id := range h.order {
		if handler, ok := h.handlers[id]; ok {
			handlers = append(handlers, handler)
		}
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(confirmation)
	}
}

func (h *Hub) Subscribe(handler Handler) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.New().String()
	h.handlers[id] = handler
	h.order = append(h.order, id)
	return &hubSubscription{hub: h, id: id}
}

type hubSubscription struct {
	hub  *Hub
	id   string
	once sync.Once
}

func (s *hubSubscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		delete(s.hub.handlers, s.id)
		for i, id := range s.hub.order {
			if id == s.id {
				s.hub.order = append(s.hub.order[:i], s.hub.order[i+1:]...)
				break
			}
		}
	})
}
