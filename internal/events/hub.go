package events

import "sync"

// Hub delivers each published event to every subscriber without blocking;
// a subscriber whose buffer is full misses the event.
type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	buffer  int
	dropped uint64
	seq     uint64
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{}), buffer: 10}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, h.buffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	_, ok := h.clients[ch]
	delete(h.clients, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

func (h *Hub) Publish(evt string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fanOut(evt)
}

// fanOut must be called with h.mu held.
func (h *Hub) fanOut(evt string) {
	for ch := range h.clients {
		select {
		case ch <- evt:
		default:
			h.dropped++
		}
	}
}

// Emit builds and publishes an event. Sequence numbers reach every
// subscriber in increasing order.
func (h *Hub) Emit(reqID, typ string, data any) {
	if h == nil {
		return
	}
	e := newEvent(reqID, typ, data)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	e.Seq = h.seq
	h.fanOut(e.String())
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped counts deliveries skipped because a subscriber was slow.
func (h *Hub) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}
