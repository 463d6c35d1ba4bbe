package records

import "sync/atomic"

// Holder publishes the current Store. Readers never block; a reload swaps
// the pointer.
type Holder struct {
	p atomic.Pointer[Store]
}

func NewHolder(s *Store) *Holder {
	h := &Holder{}
	h.Set(s)
	return h
}

// Current returns the live store, or nil before the first load.
func (h *Holder) Current() *Store {
	if h == nil {
		return nil
	}
	return h.p.Load()
}

func (h *Holder) Set(s *Store) {
	h.p.Store(s)
}
