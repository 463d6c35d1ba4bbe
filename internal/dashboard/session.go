package dashboard

import (
	"sync"
	"time"

	"draftboard-engine/internal/filter"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/stats"
)

// Session is the dashboard state of one UI client. Every change bumps the
// generation; a recomputation that finishes after a newer change is
// discarded, so the latest input always wins.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	state   State
	gen     uint64
	view    View
	viewGen uint64
	store   func() *records.Store
	opts    stats.Options
	used    time.Time
}

// NewSession starts a session reading from store. store is called on every
// recomputation so a reloaded dataset is picked up.
func NewSession(id string, store func() *records.Store, opts stats.Options) *Session {
	now := time.Now().UTC()
	s := &Session{ID: id, CreatedAt: now, store: store, opts: opts, used: now}
	s.Refresh()
	return s
}

// State returns the current selections.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetFilters replaces the filter inputs and recomputes.
func (s *Session) SetFilters(c filter.Criteria) View {
	return s.update(true, func(st State) State { return st.WithFilters(c) })
}

// ClickSort applies a header click and recomputes.
func (s *Session) ClickSort(key string) View {
	return s.update(true, func(st State) State { return st.WithSortClick(key) })
}

// Replace swaps in a whole state, e.g. a saved view.
func (s *Session) Replace(st State) View {
	return s.update(true, func(State) State { return st })
}

// Refresh recomputes the current state against the current store. It does
// not count as client activity.
func (s *Session) Refresh() View {
	return s.update(false, func(st State) State { return st })
}

// SetStatsOptions changes how summaries are computed and recomputes.
func (s *Session) SetStatsOptions(opts stats.Options) View {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
	return s.Refresh()
}

// View returns the latest published result.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = time.Now().UTC()
	return s.view
}

// LastUsed is the time of the last client read or change.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}

func (s *Session) update(touch bool, next func(State) State) View {
	s.mu.Lock()
	if touch {
		s.used = time.Now().UTC()
	}
	s.state = next(s.state)
	s.gen++
	gen, st, opts := s.gen, s.state, s.opts
	s.mu.Unlock()

	v := Evaluate(s.store(), st, opts)
	return s.publish(gen, v)
}

// publish stores v unless a newer generation already landed, and returns
// whatever is current.
func (s *Session) publish(gen uint64, v View) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen > s.viewGen {
		s.view = v
		s.viewGen = gen
	}
	return s.view
}

// Sessions is an in-memory registry keyed by session id.
type Sessions struct {
	mu sync.RWMutex
	m  map[string]*Session
}

func NewSessions() *Sessions {
	return &Sessions{m: make(map[string]*Session)}
}

func (r *Sessions) Put(s *Session) {
	r.mu.Lock()
	r.m[s.ID] = s
	r.mu.Unlock()
}

func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	return s, ok
}

func (r *Sessions) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[id]
	delete(r.m, id)
	return ok
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// Each calls fn for every session.
func (r *Sessions) Each(fn func(*Session)) {
	r.mu.RLock()
	list := make([]*Session, 0, len(r.m))
	for _, s := range r.m {
		list = append(list, s)
	}
	r.mu.RUnlock()
	for _, s := range list {
		fn(s)
	}
}

// PruneIdle drops sessions nobody has read or changed for maxIdle and
// returns how many were dropped.
func (r *Sessions) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.m {
		if s.LastUsed().Before(cutoff) {
			delete(r.m, id)
			n++
		}
	}
	return n
}
