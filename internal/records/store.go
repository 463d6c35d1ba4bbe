// Package records holds the draft dataset for the lifetime of the engine.
package records

import (
	"time"

	"draftboard-engine/internal/domain"
)

// Store is an immutable, ordered set of picks. The zero value is an empty,
// not-yet-loaded store.
type Store struct {
	picks    []domain.Pick
	source   string
	loadedAt time.Time
	loaded   bool
}

// New wraps picks in a loaded store. The slice is copied.
func New(picks []domain.Pick, source string) *Store {
	cp := make([]domain.Pick, len(picks))
	copy(cp, picks)
	return &Store{
		picks:    cp,
		source:   source,
		loadedAt: time.Now().UTC(),
		loaded:   true,
	}
}

// All returns a copy of every pick in load order.
func (s *Store) All() []domain.Pick {
	if s == nil {
		return nil
	}
	cp := make([]domain.Pick, len(s.picks))
	copy(cp, s.picks)
	return cp
}

// Len is the number of picks.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.picks)
}

// Loaded distinguishes an empty dataset from one that was never loaded.
func (s *Store) Loaded() bool {
	return s != nil && s.loaded
}

func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

func (s *Store) LoadedAt() time.Time {
	if s == nil {
		return time.Time{}
	}
	return s.loadedAt
}
