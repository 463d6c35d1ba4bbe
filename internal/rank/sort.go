// Package rank orders draft picks for the table view.
package rank

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"draftboard-engine/internal/domain"
)

var ErrUnknownKey = errors.New("unknown sort key")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts asc/desc in any case; blank means asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// ParseKey validates a sort key. Blank means unsorted.
func ParseKey(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || domain.IsField(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// SortState is the active sort column. The zero value keeps load order.
type SortState struct {
	Key       string    `json:"key" yaml:"key"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Toggle is a header click: the same key flips direction, a new key starts
// ascending.
func (s SortState) Toggle(key string) SortState {
	if key == s.Key && s.Key != "" {
		if s.Direction == Desc {
			return SortState{Key: key, Direction: Asc}
		}
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// Sort returns a new, stably ordered slice. With no key the copy keeps the
// input order.
func Sort(picks []domain.Pick, s SortState) []domain.Pick {
	out := slices.Clone(picks)
	if out == nil {
		out = []domain.Pick{}
	}
	if s.Key == "" {
		return out
	}

	keys := make(map[string]key, len(out))
	keyOf := func(p domain.Pick) key {
		raw := p.Get(s.Key)
		k, ok := keys[raw]
		if !ok {
			k = classify(raw)
			keys[raw] = k
		}
		return k
	}

	desc := s.Direction == Desc
	slices.SortStableFunc(out, func(a, b domain.Pick) int {
		c := compareKeys(keyOf(a), keyOf(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}
