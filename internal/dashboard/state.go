// Package dashboard ties the record store, filter, sort and stats together
// into the view the UI renders.
package dashboard

import (
	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/filter"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/stats"
)

// State is one complete set of user selections. It is a plain value: every
// change produces a new State.
type State struct {
	Filters filter.Criteria `json:"filters"`
	Sort    rank.SortState  `json:"sort"`
}

// WithFilters returns a copy with the filter inputs replaced.
func (s State) WithFilters(c filter.Criteria) State {
	s.Filters = c
	return s
}

// WithSortClick returns a copy with the header click applied.
func (s State) WithSortClick(key string) State {
	s.Sort = s.Sort.Toggle(key)
	return s
}

// View is the evaluated dashboard.
type View struct {
	Loaded  bool          `json:"loaded"`
	Empty   bool          `json:"empty"`
	Total   int           `json:"total"`
	Picks   []domain.Pick `json:"picks"`
	Summary stats.Summary `json:"summary"`
}

// Evaluate runs the full pipeline: filter against the whole store, sort the
// survivors, summarize them. A store that was never loaded yields a view
// with Loaded=false; a loaded store with no matches yields Empty=true.
func Evaluate(store *records.Store, st State, opts stats.Options) View {
	all := store.All()
	matched := filter.Apply(all, st.Filters)
	sorted := rank.Sort(matched, st.Sort)
	return View{
		Loaded:  store.Loaded(),
		Empty:   store.Loaded() && len(sorted) == 0,
		Total:   len(all),
		Picks:   sorted,
		Summary: stats.Summarize(matched, opts),
	}
}
