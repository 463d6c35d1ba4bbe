package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/filter"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/stats"
)

func testStore() *records.Store {
	return records.New([]domain.Pick{
		{Year: "2021", Round: "2", Pick: "40", Name: "Ben", TeamDrafted: "Cubs", Position: "SS", AgeAtDraft: "21", School: "State University", SignedBonus: "$15,000"},
		{Year: "2020", Round: "1", Pick: "3", Name: "Al", TeamDrafted: "Mets", Position: "CF", AgeAtDraft: "18", School: "Central HS", SignedBonus: "$5,000"},
		{Year: "2021", Round: "10", Pick: "300", Name: "Cy", TeamDrafted: "Cubs", Position: "SP1", AgeAtDraft: "", School: "", SignedBonus: "(unsigned)"},
	}, "test")
}

func TestEvaluate(t *testing.T) {
	st := State{
		Filters: filter.Criteria{Team: "Cubs"},
		Sort:    rank.SortState{Key: domain.FieldRound, Direction: rank.Desc},
	}
	v := Evaluate(testStore(), st, stats.Options{})
	assert.True(t, v.Loaded)
	assert.False(t, v.Empty)
	assert.Equal(t, 3, v.Total)
	require.Len(t, v.Picks, 2)
	assert.Equal(t, "Cy", v.Picks[0].Name)
	assert.Equal(t, 2, v.Summary.Count)
	assert.Equal(t, "$15,000", v.Summary.AverageLabel)
}

func TestEvaluateEmptyVersusNotLoaded(t *testing.T) {
	v := Evaluate(testStore(), State{Filters: filter.Criteria{Team: "Nobody"}}, stats.Options{})
	assert.True(t, v.Loaded)
	assert.True(t, v.Empty)
	assert.Empty(t, v.Picks)
	assert.Equal(t, stats.NotAvailable, v.Summary.AverageLabel)

	var none *records.Store
	v = Evaluate(none, State{}, stats.Options{})
	assert.False(t, v.Loaded)
	assert.False(t, v.Empty)
}

func TestStateIsAValue(t *testing.T) {
	a := State{}
	b := a.WithFilters(filter.Criteria{Year: "2020"}).WithSortClick(domain.FieldName)
	assert.Equal(t, State{}, a)
	assert.Equal(t, "2020", b.Filters.Year)
	assert.Equal(t, rank.SortState{Key: domain.FieldName, Direction: rank.Asc}, b.Sort)
}

func TestSession(t *testing.T) {
	s := NewSession("abc", testStore, stats.Options{})
	assert.Len(t, s.View().Picks, 3)

	v := s.SetFilters(filter.Criteria{Position: "P"})
	require.Len(t, v.Picks, 1)
	assert.Equal(t, "Cy", v.Picks[0].Name)

	s.SetFilters(filter.Criteria{})
	v = s.ClickSort(domain.FieldPick)
	assert.Equal(t, []string{"Al", "Ben", "Cy"}, pickNames(v.Picks))
	v = s.ClickSort(domain.FieldPick)
	assert.Equal(t, []string{"Cy", "Ben", "Al"}, pickNames(v.Picks))
	assert.Equal(t, rank.Desc, s.State().Sort.Direction)

	v = s.Replace(State{Filters: filter.Criteria{Year: "2020"}})
	assert.Equal(t, []string{"Al"}, pickNames(v.Picks))
}

func TestSessionLastWriteWins(t *testing.T) {
	s := NewSession("abc", testStore, stats.Options{})

	stale := Evaluate(testStore(), State{Filters: filter.Criteria{Team: "Mets"}}, stats.Options{})
	latest := s.SetFilters(filter.Criteria{Team: "Cubs"})

	got := s.publish(1, stale)
	assert.Equal(t, latest, got, "older generation does not overwrite")
	assert.Equal(t, latest, s.View())
}

func TestSessionConcurrentUpdates(t *testing.T) {
	s := NewSession("abc", testStore, stats.Options{})
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.SetFilters(filter.Criteria{Team: "Cubs"})
			} else {
				s.ClickSort(domain.FieldName)
			}
		}(i)
	}
	wg.Wait()

	final := s.Refresh()
	assert.Equal(t, Evaluate(testStore(), s.State(), stats.Options{}), final)
}

func TestSessionSetStatsOptions(t *testing.T) {
	s := NewSession("abc", testStore, stats.Options{})
	s.SetFilters(filter.Criteria{Team: "Cubs"})

	opts := stats.Options{TopSchools: 1, TrendGroups: domain.TrendGroups.WithPitcher(true)}
	v := s.SetStatsOptions(opts)
	assert.Equal(t, Evaluate(testStore(), s.State(), opts), v)
	assert.Equal(t, "Cubs", s.State().Filters.Team, "selections survive")
}

func TestSessions(t *testing.T) {
	r := NewSessions()
	s := NewSession("one", testStore, stats.Options{})
	r.Put(s)
	got, ok := r.Get("one")
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, r.Len())

	n := 0
	r.Each(func(*Session) { n++ })
	assert.Equal(t, 1, n)

	assert.True(t, r.Delete("one"))
	assert.False(t, r.Delete("one"))
	_, ok = r.Get("one")
	assert.False(t, ok)
}

func TestBuildOptions(t *testing.T) {
	picks := []domain.Pick{
		{Year: "2021", Round: "10", Position: "CF", School: "Central HS", AgeAtDraft: "18", Bat: "L"},
		{Year: "2020", Round: "2", Position: "SS", School: "state college", AgeAtDraft: "abc", Bat: "R"},
		{Year: "2021", Round: "1", Position: "RP", School: "Arizona", AgeAtDraft: "0"},
		{Year: "", Round: "", Position: "C", School: "West HS", AgeAtDraft: "21"},
	}
	o := BuildOptions(picks)
	assert.Equal(t, []string{"2020", "2021"}, o.Years)
	assert.Equal(t, []string{"1", "2", "10"}, o.Rounds)
	assert.Equal(t, []string{"OF", "P", "C", "SS"}, o.Positions)
	assert.Equal(t, []string{"Arizona", "HS", "state college"}, o.Schools)
	assert.Equal(t, []string{"18", "21"}, o.Ages)
	assert.Equal(t, []string{"L", "R"}, o.Bats)
	assert.Equal(t, []string{}, o.Throws)
}

func pickNames(picks []domain.Pick) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Name
	}
	return out
}

func backdate(s *Session, d time.Duration) {
	s.mu.Lock()
	s.used = s.used.Add(-d)
	s.mu.Unlock()
}

func TestSessionsPruneIdle(t *testing.T) {
	r := NewSessions()
	idle := NewSession("idle", testStore, stats.Options{})
	active := NewSession("active", testStore, stats.Options{})
	read := NewSession("read", testStore, stats.Options{})
	r.Put(idle)
	r.Put(active)
	r.Put(read)
	for _, s := range []*Session{idle, active, read} {
		backdate(s, 3*time.Hour)
	}

	active.SetFilters(filter.Criteria{Team: "Cubs"})
	read.View()
	idle.Refresh()
	idle.SetStatsOptions(stats.Options{TopSchools: 3})

	assert.Equal(t, 1, r.PruneIdle(2*time.Hour))
	_, ok := r.Get("idle")
	assert.False(t, ok, "background recomputes do not keep a session alive")
	_, ok = r.Get("active")
	assert.True(t, ok)
	_, ok = r.Get("read")
	assert.True(t, ok)
	assert.Equal(t, 2, r.Len())

	assert.Zero(t, r.PruneIdle(2*time.Hour))
}
