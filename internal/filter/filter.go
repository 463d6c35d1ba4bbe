package filter

import (
	"strings"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/value"
)

// Reasons reported by Keep when a pick is dropped.
const (
	ReasonYear     = "year"
	ReasonRound    = "round"
	ReasonPick     = "pick"
	ReasonTeam     = "team"
	ReasonPosition = "position"
	ReasonSchool   = "school"
	ReasonBat      = "bat"
	ReasonThrow    = "throw"
	ReasonAge      = "age"
	ReasonSearch   = "search"
)

// Apply returns the picks that pass every active predicate, in input order.
// The input slice is not modified.
func Apply(picks []domain.Pick, c Criteria) []domain.Pick {
	m := NewMatcher(c)
	out := make([]domain.Pick, 0, len(picks))
	for _, p := range picks {
		if ok, _ := m.Keep(p); ok {
			out = append(out, p)
		}
	}
	return out
}

// Matcher is a Criteria with its range bounds parsed once.
type Matcher struct {
	c Criteria

	yearFrom, yearTo   bound
	roundFrom, roundTo bound
	pickFrom, pickTo   bound
	ageFrom, ageTo     bound

	search string
}

type bound struct {
	set bool
	n   value.Number
}

func parseBound(s string) bound {
	s = strings.TrimSpace(s)
	if s == "" {
		return bound{}
	}
	return bound{set: true, n: value.ParseNumber(s)}
}

// NewMatcher prepares c for repeated evaluation.
func NewMatcher(c Criteria) Matcher {
	return Matcher{
		c:         c,
		yearFrom:  parseBound(c.YearFrom),
		yearTo:    parseBound(c.YearTo),
		roundFrom: parseBound(c.RoundFrom),
		roundTo:   parseBound(c.RoundTo),
		pickFrom:  parseBound(c.PickFrom),
		pickTo:    parseBound(c.PickTo),
		ageFrom:   parseBound(c.AgeFrom),
		ageTo:     parseBound(c.AgeTo),
		search:    strings.ToLower(c.Search),
	}
}

// Keep evaluates every active predicate against p. When p is dropped the
// reason names the first failing dimension.
func (m Matcher) Keep(p domain.Pick) (keep bool, reason string) {
	c := m.c

	if !exact(c.Year, p.Year) || !inRange(p.Year, m.yearFrom, m.yearTo) {
		return false, ReasonYear
	}
	if !exact(c.Round, p.Round) || !inRange(p.Round, m.roundFrom, m.roundTo) {
		return false, ReasonRound
	}
	if !exact(c.Pick, p.Pick) || !inRange(p.Pick, m.pickFrom, m.pickTo) {
		return false, ReasonPick
	}
	if !exact(c.Team, p.TeamDrafted) {
		return false, ReasonTeam
	}
	if active(c.Position) && !domain.FilterGroups.Matches(c.Position, p.Position) {
		return false, ReasonPosition
	}
	if !school(c.School, p.School) {
		return false, ReasonSchool
	}
	if !exact(c.Bat, p.Bat) {
		return false, ReasonBat
	}
	if !exact(c.Throw, p.Throw) {
		return false, ReasonThrow
	}
	if !exact(c.Age, p.AgeAtDraft) || !inRange(p.AgeAtDraft, m.ageFrom, m.ageTo) {
		return false, ReasonAge
	}
	if active(c.Search) && !searchName(m.search, p.Name) {
		return false, ReasonSearch
	}
	return true, ""
}

func active(v string) bool {
	return strings.TrimSpace(v) != ""
}

// exact compares trimmed text. Inactive filters pass.
func exact(want, got string) bool {
	if !active(want) {
		return true
	}
	return strings.TrimSpace(want) == strings.TrimSpace(got)
}

func inRange(field string, from, to bound) bool {
	if !from.set && !to.set {
		return true
	}
	n := value.ParseNumber(field)
	if from.set && !n.AtLeast(from.n) {
		return false
	}
	if to.set && !n.AtMost(to.n) {
		return false
	}
	return true
}

func school(want, got string) bool {
	if !active(want) {
		return true
	}
	if want == domain.HighSchool {
		return got != "" && domain.IsHighSchool(got)
	}
	return want == got
}

func searchName(lowerQuery, name string) bool {
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), lowerQuery)
}
