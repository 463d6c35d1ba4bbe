package dashboard

import (
	"slices"
	"strings"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/value"
)

// Options are the dropdown choices for the exact-match filters.
type Options struct {
	Years     []string `json:"year"`
	Rounds    []string `json:"round"`
	Picks     []string `json:"pick"`
	Teams     []string `json:"team"`
	Positions []string `json:"position"`
	Schools   []string `json:"school"`
	Bats      []string `json:"bat"`
	Throws    []string `json:"throw"`
	Ages      []string `json:"age"`
}

// BuildOptions derives the dropdown lists from the full dataset.
func BuildOptions(picks []domain.Pick) Options {
	return Options{
		Years:     unique(picks, domain.FieldYear),
		Rounds:    unique(picks, domain.FieldRound),
		Picks:     unique(picks, domain.FieldPick),
		Teams:     unique(picks, domain.FieldTeamDrafted),
		Positions: positionOptions(picks),
		Schools:   schoolOptions(picks),
		Bats:      unique(picks, domain.FieldBat),
		Throws:    unique(picks, domain.FieldThrow),
		Ages:      ageOptions(picks),
	}
}

// unique returns the distinct non-empty values of field, numbers before
// text, numbers by value.
func unique(picks []domain.Pick, field string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range picks {
		v := p.Get(field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.SortFunc(out, rank.Compare)
	return out
}

// positionOptions puts the group tags first, then every code no group
// covers.
func positionOptions(picks []domain.Pick) []string {
	out := []string{domain.GroupOutfield, domain.GroupPitcher}
	for _, v := range unique(picks, domain.FieldPosition) {
		if !domain.FilterGroups.Grouped(v) {
			out = append(out, v)
		}
	}
	return out
}

// schoolOptions collapses high schools into "HS" and sorts case-folded.
func schoolOptions(picks []domain.Pick) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, p := range picks {
		v := domain.SchoolLabel(p.School)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.SortStableFunc(out, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

// ageOptions keeps positive numeric ages only, ordered by value.
func ageOptions(picks []domain.Pick) []string {
	out := []string{}
	for _, v := range unique(picks, domain.FieldAgeAtDraft) {
		if n := value.ParseNumber(v); n.OK && n.Float > 0 {
			out = append(out, v)
		}
	}
	return out
}
