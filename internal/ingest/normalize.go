// Package ingest turns raw per-year draft sheets (CSV exports or scraped
// HTML tables) into the cleaned dataset the dashboard loads.
package ingest

import (
	"regexp"
	"strings"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/value"
)

var basePositions = map[string]bool{
	"P": true, "C": true, "1B": true, "2B": true, "3B": true, "SS": true, "OF": true,
}

// positionWords maps spelled-out positions to codes, checked in order.
var positionWords = []struct{ word, code string }{
	{"PITCH", "P"},
	{"CATCH", "C"},
	{"OUT", "OF"},
	{"INFIELD", "IF"},
	{"FIRST", "1B"},
	{"SECOND", "2B"},
	{"THIRD", "3B"},
	{"SHORT", "SS"},
}

// StandardizePosition upper-cases pos and maps words like "Pitcher" or
// "Outfielder" to their codes. Unknown codes (RHP, SP1, ...) pass through.
func StandardizePosition(pos string) string {
	p := strings.ToUpper(strings.TrimSpace(pos))
	if p == "" || basePositions[p] {
		return p
	}
	for _, w := range positionWords {
		if strings.Contains(p, w.word) {
			return w.code
		}
	}
	return p
}

var reHighSchool = regexp.MustCompile(`(?i)^HS\b`)

// GroupSchool collapses every "HS ..." school into domain.HighSchool.
func GroupSchool(school string) string {
	s := strings.TrimSpace(school)
	if reHighSchool.MatchString(s) {
		return domain.HighSchool
	}
	return school
}

// NormalizeSignedBonus maps anything mentioning "(unsigned)" to exactly
// value.Unsigned.
func NormalizeSignedBonus(bonus string) string {
	if value.ContainsFold(bonus, value.Unsigned) {
		return value.Unsigned
	}
	return bonus
}

// RoundPick builds "Round X Pick Y", or "" unless both parts are present.
func RoundPick(round, pick string) string {
	round, pick = strings.TrimSpace(round), strings.TrimSpace(pick)
	if round == "" || pick == "" {
		return ""
	}
	return "Round " + round + " Pick " + pick
}

var reYear = regexp.MustCompile(`\d{4}`)

// YearFromName returns the first run of four digits in name.
func YearFromName(name string) string {
	return reYear.FindString(name)
}

// CleanRow maps one raw sheet row to a pick. year, when non-empty,
// overrides any Year column.
func CleanRow(raw RawRow, year string) domain.Pick {
	if year == "" {
		year = raw.Get("year")
	}
	round := raw.Get("round", "rnd")
	pick := raw.Get("pick")

	school := GroupSchool(raw.Get("pre-draft team"))
	if strings.TrimSpace(school) == "" {
		school = raw.Get("school")
	}

	bat, throw := records.SplitBatThrow(raw.Get("b/t"))
	if bat == "" && throw == "" {
		bat, throw = raw.Get("bat"), raw.Get("throw")
	}

	return domain.Pick{
		Year:         year,
		Round:        round,
		Pick:         pick,
		RoundPick:    RoundPick(round, pick),
		Name:         raw.Get("player", "name"),
		TeamDrafted:  raw.Get("team", "team drafted", "teamdrafted"),
		School:       school,
		AgeAtDraft:   raw.Get("age", "age at draft", "ageatdraft"),
		Position:     StandardizePosition(raw.Get("pos", "position")),
		Bat:          bat,
		Throw:        throw,
		SlottedBonus: raw.Get("slotted bonus", "slottedbonus"),
		SignedBonus:  NormalizeSignedBonus(raw.Get("signed bonus", "signedbonus")),
		Diff:         raw.Get("+/- diff", "diff"),
	}
}
