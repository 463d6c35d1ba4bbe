package domain

import (
	"strings"

	"draftboard-engine/internal/value"
)

// Pick is one row of the draft sheet. Every field is kept as the text the
// sheet carried; numeric meaning is derived on demand.
type Pick struct {
	Year         string `json:"year"`
	Round        string `json:"round"`
	Pick         string `json:"pick"`
	RoundPick    string `json:"roundPick"`
	Name         string `json:"name"`
	TeamDrafted  string `json:"teamDrafted"`
	Position     string `json:"position"`
	AgeAtDraft   string `json:"ageAtDraft"`
	Bat          string `json:"bat"`
	Throw        string `json:"throw"`
	School       string `json:"school"`
	SlottedBonus string `json:"slottedBonus"`
	SignedBonus  string `json:"signedBonus"`
	Diff         string `json:"diff"`
}

// Field names as used in filter options, sort keys and JSON.
const (
	FieldYear         = "year"
	FieldRound        = "round"
	FieldPick         = "pick"
	FieldRoundPick    = "roundPick"
	FieldName         = "name"
	FieldTeamDrafted  = "teamDrafted"
	FieldPosition     = "position"
	FieldAgeAtDraft   = "ageAtDraft"
	FieldBat          = "bat"
	FieldThrow        = "throw"
	FieldSchool       = "school"
	FieldSlottedBonus = "slottedBonus"
	FieldSignedBonus  = "signedBonus"
	FieldDiff         = "diff"
)

// Fields lists every attribute in sheet order.
var Fields = []string{
	FieldYear, FieldRound, FieldPick, FieldRoundPick, FieldName, FieldTeamDrafted,
	FieldSchool, FieldAgeAtDraft, FieldPosition, FieldBat, FieldThrow,
	FieldSlottedBonus, FieldSignedBonus, FieldDiff,
}

// Get returns the text of the named field, or "" for unknown names.
func (p Pick) Get(field string) string {
	switch field {
	case FieldYear:
		return p.Year
	case FieldRound:
		return p.Round
	case FieldPick:
		return p.Pick
	case FieldRoundPick:
		return p.RoundPick
	case FieldName:
		return p.Name
	case FieldTeamDrafted:
		return p.TeamDrafted
	case FieldPosition:
		return p.Position
	case FieldAgeAtDraft:
		return p.AgeAtDraft
	case FieldBat:
		return p.Bat
	case FieldThrow:
		return p.Throw
	case FieldSchool:
		return p.School
	case FieldSlottedBonus:
		return p.SlottedBonus
	case FieldSignedBonus:
		return p.SignedBonus
	case FieldDiff:
		return p.Diff
	}
	return ""
}

// IsField reports whether name is a known attribute.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Values returns the fields in Fields order.
func (p Pick) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = p.Get(f)
	}
	return out
}

// DiffTrend classifies the signed-vs-slot difference for display.
type DiffTrend string

const (
	DiffUp   DiffTrend = "up"
	DiffDown DiffTrend = "down"
	DiffEven DiffTrend = "even"
	DiffNone DiffTrend = "none"
)

// DiffTrend reads the sign prefix of Diff. A leading '+' wins over a zero
// amount, so "+0" is up.
func (p Pick) DiffTrend() DiffTrend {
	d := strings.TrimSpace(p.Diff)
	if value.IsSentinel(d) {
		return DiffNone
	}
	switch {
	case strings.HasPrefix(d, "+"):
		return DiffUp
	case strings.HasPrefix(d, "-"):
		return DiffDown
	case d == "0":
		return DiffEven
	}
	return DiffNone
}
