package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"draftboard-engine/internal/domain"
)

var ErrNoHeader = errors.New("csv has no header row")

// headerAliases maps sheet headers (lowercased, spaces removed) to fields.
var headerAliases = map[string]string{
	"year":         domain.FieldYear,
	"round":        domain.FieldRound,
	"pick":         domain.FieldPick,
	"roundpick":    domain.FieldRoundPick,
	"name":         domain.FieldName,
	"player":       domain.FieldName,
	"teamdrafted":  domain.FieldTeamDrafted,
	"team":         domain.FieldTeamDrafted,
	"position":     domain.FieldPosition,
	"pos":          domain.FieldPosition,
	"ageatdraft":   domain.FieldAgeAtDraft,
	"age":          domain.FieldAgeAtDraft,
	"bat":          domain.FieldBat,
	"throw":        domain.FieldThrow,
	"school":       domain.FieldSchool,
	"slottedbonus": domain.FieldSlottedBonus,
	"signedbonus":  domain.FieldSignedBonus,
	"diff":         domain.FieldDiff,
	"+/-diff":      domain.FieldDiff,
}

// composite bat/throw column of older sheet revisions
const batThrowField = "batThrow"

func fieldForHeader(h string) string {
	k := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
	k = strings.TrimPrefix(k, "\ufeff")
	if k == "batthrow" || k == "b/t" {
		return batThrowField
	}
	return headerAliases[k]
}

// LoadFile reads a cleaned draft CSV from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	picks, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return New(picks, path), nil
}

// ReadCSV parses a header-driven draft CSV. Unknown columns are ignored,
// blank lines skipped, short rows padded. A composite "B/T" or "BatThrow"
// column fills Bat and Throw when those columns are absent or empty.
func ReadCSV(r io.Reader) ([]domain.Pick, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, err
	}

	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = fieldForHeader(h)
	}

	var out []domain.Pick
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(row) {
			continue
		}
		out = append(out, pickFromRow(cols, row))
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func pickFromRow(cols []string, row []string) domain.Pick {
	var p domain.Pick
	var batThrow string
	for i, col := range cols {
		if i >= len(row) || col == "" {
			continue
		}
		v := row[i]
		switch col {
		case domain.FieldYear:
			p.Year = v
		case domain.FieldRound:
			p.Round = v
		case domain.FieldPick:
			p.Pick = v
		case domain.FieldRoundPick:
			p.RoundPick = v
		case domain.FieldName:
			p.Name = v
		case domain.FieldTeamDrafted:
			p.TeamDrafted = v
		case domain.FieldPosition:
			p.Position = v
		case domain.FieldAgeAtDraft:
			p.AgeAtDraft = v
		case domain.FieldBat:
			p.Bat = v
		case domain.FieldThrow:
			p.Throw = v
		case domain.FieldSchool:
			p.School = v
		case domain.FieldSlottedBonus:
			p.SlottedBonus = v
		case domain.FieldSignedBonus:
			p.SignedBonus = v
		case domain.FieldDiff:
			p.Diff = v
		case batThrowField:
			batThrow = v
		}
	}
	if batThrow != "" && p.Bat == "" && p.Throw == "" {
		p.Bat, p.Throw = SplitBatThrow(batThrow)
	}
	return p
}

// SplitBatThrow splits "L/R" into its parts. Bat must be L, R or S and
// throw L or R; anything else leaves that part empty.
func SplitBatThrow(bt string) (bat, throw string) {
	if !strings.Contains(bt, "/") {
		return "", ""
	}
	parts := strings.Split(bt, "/")
	b := strings.ToUpper(strings.TrimSpace(parts[0]))
	switch b {
	case "L", "R", "S":
		bat = b
	}
	if len(parts) > 1 {
		t := strings.ToUpper(strings.TrimSpace(parts[1]))
		switch t {
		case "L", "R":
			throw = t
		}
	}
	return bat, throw
}

// WriteCSV writes picks with the cleaned sheet header.
func WriteCSV(w io.Writer, picks []domain.Pick) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, p := range picks {
		if err := cw.Write(p.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Header is the cleaned sheet header in domain.Fields order.
func Header() []string {
	return []string{
		"Year", "Round", "Pick", "RoundPick", "Name", "TeamDrafted", "School",
		"AgeAtDraft", "Position", "Bat", "Throw", "SlottedBonus", "SignedBonus", "Diff",
	}
}
