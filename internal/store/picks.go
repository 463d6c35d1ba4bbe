package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"draftboard-engine/internal/domain"
)

// Snapshot is the dataset last saved to the database.
type Snapshot struct {
	Picks   []domain.Pick
	Source  string
	SavedAt time.Time
}

// SourceID is the content hash identifying a pick row.
func SourceID(p domain.Pick) string {
	h := sha256.Sum256([]byte(strings.Join(p.Values(), "\x1f")))
	return hex.EncodeToString(h[:])
}

// ReplacePicks swaps the stored snapshot for picks in one transaction.
// Rows with identical content collapse into one; skipped counts those.
func ReplacePicks(ctx context.Context, db *sql.DB, picks []domain.Pick, source string) (added, skipped int, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM picks;`); err != nil {
		return 0, 0, fmt.Errorf("clear picks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO picks (ordinal, source_id, year, round, pick, round_pick, name, team_drafted,
  school, age_at_draft, position, bat, throw, slotted_bonus, signed_bonus, diff)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range picks {
		res, err := stmt.ExecContext(ctx, i, SourceID(p),
			p.Year, p.Round, p.Pick, p.RoundPick, p.Name, p.TeamDrafted,
			p.School, p.AgeAtDraft, p.Position, p.Bat, p.Throw,
			p.SlottedBonus, p.SignedBonus, p.Diff,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("insert pick %d: %w", i, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		} else {
			skipped++
		}
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO snapshot_meta (id, source, saved_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET source = excluded.source, saved_at = excluded.saved_at;`,
		source, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, 0, fmt.Errorf("save snapshot meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return added, skipped, nil
}

// LoadSnapshot returns the stored picks in their original order, or
// ErrNotFound if nothing was ever saved.
func LoadSnapshot(ctx context.Context, db *sql.DB) (Snapshot, error) {
	var snap Snapshot
	var savedAt string
	err := db.QueryRowContext(ctx, `SELECT source, saved_at FROM snapshot_meta WHERE id = 1;`).Scan(&snap.Source, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("load snapshot meta: %w", err)
	}
	snap.SavedAt, _ = time.Parse(time.RFC3339, savedAt)

	rows, err := db.QueryContext(ctx, `
SELECT year, round, pick, round_pick, name, team_drafted, school, age_at_draft,
  position, bat, throw, slotted_bonus, signed_bonus, diff
FROM picks
ORDER BY ordinal;`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	snap.Picks = []domain.Pick{}
	for rows.Next() {
		var p domain.Pick
		if err := rows.Scan(
			&p.Year, &p.Round, &p.Pick, &p.RoundPick, &p.Name, &p.TeamDrafted,
			&p.School, &p.AgeAtDraft, &p.Position, &p.Bat, &p.Throw,
			&p.SlottedBonus, &p.SignedBonus, &p.Diff,
		); err != nil {
			return Snapshot{}, err
		}
		snap.Picks = append(snap.Picks, p)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// CountPicks is used by the health endpoint.
func CountPicks(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM picks;`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
