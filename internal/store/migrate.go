package store

import (
	"database/sql"
	"fmt"
)

const schemaVersion = 1

// Migrate brings the schema up to schemaVersion, tracked in
// PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS picks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ordinal INTEGER NOT NULL,
  source_id TEXT NOT NULL,
  year TEXT NOT NULL DEFAULT '',
  round TEXT NOT NULL DEFAULT '',
  pick TEXT NOT NULL DEFAULT '',
  round_pick TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL DEFAULT '',
  team_drafted TEXT NOT NULL DEFAULT '',
  school TEXT NOT NULL DEFAULT '',
  age_at_draft TEXT NOT NULL DEFAULT '',
  position TEXT NOT NULL DEFAULT '',
  bat TEXT NOT NULL DEFAULT '',
  throw TEXT NOT NULL DEFAULT '',
  slotted_bonus TEXT NOT NULL DEFAULT '',
  signed_bonus TEXT NOT NULL DEFAULT '',
  diff TEXT NOT NULL DEFAULT ''
);`,
		`
CREATE TABLE IF NOT EXISTS snapshot_meta (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  source TEXT NOT NULL,
  saved_at TEXT NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS saved_views (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  state TEXT NOT NULL,
  created_at TEXT NOT NULL
);`,
		`
CREATE TABLE IF NOT EXISTS chat_messages (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  role TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at TEXT NOT NULL
);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_picks_source_id ON picks(source_id);`,
		`CREATE INDEX IF NOT EXISTS idx_picks_ordinal ON picks(ordinal);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_created_at ON chat_messages(created_at);`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}
