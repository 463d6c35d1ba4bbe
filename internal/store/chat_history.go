package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Fixed-width so created_at sorts as text.
const tsLayout = "2006-01-02T15:04:05.000000Z"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func AppendMessage(ctx context.Context, db *sql.DB, role, content string) (Message, error) {
	m := Message{Role: role, Content: content, CreatedAt: time.Now().UTC()}
	res, err := db.ExecContext(ctx, `
INSERT INTO chat_messages (role, content, created_at) VALUES (?, ?, ?);`,
		m.Role, m.Content, m.CreatedAt.Format(tsLayout))
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

// ListMessages returns the most recent limit messages, oldest first.
func ListMessages(ctx context.Context, db *sql.DB, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, role, content, created_at FROM (
  SELECT id, role, content, created_at FROM chat_messages ORDER BY id DESC LIMIT ?
) ORDER BY id;`, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		var created string
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &created); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(tsLayout, created)
		out = append(out, m)
	}
	return out, rows.Err()
}

// CleanupOldMessages deletes messages older than maxAge.
func CleanupOldMessages(ctx context.Context, db *sql.DB, maxAge time.Duration) (deleted int64, err error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(tsLayout)
	res, err := db.ExecContext(ctx, `DELETE FROM chat_messages WHERE created_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old messages: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
