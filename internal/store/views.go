package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// View is a named, saved dashboard state. State is stored as opaque JSON.
type View struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	State     json.RawMessage `json:"state"`
	CreatedAt time.Time       `json:"createdAt"`
}

func CreateView(ctx context.Context, db *sql.DB, name string, state json.RawMessage) (View, error) {
	v := View{
		ID:        uuid.NewString(),
		Name:      name,
		State:     state,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := db.ExecContext(ctx, `
INSERT INTO saved_views (id, name, state, created_at) VALUES (?, ?, ?, ?);`,
		v.ID, v.Name, string(v.State), v.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return View{}, fmt.Errorf("insert view: %w", err)
	}
	return v, nil
}

func GetView(ctx context.Context, db *sql.DB, id string) (View, error) {
	row := db.QueryRowContext(ctx, `SELECT id, name, state, created_at FROM saved_views WHERE id = ?;`, id)
	v, err := scanView(row)
	if errors.Is(err, sql.ErrNoRows) {
		return View{}, ErrNotFound
	}
	return v, err
}

// ListViews returns views newest first.
func ListViews(ctx context.Context, db *sql.DB) ([]View, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, name, state, created_at FROM saved_views ORDER BY created_at DESC, name;`)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	defer rows.Close()

	out := []View{}
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func DeleteView(ctx context.Context, db *sql.DB, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM saved_views WHERE id = ?;`, id)
	if err != nil {
		return fmt.Errorf("delete view: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanView(s scanner) (View, error) {
	var v View
	var state, created string
	if err := s.Scan(&v.ID, &v.Name, &state, &created); err != nil {
		return View{}, err
	}
	v.State = json.RawMessage(state)
	v.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return v, nil
}
