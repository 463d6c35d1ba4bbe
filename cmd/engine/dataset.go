package main

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"draftboard-engine/internal/config"
	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/store"
)

type datasetLoader struct {
	DataDir string
	DB      *sql.DB
	Cfg     func() config.Config
	Log     *zap.Logger
}

// Load reads the configured CSV and mirrors it into the database. When the
// file cannot be read it serves the last saved snapshot instead, if allowed.
func (l datasetLoader) Load(ctx context.Context) (*records.Store, error) {
	cfg := l.Cfg()
	path := config.ResolvePath(l.DataDir, cfg.Data.CSVPath)

	s, err := records.LoadFile(path)
	if err == nil {
		added, skipped, serr := store.ReplacePicks(ctx, l.DB, s.All(), path)
		if serr != nil {
			l.Log.Warn("snapshot save failed", zap.Error(serr))
		}
		l.Log.Info("dataset loaded",
			zap.String("path", path),
			zap.Int("picks", s.Len()),
			zap.Int("snapshot_rows", added),
			zap.Int("duplicates", skipped),
		)
		return s, nil
	}
	if !cfg.Data.SnapshotFallback {
		return nil, err
	}

	snap, serr := store.LoadSnapshot(ctx, l.DB)
	if errors.Is(serr, store.ErrNotFound) {
		return nil, err
	}
	if serr != nil {
		return nil, errors.Join(err, serr)
	}
	l.Log.Warn("dataset file unavailable, serving snapshot",
		zap.Error(err),
		zap.String("source", snap.Source),
		zap.Time("saved_at", snap.SavedAt),
		zap.Int("picks", len(snap.Picks)),
	)
	return records.New(snap.Picks, snap.Source), nil
}

// pruneHistory drops chat turns older than the configured retention.
func pruneHistory(db *sql.DB, hub *events.Hub, cfg func() config.Config) func(context.Context) error {
	return func(ctx context.Context) error {
		maxAge := time.Duration(cfg().Chat.HistoryDays) * 24 * time.Hour
		n, err := store.CleanupOldMessages(ctx, db, maxAge)
		if err != nil {
			return err
		}
		if n > 0 {
			hub.Emit("", events.TypeHistoryPruned, map[string]int64{"deleted": n})
		}
		return nil
	}
}

// sessionSweep is how often idle dashboard sessions are looked for.
const sessionSweep = time.Minute

func pruneSessions(sessions *dashboard.Sessions, cfg func() config.Config, log *zap.Logger) func(context.Context) error {
	return func(context.Context) error {
		maxIdle := time.Duration(cfg().Dashboard.SessionIdleMinutes) * time.Minute
		if n := sessions.PruneIdle(maxIdle); n > 0 {
			log.Info("idle sessions dropped", zap.Int("count", n), zap.Int("remaining", sessions.Len()))
		}
		return nil
	}
}
