package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"draftboard-engine/internal/chat"
	"draftboard-engine/internal/config"
	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/httpapi"
	"draftboard-engine/internal/logging"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/scheduler"
	"draftboard-engine/internal/store"
)

func newServeCmd(g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API on the configured local address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), g)
		},
	}
}

func runServe(ctx context.Context, g *globalOpts) error {
	if err := os.MkdirAll(g.dataDir, 0o755); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(g.dataDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock data dir: %w", err)
	}
	if !locked {
		return fmt.Errorf("another engine is already running in %s", g.dataDir)
	}
	defer lock.Unlock()

	userCfgPath, err := config.EnsureUserConfig(g.dataDir, g.defaultConfig)
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.LoadWithEnv(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return config.Validate(cfg)
	}
	cfgVal.Store(cfg)
	currentCfg := func() config.Config { return cfgVal.Load().(config.Config) }

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	for _, w := range vr.Warnings {
		log.Warn("config warning", zap.String("warning", w))
	}

	dbPath := filepath.Join(g.dataDir, dbFile)
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Checkpoint(context.Background(), db.Pool); err != nil {
			log.Warn("final checkpoint failed", zap.Error(err))
		}
		_ = db.Close()
	}()

	hub := events.NewHub()
	metrics := httpapi.NewMetrics()

	loader := datasetLoader{
		DataDir: g.dataDir,
		DB:      db.Pool,
		Cfg:     currentCfg,
		Log:     logging.Component(log, "dataset"),
	}
	initial, err := loader.Load(ctx)
	if err != nil {
		log.Warn("no dataset loaded", zap.Error(err))
	}
	data := records.NewHolder(initial)
	metrics.SetPicks(initial.Len())

	answerer := &chat.GenAIAnswerer{
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		MaxTokens:   cfg.Chat.MaxTokens,
		APIKey:      chat.KeyFromSecrets(cfg.Chat.APIKey, cfg.Chat.KeyringAccount),
	}
	chatSvc := chat.NewService(chat.Options{
		Enabled:           cfg.Chat.Enabled,
		MaxContextChars:   cfg.Chat.MaxContextChars,
		RequestsPerMinute: cfg.Chat.RequestsPerMinute,
	}, answerer, db.Pool, logging.Component(log, "chat"))

	sessions := dashboard.NewSessions()

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	r := httpapi.NewRouter(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Data:        data,
		Sessions:    sessions,
		Chat:        chatSvc,
		Metrics:     metrics,
		Log:         logging.Component(log, "http"),
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		Reload:      loader.Load,
		OnConfigChange: func(next config.Config) {
			answerer.Configure(next.Chat.Model, next.Chat.Temperature, next.Chat.MaxTokens)
		},
	})

	token, err := shutdownToken(g.dataDir)
	if err != nil {
		return err
	}
	defer os.Remove(filepath.Join(g.dataDir, tokenFile))
	r.With(httpapi.LocalOnly).Post("/shutdown", shutdownHandler(token, stop))

	addr := net.JoinHostPort(cfg.App.Host, strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		log.Info("engine listening",
			zap.String("addr", "http://"+ln.Addr().String()),
			zap.String("db", dbPath),
			zap.String("config", userCfgPath),
			zap.Int("picks", initial.Len()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	eg.Go(func() error {
		interval := time.Duration(cfg.Chat.CleanupMinutes) * time.Minute
		scheduler.Every(egCtx, interval, "chat_history_cleanup", pruneHistory(db.Pool, hub, currentCfg), logging.Component(log, "scheduler"))
		return nil
	})
	eg.Go(func() error {
		scheduler.Every(egCtx, sessionSweep, "session_prune", pruneSessions(sessions, currentCfg, log), logging.Component(log, "scheduler"))
		return nil
	})
	return eg.Wait()
}
