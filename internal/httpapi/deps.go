package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"go.uber.org/zap"

	"draftboard-engine/internal/chat"
	"draftboard-engine/internal/config"
	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/stats"
)

type Deps struct {
	DB *sql.DB

	Hub      *events.Hub
	Data     *records.Holder
	Sessions *dashboard.Sessions
	Chat     *chat.Service
	Metrics  *Metrics
	Log      *zap.Logger

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Reload re-reads the dataset; nil disables the reload route.
	Reload func(ctx context.Context) (*records.Store, error)

	// OnConfigChange lets the caller apply settings the router does not own.
	OnConfigChange func(next config.Config)
}

func (d Deps) config() config.Config {
	if d.CfgVal == nil {
		return config.Defaults()
	}
	if c, ok := d.CfgVal.Load().(config.Config); ok {
		return c
	}
	return config.Defaults()
}

// StatsOptions derives aggregation options from the live config.
func StatsOptions(cfg config.Config) stats.Options {
	return stats.Options{
		TopSchools:  cfg.Dashboard.TopSchools,
		TrendGroups: domain.TrendGroups.WithPitcher(cfg.Dashboard.TrendPitcherIncludesSP1),
	}
}

// applyConfig pushes a newly saved config into running sessions and chat.
func (d Deps) applyConfig(_, next config.Config) {
	opts := StatsOptions(next)
	d.Sessions.Each(func(s *dashboard.Session) { s.SetStatsOptions(opts) })
	d.Chat.Configure(chat.Options{
		Enabled:           next.Chat.Enabled,
		MaxContextChars:   next.Chat.MaxContextChars,
		RequestsPerMinute: next.Chat.RequestsPerMinute,
	})
	if d.OnConfigChange != nil {
		d.OnConfigChange(next)
	}
}

func (d Deps) store() *records.Store {
	return d.Data.Current()
}
