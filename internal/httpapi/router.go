package httpapi

import (
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"draftboard-engine/internal/config"
	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/records"
)

// NewRouter returns the router so main() can still attach /shutdown (needs
// srv+token).
func NewRouter(d Deps) chi.Router {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = NewMetrics()
	}
	if d.Data == nil {
		d.Data = records.NewHolder(nil)
	}
	if d.CfgVal == nil {
		d.CfgVal = &atomic.Value{}
		d.CfgVal.Store(config.Defaults())
	}
	if d.Sessions == nil {
		d.Sessions = dashboard.NewSessions()
	}
	cfg := d.config()

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog(d.Log, d.Metrics))
	r.Use(Recover(d.Log))
	co := cors.Options{
		AllowedOrigins: cfg.App.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-Shutdown-Token"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
	if len(co.AllowedOrigins) == 0 {
		// an empty list would otherwise allow every origin
		co.AllowOriginFunc = localOrigin
	}
	r.Use(cors.Handler(co))

	hh := HealthHandler{DB: d.DB, Data: d.Data}
	r.Get("/health", hh.Health)
	r.Handle("/metrics", d.Metrics.Handler())

	eh := EventsHandler{Hub: d.Hub}
	r.Get("/events", eh.ServeSSE)

	dbh := DBHandler{DB: d.DB}
	r.With(LocalOnly).Post("/db/checkpoint", dbh.Checkpoint)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		ph := PicksHandler{Deps: d}
		r.Group(func(r chi.Router) {
			r.Use(chimiddleware.Timeout(30 * time.Second))
			r.Get("/picks", ph.List)
			r.Get("/picks/export", ph.Export)
			r.Get("/stats", ph.Stats)
			r.Get("/options", ph.Options)
		})

		dh := DatasetHandler{Deps: d}
		r.Get("/dataset", dh.Info)
		r.With(LocalOnly).Post("/dataset/reload", dh.Reload)

		sh := SessionsHandler{Deps: d}
		r.Post("/sessions", sh.Create)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sh.Get)
			r.Delete("/", sh.Delete)
			r.Put("/filters", sh.SetFilters)
			r.Put("/state", sh.SetState)
			r.Post("/sort/{key}", sh.ClickSort)
		})

		vh := ViewsHandler{Deps: d}
		r.Get("/views", vh.List)
		r.Post("/views", vh.Create)
		r.Get("/views/{id}", vh.Get)
		r.Delete("/views/{id}", vh.Delete)

		ch := ChatHandler{Deps: d}
		r.Post("/chat", ch.Ask)
		r.Get("/chat/history", ch.History)

		sech := SecretsHandler{CfgVal: d.CfgVal}
		r.With(LocalOnly).Post("/secrets/llm", sech.SetLLMKey)
		r.With(LocalOnly).Delete("/secrets/llm", sech.DeleteLLMKey)

		cfh := ConfigHandler{
			CfgVal:      d.CfgVal,
			UserCfgPath: d.UserCfgPath,
			LoadCfg:     d.LoadCfg,
			Hub:         d.Hub,
			OnChange:    d.applyConfig,
		}
		r.Get("/config", cfh.Get)
		r.With(LocalOnly).Put("/config", cfh.Put)
		r.Get("/config/path", cfh.Path)
		r.Get("/config/validate", cfh.Validate)
	})

	return r
}

func localOrigin(_ *http.Request, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
