package httpapi

import (
	"net/http"
	"time"

	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/records"
)

type DatasetHandler struct {
	Deps
}

type datasetInfo struct {
	Loaded   bool      `json:"loaded"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`
	Count    int       `json:"count"`
}

func infoOf(s *records.Store) datasetInfo {
	return datasetInfo{
		Loaded:   s.Loaded(),
		Source:   s.Source(),
		LoadedAt: s.LoadedAt(),
		Count:    s.Len(),
	}
}

// Publish makes s the live dataset and recomputes every session.
func (d Deps) Publish(reqID string, s *records.Store) {
	d.Data.Set(s)
	d.Metrics.SetPicks(s.Len())
	if d.Sessions != nil {
		d.Sessions.Each(func(sess *dashboard.Session) { sess.Refresh() })
	}
	d.Hub.Emit(reqID, events.TypeDatasetLoaded, infoOf(s))
}

func (h DatasetHandler) Info(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, infoOf(h.store()))
}

func (h DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.Deps.Reload == nil {
		WriteError(w, r, http.StatusNotImplemented, "reload_unavailable", "dataset reload is not configured")
		return
	}
	s, err := h.Deps.Reload(r.Context())
	if err != nil {
		h.Log.Warn("dataset reload failed", zapRequest(r, err)...)
		WriteError(w, r, http.StatusInternalServerError, "reload_failed", err.Error())
		return
	}
	h.Publish(RequestIDFrom(r.Context()), s)
	WriteJSON(w, r, http.StatusOK, infoOf(s))
}
