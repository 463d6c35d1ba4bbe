package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/filter"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/stats"
)

type SessionsHandler struct {
	Deps
}

type sessionResponse struct {
	ID      string          `json:"id"`
	State   dashboard.State `json:"state"`
	Loaded  bool            `json:"loaded"`
	Empty   bool            `json:"empty"`
	Total   int             `json:"total"`
	Count   int             `json:"count"`
	Picks   []domain.Pick   `json:"picks"`
	Summary stats.Summary   `json:"summary"`
}

type createSessionReq struct {
	State *dashboard.State `json:"state"`
}

func (h SessionsHandler) respond(w http.ResponseWriter, r *http.Request, status int, s *dashboard.Session, v dashboard.View) {
	WriteJSON(w, r, status, sessionResponse{
		ID:      s.ID,
		State:   s.State(),
		Loaded:  v.Loaded,
		Empty:   v.Empty,
		Total:   v.Total,
		Count:   len(v.Picks),
		Picks:   page(v.Picks, 0, h.config().Dashboard.PageLimit),
		Summary: v.Summary,
	})
}

// validState checks the sort half of a client-supplied state.
func validState(st dashboard.State) (dashboard.State, error) {
	key, err := rank.ParseKey(st.Sort.Key)
	if err != nil {
		return st, err
	}
	dir, err := rank.ParseDirection(string(st.Sort.Direction))
	if err != nil {
		return st, err
	}
	st.Sort = rank.SortState{Key: key, Direction: dir}
	return st, nil
}

func (h SessionsHandler) lookup(w http.ResponseWriter, r *http.Request) (*dashboard.Session, bool) {
	s, ok := h.Sessions.Get(chi.URLParam(r, "id"))
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "session not found")
		return nil, false
	}
	return s, true
}

func (h SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	s := dashboard.NewSession(uuid.NewString(), func() *records.Store { return h.store() }, StatsOptions(h.config()))
	v := s.View()
	if req.State != nil {
		st, err := validState(*req.State)
		if err != nil {
			writeErr(w, r, badRequest(err))
			return
		}
		v = s.Replace(st)
	}
	h.Sessions.Put(s)
	h.Metrics.SetSessions(h.Sessions.Len())
	h.respond(w, r, http.StatusCreated, s, v)
}

func (h SessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respond(w, r, http.StatusOK, s, s.View())
}

func (h SessionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.Sessions.Delete(chi.URLParam(r, "id")) {
		WriteError(w, r, http.StatusNotFound, "not_found", "session not found")
		return
	}
	h.Metrics.SetSessions(h.Sessions.Len())
	w.WriteHeader(http.StatusNoContent)
}

func (h SessionsHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var c filter.Criteria
	if err := render.DecodeJSON(r.Body, &c); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	v := s.SetFilters(c)
	h.updated(r, s, v)
	h.respond(w, r, http.StatusOK, s, v)
}

func (h SessionsHandler) SetState(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var st dashboard.State
	if err := render.DecodeJSON(r.Body, &st); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	st, err := validState(st)
	if err != nil {
		writeErr(w, r, badRequest(err))
		return
	}
	v := s.Replace(st)
	h.updated(r, s, v)
	h.respond(w, r, http.StatusOK, s, v)
}

func (h SessionsHandler) ClickSort(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	key, err := rank.ParseKey(chi.URLParam(r, "key"))
	if err != nil || key == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_sort_key", "unknown sort key")
		return
	}
	v := s.ClickSort(key)
	h.updated(r, s, v)
	h.respond(w, r, http.StatusOK, s, v)
}

func (h SessionsHandler) updated(r *http.Request, s *dashboard.Session, v dashboard.View) {
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeSessionUpdate, map[string]any{
		"id":    s.ID,
		"count": len(v.Picks),
	})
}
