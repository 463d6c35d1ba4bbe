package httpapi

import (
	"net/http"

	"github.com/go-chi/render"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/filter"
)

type ChatHandler struct {
	Deps
}

// askReq carries the rows the question is about: a session's current view,
// or an explicit filter set.
type askReq struct {
	Question  string          `json:"question" validate:"required,max=2000"`
	SessionID string          `json:"sessionId"`
	Filters   filter.Criteria `json:"filters"`
}

func (h ChatHandler) rows(req askReq) ([]domain.Pick, bool) {
	if req.SessionID != "" {
		s, ok := h.Sessions.Get(req.SessionID)
		if !ok {
			return nil, false
		}
		return s.View().Picks, true
	}
	return filter.Apply(h.store().All(), req.Filters), true
}

func (h ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if err := validateBody(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	picks, ok := h.rows(req)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "not_found", "session not found")
		return
	}

	reply, err := h.Chat.Ask(r.Context(), req.Question, picks)
	if err != nil {
		h.Metrics.ChatOutcome("error")
		h.Log.Warn("chat failed", zapRequest(r, err)...)
		writeErr(w, r, err)
		return
	}
	if reply.Fallback {
		h.Metrics.ChatOutcome("fallback")
	} else {
		h.Metrics.ChatOutcome("answered")
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeChatAnswered, map[string]any{"rows": reply.Rows})
	WriteJSON(w, r, http.StatusOK, reply)
}

func (h ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r.URL.Query(), "limit", 100)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_query", err.Error())
		return
	}
	msgs, err := h.Chat.History(r.Context(), limit)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, msgs)
}
