package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/store"
)

type ViewsHandler struct {
	Deps
}

type createViewReq struct {
	Name  string          `json:"name" validate:"required,max=100"`
	State dashboard.State `json:"state"`
}

func (h ViewsHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := store.ListViews(r.Context(), h.DB)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, views)
}

func (h ViewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createViewReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateBody(req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	st, err := validState(req.State)
	if err != nil {
		writeErr(w, r, badRequest(err))
		return
	}

	raw, err := json.Marshal(st)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	v, err := store.CreateView(r.Context(), h.DB, req.Name, raw)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeViewSaved, map[string]string{"id": v.ID, "name": v.Name})
	WriteJSON(w, r, http.StatusCreated, v)
}

func (h ViewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := store.GetView(r.Context(), h.DB, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, r, err)
		return
	}
	WriteJSON(w, r, http.StatusOK, v)
}

func (h ViewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := store.DeleteView(r.Context(), h.DB, id); err != nil {
		writeErr(w, r, err)
		return
	}
	h.Hub.Emit(RequestIDFrom(r.Context()), events.TypeViewDeleted, map[string]string{"id": id})
	w.WriteHeader(http.StatusNoContent)
}
