package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"draftboard-engine/internal/chat"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/store"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, r, status, e)
}

// writeErr maps engine errors to statuses.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var bad errBadRequest
	switch {
	case errors.As(err, &bad) && !errors.Is(err, rank.ErrUnknownKey):
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, rank.ErrUnknownKey):
		WriteError(w, r, http.StatusBadRequest, "bad_sort_key", err.Error())
	case errors.Is(err, chat.ErrEmptyQuestion):
		WriteError(w, r, http.StatusBadRequest, "empty_question", err.Error())
	case errors.Is(err, chat.ErrDisabled):
		WriteError(w, r, http.StatusServiceUnavailable, "chat_disabled", err.Error())
	case errors.Is(err, chat.ErrNoAPIKey):
		WriteError(w, r, http.StatusPreconditionFailed, "no_api_key", err.Error())
	case errors.Is(err, chat.ErrRateLimited):
		WriteError(w, r, http.StatusTooManyRequests, "rate_limited", err.Error())
	default:
		WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// errBadRequest marks client input errors without a sentinel of their own.
type errBadRequest struct{ err error }

func (e errBadRequest) Error() string { return e.err.Error() }
func (e errBadRequest) Unwrap() error { return e.err }

func badRequest(err error) error { return errBadRequest{err: err} }
