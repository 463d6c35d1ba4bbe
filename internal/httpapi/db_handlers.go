package httpapi

import (
	"database/sql"
	"net/http"

	"draftboard-engine/internal/store"
)

type DBHandler struct {
	DB *sql.DB
}

// Checkpoint flushes the WAL. Mounted behind LocalOnly.
func (h DBHandler) Checkpoint(w http.ResponseWriter, r *http.Request) {
	if h.DB == nil {
		WriteError(w, r, http.StatusServiceUnavailable, "no_db", "database not open")
		return
	}
	if err := store.Checkpoint(r.Context(), h.DB); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "checkpoint_failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
