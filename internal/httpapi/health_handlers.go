package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"draftboard-engine/internal/records"
)

type HealthHandler struct {
	DB   *sql.DB
	Data *records.Holder
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbOK := h.DB != nil && h.DB.PingContext(r.Context()) == nil
	s := h.Data.Current()
	WriteJSON(w, r, http.StatusOK, map[string]any{
		"ok":     true,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"db":     dbOK,
		"loaded": s.Loaded(),
		"picks":  s.Len(),
	})
}
