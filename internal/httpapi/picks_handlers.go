package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/filter"
	"draftboard-engine/internal/rank"
	"draftboard-engine/internal/stats"
)

type PicksHandler struct {
	Deps
}

type picksResponse struct {
	Loaded bool          `json:"loaded"`
	Total  int           `json:"total"`
	Count  int           `json:"count"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
	Picks  []domain.Pick `json:"picks"`
}

type statsResponse struct {
	Loaded  bool          `json:"loaded"`
	Empty   bool          `json:"empty"`
	Total   int           `json:"total"`
	Summary stats.Summary `json:"summary"`
}

type optionsResponse struct {
	Options  dashboard.Options `json:"options"`
	Filters  []string          `json:"filters"`
	SortKeys []string          `json:"sortKeys"`
}

// stateFromQuery reads filter options plus sort and dir.
func stateFromQuery(q url.Values) (dashboard.State, error) {
	key, err := rank.ParseKey(q.Get("sort"))
	if err != nil {
		return dashboard.State{}, err
	}
	dir, err := rank.ParseDirection(q.Get("dir"))
	if err != nil {
		return dashboard.State{}, err
	}
	return dashboard.State{
		Filters: filter.FromQuery(q),
		Sort:    rank.SortState{Key: key, Direction: dir},
	}, nil
}

func queryInt(q url.Values, name string, def int) (int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return n, nil
}

// page returns picks[offset:offset+limit], clamped.
func page(picks []domain.Pick, offset, limit int) []domain.Pick {
	if offset >= len(picks) {
		return []domain.Pick{}
	}
	end := len(picks)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return picks[offset:end]
}

func (h PicksHandler) evaluate(w http.ResponseWriter, r *http.Request) (dashboard.View, bool) {
	st, err := stateFromQuery(r.URL.Query())
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_query", err.Error())
		return dashboard.View{}, false
	}
	return dashboard.Evaluate(h.store(), st, StatsOptions(h.config())), true
}

func (h PicksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	maxLimit := h.config().Dashboard.PageLimit
	limit, err := queryInt(q, "limit", maxLimit)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_query", err.Error())
		return
	}
	if limit == 0 || limit > maxLimit {
		limit = maxLimit
	}
	offset, err := queryInt(q, "offset", 0)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_query", err.Error())
		return
	}

	v, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	WriteJSON(w, r, http.StatusOK, picksResponse{
		Loaded: v.Loaded,
		Total:  v.Total,
		Count:  len(v.Picks),
		Offset: offset,
		Limit:  limit,
		Picks:  page(v.Picks, offset, limit),
	})
}

func (h PicksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	v, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	WriteJSON(w, r, http.StatusOK, statsResponse{
		Loaded:  v.Loaded,
		Empty:   v.Empty,
		Total:   v.Total,
		Summary: v.Summary,
	})
}

func (h PicksHandler) Options(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, optionsResponse{
		Options:  dashboard.BuildOptions(h.store().All()),
		Filters:  filter.Options(),
		SortKeys: domain.Fields,
	})
}

// Export streams every filtered, sorted row as csv (default) or xlsx.
func (h PicksHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		WriteError(w, r, http.StatusBadRequest, "bad_format", "format must be csv or xlsx")
		return
	}

	v, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	name := "mlb_draft_" + time.Now().UTC().Format("20060102_150405") + "." + format
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	var err error
	if format == "xlsx" {
		w.Header().Set("Content-Type", xlsxContentType)
		err = writeXLSX(w, v.Picks)
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = writeCSV(w, v.Picks)
	}
	if err != nil {
		h.Log.Warn("export failed", zapRequest(r, err)...)
	}
}
