package httpapi

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"

	"draftboard-engine/internal/chat"
	"draftboard-engine/internal/config"
	"draftboard-engine/internal/dashboard"
	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/events"
	"draftboard-engine/internal/records"
	"draftboard-engine/internal/secrets"
	"draftboard-engine/internal/stats"
	"draftboard-engine/internal/store"
)

type fakeAnswerer struct {
	prompts []chat.Prompt
}

func (f *fakeAnswerer) Answer(_ context.Context, p chat.Prompt) (string, error) {
	f.prompts = append(f.prompts, p)
	return "Ben Ruiz", nil
}

var testPicks = []domain.Pick{
	{Year: "2021", Round: "2", Pick: "40", Name: "Ben Ruiz", TeamDrafted: "Cubs", Position: "SS", AgeAtDraft: "21", School: "State University", SignedBonus: "$15,000"},
	{Year: "2020", Round: "1", Pick: "3", Name: "Al Smith", TeamDrafted: "Mets", Position: "CF", AgeAtDraft: "18", School: "Central HS", SignedBonus: "$5,000"},
	{Year: "2021", Round: "10", Pick: "300", Name: "Cy Young", TeamDrafted: "Cubs", Position: "SP1", School: "", SignedBonus: "(unsigned)"},
}

type fixture struct {
	h       http.Handler
	deps    Deps
	answers *fakeAnswerer
	cfgPath string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, config.SaveAtomic(cfgPath, config.Defaults()))
	var cfgVal atomic.Value
	cfgVal.Store(config.Defaults())

	fa := &fakeAnswerer{}
	d := Deps{
		DB:          db.Pool,
		Hub:         events.NewHub(),
		Data:        records.NewHolder(records.New(testPicks, "test.csv")),
		Sessions:    dashboard.NewSessions(),
		Chat:        chat.NewService(chat.Options{Enabled: true, MaxContextChars: 10000, RequestsPerMinute: 100}, fa, db.Pool, nil),
		Metrics:     NewMetrics(),
		Log:         zap.NewNop(),
		CfgVal:      &cfgVal,
		UserCfgPath: cfgPath,
		LoadCfg:     func() (config.Config, error) { return config.Load(cfgPath) },
	}
	return &fixture{h: NewRouter(d), deps: d, answers: fa, cfgPath: cfgPath}
}

func (f *fixture) do(t *testing.T, method, target string, body any, local bool) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if local {
		req.RemoteAddr = "127.0.0.1:50000"
	}
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func names(picks []domain.Pick) []string {
	out := make([]string, len(picks))
	for i, p := range picks {
		out[i] = p.Name
	}
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	body := decode[map[string]any](t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["db"])
	assert.Equal(t, true, body["loaded"])
	assert.Equal(t, float64(3), body["picks"])
}

func TestListPicks(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/picks?team=Cubs&sort=round&dir=desc", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[picksResponse](t, rec)
	assert.True(t, got.Loaded)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []string{"Cy Young", "Ben Ruiz"}, names(got.Picks))

	rec = f.do(t, http.MethodGet, "/api/picks?sort=pick&limit=1&offset=1", nil, false)
	got = decode[picksResponse](t, rec)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, []string{"Ben Ruiz"}, names(got.Picks))

	rec = f.do(t, http.MethodGet, "/api/picks?offset=10", nil, false)
	got = decode[picksResponse](t, rec)
	assert.Empty(t, got.Picks)
	assert.NotNil(t, got.Picks)

	rec = f.do(t, http.MethodGet, "/api/picks?team=Nobody", nil, false)
	got = decode[picksResponse](t, rec)
	assert.Equal(t, 0, got.Count)
	assert.True(t, got.Loaded)
}

func TestListPicksBadQuery(t *testing.T) {
	f := newFixture(t)
	for _, q := range []string{"sort=nope", "dir=sideways", "limit=-1", "offset=x"} {
		rec := f.do(t, http.MethodGet, "/api/picks?"+q, nil, false)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		e := decode[APIError](t, rec)
		assert.Equal(t, "bad_query", e.Error.Code, q)
		assert.NotEmpty(t, e.Error.RequestID, q)
	}
}

func TestStatsAndOptions(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/stats?position=P", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[statsResponse](t, rec)
	assert.Equal(t, 1, st.Summary.Count)
	assert.Equal(t, "N/A", st.Summary.AverageLabel)
	assert.False(t, st.Empty)

	rec = f.do(t, http.MethodGet, "/api/stats", nil, false)
	st = decode[statsResponse](t, rec)
	assert.Equal(t, "$10,000", st.Summary.AverageLabel)

	rec = f.do(t, http.MethodGet, "/api/options", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[optionsResponse](t, rec)
	assert.Equal(t, []string{"2020", "2021"}, opts.Options.Years)
	assert.Equal(t, []string{"OF", "P", "SS"}, opts.Options.Positions)
	assert.Contains(t, opts.Filters, "yearFrom")
	assert.Equal(t, domain.Fields, opts.SortKeys)
}

func TestNotLoaded(t *testing.T) {
	f := newFixture(t)
	f.deps.Data.Set(nil)

	rec := f.do(t, http.MethodGet, "/api/picks", nil, false)
	got := decode[picksResponse](t, rec)
	assert.False(t, got.Loaded)
	assert.Empty(t, got.Picks)
}

func TestExport(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/picks/export?team=Cubs&sort=name", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")
	back, err := records.ReadCSV(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ben Ruiz", "Cy Young"}, names(back))

	rec = f.do(t, http.MethodGet, "/api/picks/export?format=xlsx", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	x, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, records.Header(), rows[0])
	assert.Equal(t, "Ben Ruiz", rows[1][4])
	assert.Equal(t, "2021", rows[1][0])

	rec = f.do(t, http.MethodGet, "/api/picks/export?format=pdf", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsFlow(t *testing.T) {
	f := newFixture(t)
	ch := f.deps.Hub.Subscribe()
	defer f.deps.Hub.Unsubscribe(ch)

	rec := f.do(t, http.MethodPost, "/api/sessions", nil, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	s := decode[sessionResponse](t, rec)
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 3, s.Count)
	base := "/api/sessions/" + s.ID

	rec = f.do(t, http.MethodPut, base+"/filters", map[string]string{"team": "Cubs"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decode[sessionResponse](t, rec)
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "Cubs", s.State.Filters.Team)
	assert.Contains(t, <-ch, events.TypeSessionUpdate)

	rec = f.do(t, http.MethodPost, base+"/sort/name", nil, false)
	s = decode[sessionResponse](t, rec)
	assert.Equal(t, []string{"Ben Ruiz", "Cy Young"}, names(s.Picks))
	rec = f.do(t, http.MethodPost, base+"/sort/name", nil, false)
	s = decode[sessionResponse](t, rec)
	assert.Equal(t, []string{"Cy Young", "Ben Ruiz"}, names(s.Picks))

	rec = f.do(t, http.MethodPost, base+"/sort/bogus", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, base+"/state", map[string]any{
		"filters": map[string]string{"yearFrom": "2021"},
		"sort":    map[string]string{"key": "pick", "direction": "desc"},
	}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decode[sessionResponse](t, rec)
	assert.Equal(t, []string{"Cy Young", "Ben Ruiz"}, names(s.Picks))

	rec = f.do(t, http.MethodPut, base+"/state", map[string]any{"sort": map[string]string{"key": "nope"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, base, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodDelete, base, nil, false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, base, nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSessionWithState(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/sessions", map[string]any{
		"state": map[string]any{"filters": map[string]string{"position": "OF"}},
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	s := decode[sessionResponse](t, rec)
	assert.Equal(t, []string{"Al Smith"}, names(s.Picks))
}

func TestViews(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/views", map[string]any{
		"name":  " Cubs ",
		"state": map[string]any{"filters": map[string]string{"team": "Cubs"}},
	}, false)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	v := decode[store.View](t, rec)
	assert.Equal(t, "Cubs", v.Name)

	rec = f.do(t, http.MethodGet, "/api/views", nil, false)
	list := decode[[]store.View](t, rec)
	require.Len(t, list, 1)

	rec = f.do(t, http.MethodGet, "/api/views/"+v.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[store.View](t, rec)
	var st dashboard.State
	require.NoError(t, json.Unmarshal(got.State, &st))
	assert.Equal(t, "Cubs", st.Filters.Team)

	rec = f.do(t, http.MethodPost, "/api/views", map[string]any{"name": "  "}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[APIError](t, rec).Error.Message, "name is required")

	rec = f.do(t, http.MethodDelete, "/api/views/"+v.ID, nil, false)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodGet, "/api/views/"+v.ID, nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[APIError](t, rec).Error.Code)
}

func TestChat(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/chat", map[string]any{
		"question": "Who did the Cubs take?",
		"filters":  map[string]string{"team": "Cubs"},
	}, false)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reply := decode[chat.Reply](t, rec)
	assert.Equal(t, "Ben Ruiz", reply.Answer)
	assert.Equal(t, 2, reply.Rows)
	require.Len(t, f.answers.prompts, 1)
	assert.NotContains(t, f.answers.prompts[0].User, "Al Smith")

	rec = f.do(t, http.MethodGet, "/api/chat/history", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]store.Message](t, rec), 2)

	rec = f.do(t, http.MethodPost, "/api/chat", map[string]any{"question": ""}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/chat", map[string]any{"question": "q", "sessionId": "missing"}, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatDisabled(t *testing.T) {
	f := newFixture(t)
	d := f.deps
	d.Chat = chat.NewService(chat.Options{Enabled: false}, f.answers, nil, nil)
	h := NewRouter(d)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"question":"q"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "chat_disabled", decode[APIError](t, rec).Error.Code)
}

func TestConfig(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/config", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.Defaults().App.Port, decode[config.Config](t, rec).App.Port)

	cfg := config.Defaults()
	cfg.App.Port = 9999
	rec = f.do(t, http.MethodPut, "/api/config", cfg, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, "/api/config", cfg, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 9999, f.deps.CfgVal.Load().(config.Config).App.Port)
	onDisk, err := config.Load(f.cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 9999, onDisk.App.Port)

	cfg.App.Port = 0
	rec = f.do(t, http.MethodPut, "/api/config", cfg, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	vr := decode[config.Validation](t, rec)
	assert.Contains(t, vr.Errors, "app.port must be >= 1")

	rec = f.do(t, http.MethodPut, "/api/config", map[string]any{"bogus": 1}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/config/validate", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[config.Validation](t, rec).OK())
}

func pitcherTotal(c stats.Chart) float64 {
	var n float64
	for _, ds := range c.Datasets {
		if ds.Label == "P" {
			for _, v := range ds.Data {
				n += v
			}
		}
	}
	return n
}

func TestConfigAppliedLive(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/sessions", nil, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	s := decode[sessionResponse](t, rec)
	assert.Zero(t, pitcherTotal(s.Summary.Positions))

	ch := f.deps.Hub.Subscribe()
	defer f.deps.Hub.Unsubscribe(ch)

	cfg := config.Defaults()
	cfg.Dashboard.TrendPitcherIncludesSP1 = true
	cfg.Chat.Enabled = false
	cfg.App.Port = 9100
	rec = f.do(t, http.MethodPut, "/api/config", cfg, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	select {
	case msg := <-ch:
		assert.Contains(t, msg, events.TypeConfigUpdated)
		assert.Contains(t, msg, `"restartRequired":["app.port"]`)
	case <-time.After(time.Second):
		t.Fatal("no config event")
	}

	rec = f.do(t, http.MethodGet, "/api/sessions/"+s.ID, nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), pitcherTotal(decode[sessionResponse](t, rec).Summary.Positions))

	rec = f.do(t, http.MethodPost, "/api/chat", map[string]any{"question": "q"}, false)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSecrets(t *testing.T) {
	keyring.MockInit()
	f := newFixture(t)
	account := config.Defaults().Chat.KeyringAccount

	rec := f.do(t, http.MethodPost, "/api/secrets/llm", map[string]string{"apiKey": "k-1"}, false)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/secrets/llm", map[string]string{"apiKey": "k-1"}, true)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	k, err := secrets.GetAPIKey("", account)
	require.NoError(t, err)
	assert.Equal(t, "k-1", k)

	rec = f.do(t, http.MethodPost, "/api/secrets/llm", map[string]string{}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodDelete, "/api/secrets/llm", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = f.do(t, http.MethodDelete, "/api/secrets/llm", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatasetReload(t *testing.T) {
	f := newFixture(t)
	d := f.deps
	next := records.New(testPicks[:1], "reloaded.csv")
	d.Reload = func(context.Context) (*records.Store, error) { return next, nil }
	h := NewRouter(d)

	sess := dashboard.NewSession("s1", d.Data.Current, StatsOptions(config.Defaults()))
	d.Sessions.Put(sess)
	assert.Len(t, sess.View().Picks, 3)

	ch := d.Hub.Subscribe()
	defer d.Hub.Unsubscribe(ch)

	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil)
	req.RemoteAddr = "[::1]:4000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Same(t, next, d.Data.Current())
	assert.Len(t, sess.View().Picks, 1, "sessions recomputed")
	assert.Contains(t, <-ch, events.TypeDatasetLoaded)

	rec = f.do(t, http.MethodGet, "/api/dataset", nil, false)
	info := decode[datasetInfo](t, rec)
	assert.Equal(t, "reloaded.csv", info.Source)
	assert.Equal(t, 1, info.Count)
}

func TestDatasetReloadErrors(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/dataset/reload", nil, true)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	d := f.deps
	d.Reload = func(context.Context) (*records.Store, error) { return nil, errors.New("disk gone") }
	h := NewRouter(d)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil)
	req.RemoteAddr = "127.0.0.1:1"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 3, d.Data.Current().Len(), "old dataset kept")
}

func TestCheckpointAndMetrics(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/db/checkpoint", nil, false).Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodPost, "/db/checkpoint", nil, true).Code)

	f.do(t, http.MethodGet, "/api/picks", nil, false)
	rec := f.do(t, http.MethodGet, "/metrics", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "draftboard_http_requests_total")
	assert.Contains(t, body, `route="/api/picks"`)
}

func TestCORS(t *testing.T) {
	f := newFixture(t)

	pre := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/picks", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		f.h.ServeHTTP(rec, req)
		return rec
	}
	assert.Equal(t, "http://localhost:5173", pre("http://localhost:5173").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, pre("https://evil.example").Header().Get("Access-Control-Allow-Origin"))
}

func TestRecover(t *testing.T) {
	h := RequestID(Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	e := decode[APIError](t, rec)
	assert.Equal(t, "internal_error", e.Error.Code)
	assert.Equal(t, rec.Header().Get("X-Request-ID"), e.Error.RequestID)
}

func TestRequestIDIsEchoed(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	f.h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestEventsStream(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.h)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	rd := bufio.NewReader(resp.Body)
	line, err := rd.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: message\n", line)
	line, err = rd.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"type":"ping"`)

	require.Eventually(t, func() bool { return f.deps.Hub.Clients() == 1 }, time.Second, 10*time.Millisecond)
	f.deps.Hub.Emit("", events.TypeViewSaved, nil)
	_, _ = rd.ReadString('\n') // blank separator
	_, _ = rd.ReadString('\n') // event line
	line, err = rd.ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, events.TypeViewSaved)
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("127.0.0.1:80"))
	assert.True(t, isLoopback("[::1]:80"))
	assert.True(t, isLoopback("localhost"))
	assert.False(t, isLoopback("192.0.2.1:1234"))
	assert.False(t, isLoopback("garbage"))
}

func TestEventsHeartbeat(t *testing.T) {
	hub := events.NewHub()
	srv := httptest.NewServer(http.HandlerFunc(EventsHandler{Hub: hub, Heartbeat: 10 * time.Millisecond}.ServeSSE))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	rd := bufio.NewReader(resp.Body)
	for {
		line, err := rd.ReadString('\n')
		require.NoError(t, err)
		if line == ": keepalive\n" {
			break
		}
	}
}
