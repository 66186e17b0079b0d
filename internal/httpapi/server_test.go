package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/config"
	"cpmsdash/internal/models"
	"cpmsdash/internal/queries"
	"cpmsdash/internal/querycache"
	"cpmsdash/internal/services"
	"cpmsdash/internal/session"
)

type reply struct {
	code int
	body any
}

type upstream struct {
	mu      sync.Mutex
	replies map[string]reply
	hits    map[string]int
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	u.mu.Lock()
	u.hits[key]++
	rep, ok := u.replies[key]
	u.mu.Unlock()
	if !ok {
		rep = reply{body: map[string]any{"id": "x", "status": false, "message": "not found", "error_code": "NOT_FOUND"}}
	}
	if rep.code != 0 {
		w.WriteHeader(rep.code)
	}
	_ = json.NewEncoder(w).Encode(rep.body)
}

func (u *upstream) set(key string, data any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.replies[key] = reply{body: map[string]any{"id": "x", "status": true, "message": "ok", "res_data": data}}
}

func (u *upstream) count(key string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[key]
}

type fakeHistory struct{ records []models.CommandRecord }

func (f fakeHistory) ListByChargePoint(_ context.Context, cpID, limit int) ([]models.CommandRecord, error) {
	var out []models.CommandRecord
	for _, r := range f.records {
		if r.CPID == cpID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type harness struct {
	up    *upstream
	store *session.MemoryStore
	h     http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	up := &upstream{replies: map[string]reply{}, hits: map[string]int{}}
	up.set("POST /auth/login", map[string]any{"access_token": "tok", "token_type": "bearer", "expires_in": 3600})
	up.set("GET /companies", []any{map[string]any{"company_id": 4, "company_name": "Acme"}})
	up.set("GET /companies/4", map[string]any{"company_id": 4, "company_name": "Acme"})
	up.set("DELETE /companies/4", map[string]any{"deleted": true})
	up.set("POST /remote_commands/7/remote_start", map[string]any{"status": map[string]any{"status": "Accepted"}, "cp_id": 7})
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	cfg := config.Config{API: config.APIConfig{BaseURL: srv.URL, SignInRoute: "/login"}, HTTP: config.HTTPConfig{MetricsToken: "scrape"}}
	store := session.NewMemoryStore()
	api := apiclient.New(apiclient.Options{BaseURL: srv.URL}, store, nil, nil)

	opts := querycache.DefaultOptions()
	opts.MaxRetries = 0
	cache := querycache.New(opts, nil)
	t.Cleanup(func() { _ = cache.Close() })
	api.OnUnauthorized(func(context.Context) { cache.Clear() })

	auth := services.NewAuthService(api, store, nil, nil)
	q := queries.New(cache, services.NewCatalog(api), services.NewRemoteCommandService(api, nil, nil), auth)
	history := fakeHistory{records: []models.CommandRecord{{ID: "a", CPID: 7, Type: "reset", Status: models.CommandAcked}}}
	s := NewServer(cfg, q, auth, history, nil)
	return &harness{up: up, store: store, h: s.Routes()}
}

func (h *harness) do(t *testing.T, method, path, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rec := httptest.NewRecorder()
	h.h.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/auth/login", `{"username":"op","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/v1/companies", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])
	assert.Zero(t, h.up.count("GET /companies"))
}

func TestLoginThenList(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.do(t, http.MethodGet, "/v1/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Acme", items[0].Name)

	h.do(t, http.MethodGet, "/v1/companies", "")
	assert.Equal(t, 1, h.up.count("GET /companies"))
}

func TestLoginValidation(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/auth/login", `{"username":"  ","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Zero(t, h.up.count("POST /auth/login"))
}

func TestCreateValidationBlocksUpstream(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.do(t, http.MethodPost, "/v1/companies", `{"company_name":"","company_brand_colour":"blue"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	fields := decode(t, rec)["fields"].(map[string]any)
	assert.Equal(t, "is required", fields["company_name"])
	assert.Contains(t, fields, "company_brand_colour")
	assert.Zero(t, h.up.count("POST /companies"))
}

func TestDeleteRequiresExactName(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.do(t, http.MethodDelete, "/v1/companies/4", `{"confirm":"acme"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, h.up.count("DELETE /companies/4"))

	rec = h.do(t, http.MethodDelete, "/v1/companies/4", `{"confirm":"Acme "}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(t, http.MethodDelete, "/v1/companies/4", `{"confirm":"Acme"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, h.up.count("DELETE /companies/4"))
}

func TestDeleteUnnamedRecordConfirmsByID(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.up.set("GET /drivers/9", map[string]any{"driver_id": 9, "driver_company_id": 4})
	h.up.set("DELETE /drivers/9", map[string]any{"deleted": true})

	rec := h.do(t, http.MethodDelete, "/v1/drivers/9", `{"confirm":""}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, h.up.count("DELETE /drivers/9"))

	rec = h.do(t, http.MethodDelete, "/v1/drivers/9", `{"confirm":"9"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, h.up.count("DELETE /drivers/9"))
}

func TestZeroIDIsBadRequest(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	rec := h.do(t, http.MethodGet, "/v1/companies/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(t, http.MethodGet, "/v1/companies/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIErrorIsBadRequest(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	rec := h.do(t, http.MethodGet, "/v1/tariffs/9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "not found", body["error"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestUpstreamUnauthorizedSignsOut(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.up.mu.Lock()
	h.up.replies["GET /sites"] = reply{code: http.StatusUnauthorized, body: map[string]any{"detail": "expired"}}
	h.up.mu.Unlock()

	rec := h.do(t, http.MethodGet, "/v1/sites", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "/login", decode(t, rec)["redirect"])

	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, session.ErrNoSession)

	rec = h.do(t, http.MethodGet, "/v1/companies", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.up.mu.Lock()
	h.up.replies["GET /drivers"] = reply{code: http.StatusInternalServerError, body: map[string]any{"message": "boom"}}
	h.up.mu.Unlock()

	rec := h.do(t, http.MethodGet, "/v1/drivers", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRemoteStart(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	rec := h.do(t, http.MethodPost, "/v1/chargepoints/7/remote-start", `{"id_tag":"","connector_id":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Zero(t, h.up.count("POST /remote_commands/7/remote_start"))

	rec = h.do(t, http.MethodPost, "/v1/chargepoints/7/remote-start", `{"id_tag":"TAG1","connector_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res models.CommandResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Accepted())
}

func TestChargeSessionsHaveNoUpdate(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	rec := h.do(t, http.MethodPut, "/v1/chargesessions/3", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCommandHistory(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	rec := h.do(t, http.MethodGet, "/v1/chargepoints/7/commands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.CommandRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "reset", items[0].Type)
}

func TestMetricsRequireToken(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, http.StatusUnauthorized, h.do(t, http.MethodGet, "/metrics", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/metrics", "", "Authorization", "Bearer scrape").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/healthz", "").Code)
}
