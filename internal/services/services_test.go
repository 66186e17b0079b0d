package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpmsdash/internal/apiclient"
	"cpmsdash/internal/envelope"
	"cpmsdash/internal/models"
	"cpmsdash/internal/resource"
	"cpmsdash/internal/session"
)

type hit struct {
	Method string
	Path   string
	Query  string
	ID     string
	Auth   string
	Body   json.RawMessage
}

// upstream answers every request with the payload registered for its path.
type upstream struct {
	t      *testing.T
	mu     sync.Mutex
	hits   []hit
	routes map[string]any
	raw    map[string]any
	status map[string]int
}

func newUpstream(t *testing.T) (*upstream, *httptest.Server) {
	u := &upstream{t: t, routes: map[string]any{}, raw: map[string]any{}, status: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(srv.Close)
	return u, srv
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	var req envelope.Request[json.RawMessage]
	if r.ContentLength > 0 {
		assert.NoError(u.t, json.NewDecoder(r.Body).Decode(&req))
	}
	u.mu.Lock()
	u.hits = append(u.hits, hit{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		ID:     req.ID,
		Auth:   r.Header.Get("Authorization"),
		Body:   req.Data,
	})
	code, hasCode := u.status[r.URL.Path]
	raw, isRaw := u.raw[r.URL.Path]
	data := u.routes[r.URL.Path]
	u.mu.Unlock()

	if hasCode {
		w.WriteHeader(code)
		_, _ = w.Write([]byte(`{"message":"upstream failure"}`))
		return
	}
	if isRaw {
		_ = json.NewEncoder(w).Encode(raw)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"id": req.ID, "status": true, "message": "ok", "res_data": data})
}

func (u *upstream) last() hit {
	u.mu.Lock()
	defer u.mu.Unlock()
	require.NotEmpty(u.t, u.hits)
	return u.hits[len(u.hits)-1]
}

func newAPI(srv *httptest.Server, store session.Store, nav apiclient.Navigator) *apiclient.Client {
	return apiclient.New(apiclient.Options{BaseURL: srv.URL}, store, nav, nil)
}

func TestLoginPath(t *testing.T) {
	assert.Equal(t, "/auth/login", LoginPath(nil))
	assert.Equal(t, "/auth/login", LoginPath(&models.QRParams{Charger: "CP-1"}))
	assert.Equal(t, "/auth/login?ch=CP+1&co=2", LoginPath(&models.QRParams{Charger: "CP 1", Connector: "2"}))
}

func TestLoginStoresSession(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/auth/login"] = map[string]any{
		"access_token": "tok-1",
		"token_type":   "bearer",
		"expires_in":   3600,
		"charger_info": map[string]any{"cp_id": 7, "cp_name": "CP-7", "connector_id": 2},
	}
	store := session.NewMemoryStore()
	auth := NewAuthService(newAPI(srv, store, nil), store, nil, nil)
	ctx := context.Background()

	res, err := auth.Login(ctx, models.Credentials{Username: "op", Password: "pw"}, &models.QRParams{Charger: "CP-7", Connector: "2"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.AccessToken)

	h := up.last()
	assert.Equal(t, "ch=CP-7&co=2", h.Query)
	assert.JSONEq(t, `{"username":"op","password":"pw"}`, string(h.Body))

	assert.True(t, auth.IsAuthenticated(ctx))
	info, err := auth.ChargerInfo(ctx)
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, 7, info.CPID)
}

func TestLoginAuthorizesLaterRequests(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/auth/login"] = map[string]any{"access_token": "tok-1", "token_type": "bearer", "expires_in": 3600}
	store := session.NewMemoryStore()
	api := newAPI(srv, store, nil)
	auth := NewAuthService(api, store, nil, nil)
	cat := NewCatalog(api)
	ctx := context.Background()

	_, err := cat.Companies.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, up.last().Auth)

	_, err = auth.Login(ctx, models.Credentials{Username: "op", Password: "pw"}, nil)
	require.NoError(t, err)

	_, err = cat.Companies.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", up.last().Auth)
}

func TestLoginRejected(t *testing.T) {
	up, srv := newUpstream(t)
	up.raw["/auth/login"] = map[string]any{"id": "x", "status": false, "message": "bad credentials"}
	store := session.NewMemoryStore()
	auth := NewAuthService(newAPI(srv, store, nil), store, nil, nil)

	_, err := auth.Login(context.Background(), models.Credentials{Username: "op", Password: "no"}, nil)
	var apiErr *envelope.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "bad credentials", apiErr.Message)
	assert.False(t, auth.IsAuthenticated(context.Background()))
}

func TestLogoutClearsAndNavigates(t *testing.T) {
	_, srv := newUpstream(t)
	store := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, session.Session{AccessToken: "tok"}))

	var route string
	nav := apiclient.NavigatorFunc(func(_ context.Context, r string) { route = r })
	auth := NewAuthService(newAPI(srv, store, nav), store, nav, nil)
	hooked := false
	auth.OnLogout(func(context.Context) { hooked = true })

	require.NoError(t, auth.Logout(ctx))
	assert.False(t, auth.IsAuthenticated(ctx))
	assert.True(t, hooked)
	assert.Equal(t, "/login", route)

	info, err := auth.ChargerInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestCurrentUser(t *testing.T) {
	_, srv := newUpstream(t)
	store := session.NewMemoryStore()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42", "username": "operator"}).SignedString([]byte("k"))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, session.Session{AccessToken: tok}))

	auth := NewAuthService(newAPI(srv, store, nil), store, nil, nil)
	c, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "operator", c.Username)
}

func TestCatalogPaths(t *testing.T) {
	up, srv := newUpstream(t)
	cat := NewCatalog(newAPI(srv, session.NewMemoryStore(), nil))
	ctx := context.Background()

	_, err := cat.RFIDCards.ByDriver(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "/rfidcards/driver/3", up.last().Path)

	_, err = cat.ChargeSessions.ByChargePoint(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "/chargesessions/chargepoint/5", up.last().Path)

	_, err = cat.SitesGroups.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/sites-groups", up.last().Path)

	_, err = cat.Users.Create(ctx, models.NewUser{User: models.UserCreate{Email: "a@b.c"}, Password: "pw"})
	require.NoError(t, err)
	h := up.last()
	assert.Equal(t, http.MethodPost, h.Method)
	var body map[string]any
	require.NoError(t, json.Unmarshal(h.Body, &body))
	assert.Contains(t, body, "user_data")
	assert.Equal(t, "pw", body["password"])
}

func TestConnectorDeleteUsesCompositeKey(t *testing.T) {
	up, srv := newUpstream(t)
	svc := NewConnectorService(newAPI(srv, session.NewMemoryStore(), nil))

	_, err := svc.Delete(context.Background(), 2, 9)
	require.NoError(t, err)
	h := up.last()
	assert.Equal(t, http.MethodDelete, h.Method)
	assert.Equal(t, "/connectors/2", h.Path)
	assert.JSONEq(t, `{"connector_id":2,"connector_cp_id":9}`, string(h.Body))
}

func TestChargeSessionActions(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/chargesessions/11/stop"] = map[string]any{"charge_session_id": 11}
	svc := NewChargeSessionService(newAPI(srv, session.NewMemoryStore(), nil))
	ctx := context.Background()

	_, err := svc.Stop(ctx, 11, models.SessionStop{EndTime: "2024-01-01T10:00:00Z", MeterStop: 500, EnergyKWh: "12.5"})
	require.NoError(t, err)
	h := up.last()
	assert.Equal(t, http.MethodPut, h.Method)
	assert.Equal(t, "/chargesessions/11/stop", h.Path)
	var body map[string]any
	require.NoError(t, json.Unmarshal(h.Body, &body))
	assert.EqualValues(t, 11, body["session_id"])
	assert.Contains(t, body, "session_data")

	_, err = svc.UpdatePaymentStatus(ctx, 11, models.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, "/chargesessions/11/payment-status", up.last().Path)

	_, err = svc.Update(ctx, 11, struct{}{})
	assert.ErrorIs(t, err, resource.ErrUnsupported)
}

type auditEntry struct {
	Status  string
	Outcome string
	Err     string
}

type memoryAudit struct {
	mu      sync.Mutex
	entries map[string]*auditEntry
	order   []string
	fail    bool
}

func newMemoryAudit() *memoryAudit { return &memoryAudit{entries: map[string]*auditEntry{}} }

func (m *memoryAudit) Create(_ context.Context, c models.CommandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("audit down")
	}
	m.entries[c.ID] = &auditEntry{Status: c.Status}
	m.order = append(m.order, c.ID)
	return nil
}

func (m *memoryAudit) set(id string, fn func(e *auditEntry)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("audit down")
	}
	if e, ok := m.entries[id]; ok {
		fn(e)
	}
	return nil
}

func (m *memoryAudit) MarkSent(_ context.Context, id string) error {
	return m.set(id, func(e *auditEntry) { e.Status = models.CommandSent })
}

func (m *memoryAudit) MarkAcked(_ context.Context, id, outcome string, _ []byte) error {
	return m.set(id, func(e *auditEntry) { e.Status, e.Outcome = models.CommandAcked, outcome })
}

func (m *memoryAudit) MarkFailed(_ context.Context, id string, msg string) error {
	return m.set(id, func(e *auditEntry) { e.Status, e.Err = models.CommandFailed, msg })
}

func (m *memoryAudit) ids() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

func (m *memoryAudit) only(t *testing.T) auditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.order, 1)
	return *m.entries[m.order[0]]
}

func TestRemoteStartAcked(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/remote_commands/7/remote_start"] = map[string]any{
		"status": map[string]any{"status": "Accepted"},
		"cp_id":  7,
	}
	audit := newMemoryAudit()
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), audit, nil)

	resp, err := svc.RemoteStart(context.Background(), 7, models.RemoteStart{IDTag: "TAG1", ConnectorID: 1})
	require.NoError(t, err)
	res, err := envelope.Extract(resp)
	require.NoError(t, err)
	assert.True(t, res.Accepted())

	assert.JSONEq(t, `{"id_tag":"TAG1","connector_id":1}`, string(up.last().Body))
	assert.Equal(t, auditEntry{Status: models.CommandAcked, Outcome: "Accepted"}, audit.only(t))
}

func TestRemoteCommandAuditIDMatchesRequestID(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/remote_commands/7/remote_stop"] = map[string]any{"status": map[string]any{"status": "Accepted"}}
	audit := newMemoryAudit()
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), audit, nil)

	_, err := svc.RemoteStop(context.Background(), 7, models.RemoteStop{TransactionID: 99})
	require.NoError(t, err)

	ids := audit.ids()
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, ids[0], up.last().ID)
}

func TestRemoteResetDefaultsToSoft(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/remote_commands/7/reset"] = map[string]any{"status": map[string]any{"status": "Rejected"}}
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), nil, nil)

	resp, err := svc.Reset(context.Background(), 7, models.Reset{})
	require.NoError(t, err)
	res, err := envelope.Extract(resp)
	require.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.JSONEq(t, `{"reset_type":"Soft"}`, string(up.last().Body))
}

func TestRemoteStopTransportFailure(t *testing.T) {
	up, srv := newUpstream(t)
	up.status["/remote_commands/7/remote_stop"] = http.StatusBadGateway
	audit := newMemoryAudit()
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), audit, nil)

	_, err := svc.RemoteStop(context.Background(), 7, models.RemoteStop{TransactionID: 99})
	var te *apiclient.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)

	e := audit.only(t)
	assert.Equal(t, models.CommandFailed, e.Status)
	assert.NotEmpty(t, e.Err)
}

func TestRemoteCommandIgnoresAuditFailure(t *testing.T) {
	up, srv := newUpstream(t)
	up.routes["/remote_commands/7/remote_stop"] = map[string]any{"status": map[string]any{"status": "Accepted"}}
	audit := newMemoryAudit()
	audit.fail = true
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), audit, nil)

	_, err := svc.RemoteStop(context.Background(), 7, models.RemoteStop{TransactionID: 99})
	require.NoError(t, err)
}

func TestConnectionsSkipsEnvelope(t *testing.T) {
	up, srv := newUpstream(t)
	up.raw["/remote_commands/connections"] = map[string]any{
		"status":   true,
		"message":  "ok",
		"res_data": map[string]any{"connected_chargers": []string{"CP-1", "CP-2"}, "connection_count": 2},
	}
	svc := NewRemoteCommandService(newAPI(srv, session.NewMemoryStore(), nil), nil, nil)

	conns, err := svc.Connections(context.Background())
	require.NoError(t, err)
	assert.True(t, conns.Status)
	assert.Equal(t, 2, conns.Data.ConnectionCount)
	assert.Equal(t, []string{"CP-1", "CP-2"}, conns.Data.ConnectedChargers)
}
