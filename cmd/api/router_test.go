package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/nhfg-leads/internal/auth"
	"github.com/xavierca1/nhfg-leads/internal/entity"
	"github.com/xavierca1/nhfg-leads/internal/infra/http/handlers"
	"github.com/xavierca1/nhfg-leads/internal/infra/http/middleware"
	"github.com/xavierca1/nhfg-leads/internal/mocks"
	"github.com/xavierca1/nhfg-leads/internal/normalizer"
	"github.com/xavierca1/nhfg-leads/internal/usecase"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type testServer struct {
	handler http.Handler
	key     auth.SigningKey
	leads   *mocks.LeadRepository
	clients *mocks.ClientRepository
	users   *mocks.UserRepository
	logs    *mocks.IntegrationLogRepository
}

func newTestServer(t *testing.T, rateLimit int) *testServer {
	t.Helper()
	return newTestServerWithProxy(t, rateLimit, false)
}

func newTestServerWithProxy(t *testing.T, rateLimit int, trustProxy bool) *testServer {
	t.Helper()
	ts := &testServer{
		key:     auth.SigningKey("router-test-key"),
		leads:   new(mocks.LeadRepository),
		clients: new(mocks.ClientRepository),
		users:   new(mocks.UserRepository),
		logs:    new(mocks.IntegrationLogRepository),
	}
	dashboard := new(mocks.DashboardRepository)
	log := zap.NewNop()

	ts.handler = newRouter(routerDeps{
		Auth:      handlers.NewAuthHandler(usecase.NewLoginUseCase(ts.users, auth.NewIssuer(ts.key), nil, false, log), log),
		Leads:     handlers.NewLeadHandler(usecase.NewListLeadsUseCase(ts.leads), usecase.NewCreateLeadUseCase(ts.leads, nil, log), log),
		Clients:   handlers.NewClientHandler(usecase.NewListClientsUseCase(ts.clients), usecase.NewCreateClientUseCase(ts.clients, nil, log), log),
		Webhooks:  handlers.NewWebhookHandler(usecase.NewIngestWebhookUseCase(ts.logs, ts.leads, normalizer.NewRegistry(), nil, log), log),
		Dashboard: handlers.NewDashboardHandler(usecase.NewDashboardMetricsUseCase(dashboard), log),
		Health:    handlers.NewHealthHandler(okPinger{}, nil, "test"),

		Verifier:       auth.NewVerifier(ts.key),
		Limiter:        middleware.NewRateLimiter(rateLimit, time.Minute),
		AllowedOrigins: []string{"http://localhost:5173"},
		TrustProxy:     trustProxy,
		Logger:         log,
	})
	return ts
}

func (ts *testServer) request(method, target, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	ts := newTestServer(t, 100)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/leads"},
		{http.MethodPost, "/api/leads"},
		{http.MethodGet, "/api/dashboard/metrics"},
		{http.MethodGet, "/api/clients"},
		{http.MethodPost, "/api/clients"},
	} {
		rec := ts.request(route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
		assert.JSONEq(t, `{"error":"Missing bearer token"}`, rec.Body.String())
	}

	rec := ts.request(http.MethodGet, "/api/leads", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	ts.leads.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	ts.clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginThenListLeads(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.users.On("FindActiveByEmail", mock.Anything, "advisor@nhfg.test").
		Return(&entity.User{ID: "u-1", Email: "advisor@nhfg.test", Role: entity.RoleAdvisor}, nil)
	ts.users.On("FindActiveByEmail", mock.Anything, "nobody@nhfg.test").Return(nil, entity.ErrUserNotFound)
	ts.leads.On("List", mock.Anything, entity.LeadFilter{}).Return([]*entity.Lead{}, nil)

	rec := ts.request(http.MethodPost, "/api/auth/login", `{"email":"advisor@nhfg.test"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	claims, err := auth.NewVerifier(ts.key).VerifyToken(login.AccessToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	rec = ts.request(http.MethodGet, "/api/leads", "", login.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = ts.request(http.MethodPost, "/api/auth/login", `{"email":"nobody@nhfg.test"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, rec.Body.String())
}

func TestWebhookIsPublic(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	ts.logs.On("UpdateStatus", mock.Anything, mock.Anything, entity.IntegrationStatusSuccess, "").Return(nil)

	var saved *entity.Lead
	ts.leads.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Lead) }).
		Return(nil)

	rec := ts.request(http.MethodPost, "/api/webhooks/google",
		`{"user_column_data":[{"column_id":"FULL_NAME","string_value":"Jane Doe"}]}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, "google_ads", *saved.Source)
	assert.Equal(t, entity.LeadStatusNew, saved.Status)
}

func TestRateLimitAppliesToAPI(t *testing.T) {
	ts := newTestServer(t, 2)
	ts.users.On("FindActiveByEmail", mock.Anything, mock.Anything).Return(nil, entity.ErrUserNotFound)

	for i := 0; i < 2; i++ {
		rec := ts.request(http.MethodPost, "/api/auth/login", `{"email":"x@nhfg.test"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := ts.request(http.MethodPost, "/api/auth/login", `{"email":"x@nhfg.test"}`, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	// Health sits outside the limited group.
	assert.Equal(t, http.StatusOK, ts.request(http.MethodGet, "/health", "", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, 100)
	ts.request(http.MethodGet, "/health", "", "")

	rec := ts.request(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func (ts *testServer) token(t *testing.T) string {
	t.Helper()
	tok, _, err := auth.NewIssuer(ts.key).Issue(&entity.User{ID: "u-1", Email: "advisor@nhfg.test", Role: entity.RoleAdvisor})
	require.NoError(t, err)
	return tok
}

func TestClientsRoundTrip(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.token(t)

	var saved *entity.Client
	ts.clients.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Client) }).
		Return(nil)

	rec := ts.request(http.MethodPost, "/api/clients", `{"name":"Jane Doe","policyNumber":"POL-1","premium":1800}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, 1800.0, saved.Premium)

	ts.clients.On("List", mock.Anything, entity.ClientFilter{}).Return([]*entity.Client{saved}, nil)

	rec = ts.request(http.MethodGet, "/api/clients", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, saved.ID, out[0]["id"])
	assert.Equal(t, "POL-1", out[0]["policyNumber"])
}

func loginFrom(ts *testServer, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"x@nhfg.test"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitIgnoresForwardedForByDefault(t *testing.T) {
	ts := newTestServer(t, 2)
	ts.users.On("FindActiveByEmail", mock.Anything, mock.Anything).Return(nil, entity.ErrUserNotFound)

	assert.Equal(t, http.StatusUnauthorized, loginFrom(ts, "10.0.0.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(ts, "10.0.0.2"))
	// A rotated header must not earn a fresh bucket.
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(ts, "10.0.0.3"))
}

func TestRateLimitUsesForwardedForBehindTrustedProxy(t *testing.T) {
	ts := newTestServerWithProxy(t, 1, true)
	ts.users.On("FindActiveByEmail", mock.Anything, mock.Anything).Return(nil, entity.ErrUserNotFound)

	assert.Equal(t, http.StatusUnauthorized, loginFrom(ts, "10.0.0.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(ts, "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(ts, "10.0.0.1"))
}

func TestCORSDoesNotAllowCredentials(t *testing.T) {
	ts := newTestServer(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/leads", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
