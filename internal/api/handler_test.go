package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/incidentchat/incidentchat/internal/auth"
	"github.com/incidentchat/incidentchat/internal/chat"
	"github.com/incidentchat/incidentchat/internal/chatlog"
	"github.com/incidentchat/incidentchat/internal/config"
	"github.com/incidentchat/incidentchat/internal/tickets"
)

type fakeChat struct {
	reply chat.Reply
	last  string
}

func (f *fakeChat) Respond(_ context.Context, question string) chat.Reply {
	f.last = question
	return f.reply
}

type fakeGenerator struct {
	stmt string
	err  error
}

func (f fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	return f.stmt, f.err
}

type fakeAnalytics struct {
	statuses []tickets.StatusCount
	months   []tickets.MonthlyCount
	overdue  int64
	err      error
}

func (f fakeAnalytics) StatusSummary(_ context.Context) ([]tickets.StatusCount, error) {
	return f.statuses, f.err
}

func (f fakeAnalytics) MonthlyTrend(_ context.Context) ([]tickets.MonthlyCount, error) {
	return f.months, f.err
}

func (f fakeAnalytics) OverdueCases(_ context.Context) (int64, error) {
	return f.overdue, f.err
}

type fakeHistory struct {
	inserted   []chatlog.InsertInput
	entries    []chatlog.Entry
	insertErr  error
	historyErr error
	lastClient string
	lastLimit  int
}

func (f *fakeHistory) Insert(_ context.Context, in chatlog.InsertInput) (chatlog.Entry, error) {
	if f.insertErr != nil {
		return chatlog.Entry{}, f.insertErr
	}
	f.inserted = append(f.inserted, in)
	return chatlog.Entry{ID: int64(len(f.inserted)), Question: in.Question}, nil
}

func (f *fakeHistory) RecentHistory(_ context.Context, client string, limit int) ([]chatlog.Entry, error) {
	f.lastClient = client
	f.lastLimit = limit
	return f.entries, f.historyErr
}

func testConfig(t *testing.T, values map[string]string) config.Config {
	t.Helper()
	cfg, err := config.Load("incidentchat-api", mapLookup(values))
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	return cfg
}

func mapLookup(values map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestReadyEndpointReturns503WhenDependencyFails(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{
		Readiness: func(_ context.Context) error {
			return errors.New("database down")
		},
	})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/ready", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	cfg := testConfig(t, map[string]string{"INCIDENTCHAT_AUTH_REQUIRED": "true"})
	validator, err := auth.NewStaticAPIKeyValidator("k1:alice")
	if err != nil {
		t.Fatalf("validator setup failed: %v", err)
	}

	h := NewHandler(cfg, Dependencies{
		AuthMiddleware: auth.Middleware(nil, validator),
		History:        &fakeHistory{},
	})

	unauthResp := httptest.NewRecorder()
	h.ServeHTTP(unauthResp, httptest.NewRequest(http.MethodGet, "/v1/history", nil))
	if unauthResp.Code != http.StatusUnauthorized {
		t.Fatalf("unauth status = %d", unauthResp.Code)
	}

	authReq := httptest.NewRequest(http.MethodGet, "/v1/history", nil)
	authReq.Header.Set("X-API-Key", "k1")
	authResp := httptest.NewRecorder()
	h.ServeHTTP(authResp, authReq)
	if authResp.Code != http.StatusOK {
		t.Fatalf("auth status = %d", authResp.Code)
	}
}

func TestUIHandlerServesNonAPIRoutes(t *testing.T) {
	h := NewHandler(testConfig(t, nil), Dependencies{
		UI: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, "<html>ok</html>")
		}),
	})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/console", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rr.Code, rr.Body.String())
	}
}
