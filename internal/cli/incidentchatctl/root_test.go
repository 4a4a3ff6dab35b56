package incidentchatctl

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func runCommand(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand(Options{
		BaseURL:  server.URL,
		APIKey:   "k1",
		ClientID: "workstation-1",
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestAskCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "k1" {
			t.Fatalf("api key header = %q", r.Header.Get("X-API-Key"))
		}
		if r.Header.Get("X-Client-ID") != "workstation-1" {
			t.Fatalf("client header = %q", r.Header.Get("X-Client-ID"))
		}
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["question"] != "how many pending tickets" {
			t.Fatalf("question = %q", req["question"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer":      "Found 3 records.",
			"sql":         "SELECT COUNT(*) AS total_pending FROM ticketdetails WHERE TicketStatus='Pending';",
			"status":      "success",
			"response_ms": 42,
		})
	}))
	defer server.Close()

	out, err := runCommand(t, server, "ask", "how", "many", "pending", "tickets")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if !strings.Contains(out, "Found 3 records.") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "total_pending") {
		t.Fatalf("sql missing from output: %q", out)
	}
	if !strings.Contains(out, "success") {
		t.Fatalf("status missing from output: %q", out)
	}
}

func TestGenerateCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sql/generate" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"sql": "SELECT * FROM ticketdetails LIMIT 50;"})
	}))
	defer server.Close()

	out, err := runCommand(t, server, "generate", "show", "tickets")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if strings.TrimSpace(out) != "SELECT * FROM ticketdetails LIMIT 50;" {
		t.Fatalf("output = %q", out)
	}
}

func TestGenerateCommandSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_code": "NO_STATEMENT",
			"message":    "no query could be generated for this question",
		})
	}))
	defer server.Close()

	_, err := runCommand(t, server, "generate", "gibberish")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "NO_STATEMENT") {
		t.Fatalf("err = %v", err)
	}
}

func TestHistoryCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/history" {
			t.Fatalf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Fatalf("limit = %q", r.URL.Query().Get("limit"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"entries": []map[string]any{
				{"question": "latest tickets", "status": "success", "response_ms": 120, "created_at": "2026-08-23T10:00:00Z"},
			},
		})
	}))
	defer server.Close()

	out, err := runCommand(t, server, "history", "--limit", "5")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "latest tickets") {
		t.Fatalf("output = %q", out)
	}
}

func TestHistoryCommandEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"entries": []any{}})
	}))
	defer server.Close()

	out, err := runCommand(t, server, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No history yet.") {
		t.Fatalf("output = %q", out)
	}
}

func TestDashboardCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/dashboard/status-summary":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"statuses": []map[string]any{{"status": "New", "total": 12}},
			})
		case "/v1/dashboard/overdue":
			_ = json.NewEncoder(w).Encode(map[string]any{"overdue": 7})
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	out, err := runCommand(t, server, "dashboard")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if !strings.Contains(out, "New") || !strings.Contains(out, "12") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "Overdue pending cases (>7 days): 7") {
		t.Fatalf("output = %q", out)
	}
}

func TestHealthCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/health", "/v1/ready":
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		default:
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	out, err := runCommand(t, server, "health")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if !strings.Contains(out, "health: ok") || !strings.Contains(out, "ready:  ok") {
		t.Fatalf("output = %q", out)
	}
}
