package indexer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(url string, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithLogger(zap.NewNop()),
		WithRetryDelay(time.Millisecond),
		WithMaxDelay(5 * time.Millisecond),
	}
	return NewClient(url, append(base, opts...)...)
}

func TestParams_OmitsEmptyValues(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"empty", Params{}, ""},
		{"zero page", PageQuery{}.Params(), ""},
		{"page only", ProjectQuery{Page: 2}.Params(), "page=2"},
		{"blank search", ProjectQuery{Limit: 10, Search: "  "}.Params(), "limit=10"},
		{"escaped", ProjectQuery{Search: "a&b c"}.Params(), "search=a%26b+c"},
		{"events", EventQuery{Page: 1, Limit: 20, Type: "fund", ProjectID: "P1"}.Params(), "page=1&limit=20&type=fund&project_id=P1"},
		{"action", TransactionQuery{ActionType: "disburse"}.Params(), "action_type=disburse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Encode(); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_DefaultBaseURL(t *testing.T) {
	if got := NewClient("").BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := NewClient("http://api:8080/").BaseURL(); got != "http://api:8080" {
		t.Errorf("trailing slash should be trimmed, got %q", got)
	}
}

func TestClient_Projects_ServerErrorYieldsEmpty(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	projects := client.Projects(context.Background(), ProjectQuery{})

	if projects == nil {
		t.Fatal("expected empty list, got nil")
	}
	if len(projects) != 0 {
		t.Errorf("expected 0 projects, got %d", len(projects))
	}
	if calls.Load() != 1 {
		t.Errorf("default client should make a single attempt, got %d", calls.Load())
	}
}

func TestClient_Projects_QueryAndShapes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("search") {
		case "wrapped":
			w.Write([]byte(`{"projects": [{"project_id": 1}, {"project_id": 2}]}`))
		default:
			w.Write([]byte(`[{"project_id": "EC-1"}]`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	bare := client.Projects(ctx, ProjectQuery{Page: 1})
	if gotQuery != "page=1" {
		t.Errorf("query = %q, want page=1", gotQuery)
	}
	require.Len(t, bare, 1)

	wrapped := client.Projects(ctx, ProjectQuery{Search: "wrapped"})
	require.Len(t, wrapped, 2)
	if id, _ := wrapped[1].String("project_id"); id != "2" {
		t.Errorf("second project id = %q", id)
	}
}

func TestClient_Transaction_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithMaxRetries(3))
	if tx := client.Transaction(context.Background(), "deadbeef"); tx != nil {
		t.Errorf("expected nil for not found, got %v", tx)
	}
	if tx := client.Transaction(context.Background(), ""); tx != nil {
		t.Errorf("expected nil for empty hash, got %v", tx)
	}
}

func TestClient_PathEscaping(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.ProjectMilestones(context.Background(), "a b/c")
	if gotPath != "/api/projects/a%20b%2Fc/milestones" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	var mu sync.Mutex
	requestIDs := map[string]bool{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestIDs[r.Header.Get(RequestIDHeader)] = true
		mu.Unlock()

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"tom_transactions": 5}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithMaxRetries(2))
	stats := client.Stats(context.Background())
	if stats == nil {
		t.Fatal("expected stats after retries")
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if len(requestIDs) != 1 || requestIDs[""] {
		t.Errorf("expected one non-empty request id across attempts, got %v", requestIDs)
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL, WithMaxRetries(3))
	if got := client.Events(context.Background(), EventQuery{}); len(got) != 0 {
		t.Errorf("expected empty events, got %d", len(got))
	}
	if calls.Load() != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", calls.Load())
	}
}

func TestClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stats":
			w.Write([]byte(`[1, 2]`))
		default:
			w.Write([]byte(`{"unexpected": true`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()
	if got := client.Utxos(ctx); got == nil || len(got) != 0 {
		t.Errorf("malformed collection should be empty, got %v", got)
	}
	if got := client.Stats(ctx); got != nil {
		t.Errorf("array for single entity should be nil, got %v", got)
	}
}

func TestClient_TreasuryAcceptsSingleObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"instance_id": 1, "script_hash": "sh", "payment_address": "addr1"}`))
	}))
	defer server.Close()

	got := newTestClient(server.URL).Treasury(context.Background())
	require.Len(t, got, 1)
	if sh, _ := got[0].String("script_hash"); sh != "sh" {
		t.Errorf("script_hash = %q", sh)
	}
}

func TestClient_ActionTransactions(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Write([]byte(`[{"tx_hash": "h"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()
	for _, action := range []string{"fund", "Disburse", "withdraw"} {
		require.Len(t, client.ActionTransactions(ctx, action, PageQuery{}), 1)
	}
	if got := client.ActionTransactions(ctx, "sweep", PageQuery{}); len(got) != 0 {
		t.Errorf("unsupported action should be empty, got %d", len(got))
	}
	want := []string{"/api/fund", "/api/disburse", "/api/withdraw"}
	require.Equal(t, want, paths)

	_, err := ActionPath("pause")
	if !errors.Is(err, ErrUnsupportedAction) {
		t.Errorf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestClient_CanceledContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := newTestClient(server.URL, WithMaxRetries(5))
	if got := client.Transactions(ctx, TransactionQuery{}); len(got) != 0 {
		t.Errorf("canceled fetch should be empty, got %d", len(got))
	}
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("OK\n"))
	}))

	client := newTestClient(server.URL)
	body, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if body != "OK" {
		t.Errorf("body = %q", body)
	}

	server.Close()
	if _, err := client.Health(context.Background()); err == nil {
		t.Error("expected error from closed server")
	}
}

func TestClient_EndpointPaths(t *testing.T) {
	routes := map[string]string{
		"/api/stats":                  `{"tom_transactions": 5}`,
		"/api/balance":                `{"lovelace": 7000000, "balance": "7.00"}`,
		"/api/projects/P%201/events":  `{"events": [{"id": 1}]}`,
		"/api/projects/P1/milestones": `{"milestones": [{"milestone_order": 1}, {"milestone_order": 2}]}`,
		"/api/milestones":             `[{"milestone_order": 1}]`,
		"/api/fund-flows":             `{"flows": [{"tx_hash": "f"}]}`,
		"/api/utxos":                  `{"utxos": [{"tx_hash": "u", "output_index": 0}]}`,
		"/api/vendor-contracts":       `{"vendor_contracts": []}`,
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	if n, _ := client.Stats(ctx).Int("tom_transactions"); n != 5 {
		t.Errorf("stats tom_transactions = %d", n)
	}
	if n, _ := client.Balance(ctx).Int("lovelace"); n != 7000000 {
		t.Errorf("balance lovelace = %d", n)
	}
	require.Len(t, client.ProjectEvents(ctx, "P 1"), 1)
	require.Len(t, client.ProjectMilestones(ctx, "P1"), 2)
	require.Len(t, client.Milestones(ctx), 1)
	require.Len(t, client.FundFlows(ctx, PageQuery{Limit: 5}), 1)
	require.Len(t, client.Utxos(ctx), 1)

	vendors := client.VendorContracts(ctx)
	require.NotNil(t, vendors)
	require.Empty(t, vendors)

	if got := client.ProjectMilestones(ctx, " "); got == nil || len(got) != 0 {
		t.Errorf("blank project id should give an empty list, got %v", got)
	}
	if got := client.Project(ctx, ""); got != nil {
		t.Errorf("blank project id should give nil, got %v", got)
	}
}
