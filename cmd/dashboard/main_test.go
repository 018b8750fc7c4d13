package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects":
			switch r.URL.Query().Get("search") {
			case "none":
				w.Write([]byte(`[]`))
				return
			case "slow":
				select {
				case <-r.Context().Done():
					return
				case <-time.After(2 * time.Second):
				}
			}
			w.Write([]byte(`{"projects": [{"project_id": "P1", "project_name": "Explorer", "total_milestones": 4, "completed_milestones": 1}]}`))
		case "/health":
			w.Write([]byte("OK"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(api.Close)

	t.Setenv("DASHBOARD_CONFIG", "")
	t.Setenv("PUBLIC_API_URL", api.URL)
	t.Setenv("API_URL", api.URL)
	t.Setenv("DASHBOARD_TIMEZONE", "UTC")
	t.Setenv("DASHBOARD_LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--env-file="+filepath.Join(t.TempDir(), "none.env")))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Projects(t *testing.T) {
	out, err := runCLI(t, "", "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Explorer")
	assert.Contains(t, out, "1/4")
}

func TestCLI_TransactionNotFound(t *testing.T) {
	_, err := runCLI(t, "", "tx", "0000unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Transaction not found")
}

func TestCLI_Health(t *testing.T) {
	out, err := runCLI(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: OK")
}

func TestCLI_Browse(t *testing.T) {
	out, err := runCLI(t, "none\n", "browse")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects found")
}

func TestCLI_BrowseLatestSearchWins(t *testing.T) {
	out, err := runCLI(t, "slow\nnone\n", "browse")
	require.NoError(t, err)
	assert.NotContains(t, out, `results for "slow"`)
	assert.Contains(t, out, `results for "none"`)
	assert.Contains(t, out, "No projects found.")
}
