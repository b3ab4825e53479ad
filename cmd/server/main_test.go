package main

import (
	"net/http"
	"testing"

	"panelsim/internal/config"
	exporthandlers "panelsim/internal/handlers/export"
	"panelsim/internal/handlers/simulation"
	"panelsim/internal/logging"
	"panelsim/internal/testutil"
)

// setupTestServer wires handlers with small test defaults and returns a test
// server around the full router
func setupTestServer(t *testing.T) *testutil.TestServer {
	t.Helper()
	logging.Init(false)

	cfg := config.DefaultConfig()
	cfg.Defaults.PopulationSize = 150
	cfg.Defaults.PanelCapacity = 60
	cfg.Defaults.NumYears = 2
	cfg.Defaults.OptimizerIterations = 3

	store := simulation.NewStore()
	simulation.Initialize(cfg, nil, store)
	exporthandlers.Initialize(store)

	return testutil.NewTestServer(t, newRouter(cfg))
}

// TestHealthEndpoint verifies /api/health reports status and build info
func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	testutil.AssertResponse(t, ts.Get("/api/health")).
		StatusOK().
		ContentTypeJSON().
		Contains(`"status":"ok"`).
		Contains(`"version"`)
}

// TestRootRedirect verifies / redirects to the simulator page
func TestRootRedirect(t *testing.T) {
	ts := setupTestServer(t)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(ts.BaseURL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusTemporaryRedirect {
		t.Errorf("Expected status %d, got %d", http.StatusTemporaryRedirect, resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/simulator" {
		t.Errorf("Expected redirect to /simulator, got %q", location)
	}
}

// TestSimulateThroughRouter verifies a simulation request and its CSV export
// through the real route table
func TestSimulateThroughRouter(t *testing.T) {
	ts := setupTestServer(t)

	var run struct {
		RunID string `json:"run_id"`
	}
	testutil.AssertResponse(t, ts.Post("/api/simulate", "application/json", nil)).
		StatusOK().
		ContentTypeJSON().
		DecodeJSON(&run)

	if run.RunID == "" {
		t.Fatal("missing run ID")
	}

	testutil.AssertResponse(t, ts.Get("/export/"+run.RunID+"/metrics.csv")).
		StatusOK().
		ContentType("text/csv").
		Contains("year,enrolled_count")
}
