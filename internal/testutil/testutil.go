// Package testutil provides testing utilities for the simulator service.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestServer wraps httptest.Server with convenience methods
type TestServer struct {
	Server  *httptest.Server
	BaseURL string
	t       *testing.T
}

// NewTestServer starts an httptest server around the given handler
func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &TestServer{
		Server:  srv,
		BaseURL: srv.URL,
		t:       t,
	}
}

// Get performs a GET request against the test server
func (ts *TestServer) Get(path string) *http.Response {
	ts.t.Helper()
	resp, err := http.Get(ts.BaseURL + path)
	if err != nil {
		ts.t.Fatalf("GET %s failed: %v", path, err)
	}
	return resp
}

// Post performs a POST request with the given body against the test server
func (ts *TestServer) Post(path, contentType string, body io.Reader) *http.Response {
	ts.t.Helper()
	resp, err := http.Post(ts.BaseURL+path, contentType, body)
	if err != nil {
		ts.t.Fatalf("POST %s failed: %v", path, err)
	}
	return resp
}

// ProjectRoot returns the root directory of the project by walking up to the
// go.mod file
func ProjectRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not get caller info")
	}

	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// SetTestEnv sets environment variables for testing and returns a cleanup
// function that restores the previous values
func SetTestEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}
