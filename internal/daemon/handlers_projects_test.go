//go:build unix

package daemon

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/history"
	"github.com/jblaunch/jblaunch/internal/product"
)

// testDaemon wires a Daemon over a synthetic config tree: one GoLand install
// whose record lists the given project paths, launched by a stub shell script.
func testDaemon(t *testing.T, projectPaths ...string) (*Daemon, *http.ServeMux) {
	t.Helper()

	root := t.TempDir()
	exe := filepath.Join(root, "goland-stub")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	var entries strings.Builder
	for i, p := range projectPaths {
		ms := time.Date(2026, 8, 1, 12, i, 0, 0, time.UTC).UnixMilli()
		entries.WriteString(`<entry key="` + p + `"><value><RecentProjectMetaInfo>` +
			`<option name="projectOpenTimestamp" value="` + strconv.FormatInt(ms, 10) + `"/>` +
			`</RecentProjectMetaInfo></value></entry>`)
	}
	optionsDir := filepath.Join(root, "GoLand2024.2", "options")
	if err := os.MkdirAll(optionsDir, 0o755); err != nil {
		t.Fatal(err)
	}
	record := `<application><component name="RecentProjectsManager">` +
		`<option name="additionalInfo"><map>` + entries.String() + `</map></option>` +
		`</component></application>`
	if err := os.WriteFile(filepath.Join(optionsDir, "recentProjects.xml"), []byte(record), 0o600); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	products := []product.Product{{
		Code:                "GO",
		Name:                "GoLand",
		ConfigPrefix:        "GoLand",
		ExecutableNames:     []string{"goland-stub"},
		RecentProjectsFiles: []string{"options/recentProjects.xml"},
	}}
	locator := discovery.NewLocator([]string{root}, root, products, logger)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	d := &Daemon{
		catalog:   catalog.New(locator, catalog.Options{TTL: time.Hour, Logger: logger}),
		store:     store,
		logger:    logger,
		startTime: time.Now().UTC(),
	}
	mux := http.NewServeMux()
	d.setupRoutes(mux)
	return d, mux
}

func TestHandleSearchProjects(t *testing.T) {
	project := t.TempDir()
	_, mux := testDaemon(t, project, "/dev/other")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects?q="+filepath.Base(project), nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp SearchProjectsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Count != 1 || len(resp.Projects) != 1 {
		t.Fatalf("Expected exactly the queried project, got %+v", resp)
	}
	if resp.Projects[0].Path != project {
		t.Errorf("Expected %s, got %s", project, resp.Projects[0].Path)
	}
}

func TestHandleOpenProject(t *testing.T) {
	project := t.TempDir()
	d, mux := testDaemon(t, project)

	body := strings.NewReader(`{"path": "` + project + `"}`)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/open", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp OpenProjectResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if resp.Launch.PID <= 0 {
		t.Errorf("Expected a launch PID, got %d", resp.Launch.PID)
	}
	if resp.Launch.ProductCode != "GO" {
		t.Errorf("Expected product GO, got %q", resp.Launch.ProductCode)
	}

	// The launch lands in history
	launches, err := d.store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(launches) != 1 || launches[0].ProjectPath != project {
		t.Errorf("Launch not recorded: %+v", launches)
	}
}

func TestHandleOpenProject_UnknownPath(t *testing.T) {
	_, mux := testDaemon(t, t.TempDir())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/open",
		strings.NewReader(`{"path": "/never/listed"}`)))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleOpenProject_ProjectDirectoryGone(t *testing.T) {
	gone := filepath.Join(t.TempDir(), "moved-away")
	_, mux := testDaemon(t, gone)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/open",
		strings.NewReader(`{"path": "`+gone+`"}`)))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for a listed but deleted project, got %d", rr.Code)
	}
}

func TestHandleOpenProject_BadRequests(t *testing.T) {
	_, mux := testDaemon(t, t.TempDir())

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{`},
		{"unknown field", `{"path": "/x", "force": true}`},
		{"empty path", `{"path": ""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/projects/open",
				strings.NewReader(tt.body)))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rr.Code)
			}
		})
	}
}

func TestHandleListIDEs(t *testing.T) {
	_, mux := testDaemon(t, t.TempDir())

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ides", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp ListIDEsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if len(resp.IDEs) != 1 || resp.IDEs[0].Product.Code != "GO" {
		t.Fatalf("Expected the single GoLand install, got %+v", resp.IDEs)
	}
}

func TestHandleHealth(t *testing.T) {
	_, mux := testDaemon(t)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var health HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("Bad response body: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Expected status ok, got %q", health.Status)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	_, mux := testDaemon(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/projects/open"},
		{http.MethodDelete, "/api/ides"},
		{http.MethodPost, "/api/history"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: expected 405, got %d", tt.method, tt.path, rr.Code)
		}
	}
}
