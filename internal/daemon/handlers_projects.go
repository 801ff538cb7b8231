//go:build unix

package daemon

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jblaunch/jblaunch/internal/catalog"
	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/history"
	"github.com/jblaunch/jblaunch/internal/launch"
)

// Request/Response types

type SearchProjectsResponse struct {
	Projects []catalog.Project `json:"projects"`
	Count    int               `json:"count"`
}

type ListIDEsResponse struct {
	IDEs []discovery.Installation `json:"ides"`
}

type OpenProjectRequest struct {
	Path string `json:"path"`
}

type OpenProjectResponse struct {
	Launch history.Launch `json:"launch"`
}

type HistoryResponse struct {
	Launches []history.Launch `json:"launches"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler methods

func (d *Daemon) handleSearchProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	projects := d.catalog.Search(r.Context(), query)
	d.logger.Debug("search served", "query", query, "results", len(projects))

	writeJSON(w, SearchProjectsResponse{Projects: projects, Count: len(projects)}, http.StatusOK)
}

func (d *Daemon) handleListIDEs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, ListIDEsResponse{IDEs: d.catalog.Installations()}, http.StatusOK)
}

func (d *Daemon) handleOpenProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var req OpenProjectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)) // 1MB cap
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Path == "" {
		writeError(w, "path is required", http.StatusBadRequest)
		return
	}

	project, ok := d.catalog.Find(r.Context(), req.Path)
	if !ok {
		writeError(w, "no such project in any IDE's recent list", http.StatusNotFound)
		return
	}

	pid, err := launch.Open(project.Installation.Executable, project.Path)
	if err != nil {
		switch {
		case errors.Is(err, launch.ErrProjectNotFound):
			writeError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, launch.ErrUnlaunchable):
			writeError(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			writeError(w, fmt.Sprintf("launch failed: %v", err), http.StatusInternalServerError)
		}
		return
	}

	rec, err := d.store.Record(r.Context(), history.Launch{
		ProjectPath: project.Path,
		ProductCode: project.Installation.Product.Code,
		PID:         pid,
	})
	if err != nil {
		// The IDE is already starting; history is best effort.
		d.logger.Warn("failed to record launch", "path", project.Path, "error", err)
		rec = history.Launch{ProjectPath: project.Path, ProductCode: project.Installation.Product.Code, PID: pid}
	}
	d.logger.Info("project launched", "path", project.Path, "product", project.Installation.Product.Code, "pid", pid)

	writeJSON(w, OpenProjectResponse{Launch: rec}, http.StatusOK)
}

func (d *Daemon) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	launches, err := d.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, fmt.Sprintf("failed to read history: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, HistoryResponse{Launches: launches}, http.StatusOK)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}, status int) {
	buf, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}

func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, ErrorResponse{Error: message}, status)
}
