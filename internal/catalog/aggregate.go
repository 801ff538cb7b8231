package catalog

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/recent"
)

// Project is the user-facing unit: one openable project with the
// installation that will launch it.
type Project struct {
	Title        string                 `json:"title"`
	Path         string                 `json:"path"`
	OpenedAt     time.Time              `json:"opened_at,omitzero"`
	Installation discovery.Installation `json:"installation"`
	Branch       string                 `json:"branch,omitempty"`
}

// Group carries the entries parsed from one installation's records.
type Group struct {
	Installation discovery.Installation
	Entries      []recent.Entry
}

// Aggregate merges per-installation entries into one deduplicated ranked
// list: at most one Project per normalized path. When the same path appears
// more than once, the entry with the latest timestamp wins and its
// installation becomes the launch target; on equal or absent timestamps the
// earlier-scanned group wins, so the result is deterministic in the
// locator's output order.
func Aggregate(groups []Group) []Project {
	byPath := make(map[string]int)
	var projects []Project

	for _, g := range groups {
		for _, e := range g.Entries {
			path := normalizePath(e.Path)
			if path == "" {
				continue
			}
			candidate := Project{
				Title:        displayTitle(path),
				Path:         path,
				OpenedAt:     e.OpenedAt,
				Installation: g.Installation,
			}
			i, ok := byPath[path]
			if !ok {
				byPath[path] = len(projects)
				projects = append(projects, candidate)
				continue
			}
			if candidate.OpenedAt.After(projects[i].OpenedAt) {
				projects[i] = candidate
			}
		}
	}

	sortProjects(projects)
	return projects
}

// sortProjects ranks by last-opened descending; entries without a timestamp
// go after all timestamped ones and sort by title among themselves.
func sortProjects(projects []Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		switch {
		case a.OpenedAt.IsZero() && b.OpenedAt.IsZero():
			if a.Title != b.Title {
				return a.Title < b.Title
			}
			return a.Path < b.Path
		case a.OpenedAt.IsZero():
			return false
		case b.OpenedAt.IsZero():
			return true
		default:
			return a.OpenedAt.After(b.OpenedAt)
		}
	})
}

// normalizePath resolves . and .. segments and trailing separators without
// requiring the path to exist. Case is preserved; dedup follows the host
// filesystem's convention by comparing paths as stored.
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}

func displayTitle(path string) string {
	return filepath.Base(path)
}

// matchQuery is the search filter: case-insensitive substring against the
// display title and the full path.
func matchQuery(p Project, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Path), q)
}
