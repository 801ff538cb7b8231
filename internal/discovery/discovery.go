// Package discovery locates installed JetBrains IDEs by scanning the
// per-user configuration roots for versioned product directories.
package discovery

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jblaunch/jblaunch/internal/product"
)

// Installation is one detected IDE installation: the authoritative config
// directory for its newest version, plus the launch executable if one could
// be resolved. Executable may be empty; such installations list projects but
// cannot open them.
type Installation struct {
	Product    product.Product `json:"product"`
	ConfigDir  string          `json:"config_dir"`
	Executable string          `json:"executable,omitempty"`
}

// RecentProjectsFiles returns the candidate record paths for this
// installation, newest format first.
func (inst Installation) RecentProjectsFiles() []string {
	out := make([]string, 0, len(inst.Product.RecentProjectsFiles))
	for _, rel := range inst.Product.RecentProjectsFiles {
		out = append(out, filepath.Join(inst.ConfigDir, filepath.FromSlash(rel)))
	}
	return out
}

// Locator scans config roots for product directories.
type Locator struct {
	roots      []string
	toolboxDir string
	products   []product.Product
	logger     *slog.Logger
}

func NewLocator(roots []string, toolboxDir string, products []product.Product, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{roots: roots, toolboxDir: toolboxDir, products: products, logger: logger}
}

// Locate returns one Installation per product that has at least one config
// directory under any root. Roots are scanned in order and products in table
// order, so the output order is deterministic. An unreadable root is skipped,
// never fatal; no installations is an empty slice, not an error.
func (l *Locator) Locate() []Installation {
	type candidate struct {
		dir     string
		modTime time.Time
	}
	// One pick per product across all roots: newest mtime wins, since the
	// IDE only writes to its current version's directory.
	best := make(map[string]candidate)
	var order []string

	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if !os.IsNotExist(err) {
				l.logger.Warn("skipping unreadable config root", "root", root, "error", err)
			}
			continue
		}
		for _, p := range l.products {
			for _, ent := range entries {
				if !ent.IsDir() || !matchesVersionedDir(ent.Name(), p.ConfigPrefix) {
					continue
				}
				info, err := ent.Info()
				if err != nil {
					continue
				}
				cand := candidate{dir: filepath.Join(root, ent.Name()), modTime: info.ModTime()}
				prev, seen := best[p.Code]
				if !seen {
					best[p.Code] = cand
					order = append(order, p.Code)
					continue
				}
				if cand.modTime.After(prev.modTime) {
					best[p.Code] = cand
				}
			}
		}
	}

	productByCode := make(map[string]product.Product, len(l.products))
	for _, p := range l.products {
		productByCode[p.Code] = p
	}

	installs := make([]Installation, 0, len(order))
	for _, code := range order {
		p := productByCode[code]
		inst := Installation{
			Product:   p,
			ConfigDir: best[code].dir,
		}
		if exe, err := resolveExecutable(p, l.toolboxDir); err == nil {
			inst.Executable = exe
		} else {
			l.logger.Debug("executable not resolved", "product", p.Code, "error", err)
		}
		installs = append(installs, inst)
	}
	return installs
}

// matchesVersionedDir reports whether name is a versioned config directory
// for the given prefix, e.g. GoLand2024.2 for prefix GoLand. A bare prefix
// match is rejected when the remainder does not start with a digit so that
// PyCharm does not claim PyCharmCE2024.1.
func matchesVersionedDir(name, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	if rest == "" {
		return false
	}
	return rest[0] >= '0' && rest[0] <= '9'
}
