// Package catalog exposes the queryable, ranked project list: cached IDE
// discovery plus a fresh parse of every recent-projects record per query.
package catalog

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/gitinfo"
	"github.com/jblaunch/jblaunch/internal/recent"
)

// branchLookupLimit bounds per-query git work; only the top-ranked results
// get branch info.
const branchLookupLimit = 20

type installationsCache struct {
	installs []discovery.Installation
	loadedAt time.Time
}

// Catalog answers search queries. Installations change rarely while the
// process runs, so they are cached with a TTL and replaced wholesale (atomic
// pointer swap, safe for concurrent readers). Recent-project records are
// re-read on every query: the IDE rewrites them live and stale timestamps
// rank wrong.
type Catalog struct {
	locator      *discovery.Locator
	home         string
	ttl          time.Duration
	showBranches bool
	logger       *slog.Logger

	cache atomic.Pointer[installationsCache]
}

type Options struct {
	// TTL for the installation cache; zero disables caching.
	TTL time.Duration
	// ShowBranches enables best-effort git branch lookup on results.
	ShowBranches bool
	Logger       *slog.Logger
}

func New(locator *discovery.Locator, opts Options) *Catalog {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	home, _ := os.UserHomeDir()
	return &Catalog{
		locator:      locator,
		home:         home,
		ttl:          opts.TTL,
		showBranches: opts.ShowBranches,
		logger:       opts.Logger,
	}
}

// Installations returns the cached discovery result, rescanning when the
// cache is empty or older than the TTL.
func (c *Catalog) Installations() []discovery.Installation {
	if cached := c.cache.Load(); cached != nil && time.Since(cached.loadedAt) < c.ttl {
		return cached.installs
	}
	installs := c.locator.Locate()
	c.cache.Store(&installationsCache{installs: installs, loadedAt: time.Now()})
	return installs
}

// Invalidate drops the installation cache; the next query rescans.
func (c *Catalog) Invalidate() {
	c.cache.Store(nil)
}

// Search returns the ranked projects matching query (empty query matches
// everything). Scan or parse trouble with one IDE's data never suppresses
// results from the others.
func (c *Catalog) Search(ctx context.Context, query string) []Project {
	var groups []Group
	for _, inst := range c.Installations() {
		if ctx.Err() != nil {
			return nil
		}
		groups = append(groups, Group{
			Installation: inst,
			Entries:      c.parseInstallation(inst),
		})
	}

	all := Aggregate(groups)
	matched := all[:0:0]
	for _, p := range all {
		if matchQuery(p, query) {
			matched = append(matched, p)
		}
	}

	if c.showBranches {
		for i := range matched {
			if i == branchLookupLimit {
				break
			}
			matched[i].Branch = gitinfo.Branch(matched[i].Path)
		}
	}
	return matched
}

// Find locates one project by its (normalized) path.
func (c *Catalog) Find(ctx context.Context, path string) (Project, bool) {
	want := normalizePath(path)
	for _, p := range c.Search(ctx, "") {
		if p.Path == want {
			return p, true
		}
	}
	return Project{}, false
}

// parseInstallation reads every candidate record for the installation,
// newest format first; entries from older records only add paths the newer
// record did not mention (the zero timestamp loses aggregation ties).
func (c *Catalog) parseInstallation(inst discovery.Installation) []recent.Entry {
	var entries []recent.Entry
	for _, file := range inst.RecentProjectsFiles() {
		parsed, err := recent.ParseFile(file, c.home)
		if err != nil {
			c.logger.Warn("skipping recent-projects record",
				"product", inst.Product.Code, "file", file, "error", err)
			continue
		}
		entries = append(entries, parsed...)
	}
	return entries
}
