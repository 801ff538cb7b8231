package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/product"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProducts() []product.Product {
	return []product.Product{
		{
			Code:                "GO",
			Name:                "GoLand",
			ConfigPrefix:        "GoLand",
			RecentProjectsFiles: []string{"options/recentProjects.xml"},
		},
		{
			Code:                "PY",
			Name:                "PyCharm",
			ConfigPrefix:        "PyCharm",
			RecentProjectsFiles: []string{"options/recentProjects.xml"},
		},
	}
}

func writeRecord(t *testing.T, root, dir string, record string) {
	t.Helper()
	opts := filepath.Join(root, dir, "options")
	if err := os.MkdirAll(opts, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(opts, "recentProjects.xml"), []byte(record), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestSearch_AcrossInstallations(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "GoLand2024.2", `<application><component name="RecentProjectsManager">
      <option name="additionalInfo"><map>
        <entry key="/dev/api"><value><RecentProjectMetaInfo>
          <option name="projectOpenTimestamp" value="2000"/>
        </RecentProjectMetaInfo></value></entry>
      </map></option></component></application>`)
	writeRecord(t, root, "PyCharm2024.1", `<application><component name="RecentProjectsManager">
      <option name="additionalInfo"><map>
        <entry key="/dev/scripts"><value><RecentProjectMetaInfo>
          <option name="projectOpenTimestamp" value="1000"/>
        </RecentProjectMetaInfo></value></entry>
      </map></option></component></application>`)

	locator := discovery.NewLocator([]string{root}, "", testProducts(), discardLogger())
	c := New(locator, Options{TTL: time.Hour, Logger: discardLogger()})

	projects := c.Search(context.Background(), "")
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d: %v", len(projects), projects)
	}
	if projects[0].Path != "/dev/api" || projects[1].Path != "/dev/scripts" {
		t.Errorf("Wrong ranking: %s, %s", projects[0].Path, projects[1].Path)
	}
	if projects[0].Installation.Product.Code != "GO" {
		t.Errorf("Expected GO installation for /dev/api, got %s", projects[0].Installation.Product.Code)
	}

	filtered := c.Search(context.Background(), "script")
	if len(filtered) != 1 || filtered[0].Path != "/dev/scripts" {
		t.Errorf("Expected query to narrow to /dev/scripts, got %v", filtered)
	}
}

func TestSearch_BrokenRecordDoesNotSuppressOthers(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "GoLand2024.2", `<application><component`)
	writeRecord(t, root, "PyCharm2024.1", `<application><component name="RecentProjectsManager">
      <option name="recentPaths"><list><option value="/dev/keepme"/></list></option>
    </component></application>`)

	locator := discovery.NewLocator([]string{root}, "", testProducts(), discardLogger())
	c := New(locator, Options{TTL: time.Hour, Logger: discardLogger()})

	projects := c.Search(context.Background(), "")
	if len(projects) != 1 || projects[0].Path != "/dev/keepme" {
		t.Fatalf("Expected the readable record's project only, got %v", projects)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "GoLand2024.2", `<application><component name="RecentProjectsManager">
      <option name="recentPaths"><list><option value="/dev/api"/></list></option>
    </component></application>`)

	locator := discovery.NewLocator([]string{root}, "", testProducts(), discardLogger())
	c := New(locator, Options{TTL: time.Hour, Logger: discardLogger()})

	p, ok := c.Find(context.Background(), "/dev/api/")
	if !ok {
		t.Fatal("Expected to find /dev/api via its unnormalized spelling")
	}
	if p.Path != "/dev/api" {
		t.Errorf("Expected normalized path, got %q", p.Path)
	}

	if _, ok := c.Find(context.Background(), "/nope"); ok {
		t.Error("Expected miss for unknown path")
	}
}

func TestInstallationsCacheAndInvalidate(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "GoLand2024.2", `<application></application>`)

	locator := discovery.NewLocator([]string{root}, "", testProducts(), discardLogger())
	c := New(locator, Options{TTL: time.Hour, Logger: discardLogger()})

	if got := len(c.Installations()); got != 1 {
		t.Fatalf("Expected 1 installation, got %d", got)
	}

	// New install appears on disk; the cache still serves the old scan.
	writeRecord(t, root, "PyCharm2024.1", `<application></application>`)
	if got := len(c.Installations()); got != 1 {
		t.Fatalf("Expected cached scan of 1 installation, got %d", got)
	}

	c.Invalidate()
	if got := len(c.Installations()); got != 2 {
		t.Fatalf("Expected rescan to see 2 installations, got %d", got)
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "GoLand2024.2", `<application></application>`)

	locator := discovery.NewLocator([]string{root}, "", testProducts(), discardLogger())
	c := New(locator, Options{TTL: time.Hour, Logger: discardLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := c.Search(ctx, ""); got != nil {
		t.Errorf("Expected nil result for cancelled context, got %v", got)
	}
}
