package catalog

import (
	"testing"
	"time"

	"github.com/jblaunch/jblaunch/internal/discovery"
	"github.com/jblaunch/jblaunch/internal/product"
	"github.com/jblaunch/jblaunch/internal/recent"
)

func installationFor(code string) discovery.Installation {
	return discovery.Installation{
		Product:   product.Product{Code: code, Name: code},
		ConfigDir: "/cfg/" + code,
	}
}

func at(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func TestAggregate_DuplicatePathLatestWins(t *testing.T) {
	groups := []Group{
		{
			Installation: installationFor("GO"),
			Entries:      []recent.Entry{{Path: "/dev/shared", OpenedAt: at(100)}},
		},
		{
			Installation: installationFor("IU"),
			Entries:      []recent.Entry{{Path: "/dev/shared", OpenedAt: at(200)}},
		},
	}

	projects := Aggregate(groups)
	if len(projects) != 1 {
		t.Fatalf("Expected 1 project after dedup, got %d", len(projects))
	}
	p := projects[0]
	if p.Installation.Product.Code != "IU" {
		t.Errorf("Expected latest-opened installation IU to win, got %s", p.Installation.Product.Code)
	}
	if !p.OpenedAt.Equal(at(200)) {
		t.Errorf("Expected timestamp 200, got %v", p.OpenedAt)
	}
}

func TestAggregate_TieKeepsFirstScanned(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
	}{
		{"equal timestamps", at(100), at(100)},
		{"both absent", at(0), at(0)},
		{"second older", at(100), at(50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := []Group{
				{Installation: installationFor("GO"), Entries: []recent.Entry{{Path: "/dev/p", OpenedAt: tt.a}}},
				{Installation: installationFor("IU"), Entries: []recent.Entry{{Path: "/dev/p", OpenedAt: tt.b}}},
			}
			projects := Aggregate(groups)
			if len(projects) != 1 {
				t.Fatalf("Expected 1 project, got %d", len(projects))
			}
			if projects[0].Installation.Product.Code != "GO" {
				t.Errorf("Expected first-scanned installation to win, got %s", projects[0].Installation.Product.Code)
			}
		})
	}
}

func TestAggregate_Ordering(t *testing.T) {
	groups := []Group{{
		Installation: installationFor("GO"),
		Entries: []recent.Entry{
			{Path: "/p/five", OpenedAt: at(5)},
			{Path: "/p/none"},
			{Path: "/p/nine", OpenedAt: at(9)},
			{Path: "/p/three", OpenedAt: at(3)},
		},
	}}

	projects := Aggregate(groups)
	got := make([]string, len(projects))
	for i, p := range projects {
		got[i] = p.Path
	}
	want := []string{"/p/nine", "/p/five", "/p/three", "/p/none"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Wrong order: got %v, want %v", got, want)
		}
	}
}

func TestAggregate_UntimestampedSortByTitle(t *testing.T) {
	groups := []Group{{
		Installation: installationFor("GO"),
		Entries: []recent.Entry{
			{Path: "/old/zeta"},
			{Path: "/old/alpha"},
			{Path: "/fresh", OpenedAt: at(1)},
		},
	}}

	projects := Aggregate(groups)
	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
	if projects[0].Path != "/fresh" {
		t.Errorf("Timestamped entry must rank first, got %s", projects[0].Path)
	}
	if projects[1].Title != "alpha" || projects[2].Title != "zeta" {
		t.Errorf("Untimestamped entries must sort by title: got %s, %s", projects[1].Title, projects[2].Title)
	}
}

func TestAggregate_NormalizesPaths(t *testing.T) {
	groups := []Group{{
		Installation: installationFor("GO"),
		Entries: []recent.Entry{
			{Path: "/dev/api/", OpenedAt: at(10)},
			{Path: "/dev/./api", OpenedAt: at(20)},
			{Path: "  ", OpenedAt: at(30)},
		},
	}}

	projects := Aggregate(groups)
	if len(projects) != 1 {
		t.Fatalf("Expected variants to collapse to 1 project, got %d", len(projects))
	}
	if projects[0].Path != "/dev/api" {
		t.Errorf("Expected cleaned path /dev/api, got %q", projects[0].Path)
	}
	if projects[0].Title != "api" {
		t.Errorf("Expected title api, got %q", projects[0].Title)
	}
}

func TestMatchQuery(t *testing.T) {
	p := Project{Title: "Billing", Path: "/home/alice/dev/billing-service"}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"bill", true},
		{"BILLING", true},
		{"alice/dev", true},
		{"frontend", false},
	}
	for _, tt := range tests {
		if got := matchQuery(p, tt.query); got != tt.want {
			t.Errorf("matchQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}
