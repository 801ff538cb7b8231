// Package recent parses JetBrains recent-projects records. The record is a
// vendor-owned XML format that changed across IDE generations, so parsing is
// defensive throughout: a bad entry is skipped, never fatal for the file.
package recent

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jblaunch/jblaunch/internal/limits"
)

const userHomeMacro = "$USER_HOME$"

// Entry is one project known to one IDE installation.
type Entry struct {
	// Path is the absolute project directory. It is not required to exist;
	// projects may have been moved or deleted since the IDE last saw them.
	Path string
	// OpenedAt is the last-open timestamp. Zero when the record format
	// does not carry one (pre-2020 flat lists).
	OpenedAt time.Time
}

// ParseFile reads one recent-projects record. A missing file is an empty
// result, not an error. Paths are returned with the $USER_HOME$ placeholder
// expanded against home; entries that are empty after expansion are dropped.
func ParseFile(path, home string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limits.RecentProjectsFile))
	if err != nil {
		return nil, err
	}
	return Parse(data, home)
}

// Record layout, shared by both known generations:
//
//	<application>
//	  <component name="RecentProjectsManager">
//	    <option name="additionalInfo"><map><entry key="...">
//	      <value><RecentProjectMetaInfo>
//	        <option name="projectOpenTimestamp" value="..."/>
//	      </RecentProjectMetaInfo></value>
//	    </entry></map></option>
//	    <option name="recentPaths"><list><option value="..."/></list></option>
//	  </component>
//	</application>
//
// Older IDEs write recentProjectDirectories.xml with the flat recentPaths
// list only, under a RecentDirectoryProjectsManager component.
type xmlApplication struct {
	Components []xmlComponent `xml:"component"`
}

type xmlComponent struct {
	Name    string      `xml:"name,attr"`
	Options []xmlOption `xml:"option"`
}

type xmlOption struct {
	Name  string   `xml:"name,attr"`
	Value string   `xml:"value,attr"`
	Map   *xmlMap  `xml:"map"`
	List  *xmlList `xml:"list"`
}

type xmlMap struct {
	Entries []xmlMapEntry `xml:"entry"`
}

type xmlMapEntry struct {
	Key   string   `xml:"key,attr"`
	Value xmlValue `xml:"value"`
}

type xmlValue struct {
	Meta *xmlMetaInfo `xml:"RecentProjectMetaInfo"`
}

type xmlMetaInfo struct {
	Options []xmlOption `xml:"option"`
}

type xmlList struct {
	Options []xmlOption `xml:"option"`
}

// Parse extracts project entries from record content. The metadata map is
// authoritative for timestamps regardless of where the IDE placed it in the
// document; the flat path list contributes any paths the map does not
// mention. Entry order is document order, so unchanged content always parses
// to the same sequence.
func Parse(data []byte, home string) ([]Entry, error) {
	var doc xmlApplication
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unreadable recent-projects record: %w", err)
	}

	var entries []Entry
	byPath := make(map[string]int)

	add := func(raw string, openedAt time.Time) {
		path := expandHome(raw, home)
		if path == "" {
			return
		}
		if i, ok := byPath[path]; ok {
			// The metadata map owns the timestamp; a flat-list sighting
			// of the same path must not mask it, whichever element the
			// IDE happened to write first.
			if entries[i].OpenedAt.IsZero() {
				entries[i].OpenedAt = openedAt
			}
			return
		}
		byPath[path] = len(entries)
		entries = append(entries, Entry{Path: path, OpenedAt: openedAt})
	}

	for _, comp := range doc.Components {
		if !isRecentProjectsComponent(comp.Name) {
			continue
		}
		for _, opt := range comp.Options {
			switch opt.Name {
			case "additionalInfo":
				if opt.Map == nil {
					continue
				}
				for _, entry := range opt.Map.Entries {
					if entry.Key == "" {
						continue
					}
					add(entry.Key, openTimestamp(entry.Value.Meta))
				}
			case "recentPaths":
				if opt.List == nil {
					continue
				}
				for _, item := range opt.List.Options {
					add(item.Value, time.Time{})
				}
			}
		}
	}

	return entries, nil
}

func isRecentProjectsComponent(name string) bool {
	switch name {
	case "RecentProjectsManager", "RecentDirectoryProjectsManager":
		return true
	}
	return false
}

// openTimestamp digs projectOpenTimestamp (milliseconds since epoch) out of
// the per-project metadata. Returns zero when absent or unparseable.
func openTimestamp(meta *xmlMetaInfo) time.Time {
	if meta == nil {
		return time.Time{}
	}
	for _, opt := range meta.Options {
		if opt.Name != "projectOpenTimestamp" {
			continue
		}
		ms, err := strconv.ParseInt(opt.Value, 10, 64)
		if err != nil || ms <= 0 {
			return time.Time{}
		}
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}

func expandHome(path, home string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, userHomeMacro) {
		path = home + path[len(userHomeMacro):]
	}
	return path
}
