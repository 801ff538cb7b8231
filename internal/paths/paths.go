package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

func DefaultRuntimeDir() string {
	if x := os.Getenv("XDG_RUNTIME_DIR"); x != "" {
		return filepath.Join(x, "jblaunch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jblaunch")
}

func DefaultStateDir() string {
	if x := os.Getenv("XDG_STATE_HOME"); x != "" {
		return filepath.Join(x, "jblaunch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "jblaunch")
}

func DefaultConfigDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "jblaunch")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "jblaunch")
}

func DefaultSocketPath() string   { return filepath.Join(DefaultRuntimeDir(), "daemon.sock") }
func DefaultPIDPath() string      { return filepath.Join(DefaultRuntimeDir(), "daemon.pid") }
func DefaultHistoryPath() string  { return filepath.Join(DefaultStateDir(), "history.db") }
func DefaultLogPath() string      { return filepath.Join(DefaultStateDir(), "jblaunch.log") }
func DefaultProductsPath() string { return filepath.Join(DefaultConfigDir(), "products.yaml") }

// JetBrainsConfigRoots returns the directories that may hold per-IDE
// configuration trees (one versioned subdirectory per IDE release).
// Roots that do not exist are still returned; callers skip unreadable ones.
func JetBrainsConfigRoots() []string {
	home, _ := os.UserHomeDir()

	var roots []string
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		roots = append(roots, filepath.Join(x, "JetBrains"))
	} else {
		roots = append(roots, filepath.Join(home, ".config", "JetBrains"))
	}
	if runtime.GOOS == "darwin" {
		roots = append(roots, filepath.Join(home, "Library", "Application Support", "JetBrains"))
	}
	return roots
}

// ToolboxScriptsDir is where the JetBrains Toolbox app places launcher
// shell scripts for the IDEs it manages.
func ToolboxScriptsDir() string {
	home, _ := os.UserHomeDir()
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "JetBrains", "Toolbox", "scripts")
	}
	if x := os.Getenv("XDG_DATA_HOME"); x != "" {
		return filepath.Join(x, "JetBrains", "Toolbox", "scripts")
	}
	return filepath.Join(home, ".local", "share", "JetBrains", "Toolbox", "scripts")
}
