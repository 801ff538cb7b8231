package discovery

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jblaunch/jblaunch/internal/product"
)

// resolveExecutable finds a launchable binary for the product: $PATH first,
// then Toolbox launcher scripts, then conventional install locations.
func resolveExecutable(p product.Product, toolboxDir string) (string, error) {
	for _, name := range p.ExecutableNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	for _, name := range p.ExecutableNames {
		for _, dir := range candidateDirs(name, toolboxDir) {
			path := filepath.Join(dir, name)
			if isExecutableFile(path) {
				return path, nil
			}
			// Some distributions ship the launcher as name.sh.
			if isExecutableFile(path + ".sh") {
				return path + ".sh", nil
			}
		}
	}

	return "", fmt.Errorf("no executable found for %s (tried %v)", p.Code, p.ExecutableNames)
}

func candidateDirs(name, toolboxDir string) []string {
	var dirs []string
	// An unset toolbox dir must not degrade to a relative lookup in the
	// current working directory.
	if toolboxDir != "" {
		dirs = append(dirs, toolboxDir)
	}
	dirs = append(dirs,
		filepath.Join("/opt", name, "bin"),
		filepath.Join("/usr/share", name, "bin"),
		"/usr/local/bin",
	)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "bin"))
	}
	return dirs
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0111 != 0
}
