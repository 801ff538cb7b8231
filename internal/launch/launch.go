// Package launch starts an IDE against a chosen project, fire-and-forget.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var (
	// ErrProjectNotFound indicates the project directory no longer exists
	ErrProjectNotFound = errors.New("project directory not found")
	// ErrUnlaunchable indicates the owning IDE's executable could not be resolved
	ErrUnlaunchable = errors.New("IDE executable not available")
)

// Open validates and launches: the project path must still be a directory
// and the executable must exist and be executable, otherwise no process is
// started. On success the IDE runs as a detached child with the project path
// as its sole argument; Open returns its PID immediately and never waits on
// or monitors the child.
func Open(executable, projectPath string) (int, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrProjectNotFound, projectPath)
	}

	if executable == "" {
		return 0, ErrUnlaunchable
	}
	exeInfo, err := os.Stat(executable)
	if err != nil || exeInfo.IsDir() || exeInfo.Mode()&0111 == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnlaunchable, executable)
	}

	cmd := exec.Command(executable, projectPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", executable, err)
	}

	pid := cmd.Process.Pid
	// Drop our handle so the child is never reparented to us as a zombie.
	_ = cmd.Process.Release()
	return pid, nil
}
