//go:build unix

package launch

import "syscall"

// detachedProcAttr puts the child in its own session so it survives the
// launcher process and does not share its controlling terminal.
func detachedProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
