//go:build !unix

package launch

import "syscall"

func detachedProcAttr() *syscall.SysProcAttr { return nil }
