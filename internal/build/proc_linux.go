//go:build linux

package build

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// sysProcAttr binds the dispatcher's lifetime to the orchestrator:
// if the orchestrating process dies, the kernel signals the in-flight
// subprocess so no compile outlives its parent.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Pdeathsig: unix.SIGTERM}
}
