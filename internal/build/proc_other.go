//go:build !linux

package build

import "syscall"

func sysProcAttr() *syscall.SysProcAttr {
	return nil
}
