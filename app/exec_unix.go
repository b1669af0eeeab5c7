// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd || (darwin && !ios)

package app

import (
	"os/exec"
	"syscall"
)

// spawnDetached starts a program in its own session and reaps it in the
// background.
func spawnDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
