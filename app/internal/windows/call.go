// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows
// +build windows

package windows

import "syscall"

// Call invokes a raw function pointer, such as a WGL extension entry
// point or a COM vtable slot, and returns its first result.
func Call(fn uintptr, args ...uintptr) uintptr {
	r, _, _ := syscall.SyscallN(fn, args...)
	return r
}
