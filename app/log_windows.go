// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"log/slog"
	"unsafe"

	syscall "golang.org/x/sys/windows"
)

// debugView writes to the debugger output of GUI programs, which have
// no standard error.
type debugView struct{}

var (
	kernel32           = syscall.NewLazySystemDLL("kernel32")
	outputDebugStringW = kernel32.NewProc("OutputDebugStringW")
)

func defaultLogger() *slog.Logger {
	if syscall.Stderr != 0 {
		return slog.Default()
	}
	// DebugView already includes timestamps.
	return slog.New(slog.NewTextHandler(debugView{}, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

func (debugView) Write(buf []byte) (int, error) {
	p, err := syscall.UTF16PtrFromString(string(buf))
	if err != nil {
		return 0, err
	}
	outputDebugStringW.Call(uintptr(unsafe.Pointer(p)))
	return len(buf), nil
}
