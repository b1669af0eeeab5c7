// SPDX-License-Identifier: Unlicense OR MIT

//go:build windows
// +build windows

package windows

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	syscall "golang.org/x/sys/windows"
)

func TestCallProcAddress(t *testing.T) {
	k32 := syscall.NewLazySystemDLL("kernel32.dll")
	p := k32.NewProc("GetCurrentThreadId")
	require.NoError(t, p.Find())
	assert.Equal(t, uintptr(syscall.GetCurrentThreadId()), Call(p.Addr()))
}
