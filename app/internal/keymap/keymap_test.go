// SPDX-License-Identifier: Unlicense OR MIT

package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"picoview.org/io/key"
)

func TestX11(t *testing.T) {
	for code, want := range map[uint8]key.Code{
		0x09: key.CodeEscape,
		0x26: key.CodeA,
		0x13: key.CodeD0,
		0x41: key.CodeSpace,
		0x68: key.CodeNumpadEnter,
		0x77: key.CodeDelete,
		0x85: key.CodeMetaLeft,
		0x00: key.CodeUnknown,
		0xFF: key.CodeUnknown,
	} {
		assert.Equal(t, want, X11(code), "keycode %#x", code)
	}
}

func TestWin32(t *testing.T) {
	for scan, want := range map[uint16]key.Code{
		0x001: key.CodeEscape,
		0x01E: key.CodeA,
		0x01C: key.CodeEnter,
		0x11C: key.CodeNumpadEnter,
		0x01D: key.CodeControlLeft,
		0x11D: key.CodeControlRight,
		0x148: key.CodeArrowUp,
		0x15D: key.CodeContextMenu,
		0x1FF: key.CodeUnknown,
	} {
		assert.Equal(t, want, Win32(scan), "scan code %#x", scan)
	}
}

func TestMacOS(t *testing.T) {
	for code, want := range map[uint16]key.Code{
		0x00: key.CodeA,
		0x35: key.CodeEscape,
		0x16: key.CodeD6,
		0x17: key.CodeD5,
		0x3F: key.CodeFn,
		0x7E: key.CodeArrowUp,
		0x7F: key.CodeUnknown,
	} {
		assert.Equal(t, want, MacOS(code), "virtual key %#x", code)
	}
	assert.Equal(t, key.CodeUnknown, MacOS(0x200))
}

// Every letter and digit must be reachable on every platform.
func TestTablesCoverAlphanumerics(t *testing.T) {
	want := map[key.Code]bool{}
	for c := key.CodeD0; c <= key.CodeZ; c++ {
		want[c] = true
	}
	check := func(name string, got []key.Code) {
		seen := map[key.Code]bool{}
		for _, c := range got {
			seen[c] = true
		}
		for c := range want {
			assert.True(t, seen[c], "%s table misses %v", name, c)
		}
	}
	check("x11", x11Keys[:])
	check("win32", win32Keys[:])
	check("macos", macKeys[:])
}

func TestX11KeyModifiers(t *testing.T) {
	// Pressing left shift with nothing held.
	assert.Equal(t, key.ModShift, X11KeyModifiers(0, 0x32, true))
	// Releasing left shift: the state still carries ShiftMask.
	assert.Equal(t, key.Modifiers(0), X11KeyModifiers(x11ShiftMask, 0x32, false))
	// Ctrl held while pressing A.
	assert.Equal(t, key.ModCtrl, X11KeyModifiers(x11ControlMask, 0x26, true))
	// Locks are reported alongside.
	assert.Equal(t, key.ModAlt|key.ModNumLock|key.ModCapsLock,
		X11KeyModifiers(x11Mod2Mask|x11LockMask, 0x40, true))
	assert.Equal(t, key.ModMeta, X11Modifiers(x11Mod4Mask))
}

func TestMacOSModifiers(t *testing.T) {
	assert.Equal(t, key.ModMeta|key.ModShift, MacOSModifiers(macCommand|macShift))
	assert.Equal(t, key.ModAlt|key.ModCtrl|key.ModCapsLock, MacOSModifiers(macOption|macControl|macCapsLock))
	assert.Equal(t, key.Modifiers(0), MacOSModifiers(1<<8))
}

func TestWin32Modifiers(t *testing.T) {
	s := Win32KeyState{Shift: true, Win: true, NumLock: true, ScrollLock: true}
	assert.Equal(t, key.ModShift|key.ModMeta|key.ModNumLock|key.ModScrollLock, s.Modifiers())
	assert.Equal(t, key.Modifiers(0), Win32KeyState{}.Modifiers())
}
