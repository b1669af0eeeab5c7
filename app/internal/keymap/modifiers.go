// SPDX-License-Identifier: Unlicense OR MIT

package keymap

import "picoview.org/io/key"

// X11 core protocol modifier masks.
const (
	x11ShiftMask   = 1 << 0
	x11LockMask    = 1 << 1
	x11ControlMask = 1 << 2
	x11Mod1Mask    = 1 << 3
	x11Mod2Mask    = 1 << 4
	x11Mod4Mask    = 1 << 6
)

// X11Modifiers converts the state field of an X key or button event.
func X11Modifiers(state uint16) key.Modifiers {
	var m key.Modifiers
	if state&x11ShiftMask != 0 {
		m |= key.ModShift
	}
	if state&x11ControlMask != 0 {
		m |= key.ModCtrl
	}
	if state&x11Mod1Mask != 0 {
		m |= key.ModAlt
	}
	if state&x11Mod4Mask != 0 {
		m |= key.ModMeta
	}
	if state&x11Mod2Mask != 0 {
		m |= key.ModNumLock
	}
	if state&x11LockMask != 0 {
		m |= key.ModCapsLock
	}
	return m
}

// X11KeyModifiers returns the modifier set in effect after a key event.
// The state of an X key event describes the modifiers before the event,
// so the modifier bit of the key itself is added on press and removed
// on release.
func X11KeyModifiers(state uint16, code uint8, press bool) key.Modifiers {
	m := X11Modifiers(state)
	var own key.Modifiers
	switch code {
	case 0x25, 0x69:
		own = key.ModCtrl
	case 0x32, 0x3E:
		own = key.ModShift
	case 0x85, 0x86:
		own = key.ModMeta
	case 0x40, 0x6C:
		own = key.ModAlt
	}
	if press {
		return m | own
	}
	return m &^ own
}

// AppKit NSEventModifierFlags.
const (
	macCapsLock = 1 << 16
	macShift    = 1 << 17
	macControl  = 1 << 18
	macOption   = 1 << 19
	macCommand  = 1 << 20
)

// MacOSModifiers converts NSEvent modifierFlags.
func MacOSModifiers(flags uint64) key.Modifiers {
	var m key.Modifiers
	if flags&macCapsLock != 0 {
		m |= key.ModCapsLock
	}
	if flags&macShift != 0 {
		m |= key.ModShift
	}
	if flags&macControl != 0 {
		m |= key.ModCtrl
	}
	if flags&macOption != 0 {
		m |= key.ModAlt
	}
	if flags&macCommand != 0 {
		m |= key.ModMeta
	}
	return m
}

// Win32KeyState holds the native key state snapshot used to derive the
// modifier set on Windows.
type Win32KeyState struct {
	// Held keys, from GetAsyncKeyState.
	Shift, Control, Menu, Win bool
	// Toggled locks, from the low bit of GetKeyState.
	CapsLock, NumLock, ScrollLock bool
}

// Modifiers converts the snapshot.
func (s Win32KeyState) Modifiers() key.Modifiers {
	var m key.Modifiers
	if s.Shift {
		m |= key.ModShift
	}
	if s.Control {
		m |= key.ModCtrl
	}
	if s.Menu {
		m |= key.ModAlt
	}
	if s.Win {
		m |= key.ModMeta
	}
	if s.CapsLock {
		m |= key.ModCapsLock
	}
	if s.NumLock {
		m |= key.ModNumLock
	}
	if s.ScrollLock {
		m |= key.ModScrollLock
	}
	return m
}
