// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements keyboard events.
//
// Keys are identified by their physical position, independent of the
// keyboard layout. There is no text input; the Code of a key is what a
// US layout would print on it.
package key

import (
	"strings"
)

// A PressEvent is generated when a key is pressed.
type PressEvent struct {
	Code Code
	// Capture is set by the handler to consume the key. A consumed key
	// does not trigger the native default action, such as menu
	// accelerators. Capture may be nil on platforms that cannot suppress
	// the default action.
	Capture *bool
}

// A ReleaseEvent is generated when a key is released.
type ReleaseEvent struct {
	Code    Code
	Capture *bool
}

// ModifiersEvent is generated whenever the set of active modifiers
// changes. It precedes the key event that caused the change.
type ModifiersEvent struct {
	Modifiers Modifiers
}

// Modifiers is the set of active modifier keys and lock states.
type Modifiers uint16

const (
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt Modifiers = 1 << iota
	// ModCtrl is the ctrl modifier key.
	ModCtrl
	// ModMeta is the "logo" modifier key, often represented by a
	// Windows logo, or the command key on Apple keyboards.
	ModMeta
	// ModShift is the shift modifier key.
	ModShift
	ModScrollLock
	ModNumLock
	ModCapsLock
)

// Code identifies a physical key.
type Code uint8

const (
	CodeUnknown Code = iota

	CodeBackquote
	CodeBackslash
	CodeBracketLeft
	CodeBracketRight
	CodeComma
	CodeD0
	CodeD1
	CodeD2
	CodeD3
	CodeD4
	CodeD5
	CodeD6
	CodeD7
	CodeD8
	CodeD9
	CodeA
	CodeB
	CodeC
	CodeD
	CodeE
	CodeF
	CodeG
	CodeH
	CodeI
	CodeJ
	CodeK
	CodeL
	CodeM
	CodeN
	CodeO
	CodeP
	CodeQ
	CodeR
	CodeS
	CodeT
	CodeU
	CodeV
	CodeW
	CodeX
	CodeY
	CodeZ
	CodeEqual
	CodeMinus
	CodePeriod
	CodeQuote
	CodeSemicolon
	CodeSlash
	CodeAltLeft
	CodeAltRight
	CodeBackspace
	CodeCapsLock
	CodeContextMenu
	CodeControlLeft
	CodeControlRight
	CodeEnter
	CodeMetaLeft
	CodeMetaRight
	CodeShiftLeft
	CodeShiftRight
	CodeSpace
	CodeTab
	CodeDelete
	CodeEnd
	CodeHome
	CodeInsert
	CodePageDown
	CodePageUp
	CodeArrowDown
	CodeArrowLeft
	CodeArrowRight
	CodeArrowUp
	CodeNumLock
	CodeNumpad0
	CodeNumpad1
	CodeNumpad2
	CodeNumpad3
	CodeNumpad4
	CodeNumpad5
	CodeNumpad6
	CodeNumpad7
	CodeNumpad8
	CodeNumpad9
	CodeNumpadAdd
	CodeNumpadBackspace
	CodeNumpadClear
	CodeNumpadClearEntry
	CodeNumpadComma
	CodeNumpadDecimal
	CodeNumpadDivide
	CodeNumpadEnter
	CodeNumpadEqual
	CodeNumpadHash
	CodeNumpadMemoryAdd
	CodeNumpadMemoryClear
	CodeNumpadMemoryRecall
	CodeNumpadMemoryStore
	CodeNumpadMemorySubtract
	CodeNumpadMultiply
	CodeNumpadParenLeft
	CodeNumpadParenRight
	CodeNumpadStar
	CodeNumpadSubtract
	CodeEscape
	CodeFn
	CodeFnLock
	CodePrintScreen
	CodeScrollLock
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	codeCount
)

var codeNames = [codeCount]string{
	"Unknown",
	"Backquote", "Backslash", "BracketLeft", "BracketRight", "Comma",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"Equal", "Minus", "Period", "Quote", "Semicolon", "Slash",
	"AltLeft", "AltRight", "Backspace", "CapsLock", "ContextMenu",
	"ControlLeft", "ControlRight", "Enter", "MetaLeft", "MetaRight",
	"ShiftLeft", "ShiftRight", "Space", "Tab",
	"Delete", "End", "Home", "Insert", "PageDown", "PageUp",
	"ArrowDown", "ArrowLeft", "ArrowRight", "ArrowUp",
	"NumLock",
	"Numpad0", "Numpad1", "Numpad2", "Numpad3", "Numpad4",
	"Numpad5", "Numpad6", "Numpad7", "Numpad8", "Numpad9",
	"NumpadAdd", "NumpadBackspace", "NumpadClear", "NumpadClearEntry",
	"NumpadComma", "NumpadDecimal", "NumpadDivide", "NumpadEnter",
	"NumpadEqual", "NumpadHash", "NumpadMemoryAdd", "NumpadMemoryClear",
	"NumpadMemoryRecall", "NumpadMemoryStore", "NumpadMemorySubtract",
	"NumpadMultiply", "NumpadParenLeft", "NumpadParenRight", "NumpadStar",
	"NumpadSubtract",
	"Escape", "Fn", "FnLock", "PrintScreen", "ScrollLock",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
}

// Consume marks the key as captured, if the platform supports it.
func (e PressEvent) Consume() {
	if e.Capture != nil {
		*e.Capture = true
	}
}

// Consume marks the key as captured, if the platform supports it.
func (e ReleaseEvent) Consume() {
	if e.Capture != nil {
		*e.Capture = true
	}
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	for _, n := range []struct {
		m    Modifiers
		name string
	}{
		{ModAlt, "Alt"},
		{ModCtrl, "Ctrl"},
		{ModMeta, "Meta"},
		{ModShift, "Shift"},
		{ModScrollLock, "ScrollLock"},
		{ModNumLock, "NumLock"},
		{ModCapsLock, "CapsLock"},
	} {
		if m.Contain(n.m) {
			strs = append(strs, n.name)
		}
	}
	return strings.Join(strs, "-")
}

func (c Code) String() string {
	if c >= codeCount {
		return "Unknown"
	}
	return codeNames[c]
}

func (PressEvent) ImplementsEvent()     {}
func (ReleaseEvent) ImplementsEvent()   {}
func (ModifiersEvent) ImplementsEvent() {}
