// SPDX-License-Identifier: Unlicense OR MIT

// Package keymap translates native hardware key codes to key.Code.
//
// The tables are keyed by position rather than by layout: X11 uses the
// XKB hardware keycode (evdev code plus 8), Windows the scan code from
// bits 16-24 of the key message lParam, and macOS the virtual key code
// of the NSEvent.
package keymap

import "picoview.org/io/key"

// X11 translates an XKB hardware keycode.
func X11(code uint8) key.Code {
	return x11Keys[code]
}

// Win32 translates a keyboard scan code, including the extended bit
// 0x100.
func Win32(scan uint16) key.Code {
	if int(scan) >= len(win32Keys) {
		return key.CodeUnknown
	}
	return win32Keys[scan]
}

// MacOS translates a virtual key code.
func MacOS(code uint16) key.Code {
	if int(code) >= len(macKeys) {
		return key.CodeUnknown
	}
	return macKeys[code]
}

var x11Keys = [256]key.Code{
	0x09: key.CodeEscape,
	0x0A: key.CodeD1,
	0x0B: key.CodeD2,
	0x0C: key.CodeD3,
	0x0D: key.CodeD4,
	0x0E: key.CodeD5,
	0x0F: key.CodeD6,
	0x10: key.CodeD7,
	0x11: key.CodeD8,
	0x12: key.CodeD9,
	0x13: key.CodeD0,
	0x14: key.CodeMinus,
	0x15: key.CodeEqual,
	0x16: key.CodeBackspace,
	0x17: key.CodeTab,
	0x18: key.CodeQ,
	0x19: key.CodeW,
	0x1A: key.CodeE,
	0x1B: key.CodeR,
	0x1C: key.CodeT,
	0x1D: key.CodeY,
	0x1E: key.CodeU,
	0x1F: key.CodeI,
	0x20: key.CodeO,
	0x21: key.CodeP,
	0x22: key.CodeBracketLeft,
	0x23: key.CodeBracketRight,
	0x24: key.CodeEnter,
	0x25: key.CodeControlLeft,
	0x26: key.CodeA,
	0x27: key.CodeS,
	0x28: key.CodeD,
	0x29: key.CodeF,
	0x2A: key.CodeG,
	0x2B: key.CodeH,
	0x2C: key.CodeJ,
	0x2D: key.CodeK,
	0x2E: key.CodeL,
	0x2F: key.CodeSemicolon,
	0x30: key.CodeQuote,
	0x31: key.CodeBackquote,
	0x32: key.CodeShiftLeft,
	0x33: key.CodeBackslash,
	0x34: key.CodeZ,
	0x35: key.CodeX,
	0x36: key.CodeC,
	0x37: key.CodeV,
	0x38: key.CodeB,
	0x39: key.CodeN,
	0x3A: key.CodeM,
	0x3B: key.CodeComma,
	0x3C: key.CodePeriod,
	0x3D: key.CodeSlash,
	0x3E: key.CodeShiftRight,
	0x3F: key.CodeNumpadMultiply,
	0x40: key.CodeAltLeft,
	0x41: key.CodeSpace,
	0x42: key.CodeCapsLock,
	0x43: key.CodeF1,
	0x44: key.CodeF2,
	0x45: key.CodeF3,
	0x46: key.CodeF4,
	0x47: key.CodeF5,
	0x48: key.CodeF6,
	0x49: key.CodeF7,
	0x4A: key.CodeF8,
	0x4B: key.CodeF9,
	0x4C: key.CodeF10,
	0x4D: key.CodeNumLock,
	0x4E: key.CodeScrollLock,
	0x4F: key.CodeNumpad7,
	0x50: key.CodeNumpad8,
	0x51: key.CodeNumpad9,
	0x52: key.CodeNumpadSubtract,
	0x53: key.CodeNumpad4,
	0x54: key.CodeNumpad5,
	0x55: key.CodeNumpad6,
	0x56: key.CodeNumpadAdd,
	0x57: key.CodeNumpad1,
	0x58: key.CodeNumpad2,
	0x59: key.CodeNumpad3,
	0x5A: key.CodeNumpad0,
	0x5B: key.CodeNumpadDecimal,
	0x5F: key.CodeF11,
	0x60: key.CodeF12,
	0x68: key.CodeNumpadEnter,
	0x69: key.CodeControlRight,
	0x6A: key.CodeNumpadDivide,
	0x6B: key.CodePrintScreen,
	0x6C: key.CodeAltRight,
	0x6E: key.CodeHome,
	0x6F: key.CodeArrowUp,
	0x70: key.CodePageUp,
	0x71: key.CodeArrowLeft,
	0x72: key.CodeArrowRight,
	0x73: key.CodeEnd,
	0x74: key.CodeArrowDown,
	0x75: key.CodePageDown,
	0x76: key.CodeInsert,
	0x77: key.CodeDelete,
	0x7D: key.CodeNumpadEqual,
	0x81: key.CodeNumpadComma,
	0x85: key.CodeMetaLeft,
	0x86: key.CodeMetaRight,
	0x87: key.CodeContextMenu,
}

var win32Keys = [0x160]key.Code{
	0x001: key.CodeEscape,
	0x002: key.CodeD1,
	0x003: key.CodeD2,
	0x004: key.CodeD3,
	0x005: key.CodeD4,
	0x006: key.CodeD5,
	0x007: key.CodeD6,
	0x008: key.CodeD7,
	0x009: key.CodeD8,
	0x00A: key.CodeD9,
	0x00B: key.CodeD0,
	0x00C: key.CodeMinus,
	0x00D: key.CodeEqual,
	0x00E: key.CodeBackspace,
	0x00F: key.CodeTab,
	0x010: key.CodeQ,
	0x011: key.CodeW,
	0x012: key.CodeE,
	0x013: key.CodeR,
	0x014: key.CodeT,
	0x015: key.CodeY,
	0x016: key.CodeU,
	0x017: key.CodeI,
	0x018: key.CodeO,
	0x019: key.CodeP,
	0x01A: key.CodeBracketLeft,
	0x01B: key.CodeBracketRight,
	0x01C: key.CodeEnter,
	0x01D: key.CodeControlLeft,
	0x01E: key.CodeA,
	0x01F: key.CodeS,
	0x020: key.CodeD,
	0x021: key.CodeF,
	0x022: key.CodeG,
	0x023: key.CodeH,
	0x024: key.CodeJ,
	0x025: key.CodeK,
	0x026: key.CodeL,
	0x027: key.CodeSemicolon,
	0x028: key.CodeQuote,
	0x029: key.CodeBackquote,
	0x02A: key.CodeShiftLeft,
	0x02B: key.CodeBackslash,
	0x02C: key.CodeZ,
	0x02D: key.CodeX,
	0x02E: key.CodeC,
	0x02F: key.CodeV,
	0x030: key.CodeB,
	0x031: key.CodeN,
	0x032: key.CodeM,
	0x033: key.CodeComma,
	0x034: key.CodePeriod,
	0x035: key.CodeSlash,
	0x036: key.CodeShiftRight,
	0x037: key.CodeNumpadMultiply,
	0x038: key.CodeAltLeft,
	0x039: key.CodeSpace,
	0x03A: key.CodeCapsLock,
	0x03B: key.CodeF1,
	0x03C: key.CodeF2,
	0x03D: key.CodeF3,
	0x03E: key.CodeF4,
	0x03F: key.CodeF5,
	0x040: key.CodeF6,
	0x041: key.CodeF7,
	0x042: key.CodeF8,
	0x043: key.CodeF9,
	0x044: key.CodeF10,
	0x046: key.CodeScrollLock,
	0x047: key.CodeNumpad7,
	0x048: key.CodeNumpad8,
	0x049: key.CodeNumpad9,
	0x04A: key.CodeNumpadSubtract,
	0x04B: key.CodeNumpad4,
	0x04C: key.CodeNumpad5,
	0x04D: key.CodeNumpad6,
	0x04E: key.CodeNumpadAdd,
	0x04F: key.CodeNumpad1,
	0x050: key.CodeNumpad2,
	0x051: key.CodeNumpad3,
	0x052: key.CodeNumpad0,
	0x053: key.CodeNumpadDecimal,
	0x054: key.CodePrintScreen,
	0x057: key.CodeF11,
	0x058: key.CodeF12,
	0x059: key.CodeNumpadEqual,
	0x07E: key.CodeNumpadComma,
	0x11C: key.CodeNumpadEnter,
	0x11D: key.CodeControlRight,
	0x135: key.CodeNumpadDivide,
	0x137: key.CodePrintScreen,
	0x138: key.CodeAltRight,
	0x145: key.CodeNumLock,
	0x147: key.CodeHome,
	0x148: key.CodeArrowUp,
	0x149: key.CodePageUp,
	0x14B: key.CodeArrowLeft,
	0x14D: key.CodeArrowRight,
	0x14F: key.CodeEnd,
	0x150: key.CodeArrowDown,
	0x151: key.CodePageDown,
	0x152: key.CodeInsert,
	0x153: key.CodeDelete,
	0x15B: key.CodeMetaLeft,
	0x15C: key.CodeMetaRight,
	0x15D: key.CodeContextMenu,
}

var macKeys = [0x80]key.Code{
	0x00: key.CodeA,
	0x01: key.CodeS,
	0x02: key.CodeD,
	0x03: key.CodeF,
	0x04: key.CodeH,
	0x05: key.CodeG,
	0x06: key.CodeZ,
	0x07: key.CodeX,
	0x08: key.CodeC,
	0x09: key.CodeV,
	0x0B: key.CodeB,
	0x0C: key.CodeQ,
	0x0D: key.CodeW,
	0x0E: key.CodeE,
	0x0F: key.CodeR,
	0x10: key.CodeY,
	0x11: key.CodeT,
	0x12: key.CodeD1,
	0x13: key.CodeD2,
	0x14: key.CodeD3,
	0x15: key.CodeD4,
	0x16: key.CodeD6,
	0x17: key.CodeD5,
	0x18: key.CodeEqual,
	0x19: key.CodeD9,
	0x1A: key.CodeD7,
	0x1B: key.CodeMinus,
	0x1C: key.CodeD8,
	0x1D: key.CodeD0,
	0x1E: key.CodeBracketRight,
	0x1F: key.CodeO,
	0x20: key.CodeU,
	0x21: key.CodeBracketLeft,
	0x22: key.CodeI,
	0x23: key.CodeP,
	0x24: key.CodeEnter,
	0x25: key.CodeL,
	0x26: key.CodeJ,
	0x27: key.CodeQuote,
	0x28: key.CodeK,
	0x29: key.CodeSemicolon,
	0x2A: key.CodeBackslash,
	0x2B: key.CodeComma,
	0x2C: key.CodeSlash,
	0x2D: key.CodeN,
	0x2E: key.CodeM,
	0x2F: key.CodePeriod,
	0x30: key.CodeTab,
	0x31: key.CodeSpace,
	0x32: key.CodeBackquote,
	0x33: key.CodeBackspace,
	0x34: key.CodeNumpadEnter,
	0x35: key.CodeEscape,
	0x36: key.CodeMetaRight,
	0x37: key.CodeMetaLeft,
	0x38: key.CodeShiftLeft,
	0x39: key.CodeCapsLock,
	0x3A: key.CodeAltLeft,
	0x3B: key.CodeControlLeft,
	0x3C: key.CodeShiftRight,
	0x3D: key.CodeAltRight,
	0x3E: key.CodeControlRight,
	0x3F: key.CodeFn,
	0x41: key.CodeNumpadDecimal,
	0x43: key.CodeNumpadMultiply,
	0x45: key.CodeNumpadAdd,
	0x47: key.CodeNumLock,
	0x4B: key.CodeNumpadDivide,
	0x4C: key.CodeNumpadEnter,
	0x4E: key.CodeNumpadSubtract,
	0x51: key.CodeNumpadEqual,
	0x52: key.CodeNumpad0,
	0x53: key.CodeNumpad1,
	0x54: key.CodeNumpad2,
	0x55: key.CodeNumpad3,
	0x56: key.CodeNumpad4,
	0x57: key.CodeNumpad5,
	0x58: key.CodeNumpad6,
	0x59: key.CodeNumpad7,
	0x5B: key.CodeNumpad8,
	0x5C: key.CodeNumpad9,
	0x5F: key.CodeNumpadComma,
	0x60: key.CodeF5,
	0x61: key.CodeF6,
	0x62: key.CodeF7,
	0x63: key.CodeF3,
	0x64: key.CodeF8,
	0x65: key.CodeF9,
	0x67: key.CodeF11,
	0x69: key.CodePrintScreen,
	0x6D: key.CodeF10,
	0x6E: key.CodeContextMenu,
	0x6F: key.CodeF12,
	0x72: key.CodeInsert,
	0x73: key.CodeHome,
	0x74: key.CodePageUp,
	0x75: key.CodeDelete,
	0x76: key.CodeF4,
	0x77: key.CodeEnd,
	0x78: key.CodeF2,
	0x79: key.CodePageDown,
	0x7A: key.CodeF1,
	0x7B: key.CodeArrowLeft,
	0x7C: key.CodeArrowRight,
	0x7D: key.CodeArrowDown,
	0x7E: key.CodeArrowUp,
}
