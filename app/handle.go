// SPDX-License-Identifier: Unlicense OR MIT

package app

// RawHandle identifies a native window. It is returned by Window.Handle
// and accepted as the parent of an embedded window. A *Window is itself
// a RawHandle.
type RawHandle interface {
	rawHandle() RawHandle
}

// X11Handle is an X11 window ID.
type X11Handle struct {
	Window uint32
}

// Win32Handle is a Win32 HWND.
type Win32Handle struct {
	HWND uintptr
}

// AppKitHandle is an NSView pointer.
type AppKitHandle struct {
	View uintptr
}

func (h X11Handle) rawHandle() RawHandle    { return h }
func (h Win32Handle) rawHandle() RawHandle  { return h }
func (h AppKitHandle) rawHandle() RawHandle { return h }

// parentHandle checks that a parent handle is of the platform's kind.
func parentHandle[T RawHandle](p RawHandle) (T, error) {
	h, ok := p.(T)
	if !ok {
		var zero T
		return zero, ErrInvalidParent
	}
	return h, nil
}
