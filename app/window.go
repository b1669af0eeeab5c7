// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"log/slog"

	"picoview.org/app/internal/window"
	"picoview.org/f32"
	"picoview.org/io/event"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// Window is an open native window. It is passed to the Factory and is
// only valid on the window's thread, except for the Waker.
//
// Every method is a no-op returning the zero value once the window is
// closed.
type Window struct {
	driver driver
	state  *window.State
	disp   *window.Dispatcher
	log    *slog.Logger
	waker  *Waker
}

// driver is the interface for the platform implementation of a window.
type driver interface {
	// requestClose asks the native window to destroy itself. The
	// teardown runs outside the caller's event.
	requestClose()
	handle() RawHandle
	setTitle(title string)
	setCursor(c pointer.Cursor)
	setCursorPosition(p f32.Point)
	setSize(sz system.Size)
	setPosition(p f32.Point)
	setVisible(visible bool)
	setKeyboardInput(focus bool)
	openURL(url string) bool
	readClipboard() (string, bool)
	writeClipboard(s string) bool
	// wakeup posts a system.WakeupEvent. It is called from any
	// goroutine.
	wakeup() error
}

// Waker wakes a window up from another goroutine.
type Waker struct {
	w *Window
}

func newWindow(d driver, log *slog.Logger) *Window {
	w := &Window{
		driver: d,
		state:  new(window.State),
		disp:   new(window.Dispatcher),
		log:    log,
	}
	w.waker = &Waker{w: w}
	return w
}

// start runs the factory and delivers the OpenEvent.
func (w *Window) start(f Factory) {
	w.disp.SetHandler(f(w))
	w.event(system.OpenEvent{})
}

// event delivers e unless the window is closed.
func (w *Window) event(e event.Event) {
	if w.state.Closed() {
		return
	}
	w.disp.Send(e)
}

// drop latches the window closed and releases the handler. It is the
// first step of every teardown, after the pacer has been stopped.
func (w *Window) drop() {
	w.state.Close()
	w.disp.Drop()
}

// Close closes the window. The handler receives a system.DestroyEvent
// before the native window is destroyed. DestroyEvent is the only event
// delivered after Close.
func (w *Window) Close() {
	if !w.state.Close() {
		return
	}
	w.driver.requestClose()
}

// Handle returns the native handle of the window, or nil after close.
func (w *Window) Handle() RawHandle {
	if w.state.Closed() {
		return nil
	}
	return w.driver.handle()
}

func (w *Window) rawHandle() RawHandle {
	return w.Handle()
}

// SetTitle sets the window title. On macOS it has no effect on a window
// embedded into a bare view.
func (w *Window) SetTitle(title string) {
	if w.state.Closed() {
		return
	}
	w.driver.setTitle(title)
}

// SetCursor sets the cursor shown over the window.
func (w *Window) SetCursor(c pointer.Cursor) {
	if w.state.Closed() {
		return
	}
	if w.state.SetCursor(c) {
		w.driver.setCursor(c)
	}
}

// SetCursorPosition warps the mouse to p, in window coordinates.
func (w *Window) SetCursorPosition(p f32.Point) {
	if w.state.Closed() {
		return
	}
	w.driver.setCursorPosition(p)
}

// SetSize resizes the client area.
func (w *Window) SetSize(sz system.Size) {
	if w.state.Closed() {
		return
	}
	w.driver.setSize(sz)
}

// SetPosition moves the window.
func (w *Window) SetPosition(p f32.Point) {
	if w.state.Closed() {
		return
	}
	w.driver.setPosition(p)
}

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	if w.state.Closed() {
		return
	}
	w.driver.setVisible(visible)
}

// SetKeyboardInput claims or releases keyboard focus. An embedded window
// only receives key events while it holds keyboard input.
func (w *Window) SetKeyboardInput(focus bool) {
	if w.state.Closed() {
		return
	}
	w.driver.setKeyboardInput(focus)
}

// OpenURL opens url with the default handler of the desktop and reports
// whether it succeeded.
func (w *Window) OpenURL(url string) bool {
	if w.state.Closed() {
		return false
	}
	return w.driver.openURL(url)
}

// ReadClipboard returns the text on the clipboard.
func (w *Window) ReadClipboard() (string, bool) {
	if w.state.Closed() {
		return "", false
	}
	return w.driver.readClipboard()
}

// WriteClipboard replaces the clipboard content with s.
func (w *Window) WriteClipboard(s string) bool {
	if w.state.Closed() {
		return false
	}
	return w.driver.writeClipboard(s)
}

// Waker returns the Waker of the window. Unlike the Window, the Waker
// may be used from any goroutine.
func (w *Window) Waker() *Waker {
	return w.waker
}

// Wakeup delivers a system.WakeupEvent on the window's thread. It
// returns ErrDisconnected if the window is closed.
func (k *Waker) Wakeup() error {
	if k.w.state.Closed() {
		return ErrDisconnected
	}
	return k.w.driver.wakeup()
}
