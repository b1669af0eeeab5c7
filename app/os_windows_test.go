// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	syscall "golang.org/x/sys/windows"

	"picoview.org/app/internal/windows"
	"picoview.org/io/event"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

// openTestWindow opens a hidden top level window on the calling thread
// and returns it with its recorded events, ignoring frames.
func openTestWindow(t *testing.T) (*Window, *win32Window, *[]event.Event) {
	t.Helper()
	var (
		win    *Window
		events []event.Event
	)
	b := NewBuilder(func(w *Window) Handler {
		win = w
		return func(e event.Event) {
			if _, ok := e.(system.FrameEvent); ok {
				return
			}
			events = append(events, e)
		}
	}, Visible(false))
	require.NoError(t, openWindow(b.factory, b.cnf, 0, false))
	h, ok := win.Handle().(Win32Handle)
	require.True(t, ok)
	v, ok := winMap.Load(syscall.Handle(h.HWND))
	require.True(t, ok)
	return win, v.(*win32Window), &events
}

// pump dispatches the messages of the calling thread until done
// reports true.
func pump(t *testing.T, done func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	msg := new(windows.Msg)
	for !done() {
		if time.Now().After(deadline) {
			t.Fatal("timed out pumping messages")
		}
		for windows.PeekMessage(msg, 0, 0, 0, windows.PM_REMOVE) {
			windows.TranslateMessage(msg)
			windows.DispatchMessage(msg)
		}
		time.Sleep(time.Millisecond)
	}
}

func noRetiredClasses() bool {
	empty := true
	retired.Range(func(any, any) bool {
		empty = false
		return false
	})
	return empty
}

func closeTestWindow(t *testing.T, win *Window, hwnd syscall.Handle) {
	t.Helper()
	win.Close()
	pump(t, func() bool { return !windows.IsWindow(hwnd) && noRetiredClasses() })
}

func TestWin32CloseRequestKeepsWindow(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	win, w, events := openTestWindow(t)

	assert.Equal(t, uintptr(0), windows.SendMessage(w.hwnd, windows.WM_CLOSE, 0, 0))
	assert.True(t, windows.IsWindow(w.hwnd))
	require.NotEmpty(t, *events)
	assert.Equal(t, system.CloseEvent{}, (*events)[len(*events)-1])

	class, hinst := w.class, w.conn.hinst
	closeTestWindow(t, win, w.hwnd)
	assert.Equal(t, system.DestroyEvent{}, (*events)[len(*events)-1])
	assert.Nil(t, win.Handle())
	// Already unregistered by the teardown.
	assert.False(t, windows.UnregisterClass(class, hinst))
}

func TestWin32NativeDestroyUnregistersClass(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	win, w, events := openTestWindow(t)

	hwnd, class, hinst := w.hwnd, w.class, w.conn.hinst
	windows.DestroyWindow(hwnd)
	assert.Equal(t, system.DestroyEvent{}, (*events)[len(*events)-1])
	assert.Nil(t, win.Handle())
	pump(t, noRetiredClasses)
	assert.False(t, windows.UnregisterClass(class, hinst))
}

func TestWin32PointerMessages(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	win, w, events := openTestWindow(t)
	defer closeTestWindow(t, win, w.hwnd)

	tests := []struct {
		name   string
		msg    uint32
		wParam uintptr
		ret    uintptr
		want   event.Event
	}{
		{"wheel up", windows.WM_MOUSEWHEEL, windows.WHEEL_DELTA << 16, 0, pointer.ScrollEvent{Y: 1}},
		{"wheel down", windows.WM_MOUSEWHEEL, uintptr(uint16(0x10000-windows.WHEEL_DELTA)) << 16, 0, pointer.ScrollEvent{Y: -1}},
		{"horizontal wheel", windows.WM_MOUSEHWHEEL, windows.WHEEL_DELTA << 16, 0, pointer.ScrollEvent{X: 1}},
		{"back press", windows.WM_XBUTTONDOWN, windows.XBUTTON1 << 16, 1, pointer.PressEvent{Button: pointer.ButtonBack}},
		{"back release", windows.WM_XBUTTONUP, windows.XBUTTON1 << 16, 1, pointer.ReleaseEvent{Button: pointer.ButtonBack}},
		{"forward press", windows.WM_XBUTTONDOWN, windows.XBUTTON2 << 16, 1, pointer.PressEvent{Button: pointer.ButtonForward}},
		{"forward release", windows.WM_XBUTTONUP, windows.XBUTTON2 << 16, 1, pointer.ReleaseEvent{Button: pointer.ButtonForward}},
		{"leave", windows.WM_MOUSELEAVE, 0, 0, pointer.LeaveEvent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(*events)
			ret := windowProc(w.hwnd, tt.msg, tt.wParam, 0)
			assert.Equal(t, tt.ret, ret)
			assert.Contains(t, (*events)[n:], tt.want)
		})
	}
}

func TestWin32FocusGate(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	win, w, events := openTestWindow(t)
	defer closeTestWindow(t, win, w.hwnd)

	count := func() int {
		n := 0
		for _, e := range *events {
			if _, ok := e.(system.FocusEvent); ok {
				n++
			}
		}
		return n
	}
	windowProc(w.hwnd, windows.WM_SETFOCUS, 0, 0)
	before := count()
	windowProc(w.hwnd, windows.WM_SETFOCUS, 0, 0)
	windowProc(w.hwnd, windows.WM_KILLFOCUS, 0, 0)
	windowProc(w.hwnd, windows.WM_KILLFOCUS, 0, 0)
	assert.Equal(t, 1, count()-before)
	assert.Equal(t, system.FocusEvent{Focus: false}, lastFocus(*events))
}

func lastFocus(events []event.Event) event.Event {
	for i := len(events) - 1; i >= 0; i-- {
		if _, ok := events[i].(system.FocusEvent); ok {
			return events[i]
		}
	}
	return nil
}

func TestWin32SharedWired(t *testing.T) {
	assert.NotNil(t, win32Shared.New)
	assert.NotNil(t, win32Shared.Destroy)
}
