// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	syscall "golang.org/x/sys/windows"

	"picoview.org/app/internal/keymap"
	"picoview.org/app/internal/pacer"
	"picoview.org/app/internal/shared"
	"picoview.org/app/internal/windows"
	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

const (
	_WM_USER_FRAME = windows.WM_USER + 1 + iota
	_WM_USER_KILL
	_WM_USER_KEY_DOWN
	_WM_USER_KEY_UP
	_WM_USER_WAKEUP
)

// win32Conn is the per-process state shared by all windows.
type win32Conn struct {
	hinst   syscall.Handle
	cursors *cursorCache[syscall.Handle]
	vsync   *dxgiVSync
	pacer   *pacer.Pacer[syscall.Handle]

	mu    sync.Mutex
	hooks map[uint32]syscall.Handle
}

type win32Window struct {
	w      *Window
	conn   *win32Conn
	hwnd   syscall.Handle
	parent syscall.Handle
	class  uint16
	gl     *wglContext
	ctx    gl.Context

	blocking  bool
	resizable bool
	minSize   windows.Point
	maxSize   windows.Point
	cursor    syscall.Handle
}

// winMap maps win32 HWNDs to *windows.
var winMap sync.Map

var win32Shared shared.Value[win32Conn]

func init() {
	win32Shared.New = newWin32Conn
	win32Shared.Destroy = (*win32Conn).destroy
}

var (
	wndProc    = sync.OnceValue(func() uintptr { return syscall.NewCallback(windowProc) })
	hookProc   = sync.OnceValue(func() uintptr { return syscall.NewCallback(keyboardHook) })
	retireProc = sync.OnceValue(func() uintptr { return syscall.NewCallback(retireTimer) })
)

// retiredClass is a window class whose window is being destroyed. The
// class can only be unregistered once the window is gone.
type retiredClass struct {
	class uint16
	hinst syscall.Handle
	tid   uint32
}

// retired maps thread timer ids to retired classes.
var retired sync.Map

// retireClass unregisters class on the next timer tick of the calling
// thread. The tick is dispatched by whatever loop pumps the thread.
func retireClass(class uint16, hinst syscall.Handle) {
	id := windows.SetTimer(0, 0, 0, retireProc())
	if id == 0 {
		windows.UnregisterClass(class, hinst)
		return
	}
	retired.Store(id, retiredClass{class: class, hinst: hinst, tid: syscall.GetCurrentThreadId()})
}

func retireTimer(hwnd syscall.Handle, msg uint32, id uintptr, tick uint32) uintptr {
	windows.KillTimer(0, id)
	if v, ok := retired.LoadAndDelete(id); ok {
		rc := v.(retiredClass)
		windows.UnregisterClass(rc.class, rc.hinst)
	}
	return 0
}

// flushRetired unregisters the classes retired on the calling thread
// whose timer has not fired.
func flushRetired() {
	tid := syscall.GetCurrentThreadId()
	retired.Range(func(k, v any) bool {
		if rc := v.(retiredClass); rc.tid == tid {
			windows.KillTimer(0, k.(uintptr))
			retired.Delete(k)
			windows.UnregisterClass(rc.class, rc.hinst)
		}
		return true
	})
}

func newWin32Conn() (*win32Conn, error) {
	hinst, err := windows.GetModuleHandle()
	if err != nil {
		return nil, platformErr("GetModuleHandle", err)
	}
	c := &win32Conn{
		hinst:   hinst,
		cursors: newCursorCache(loadCursor),
		vsync:   newDXGIVSync(),
		hooks:   make(map[uint32]syscall.Handle),
	}
	c.pacer = pacer.New[syscall.Handle](c.vsync, func(hwnd syscall.Handle) {
		windows.SendMessage(hwnd, _WM_USER_FRAME, 0, 0)
	})
	return c, nil
}

func (c *win32Conn) destroy() {
	c.mu.Lock()
	for tid, h := range c.hooks {
		windows.UnhookWindowsHookEx(h)
		delete(c.hooks, tid)
	}
	c.mu.Unlock()
	// The worker may be blocked sending a frame to the calling thread.
	go func() {
		c.pacer.Close()
		c.vsync.release()
	}()
}

// installHook routes the keyboard messages of the calling thread through
// keyboardHook.
func (c *win32Conn) installHook() error {
	tid := syscall.GetCurrentThreadId()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.hooks[tid]; ok {
		return nil
	}
	h, err := windows.SetWindowsHookEx(windows.WH_GETMESSAGE, hookProc(), 0, tid)
	if err != nil {
		return err
	}
	c.hooks[tid] = h
	return nil
}

func loadCursor(c pointer.Cursor) (syscall.Handle, error) {
	var id uint16
	switch c {
	case pointer.CursorHidden:
		return 0, nil
	case pointer.CursorHelp:
		id = windows.IDC_HELP
	case pointer.CursorCell, pointer.CursorCrosshair:
		id = windows.IDC_CROSS
	case pointer.CursorText, pointer.CursorVerticalText:
		id = windows.IDC_IBEAM
	case pointer.CursorMove, pointer.CursorAllScroll, pointer.CursorZoomIn, pointer.CursorZoomOut, pointer.CursorHandGrabbing:
		id = windows.IDC_SIZEALL
	case pointer.CursorNotAllowed, pointer.CursorPtrNotAllowed:
		id = windows.IDC_NO
	case pointer.CursorEResize, pointer.CursorWResize, pointer.CursorEwResize, pointer.CursorColResize:
		id = windows.IDC_SIZEWE
	case pointer.CursorNResize, pointer.CursorSResize, pointer.CursorNsResize, pointer.CursorRowResize:
		id = windows.IDC_SIZENS
	case pointer.CursorNeResize, pointer.CursorSwResize, pointer.CursorNeswResize:
		id = windows.IDC_SIZENESW
	case pointer.CursorNwResize, pointer.CursorSeResize, pointer.CursorNwseResize:
		id = windows.IDC_SIZENWSE
	case pointer.CursorHand:
		id = windows.IDC_HAND
	case pointer.CursorWorking, pointer.CursorPtrWorking:
		id = windows.IDC_WAIT
	default:
		id = windows.IDC_ARROW
	}
	return windows.LoadCursor(id)
}

func openBlocking(f Factory, cnf config) error {
	errc := make(chan error, 1)
	go func() {
		// GetMessage and PeekMessage can filter on a window HWND, but
		// then thread-specific messages such as WM_QUIT are ignored.
		// Instead lock the thread so window messages arrive through
		// unfiltered GetMessage calls.
		runtime.LockOSThread()
		if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
			errc <- platformErr("CoInitializeEx", err)
			return
		}
		defer ole.CoUninitialize()
		if err := openWindow(f, cnf, 0, true); err != nil {
			errc <- err
			return
		}
		errc <- loop()
	}()
	return <-errc
}

func openEmbedded(f Factory, cnf config, parent RawHandle) error {
	h, err := parentHandle[Win32Handle](parent)
	if err != nil {
		return err
	}
	if h.HWND == 0 {
		return ErrInvalidParent
	}
	return openWindow(f, cnf, syscall.Handle(h.HWND), false)
}

func loop() error {
	msg := new(windows.Msg)
	for {
		switch ret := windows.GetMessage(msg, 0, 0, 0); ret {
		case -1:
			return platformErr("GetMessage", nil)
		case 0:
			// WM_QUIT received.
			flushRetired()
			return nil
		}
		windows.TranslateMessage(msg)
		windows.DispatchMessage(msg)
	}
}

func openWindow(f Factory, cnf config, parent syscall.Handle, blocking bool) (err error) {
	conn, err := win32Shared.Acquire()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			win32Shared.Release()
		}
	}()
	windows.SetThreadDpiAwarenessContext()
	if err := conn.installHook(); err != nil {
		return platformErr("SetWindowsHookEx", err)
	}

	guid, err := syscall.GenerateGUID()
	if err != nil {
		return platformErr("CoCreateGuid", err)
	}
	arrow, err := conn.cursors.get(pointer.CursorDefault)
	if err != nil {
		return platformErr("LoadCursor", err)
	}
	wcls := windows.WndClassEx{
		CbSize:        uint32(unsafe.Sizeof(windows.WndClassEx{})),
		LpfnWndProc:   wndProc(),
		HInstance:     conn.hinst,
		HCursor:       arrow,
		LpszClassName: syscall.StringToUTF16Ptr("picoview-" + strings.Trim(guid.String(), "{}")),
	}
	class, err := windows.RegisterClassEx(&wcls)
	if err != nil {
		return platformErr("RegisterClassEx", err)
	}
	defer func() {
		if err != nil {
			windows.UnregisterClass(class, conn.hinst)
		}
	}()

	style := windowStyle(cnf, parent != 0)
	var exStyle uint32
	if cnf.Transparent && parent == 0 {
		exStyle |= windows.WS_EX_LAYERED
	}
	size := outerSize(cnf.Size, style)
	x, y := windowOrigin(cnf, parent != 0, size)
	hwnd, err := windows.CreateWindowEx(exStyle, class, cnf.Title, style,
		x, y, size.X, size.Y,
		parent, 0, conn.hinst, 0)
	if err != nil {
		return platformErr("CreateWindowEx", err)
	}
	defer func() {
		if err != nil {
			windows.DestroyWindow(hwnd)
		}
	}()

	w := &win32Window{
		conn:      conn,
		hwnd:      hwnd,
		parent:    parent,
		class:     class,
		blocking:  blocking,
		resizable: cnf.resizable(),
		minSize:   size,
		maxSize:   size,
		cursor:    arrow,
	}
	if w.resizable {
		w.minSize = outerSize(*cnf.MinSize, style)
		w.maxSize = outerSize(*cnf.MaxSize, style)
	}
	log := cnf.Logger.With("backend", "win32")
	if cnf.Transparent && parent == 0 {
		windows.SetLayeredWindowAttributes(hwnd, 255)
	}
	if cnf.Blur {
		if err := windows.DwmEnableBlurBehindWindow(hwnd, true); err != nil {
			log.Debug("blur behind window", "err", err)
		}
	}
	if cnf.GL != nil {
		ctx, err := newWGLContext(hwnd, *cnf.GL, log)
		switch {
		case err == nil:
			w.gl = ctx
			w.ctx = ctx
		case cnf.GL.Optional:
			log.Info("OpenGL unavailable", "err", err)
		default:
			return err
		}
	}

	w.w = newWindow(w, log)
	winMap.Store(hwnd, w)
	w.w.start(f)
	scale := float32(windows.GetDpiForWindow(hwnd)) / windows.USER_DEFAULT_SCREEN_DPI
	w.w.event(system.ScaleEvent{Scale: scale})
	conn.pacer.Register(hwnd)
	return nil
}

func windowStyle(cnf config, embedded bool) uint32 {
	var style uint32
	if embedded {
		style = windows.WS_CHILD
	} else {
		if cnf.Decorated {
			style = windows.WS_OVERLAPPEDWINDOW
		} else {
			style = windows.WS_POPUP
		}
		if !cnf.resizable() {
			style &^= windows.WS_MAXIMIZEBOX | windows.WS_SIZEBOX
		}
	}
	if cnf.Visible {
		style |= windows.WS_VISIBLE
	}
	return style
}

// outerSize converts a client size to a window size.
func outerSize(sz system.Size, style uint32) windows.Point {
	r := windows.Rect{Right: clampInt32(sz.Width), Bottom: clampInt32(sz.Height)}
	windows.AdjustWindowRectEx(&r, style, 0, 0)
	return windows.Point{X: r.Right - r.Left, Y: r.Bottom - r.Top}
}

func clampInt32(v uint32) int32 {
	const limit = 1<<31/2 - 1
	if v > limit {
		return limit
	}
	return int32(v)
}

// windowOrigin returns the requested position, the parent origin for
// embedded windows, or the center of the desktop.
func windowOrigin(cnf config, embedded bool, size windows.Point) (int32, int32) {
	switch {
	case cnf.Position != nil:
		return cnf.Position.Round()
	case embedded:
		return 0, 0
	}
	r := windows.GetClientRect(windows.GetDesktopWindow())
	if r.Right-r.Left == 0 {
		return windows.CW_USEDEFAULT, windows.CW_USEDEFAULT
	}
	return r.Left + (r.Right-r.Left-size.X)/2, r.Top + (r.Bottom-r.Top-size.Y)/2
}

func keyboardHook(code int32, wParam, lParam uintptr) uintptr {
	if code == windows.HC_ACTION && wParam == windows.PM_REMOVE {
		msg := (*windows.Msg)(unsafe.Pointer(lParam))
		var user uint32
		switch msg.Message {
		case windows.WM_KEYDOWN, windows.WM_SYSKEYDOWN:
			user = _WM_USER_KEY_DOWN
		case windows.WM_KEYUP, windows.WM_SYSKEYUP:
			user = _WM_USER_KEY_UP
		}
		if _, ours := winMap.Load(msg.Hwnd); ours && user != 0 {
			if windows.SendMessage(msg.Hwnd, user, msg.WParam, msg.LParam) != 0 {
				// Captured: hide the key from the rest of the pipeline.
				msg.Message = windows.WM_USER
			}
		}
	}
	return windows.CallNextHookEx(0, code, wParam, lParam)
}

func windowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	win, exists := winMap.Load(hwnd)
	if !exists {
		return windows.DefWindowProc(hwnd, msg, wParam, lParam)
	}

	w := win.(*win32Window)

	switch msg {
	case windows.WM_MOVE:
		p := windows.SignedPoint(lParam)
		origin := f32.Pt(float32(p.X), float32(p.Y))
		if w.w.state.Move(origin) {
			w.w.event(system.MoveEvent{Origin: origin})
		}
		w.conn.pacer.MarkMoved()
	case windows.WM_CLOSE:
		// The handler decides; Window.Close destroys the window.
		w.w.event(system.CloseEvent{})
		return 0
	case windows.WM_SHOWWINDOW, windows.WM_DISPLAYCHANGE:
		w.conn.pacer.MarkMoved()
	case windows.WM_SIZE:
		sz := system.Size{Width: uint32(windows.LoWord(lParam)), Height: uint32(windows.HiWord(lParam))}
		if w.w.state.Resize(sz) {
			w.w.event(system.ResizeEvent{Size: sz})
		}
		w.conn.pacer.MarkMoved()
	case windows.WM_DPICHANGED:
		dpi := windows.LoWord(wParam)
		w.w.event(system.ScaleEvent{Scale: float32(dpi) / windows.USER_DEFAULT_SCREEN_DPI})
	case windows.WM_LBUTTONDOWN:
		w.pointerButton(pointer.ButtonLeft, true)
	case windows.WM_LBUTTONUP:
		w.pointerButton(pointer.ButtonLeft, false)
	case windows.WM_RBUTTONDOWN:
		w.pointerButton(pointer.ButtonRight, true)
	case windows.WM_RBUTTONUP:
		w.pointerButton(pointer.ButtonRight, false)
	case windows.WM_MBUTTONDOWN:
		w.pointerButton(pointer.ButtonMiddle, true)
	case windows.WM_MBUTTONUP:
		w.pointerButton(pointer.ButtonMiddle, false)
	case windows.WM_XBUTTONDOWN, windows.WM_XBUTTONUP:
		press := msg == windows.WM_XBUTTONDOWN
		switch windows.HiWord(wParam) {
		case windows.XBUTTON1:
			w.pointerButton(pointer.ButtonBack, press)
		case windows.XBUTTON2:
			w.pointerButton(pointer.ButtonForward, press)
		}
		// Processed XBUTTON messages must return TRUE.
		return 1
	case windows.WM_MOUSEWHEEL:
		w.scrollEvent(wParam, false)
	case windows.WM_MOUSEHWHEEL:
		w.scrollEvent(wParam, true)
	case windows.WM_MOUSELEAVE:
		w.w.event(pointer.LeaveEvent{})
	case windows.WM_MOUSEMOVE:
		windows.TrackMouseEvent(hwnd, windows.TME_LEAVE)
		p := windows.SignedPoint(lParam)
		w.w.event(pointer.MoveEvent{Position: &f32.Point{X: float32(p.X), Y: float32(p.Y)}})
	case windows.WM_SETCURSOR:
		if windows.LoWord(lParam) == windows.HTCLIENT {
			windows.SetCursor(w.cursor)
			return 1
		}
	case windows.WM_GETMINMAXINFO:
		mm := (*windows.MinMaxInfo)(unsafe.Pointer(lParam))
		mm.PtMinTrackSize = w.minSize
		mm.PtMaxTrackSize = w.maxSize
		mm.PtMaxSize = w.maxSize
		return 0
	case windows.WM_SETFOCUS:
		if w.w.state.Focus(true) {
			w.w.event(system.FocusEvent{Focus: true})
		}
	case windows.WM_KILLFOCUS:
		if w.w.state.Focus(false) {
			w.w.event(system.FocusEvent{Focus: false})
		}
	case windows.WM_PAINT:
		if r, ok := windows.GetUpdateRect(hwnd); ok {
			w.w.event(system.InvalidateEvent{
				Top:    uint32(max(r.Top, 0)),
				Left:   uint32(max(r.Left, 0)),
				Bottom: uint32(max(r.Bottom, 0)),
				Right:  uint32(max(r.Right, 0)),
			})
			windows.ValidateRgn(hwnd)
		}
		return 0
	case _WM_USER_KEY_DOWN, _WM_USER_KEY_UP:
		scan := uint16((lParam >> 16) & 0x1FF)
		code := keymap.Win32(scan)
		if code == key.CodeUnknown {
			return 0
		}
		var capture bool
		if msg == _WM_USER_KEY_DOWN {
			w.w.event(key.PressEvent{Code: code, Capture: &capture})
		} else {
			w.w.event(key.ReleaseEvent{Code: code, Capture: &capture})
		}
		if capture {
			return 1
		}
		return 0
	case _WM_USER_FRAME:
		if m := asyncModifiers(); w.w.state.SetModifiers(m) {
			w.w.event(key.ModifiersEvent{Modifiers: m})
		}
		w.w.event(system.FrameEvent{GL: w.ctx})
		return 0
	case _WM_USER_WAKEUP:
		w.w.event(system.WakeupEvent{})
		return 0
	case _WM_USER_KILL:
		windows.DestroyWindow(hwnd)
		return 0
	case windows.WM_DESTROY:
		w.destroy()
		return 0
	}

	return windows.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (w *win32Window) pointerButton(btn pointer.Button, press bool) {
	if press {
		w.w.event(pointer.PressEvent{Button: btn})
		if w.w.state.Press() {
			windows.SetFocus(w.hwnd)
			windows.SetCapture(w.hwnd)
		}
		return
	}
	w.w.event(pointer.ReleaseEvent{Button: btn})
	if w.w.state.Release() {
		windows.ReleaseCapture()
	}
}

func (w *win32Window) scrollEvent(wParam uintptr, horizontal bool) {
	dist := float32(int16(windows.HiWord(wParam))) / windows.WHEEL_DELTA
	if horizontal {
		w.w.event(pointer.ScrollEvent{X: dist})
	} else {
		w.w.event(pointer.ScrollEvent{Y: dist})
	}
}

// destroy runs from WM_DESTROY, while the HWND is still valid.
func (w *win32Window) destroy() {
	w.conn.pacer.Unregister(w.hwnd)
	w.w.drop()
	if w.gl != nil {
		w.gl.release()
		w.gl, w.ctx = nil, nil
	}
	winMap.Delete(w.hwnd)
	retireClass(w.class, w.conn.hinst)
	if w.blocking {
		windows.PostQuitMessage(0)
	}
	win32Shared.Release()
}

func asyncModifiers() key.Modifiers {
	down := func(vk int32) bool { return windows.GetAsyncKeyState(vk) != 0 }
	toggled := func(vk int32) bool { return windows.GetKeyState(vk)&1 != 0 }
	return keymap.Win32KeyState{
		Shift:      down(windows.VK_SHIFT),
		Control:    down(windows.VK_CONTROL),
		Menu:       down(windows.VK_MENU),
		Win:        down(windows.VK_LWIN) || down(windows.VK_RWIN),
		CapsLock:   toggled(windows.VK_CAPITAL),
		NumLock:    toggled(windows.VK_NUMLOCK),
		ScrollLock: toggled(windows.VK_SCROLL),
	}.Modifiers()
}

func (w *win32Window) requestClose() {
	if err := windows.PostMessage(w.hwnd, _WM_USER_KILL, 0, 0); err != nil {
		w.w.log.Debug("close", "err", err)
	}
}

func (w *win32Window) handle() RawHandle {
	return Win32Handle{HWND: uintptr(w.hwnd)}
}

func (w *win32Window) setTitle(title string) {
	windows.SetWindowText(w.hwnd, title)
}

func (w *win32Window) setCursor(c pointer.Cursor) {
	h, err := w.conn.cursors.get(c)
	if err != nil {
		w.w.log.Debug("load cursor", "cursor", c, "err", err)
		return
	}
	w.cursor = h
}

func (w *win32Window) setCursorPosition(p f32.Point) {
	x, y := p.Round()
	pt := windows.Point{X: x, Y: y}
	if windows.ClientToScreen(w.hwnd, &pt) {
		windows.SetCursorPos(pt.X, pt.Y)
	}
}

func (w *win32Window) setSize(sz system.Size) {
	style := windows.GetWindowLong(w.hwnd, windows.GWL_STYLE)
	size := outerSize(sz, style)
	if !w.resizable {
		w.minSize, w.maxSize = size, size
	}
	windows.SetWindowPos(w.hwnd, 0, 0, 0, size.X, size.Y,
		windows.SWP_NOZORDER|windows.SWP_NOMOVE|windows.SWP_NOACTIVATE)
}

func (w *win32Window) setPosition(p f32.Point) {
	x, y := p.Round()
	windows.SetWindowPos(w.hwnd, 0, x, y, 0, 0,
		windows.SWP_NOZORDER|windows.SWP_NOSIZE|windows.SWP_NOACTIVATE)
}

func (w *win32Window) setVisible(visible bool) {
	flags := uint32(windows.SWP_NOZORDER | windows.SWP_NOSIZE | windows.SWP_NOMOVE | windows.SWP_NOACTIVATE)
	if visible {
		flags |= windows.SWP_SHOWWINDOW
	} else {
		flags |= windows.SWP_HIDEWINDOW
	}
	windows.SetWindowPos(w.hwnd, 0, 0, 0, 0, 0, flags)
}

func (w *win32Window) setKeyboardInput(focus bool) {
	switch {
	case focus:
		windows.SetFocus(w.hwnd)
	case w.parent != 0:
		windows.SetFocus(w.parent)
	}
}

func (w *win32Window) openURL(url string) bool {
	verb, err := syscall.UTF16PtrFromString("open")
	if err != nil {
		return false
	}
	file, err := syscall.UTF16PtrFromString(url)
	if err != nil {
		return false
	}
	if err := syscall.ShellExecute(w.hwnd, verb, file, nil, nil, windows.SW_SHOWDEFAULT); err != nil {
		w.w.log.Debug("open url", "url", url, "err", err)
		return false
	}
	return true
}

func (w *win32Window) readClipboard() (string, bool) {
	s, err := w.clipboardText()
	if err != nil {
		w.w.log.Debug("read clipboard", "err", err)
		return "", false
	}
	return s, true
}

func (w *win32Window) clipboardText() (string, error) {
	if err := windows.OpenClipboard(w.hwnd); err != nil {
		return "", err
	}
	defer windows.CloseClipboard()
	mem, err := windows.GetClipboardData(windows.CF_UNICODETEXT)
	if err != nil {
		return "", err
	}
	ptr, err := windows.GlobalLock(mem)
	if err != nil {
		return "", err
	}
	defer windows.GlobalUnlock(mem)
	return syscall.UTF16PtrToString((*uint16)(ptr)), nil
}

func (w *win32Window) writeClipboard(s string) bool {
	if err := w.setClipboardText(s); err != nil {
		w.w.log.Debug("write clipboard", "err", err)
		return false
	}
	return true
}

func (w *win32Window) setClipboardText(s string) error {
	if err := windows.OpenClipboard(w.hwnd); err != nil {
		return err
	}
	defer windows.CloseClipboard()
	if err := windows.EmptyClipboard(); err != nil {
		return err
	}
	u16, err := syscall.UTF16FromString(s)
	if err != nil {
		return err
	}
	n := len(u16) * int(unsafe.Sizeof(u16[0]))
	mem, err := windows.GlobalAlloc(uintptr(n))
	if err != nil {
		return err
	}
	ptr, err := windows.GlobalLock(mem)
	if err != nil {
		windows.GlobalFree(mem)
		return err
	}
	copy(unsafe.Slice((*uint16)(ptr), len(u16)), u16)
	windows.GlobalUnlock(mem)
	if err := windows.SetClipboardData(windows.CF_UNICODETEXT, mem); err != nil {
		windows.GlobalFree(mem)
		return err
	}
	return nil
}

func (w *win32Window) wakeup() error {
	if err := windows.PostMessage(w.hwnd, _WM_USER_WAKEUP, 0, 0); err != nil {
		return errors.Join(ErrDisconnected, fmt.Errorf("wakeup: %w", err))
	}
	return nil
}
