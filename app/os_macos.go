// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && !ios

package app

import (
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/atotto/clipboard"
	"github.com/ebitengine/purego/objc"

	"picoview.org/app/internal/keymap"
	"picoview.org/f32"
	"picoview.org/gl"
	"picoview.org/io/key"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
	"picoview.org/io/transfer"
)

func init() {
	// AppKit must run on the main thread.
	runtime.LockOSThread()
}

const (
	_NSWindowStyleMaskTitled         = 1 << 0
	_NSWindowStyleMaskClosable       = 1 << 1
	_NSWindowStyleMaskMiniaturizable = 1 << 2
	_NSWindowStyleMaskResizable      = 1 << 3

	_NSBackingStoreBuffered = 2

	_NSApplicationActivationPolicyRegular = 0

	_NSEventMaskAny                  = ^uint(0)
	_NSEventTypeApplicationDefined   = 15
	_NSDragOperationCopy             = 1
	_NSTrackingMouseEnteredAndExited = 0x01
	_NSTrackingMouseMoved            = 0x02
	_NSTrackingActiveAlways          = 0x80
	_NSTrackingInVisibleRect         = 0x200
)

var (
	selAlloc                     = objc.RegisterName("alloc")
	selInit                      = objc.RegisterName("init")
	selRelease                   = objc.RegisterName("release")
	selStringWithUTF8String      = objc.RegisterName("stringWithUTF8String:")
	selUTF8String                = objc.RegisterName("UTF8String")
	selRespondsToSelector        = objc.RegisterName("respondsToSelector:")
	selIsMainThread              = objc.RegisterName("isMainThread")
	selSharedApplication         = objc.RegisterName("sharedApplication")
	selSetActivationPolicy       = objc.RegisterName("setActivationPolicy:")
	selFinishLaunching           = objc.RegisterName("finishLaunching")
	selActivateIgnoringOtherApps = objc.RegisterName("activateIgnoringOtherApps:")
	selNextEventMatchingMask     = objc.RegisterName("nextEventMatchingMask:untilDate:inMode:dequeue:")
	selSendEvent                 = objc.RegisterName("sendEvent:")
	selPostEventAtStart          = objc.RegisterName("postEvent:atStart:")
	selOtherEventWithType        = objc.RegisterName("otherEventWithType:location:modifierFlags:timestamp:windowNumber:context:subtype:data1:data2:")
	selDistantFuture             = objc.RegisterName("distantFuture")

	selInitWithContentRect     = objc.RegisterName("initWithContentRect:styleMask:backing:defer:")
	selInitWithFrame           = objc.RegisterName("initWithFrame:")
	selSetContentView          = objc.RegisterName("setContentView:")
	selSetDelegate             = objc.RegisterName("setDelegate:")
	selSetReleasedWhenClosed   = objc.RegisterName("setReleasedWhenClosed:")
	selSetAcceptsMouseMoved    = objc.RegisterName("setAcceptsMouseMovedEvents:")
	selSetTitle                = objc.RegisterName("setTitle:")
	selSetOpaque               = objc.RegisterName("setOpaque:")
	selSetBackgroundColor      = objc.RegisterName("setBackgroundColor:")
	selClearColor              = objc.RegisterName("clearColor")
	selSetContentSize          = objc.RegisterName("setContentSize:")
	selSetContentMinSize       = objc.RegisterName("setContentMinSize:")
	selSetContentMaxSize       = objc.RegisterName("setContentMaxSize:")
	selSetFrameTopLeftPoint    = objc.RegisterName("setFrameTopLeftPoint:")
	selCenter                  = objc.RegisterName("center")
	selMakeKeyAndOrderFront    = objc.RegisterName("makeKeyAndOrderFront:")
	selOrderFront              = objc.RegisterName("orderFront:")
	selOrderOut                = objc.RegisterName("orderOut:")
	selClose                   = objc.RegisterName("close")
	selMakeFirstResponder      = objc.RegisterName("makeFirstResponder:")
	selConvertPointToScreen    = objc.RegisterName("convertPointToScreen:")
	selBackingScaleFactor      = objc.RegisterName("backingScaleFactor")
	selScreen                  = objc.RegisterName("screen")
	selScreens                 = objc.RegisterName("screens")
	selMainScreen              = objc.RegisterName("mainScreen")
	selDeviceDescription       = objc.RegisterName("deviceDescription")
	selObjectForKey            = objc.RegisterName("objectForKey:")
	selUnsignedIntValue        = objc.RegisterName("unsignedIntValue")
	selFrame                   = objc.RegisterName("frame")
	selBounds                  = objc.RegisterName("bounds")
	selWindow                  = objc.RegisterName("window")
	selAddSubview              = objc.RegisterName("addSubview:")
	selRemoveFromSuperview     = objc.RegisterName("removeFromSuperview")
	selSetFrameSize            = objc.RegisterName("setFrameSize:")
	selSetFrameOrigin          = objc.RegisterName("setFrameOrigin:")
	selSetHidden               = objc.RegisterName("setHidden:")
	selConvertPointFromView    = objc.RegisterName("convertPoint:fromView:")
	selConvertPointToView      = objc.RegisterName("convertPoint:toView:")
	selInitTrackingArea        = objc.RegisterName("initWithRect:options:owner:userInfo:")
	selAddTrackingArea         = objc.RegisterName("addTrackingArea:")
	selRegisterForDraggedTypes = objc.RegisterName("registerForDraggedTypes:")
	selArrayWithObject         = objc.RegisterName("arrayWithObject:")
	selSetWantsBestResolution  = objc.RegisterName("setWantsBestResolutionOpenGLSurface:")
	selCount                   = objc.RegisterName("count")
	selObjectAtIndex           = objc.RegisterName("objectAtIndex:")
	selDraggingPasteboard      = objc.RegisterName("draggingPasteboard")
	selPropertyListForType     = objc.RegisterName("propertyListForType:")
	selArrowCursor             = objc.RegisterName("arrowCursor")
	selSet                     = objc.RegisterName("set")
	selHide                    = objc.RegisterName("hide")
	selUnhide                  = objc.RegisterName("unhide")

	selKeyCode          = objc.RegisterName("keyCode")
	selModifierFlags    = objc.RegisterName("modifierFlags")
	selLocationInWindow = objc.RegisterName("locationInWindow")
	selButtonNumber     = objc.RegisterName("buttonNumber")
	selDeltaX           = objc.RegisterName("deltaX")
	selDeltaY           = objc.RegisterName("deltaY")
	selMagnification    = objc.RegisterName("magnification")
	selRotation         = objc.RegisterName("rotation")
)

type appkitWindow struct {
	w    *Window
	conn *appkitConn
	view objc.ID
	// window and delegate are nil for embedded views.
	window   objc.ID
	delegate objc.ID
	gl       *nsglContext
	ctx      gl.Context

	resizable bool
	keyboard  bool
	cursor    objc.ID
	hidden    bool
	dead      bool

	closing atomic.Bool
	woken   atomic.Bool
}

var launch sync.Once

func openBlocking(f Factory, cnf config) error {
	if !isMainThread() {
		return platformErr("OpenBlocking", errors.New("must be called on the main goroutine"))
	}
	pool := newAutoreleasePool()
	defer pool.Send(selRelease)
	app := nsApp()
	launch.Do(func() {
		app.Send(selSetActivationPolicy, _NSApplicationActivationPolicyRegular)
		app.Send(selFinishLaunching)
	})
	w, err := openWindow(f, cnf, 0)
	if err != nil {
		return err
	}
	future := objc.ID(objc.GetClass("NSDate")).Send(selDistantFuture)
	mode := nsString("kCFRunLoopDefaultMode")
	for !w.dead {
		p := newAutoreleasePool()
		if ev := app.Send(selNextEventMatchingMask, _NSEventMaskAny, future, mode, true); ev != 0 {
			app.Send(selSendEvent, ev)
		}
		p.Send(selRelease)
	}
	return nil
}

func openEmbedded(f Factory, cnf config, parent RawHandle) error {
	h, err := parentHandle[AppKitHandle](parent)
	if err != nil {
		return err
	}
	if h.View == 0 {
		return ErrInvalidParent
	}
	if !isMainThread() {
		return platformErr("OpenEmbedded", errors.New("must be called on the main thread"))
	}
	_, err = openWindow(f, cnf, objc.ID(h.View))
	return err
}

func openWindow(f Factory, cnf config, parent objc.ID) (_ *appkitWindow, err error) {
	conn, err := appkitShared.Acquire()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			appkitShared.Release()
		}
	}()
	log := cnf.Logger.With("backend", "appkit")
	w := &appkitWindow{
		conn:      conn,
		resizable: cnf.resizable(),
	}
	rect := nsRect{Size: nsSize{
		Width:  float64(max(cnf.Size.Width, 1)),
		Height: float64(max(cnf.Size.Height, 1)),
	}}
	if parent != 0 && cnf.Position != nil {
		rect.Origin = nsPoint{X: float64(cnf.Position.X), Y: float64(cnf.Position.Y)}
	}
	w.view = objc.ID(conn.classes.view).Send(selAlloc).Send(selInitWithFrame, rect)
	if w.view == 0 {
		return nil, platformErr("NSView initWithFrame", nil)
	}
	defer func() {
		if err != nil {
			w.release()
		}
	}()
	area := objc.ID(objc.GetClass("NSTrackingArea")).Send(selAlloc).Send(selInitTrackingArea, rect,
		uint(_NSTrackingMouseEnteredAndExited|_NSTrackingMouseMoved|_NSTrackingActiveAlways|_NSTrackingInVisibleRect),
		w.view, objc.ID(0))
	w.view.Send(selAddTrackingArea, area)
	area.Send(selRelease)
	types := objc.ID(objc.GetClass("NSArray")).Send(selArrayWithObject, nsString("NSFilenamesPboardType"))
	w.view.Send(selRegisterForDraggedTypes, types)

	if parent == 0 {
		if err := w.createWindow(cnf, rect, log); err != nil {
			return nil, err
		}
	} else {
		parent.Send(selAddSubview, w.view)
		w.view.Send(selSetHidden, !cnf.Visible)
	}
	if cnf.GL != nil {
		w.view.Send(selSetWantsBestResolution, true)
		ctx, err := newNSGLContext(conn.f, w.view, *cnf.GL, cnf.Transparent)
		switch {
		case err == nil:
			w.gl = ctx
			w.ctx = ctx
		case cnf.GL.Optional:
			log.Info("OpenGL unavailable", "err", err)
		default:
			return nil, err
		}
	}

	w.w = newWindow(w, log)
	appkitViews[w.view] = w
	w.w.start(f)
	w.w.event(system.ScaleEvent{Scale: w.scale()})
	if w.window != 0 && cnf.Visible {
		w.window.Send(selMakeKeyAndOrderFront, objc.ID(0))
		nsApp().Send(selActivateIgnoringOtherApps, true)
	}
	return w, nil
}

// createWindow creates the NSWindow of a top level view.
func (w *appkitWindow) createWindow(cnf config, rect nsRect, log *slog.Logger) error {
	var style uint
	if cnf.Decorated {
		style = _NSWindowStyleMaskTitled | _NSWindowStyleMaskClosable | _NSWindowStyleMaskMiniaturizable
		if w.resizable {
			style |= _NSWindowStyleMaskResizable
		}
	}
	win := objc.ID(objc.GetClass("NSWindow")).Send(selAlloc).Send(selInitWithContentRect, rect, style, uint(_NSBackingStoreBuffered), false)
	if win == 0 {
		return platformErr("NSWindow initWithContentRect", nil)
	}
	w.window = win
	win.Send(selSetReleasedWhenClosed, false)
	win.Send(selSetAcceptsMouseMoved, true)
	win.Send(selSetTitle, nsString(cnf.Title))
	win.Send(selSetContentView, w.view)
	w.delegate = objc.ID(w.conn.classes.delegate).Send(selAlloc).Send(selInit)
	win.Send(selSetDelegate, w.delegate)

	minSize, maxSize := rect.Size, rect.Size
	if w.resizable {
		minSize = nsSize{Width: float64(cnf.MinSize.Width), Height: float64(cnf.MinSize.Height)}
		maxSize = nsSize{Width: float64(cnf.MaxSize.Width), Height: float64(cnf.MaxSize.Height)}
	}
	win.Send(selSetContentMinSize, minSize)
	win.Send(selSetContentMaxSize, maxSize)

	if cnf.Transparent {
		win.Send(selSetOpaque, false)
		win.Send(selSetBackgroundColor, objc.ID(objc.GetClass("NSColor")).Send(selClearColor))
	}
	if cnf.Blur {
		log.Debug("blur behind window is not supported")
	}
	if p := cnf.Position; p != nil {
		win.Send(selSetFrameTopLeftPoint, nsPoint{X: float64(p.X), Y: primaryScreenHeight() - float64(p.Y)})
	} else {
		win.Send(selCenter)
	}
	return nil
}

// release frees the native objects of a window that never opened or has
// been torn down.
func (w *appkitWindow) release() {
	w.view.Send(selRemoveFromSuperview)
	if w.window != 0 {
		w.window.Send(selSetDelegate, objc.ID(0))
		w.window.Send(selOrderOut, objc.ID(0))
		w.window.Send(selClose)
		w.window.Send(selRelease)
		w.window = 0
	}
	if w.delegate != 0 {
		w.delegate.Send(selRelease)
		w.delegate = 0
	}
	w.view.Send(selRelease)
}

// destroy runs on the main thread, outside any event of the window.
func (w *appkitWindow) destroy() {
	if w.dead {
		return
	}
	w.dead = true
	delete(appkitViews, w.view)
	w.w.drop()
	if w.gl != nil {
		w.gl.release()
		w.gl, w.ctx = nil, nil
	}
	if w.hidden {
		objc.ID(objc.GetClass("NSCursor")).Send(selUnhide)
	}
	blocking := w.window != 0
	w.release()
	appkitShared.Release()
	if blocking {
		// Wake the event pump in openBlocking.
		ev := objc.ID(objc.GetClass("NSEvent")).Send(selOtherEventWithType,
			uint(_NSEventTypeApplicationDefined), nsPoint{}, uint(0), float64(0), 0, objc.ID(0), int16(0), 0, 0)
		nsApp().Send(selPostEventAtStart, ev, true)
	}
}

// poll reports geometry changes through the state gates.
func (w *appkitWindow) poll() {
	b := objc.Send[nsRect](w.view, selBounds)
	sz := system.Size{Width: uint32(max(b.Size.Width, 0)), Height: uint32(max(b.Size.Height, 0))}
	if w.w.state.Resize(sz) {
		if w.gl != nil {
			w.gl.update()
		}
		w.w.event(system.ResizeEvent{Size: sz})
	}
	var origin f32.Point
	if w.window != 0 {
		fr := objc.Send[nsRect](w.window, selFrame)
		origin = f32.Point{
			X: float32(fr.Origin.X),
			Y: float32(primaryScreenHeight() - fr.Origin.Y - fr.Size.Height),
		}
	} else {
		fr := objc.Send[nsRect](w.view, selFrame)
		origin = f32.Point{X: float32(fr.Origin.X), Y: float32(fr.Origin.Y)}
	}
	if w.w.state.Move(origin) {
		if w.window != 0 {
			w.conn.retarget(w.window)
		}
		w.w.event(system.MoveEvent{Origin: origin})
	}
}

func (w *appkitWindow) scale() float32 {
	if win := w.view.Send(selWindow); win != 0 {
		return float32(objc.Send[float64](win, selBackingScaleFactor))
	}
	if s := objc.ID(objc.GetClass("NSScreen")).Send(selMainScreen); s != 0 {
		return float32(objc.Send[float64](s, selBackingScaleFactor))
	}
	return 1
}

func (w *appkitWindow) focus(focus bool) {
	if w.w.state.Focus(focus) {
		w.w.event(system.FocusEvent{Focus: focus})
	}
}

func (w *appkitWindow) modifiers(ev objc.ID) {
	m := keymap.MacOSModifiers(objc.Send[uint64](ev, selModifierFlags))
	if w.w.state.SetModifiers(m) {
		w.w.event(key.ModifiersEvent{Modifiers: m})
	}
}

// key delivers a key event and reports whether the native default
// action must be suppressed.
func (w *appkitWindow) key(ev objc.ID, press bool) bool {
	w.modifiers(ev)
	code := keymap.MacOS(objc.Send[uint16](ev, selKeyCode))
	if code == key.CodeUnknown {
		return w.keyboard
	}
	var capture bool
	if press {
		w.w.event(key.PressEvent{Code: code, Capture: &capture})
	} else {
		w.w.event(key.ReleaseEvent{Code: code, Capture: &capture})
	}
	return capture || w.keyboard
}

func (w *appkitWindow) location(ev objc.ID) f32.Point {
	p := objc.Send[nsPoint](ev, selLocationInWindow)
	p = objc.Send[nsPoint](w.view, selConvertPointFromView, p, objc.ID(0))
	return f32.Point{X: float32(p.X), Y: float32(p.Y)}
}

func (w *appkitWindow) move(ev objc.ID) {
	p := w.location(ev)
	w.w.event(pointer.MoveEvent{Position: &p})
	if w.cursor != 0 {
		w.cursor.Send(selSet)
	}
}

func (w *appkitWindow) button(ev objc.ID, press bool) {
	btn, ok := macButton(objc.Send[int](ev, selButtonNumber))
	if !ok {
		return
	}
	w.move(ev)
	if press {
		w.w.event(pointer.PressEvent{Button: btn})
	} else {
		w.w.event(pointer.ReleaseEvent{Button: btn})
	}
}

func macButton(n int) (pointer.Button, bool) {
	switch n {
	case 0:
		return pointer.ButtonLeft, true
	case 1:
		return pointer.ButtonRight, true
	case 2:
		return pointer.ButtonMiddle, true
	case 3:
		return pointer.ButtonBack, true
	case 4:
		return pointer.ButtonForward, true
	default:
		return 0, false
	}
}

// dragFiles returns the paths carried by an NSDraggingInfo.
func dragFiles(info objc.ID) []string {
	pb := info.Send(selDraggingPasteboard)
	if pb == 0 {
		return nil
	}
	list := pb.Send(selPropertyListForType, nsString("NSFilenamesPboardType"))
	if list == 0 {
		return nil
	}
	n := objc.Send[uint](list, selCount)
	files := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		files = append(files, goString(list.Send(selObjectAtIndex, i)))
	}
	return files
}

func viewMethods() []objc.MethodDef {
	yes := func(self objc.ID, cmd objc.SEL) bool { return true }
	event := func(fn func(w *appkitWindow, ev objc.ID)) func(self objc.ID, cmd objc.SEL, ev objc.ID) {
		return func(self objc.ID, cmd objc.SEL, ev objc.ID) {
			if w := appkitViews[self]; w != nil {
				fn(w, ev)
			}
		}
	}
	keyEvent := func(press bool) func(self objc.ID, cmd objc.SEL, ev objc.ID) {
		return func(self objc.ID, cmd objc.SEL, ev objc.ID) {
			if w := appkitViews[self]; w != nil && w.key(ev, press) {
				return
			}
			self.SendSuper(cmd, ev)
		}
	}
	responder := func(focus bool) func(self objc.ID, cmd objc.SEL) bool {
		return func(self objc.ID, cmd objc.SEL) bool {
			ok := objc.SendSuper[bool](self, cmd)
			if w := appkitViews[self]; w != nil && ok {
				w.focus(focus)
			}
			return ok
		}
	}
	move := event((*appkitWindow).move)
	press := event(func(w *appkitWindow, ev objc.ID) { w.button(ev, true) })
	release := event(func(w *appkitWindow, ev objc.ID) { w.button(ev, false) })
	hover := func(self objc.ID, cmd objc.SEL, info objc.ID) uint {
		w := appkitViews[self]
		if w == nil {
			return 0
		}
		w.w.event(transfer.HoverEvent{Files: dragFiles(info)})
		return _NSDragOperationCopy
	}
	return []objc.MethodDef{
		{Cmd: objc.RegisterName("acceptsFirstResponder"), Fn: yes},
		{Cmd: objc.RegisterName("isFlipped"), Fn: yes},
		{Cmd: objc.RegisterName("acceptsFirstMouse:"), Fn: func(self objc.ID, cmd objc.SEL, ev objc.ID) bool { return true }},
		{Cmd: objc.RegisterName("becomeFirstResponder"), Fn: responder(true)},
		{Cmd: objc.RegisterName("resignFirstResponder"), Fn: responder(false)},
		{Cmd: objc.RegisterName("keyDown:"), Fn: keyEvent(true)},
		{Cmd: objc.RegisterName("keyUp:"), Fn: keyEvent(false)},
		{Cmd: objc.RegisterName("flagsChanged:"), Fn: event((*appkitWindow).modifiers)},
		{Cmd: objc.RegisterName("mouseMoved:"), Fn: move},
		{Cmd: objc.RegisterName("mouseDragged:"), Fn: move},
		{Cmd: objc.RegisterName("rightMouseDragged:"), Fn: move},
		{Cmd: objc.RegisterName("otherMouseDragged:"), Fn: move},
		{Cmd: objc.RegisterName("mouseDown:"), Fn: press},
		{Cmd: objc.RegisterName("rightMouseDown:"), Fn: press},
		{Cmd: objc.RegisterName("otherMouseDown:"), Fn: press},
		{Cmd: objc.RegisterName("mouseUp:"), Fn: release},
		{Cmd: objc.RegisterName("rightMouseUp:"), Fn: release},
		{Cmd: objc.RegisterName("otherMouseUp:"), Fn: release},
		{Cmd: objc.RegisterName("mouseExited:"), Fn: event(func(w *appkitWindow, ev objc.ID) {
			w.w.event(pointer.LeaveEvent{})
			w.w.event(pointer.MoveEvent{})
		})},
		{Cmd: objc.RegisterName("scrollWheel:"), Fn: event(func(w *appkitWindow, ev objc.ID) {
			x := objc.Send[float64](ev, selDeltaX)
			y := objc.Send[float64](ev, selDeltaY)
			w.w.event(pointer.ScrollEvent{X: float32(x), Y: float32(y)})
		})},
		{Cmd: objc.RegisterName("magnifyWithEvent:"), Fn: event(func(w *appkitWindow, ev objc.ID) {
			w.w.event(pointer.ZoomEvent{Zoom: float32(objc.Send[float64](ev, selMagnification))})
		})},
		{Cmd: objc.RegisterName("rotateWithEvent:"), Fn: event(func(w *appkitWindow, ev objc.ID) {
			w.w.event(pointer.RotateEvent{Rotate: objc.Send[float32](ev, selRotation)})
		})},
		{Cmd: objc.RegisterName("viewDidChangeBackingProperties"), Fn: func(self objc.ID, cmd objc.SEL) {
			if w := appkitViews[self]; w != nil {
				w.w.event(system.ScaleEvent{Scale: w.scale()})
			}
		}},

		// NSDraggingDestination.
		{Cmd: objc.RegisterName("wantsPeriodicDraggingUpdates"), Fn: func(self objc.ID, cmd objc.SEL) bool { return false }},
		{Cmd: objc.RegisterName("draggingEntered:"), Fn: hover},
		{Cmd: objc.RegisterName("draggingUpdated:"), Fn: hover},
		{Cmd: objc.RegisterName("draggingExited:"), Fn: event(func(w *appkitWindow, info objc.ID) {
			w.w.event(transfer.CancelEvent{})
		})},
		{Cmd: objc.RegisterName("prepareForDragOperation:"), Fn: func(self objc.ID, cmd objc.SEL, info objc.ID) bool { return true }},
		{Cmd: objc.RegisterName("performDragOperation:"), Fn: func(self objc.ID, cmd objc.SEL, info objc.ID) bool {
			w := appkitViews[self]
			if w == nil {
				return false
			}
			w.w.event(transfer.AcceptEvent{Files: dragFiles(info)})
			return true
		}},
	}
}

func delegateMethods() []objc.MethodDef {
	keyChange := func(focus bool) func(self objc.ID, cmd objc.SEL, note objc.ID) {
		return func(self objc.ID, cmd objc.SEL, note objc.ID) {
			if w := delegateWindow(self); w != nil {
				w.focus(focus)
			}
		}
	}
	return []objc.MethodDef{
		{Cmd: objc.RegisterName("windowShouldClose:"), Fn: func(self objc.ID, cmd objc.SEL, sender objc.ID) bool {
			// The handler closes the window if it wants to.
			if w := delegateWindow(self); w != nil {
				w.w.event(system.CloseEvent{})
			}
			return false
		}},
		{Cmd: objc.RegisterName("windowDidBecomeKey:"), Fn: keyChange(true)},
		{Cmd: objc.RegisterName("windowDidResignKey:"), Fn: keyChange(false)},
	}
}

func delegateWindow(delegate objc.ID) *appkitWindow {
	for _, w := range appkitViews {
		if w.delegate == delegate {
			return w
		}
	}
	return nil
}

func nsApp() objc.ID {
	return objc.ID(objc.GetClass("NSApplication")).Send(selSharedApplication)
}

func isMainThread() bool {
	return objc.Send[bool](objc.ID(objc.GetClass("NSThread")), selIsMainThread)
}

func newAutoreleasePool() objc.ID {
	return objc.ID(objc.GetClass("NSAutoreleasePool")).Send(selAlloc).Send(selInit)
}

// primaryScreenHeight is the height of the screen whose bottom left
// corner is the origin of the global coordinate space.
func primaryScreenHeight() float64 {
	screens := objc.ID(objc.GetClass("NSScreen")).Send(selScreens)
	if screens == 0 || objc.Send[uint](screens, selCount) == 0 {
		return 0
	}
	return objc.Send[nsRect](screens.Send(selObjectAtIndex, uint(0)), selFrame).Size.Height
}

func (w *appkitWindow) debug(op string, err error) {
	if err != nil {
		w.w.log.Debug(op, "err", err)
	}
}

func (w *appkitWindow) requestClose() {
	w.closing.Store(true)
	w.conn.signal()
}

func (w *appkitWindow) handle() RawHandle {
	return AppKitHandle{View: uintptr(w.view)}
}

func (w *appkitWindow) setTitle(title string) {
	if win := w.view.Send(selWindow); win != 0 {
		win.Send(selSetTitle, nsString(title))
	}
}

func (w *appkitWindow) setCursor(c pointer.Cursor) {
	cur, err := w.conn.cursors.get(c)
	if err != nil {
		w.debug("load cursor", err)
		return
	}
	cls := objc.ID(objc.GetClass("NSCursor"))
	if cur == 0 {
		if !w.hidden {
			cls.Send(selHide)
			w.hidden = true
		}
		w.cursor = 0
		return
	}
	if w.hidden {
		cls.Send(selUnhide)
		w.hidden = false
	}
	w.cursor = cur
	cur.Send(selSet)
}

func (w *appkitWindow) setCursorPosition(p f32.Point) {
	win := w.view.Send(selWindow)
	if win == 0 {
		return
	}
	wp := objc.Send[nsPoint](w.view, selConvertPointToView, nsPoint{X: float64(p.X), Y: float64(p.Y)}, objc.ID(0))
	sp := objc.Send[nsPoint](win, selConvertPointToScreen, wp)
	if ret := w.conn.f.cgWarpMouseCursorPosition(nsPoint{X: sp.X, Y: primaryScreenHeight() - sp.Y}); ret != 0 {
		w.w.log.Debug("warp cursor", "err", ret)
	}
}

func (w *appkitWindow) setSize(sz system.Size) {
	size := nsSize{Width: float64(sz.Width), Height: float64(sz.Height)}
	if w.window == 0 {
		w.view.Send(selSetFrameSize, size)
		return
	}
	if !w.resizable {
		w.window.Send(selSetContentMinSize, size)
		w.window.Send(selSetContentMaxSize, size)
	}
	w.window.Send(selSetContentSize, size)
}

func (w *appkitWindow) setPosition(p f32.Point) {
	if w.window == 0 {
		w.view.Send(selSetFrameOrigin, nsPoint{X: float64(p.X), Y: float64(p.Y)})
		return
	}
	w.window.Send(selSetFrameTopLeftPoint, nsPoint{X: float64(p.X), Y: primaryScreenHeight() - float64(p.Y)})
}

func (w *appkitWindow) setVisible(visible bool) {
	switch {
	case w.window == 0:
		w.view.Send(selSetHidden, !visible)
	case visible:
		w.window.Send(selOrderFront, objc.ID(0))
	default:
		w.window.Send(selOrderOut, objc.ID(0))
	}
}

func (w *appkitWindow) setKeyboardInput(focus bool) {
	w.keyboard = focus
	if !focus {
		return
	}
	if win := w.view.Send(selWindow); win != 0 {
		win.Send(selMakeFirstResponder, w.view)
	}
}

func (w *appkitWindow) openURL(url string) bool {
	if err := spawnDetached("open", url); err != nil {
		w.w.log.Debug("open url", "url", url, "err", err)
		return false
	}
	return true
}

func (w *appkitWindow) readClipboard() (string, bool) {
	s, err := clipboard.ReadAll()
	if err != nil {
		w.debug("read clipboard", err)
		return "", false
	}
	return s, true
}

func (w *appkitWindow) writeClipboard(s string) bool {
	if err := clipboard.WriteAll(s); err != nil {
		w.debug("write clipboard", err)
		return false
	}
	return true
}

func (w *appkitWindow) wakeup() error {
	w.woken.Store(true)
	w.conn.signal()
	return nil
}
