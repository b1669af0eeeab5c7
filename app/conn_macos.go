// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && !ios

package app

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"
	"golang.org/x/exp/maps"

	"picoview.org/app/internal/shared"
	"picoview.org/io/pointer"
	"picoview.org/io/system"
)

type nsPoint struct {
	X, Y float64
}

type nsSize struct {
	Width, Height float64
}

type nsRect struct {
	Origin nsPoint
	Size   nsSize
}

// appkitFuncs holds the C entry points of the frameworks. Objective-C
// calls go through objc.Send.
type appkitFuncs struct {
	cfRunLoopGetMain          func() uintptr
	cfRunLoopSourceCreate     func(alloc uintptr, order int, ctx *cfRunLoopSourceContext) uintptr
	cfRunLoopAddSource        func(rl, source, mode uintptr)
	cfRunLoopSourceSignal     func(source uintptr)
	cfRunLoopSourceInvalidate func(source uintptr)
	cfRunLoopWakeUp           func(rl uintptr)
	cfRelease                 func(p uintptr)

	cfBundleGetBundleWithIdentifier   func(id uintptr) uintptr
	cfBundleGetFunctionPointerForName func(bundle, name uintptr) uintptr
	cfStringCreateWithCString         func(alloc uintptr, s string, encoding uint32) uintptr

	cvDisplayLinkCreateWithActiveCGDisplays func(link *uintptr) int32
	cvDisplayLinkSetOutputCallback          func(link, callback, ctx uintptr) int32
	cvDisplayLinkSetCurrentCGDisplay        func(link uintptr, display uint32) int32
	cvDisplayLinkStart                      func(link uintptr) int32
	cvDisplayLinkStop                       func(link uintptr) int32
	cvDisplayLinkRelease                    func(link uintptr)

	cgWarpMouseCursorPosition func(p nsPoint) int32
}

// cfRunLoopSourceContext mirrors CFRunLoopSourceContext (version 0).
type cfRunLoopSourceContext struct {
	Version         int
	Info            uintptr
	Retain          uintptr
	Release         uintptr
	CopyDescription uintptr
	Equal           uintptr
	Hash            uintptr
	Schedule        uintptr
	Cancel          uintptr
	Perform         uintptr
}

const _kCFStringEncodingUTF8 = 0x08000100

var loadAppKit = sync.OnceValues(func() (*appkitFuncs, error) {
	for _, path := range []string{
		"/System/Library/Frameworks/AppKit.framework/AppKit",
		"/System/Library/Frameworks/OpenGL.framework/OpenGL",
	} {
		if _, err := purego.Dlopen(path, purego.RTLD_GLOBAL); err != nil {
			return nil, err
		}
	}
	cf, err := purego.Dlopen("/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation", purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	cv, err := purego.Dlopen("/System/Library/Frameworks/CoreVideo.framework/CoreVideo", purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	cg, err := purego.Dlopen("/System/Library/Frameworks/CoreGraphics.framework/CoreGraphics", purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	f := new(appkitFuncs)
	purego.RegisterLibFunc(&f.cfRunLoopGetMain, cf, "CFRunLoopGetMain")
	purego.RegisterLibFunc(&f.cfRunLoopSourceCreate, cf, "CFRunLoopSourceCreate")
	purego.RegisterLibFunc(&f.cfRunLoopAddSource, cf, "CFRunLoopAddSource")
	purego.RegisterLibFunc(&f.cfRunLoopSourceSignal, cf, "CFRunLoopSourceSignal")
	purego.RegisterLibFunc(&f.cfRunLoopSourceInvalidate, cf, "CFRunLoopSourceInvalidate")
	purego.RegisterLibFunc(&f.cfRunLoopWakeUp, cf, "CFRunLoopWakeUp")
	purego.RegisterLibFunc(&f.cfRelease, cf, "CFRelease")
	purego.RegisterLibFunc(&f.cfBundleGetBundleWithIdentifier, cf, "CFBundleGetBundleWithIdentifier")
	purego.RegisterLibFunc(&f.cfBundleGetFunctionPointerForName, cf, "CFBundleGetFunctionPointerForName")
	purego.RegisterLibFunc(&f.cfStringCreateWithCString, cf, "CFStringCreateWithCString")

	purego.RegisterLibFunc(&f.cvDisplayLinkCreateWithActiveCGDisplays, cv, "CVDisplayLinkCreateWithActiveCGDisplays")
	purego.RegisterLibFunc(&f.cvDisplayLinkSetOutputCallback, cv, "CVDisplayLinkSetOutputCallback")
	purego.RegisterLibFunc(&f.cvDisplayLinkSetCurrentCGDisplay, cv, "CVDisplayLinkSetCurrentCGDisplay")
	purego.RegisterLibFunc(&f.cvDisplayLinkStart, cv, "CVDisplayLinkStart")
	purego.RegisterLibFunc(&f.cvDisplayLinkStop, cv, "CVDisplayLinkStop")
	purego.RegisterLibFunc(&f.cvDisplayLinkRelease, cv, "CVDisplayLinkRelease")

	purego.RegisterLibFunc(&f.cgWarpMouseCursorPosition, cg, "CGWarpMouseCursorPosition")
	return f, nil
})

// cfString returns a CFString that the caller must release.
func (f *appkitFuncs) cfString(s string) uintptr {
	return f.cfStringCreateWithCString(0, s, _kCFStringEncodingUTF8)
}

// appkitConn is the per-process state shared by all views. Apart from
// the display link callback, everything runs on the main thread.
type appkitConn struct {
	f       *appkitFuncs
	log     *slog.Logger
	classes *appkitClasses
	cursors *cursorCache[objc.ID]

	runLoop uintptr
	source  uintptr
	link    uintptr
	display uint32
}

// appkitShared is wired in init: window teardown releases it.
var appkitShared shared.Value[appkitConn]

func init() {
	appkitShared.New = newAppkitConn
	appkitShared.Destroy = (*appkitConn).destroy
}

// appkitViews maps views to their windows. It is only touched on the
// main thread.
var appkitViews = make(map[objc.ID]*appkitWindow)

// displayTick is set by the display link and consumed by the run loop
// source.
var displayTick atomic.Bool

var (
	performProc = sync.OnceValue(func() uintptr {
		return purego.NewCallback(func(info uintptr) {
			performSource()
		})
	})
	displayLinkProc = sync.OnceValue(func() uintptr {
		return purego.NewCallback(func(link, now, out uintptr, flagsIn uint64, flagsOut, ctx uintptr) int32 {
			f, _ := loadAppKit()
			displayTick.Store(true)
			f.cfRunLoopSourceSignal(ctx)
			f.cfRunLoopWakeUp(f.cfRunLoopGetMain())
			return 0
		})
	})
)

func newAppkitConn() (*appkitConn, error) {
	f, err := loadAppKit()
	if err != nil {
		return nil, platformErr("load AppKit", err)
	}
	classes, err := registerClasses()
	if err != nil {
		return nil, platformErr("register classes", err)
	}
	c := &appkitConn{
		f:       f,
		log:     defaultLogger().With("backend", "appkit"),
		classes: classes,
		cursors: newCursorCache(loadCursor),
		runLoop: f.cfRunLoopGetMain(),
	}
	ctx := cfRunLoopSourceContext{Perform: performProc()}
	c.source = f.cfRunLoopSourceCreate(0, 0, &ctx)
	if c.source == 0 {
		return nil, platformErr("CFRunLoopSourceCreate", nil)
	}
	mode := f.cfString("kCFRunLoopCommonModes")
	f.cfRunLoopAddSource(c.runLoop, c.source, mode)
	f.cfRelease(mode)

	if ret := f.cvDisplayLinkCreateWithActiveCGDisplays(&c.link); ret != 0 || c.link == 0 {
		c.releaseSource()
		return nil, platformErr("CVDisplayLinkCreateWithActiveCGDisplays", fmt.Errorf("error %d", ret))
	}
	if ret := f.cvDisplayLinkSetOutputCallback(c.link, displayLinkProc(), c.source); ret != 0 {
		c.releaseLink()
		c.releaseSource()
		return nil, platformErr("CVDisplayLinkSetOutputCallback", fmt.Errorf("error %d", ret))
	}
	if ret := f.cvDisplayLinkStart(c.link); ret != 0 {
		c.releaseLink()
		c.releaseSource()
		return nil, platformErr("CVDisplayLinkStart", fmt.Errorf("error %d", ret))
	}
	return c, nil
}

func (c *appkitConn) destroy() {
	c.f.cvDisplayLinkStop(c.link)
	c.releaseLink()
	c.releaseSource()
	// The shared cursors are owned by AppKit.
	c.cursors.drain(func(objc.ID) {})
}

func (c *appkitConn) releaseLink() {
	c.f.cvDisplayLinkRelease(c.link)
	c.link = 0
}

func (c *appkitConn) releaseSource() {
	c.f.cfRunLoopSourceInvalidate(c.source)
	c.f.cfRelease(c.source)
	c.source = 0
}

// signal schedules a run of the source on the main thread. It is safe to
// call from any goroutine.
func (c *appkitConn) signal() {
	c.f.cfRunLoopSourceSignal(c.source)
	c.f.cfRunLoopWakeUp(c.runLoop)
}

// retarget points the display link at the screen showing win.
func (c *appkitConn) retarget(win objc.ID) {
	screen := win.Send(selScreen)
	if screen == 0 {
		return
	}
	key := nsString("NSScreenNumber")
	num := screen.Send(selDeviceDescription).Send(selObjectForKey, key)
	if num == 0 {
		return
	}
	id := objc.Send[uint32](num, selUnsignedIntValue)
	if id == c.display {
		return
	}
	if ret := c.f.cvDisplayLinkSetCurrentCGDisplay(c.link, id); ret != 0 {
		c.log.Debug("retarget display link", "display", id, "err", ret)
		return
	}
	c.display = id
}

// performSource runs on the main thread whenever the source is signaled.
func performSource() {
	tick := displayTick.Swap(false)
	for _, w := range maps.Values(appkitViews) {
		if w.closing.Load() {
			w.destroy()
			continue
		}
		if w.woken.Swap(false) {
			w.w.event(system.WakeupEvent{})
		}
		w.poll()
		if tick {
			w.w.event(system.FrameEvent{GL: w.ctx})
		}
	}
}

// appkitClasses are the Objective-C classes registered by the package.
type appkitClasses struct {
	view     objc.Class
	delegate objc.Class
}

// registerClasses registers the view and window delegate classes once
// per process. The names carry a random suffix so that several copies of
// the package can live in one process, as plugins do.
var registerClasses = sync.OnceValues(func() (*appkitClasses, error) {
	suffix := rand.Uint32()
	view, err := objc.RegisterClass(fmt.Sprintf("PicoviewView%08x", suffix), objc.GetClass("NSView"), nil, nil, viewMethods())
	if err != nil {
		return nil, err
	}
	delegate, err := objc.RegisterClass(fmt.Sprintf("PicoviewWindowDelegate%08x", suffix), objc.GetClass("NSObject"), nil, nil, delegateMethods())
	if err != nil {
		return nil, err
	}
	return &appkitClasses{view: view, delegate: delegate}, nil
})

// cursorSelector returns the NSCursor class method for c. Private
// selectors may be missing and fall back to the arrow.
func cursorSelector(c pointer.Cursor) string {
	switch c {
	case pointer.CursorHand, pointer.CursorMove, pointer.CursorAllScroll:
		return "openHandCursor"
	case pointer.CursorHandGrabbing:
		return "closedHandCursor"
	case pointer.CursorHelp:
		return "_helpCursor"
	case pointer.CursorText:
		return "IBeamCursor"
	case pointer.CursorVerticalText:
		return "IBeamCursorForVerticalLayout"
	case pointer.CursorWorking:
		return "_waitCursor"
	case pointer.CursorPtrWorking:
		return "_busyButClickableCursor"
	case pointer.CursorNotAllowed, pointer.CursorPtrNotAllowed:
		return "operationNotAllowedCursor"
	case pointer.CursorZoomIn:
		return "zoomInCursor"
	case pointer.CursorZoomOut:
		return "zoomOutCursor"
	case pointer.CursorAlias:
		return "dragLinkCursor"
	case pointer.CursorCopy:
		return "dragCopyCursor"
	case pointer.CursorCell, pointer.CursorCrosshair:
		return "crosshairCursor"
	case pointer.CursorEResize:
		return "resizeRightCursor"
	case pointer.CursorWResize:
		return "resizeLeftCursor"
	case pointer.CursorNResize:
		return "resizeUpCursor"
	case pointer.CursorSResize:
		return "resizeDownCursor"
	case pointer.CursorNeResize:
		return "_windowResizeNorthEastCursor"
	case pointer.CursorNwResize:
		return "_windowResizeNorthWestCursor"
	case pointer.CursorSeResize:
		return "_windowResizeSouthEastCursor"
	case pointer.CursorSwResize:
		return "_windowResizeSouthWestCursor"
	case pointer.CursorEwResize, pointer.CursorColResize:
		return "resizeLeftRightCursor"
	case pointer.CursorNsResize, pointer.CursorRowResize:
		return "resizeUpDownCursor"
	case pointer.CursorNeswResize:
		return "_windowResizeNorthEastSouthWestCursor"
	case pointer.CursorNwseResize:
		return "_windowResizeNorthWestSouthEastCursor"
	default:
		return "arrowCursor"
	}
}

// loadCursor returns the shared NSCursor for c, or 0 for the hidden
// cursor.
func loadCursor(c pointer.Cursor) (objc.ID, error) {
	if c == pointer.CursorHidden {
		return 0, nil
	}
	cls := objc.ID(objc.GetClass("NSCursor"))
	sel := objc.RegisterName(cursorSelector(c))
	if !objc.Send[bool](cls, selRespondsToSelector, sel) {
		sel = selArrowCursor
	}
	cur := cls.Send(sel)
	if cur == 0 {
		return 0, fmt.Errorf("NSCursor %s", cursorSelector(c))
	}
	return cur, nil
}

func nsString(s string) objc.ID {
	return objc.ID(objc.GetClass("NSString")).Send(selStringWithUTF8String, s+"\x00")
}

func goString(s objc.ID) string {
	if s == 0 {
		return ""
	}
	p := objc.Send[*byte](s, selUTF8String)
	if p == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}
