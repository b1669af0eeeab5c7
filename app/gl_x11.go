// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd

package app

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/ebitengine/purego"

	"picoview.org/app/internal/glattr"
	"picoview.org/gl"
)

const _GLX_RGBA_TYPE = 0x8014

// glxFuncs holds the Xlib and GLX entry points. The libraries are loaded
// once per process.
type glxFuncs struct {
	xInitThreads     func() int32
	xOpenDisplay     func(name *byte) uintptr
	xCloseDisplay    func(dpy uintptr) int32
	xDefaultScreen   func(dpy uintptr) int32
	xFree            func(p unsafe.Pointer) int32
	xSync            func(dpy uintptr, discard int32) int32
	xSetErrorHandler func(handler uintptr) uintptr

	glXQueryVersion          func(dpy uintptr, major, minor *int32) int32
	glXQueryExtensionsString func(dpy uintptr, screen int32) string
	glXChooseFBConfig        func(dpy uintptr, screen int32, attrs *int32, n *int32) *uintptr
	glXGetVisualFromFBConfig func(dpy uintptr, config uintptr) *xVisualInfo
	glXCreateNewContext      func(dpy, config uintptr, renderType int32, share uintptr, direct int32) uintptr
	glXMakeCurrent           func(dpy, drawable, ctx uintptr) int32
	glXSwapBuffers           func(dpy, drawable uintptr)
	glXDestroyContext        func(dpy, ctx uintptr)
	glXGetProcAddress        func(name string) uintptr

	// Extension functions, nil when unavailable.
	glXCreateContextAttribsARB func(dpy, config, share uintptr, direct int32, attrs *int32) uintptr
	glXSwapIntervalEXT         func(dpy, drawable uintptr, interval int32)
}

// xVisualInfo mirrors Xlib's XVisualInfo.
type xVisualInfo struct {
	Visual       uintptr
	VisualID     uintptr
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uintptr
	GreenMask    uintptr
	BlueMask     uintptr
	ColormapSize int32
	BitsPerRGB   int32
}

// xErrorEvent mirrors Xlib's XErrorEvent.
type xErrorEvent struct {
	Type        int32
	Display     uintptr
	ResourceID  uintptr
	Serial      uintptr
	ErrorCode   uint8
	RequestCode uint8
	MinorCode   uint8
}

// glxDisplay is the Xlib connection used for GLX. It talks to the same
// server as the xgb connection, so X window IDs are shared.
type glxDisplay struct {
	f      *glxFuncs
	dpy    uintptr
	screen int32
	major  int32
	minor  int32
	ext    glattr.Extensions
}

// glxContext implements gl.Context.
type glxContext struct {
	d   *glxDisplay
	win uintptr
	ctx uintptr
}

var loadGLX = sync.OnceValues(func() (*glxFuncs, error) {
	x11, err := purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	lib, err := purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	f := new(glxFuncs)
	purego.RegisterLibFunc(&f.xInitThreads, x11, "XInitThreads")
	purego.RegisterLibFunc(&f.xOpenDisplay, x11, "XOpenDisplay")
	purego.RegisterLibFunc(&f.xCloseDisplay, x11, "XCloseDisplay")
	purego.RegisterLibFunc(&f.xDefaultScreen, x11, "XDefaultScreen")
	purego.RegisterLibFunc(&f.xFree, x11, "XFree")
	purego.RegisterLibFunc(&f.xSync, x11, "XSync")
	purego.RegisterLibFunc(&f.xSetErrorHandler, x11, "XSetErrorHandler")

	purego.RegisterLibFunc(&f.glXQueryVersion, lib, "glXQueryVersion")
	purego.RegisterLibFunc(&f.glXQueryExtensionsString, lib, "glXQueryExtensionsString")
	purego.RegisterLibFunc(&f.glXChooseFBConfig, lib, "glXChooseFBConfig")
	purego.RegisterLibFunc(&f.glXGetVisualFromFBConfig, lib, "glXGetVisualFromFBConfig")
	purego.RegisterLibFunc(&f.glXCreateNewContext, lib, "glXCreateNewContext")
	purego.RegisterLibFunc(&f.glXMakeCurrent, lib, "glXMakeCurrent")
	purego.RegisterLibFunc(&f.glXSwapBuffers, lib, "glXSwapBuffers")
	purego.RegisterLibFunc(&f.glXDestroyContext, lib, "glXDestroyContext")
	purego.RegisterLibFunc(&f.glXGetProcAddress, lib, "glXGetProcAddressARB")

	if p := f.glXGetProcAddress("glXCreateContextAttribsARB"); p != 0 {
		purego.RegisterFunc(&f.glXCreateContextAttribsARB, p)
	}
	if p := f.glXGetProcAddress("glXSwapIntervalEXT"); p != 0 {
		purego.RegisterFunc(&f.glXSwapIntervalEXT, p)
	}

	// Xlib must be told before the first display is opened.
	f.xInitThreads()
	// The default handler exits the process.
	f.xSetErrorHandler(purego.NewCallback(func(dpy uintptr, ev *xErrorEvent) uintptr {
		glxError.CompareAndSwap(0, uint32(ev.ErrorCode))
		return 0
	}))
	return f, nil
})

// glxError holds the code of the first Xlib error since the last
// takeGLXError.
var glxError atomic.Uint32

func takeGLXError() error {
	if code := glxError.Swap(0); code != 0 {
		return fmt.Errorf("X error %d", code)
	}
	return nil
}

func openGLXDisplay() (*glxDisplay, error) {
	f, err := loadGLX()
	if err != nil {
		return nil, glErr("load libGL", err)
	}
	dpy := f.xOpenDisplay(nil)
	if dpy == 0 {
		return nil, glErr("XOpenDisplay failed", nil)
	}
	d := &glxDisplay{
		f:      f,
		dpy:    dpy,
		screen: f.xDefaultScreen(dpy),
	}
	if f.glXQueryVersion(dpy, &d.major, &d.minor) == 0 {
		d.close()
		return nil, glErr("glXQueryVersion failed", nil)
	}
	if d.major < 1 || d.major == 1 && d.minor < 3 {
		d.close()
		return nil, glErr(fmt.Sprintf("GLX %d.%d is older than 1.3", d.major, d.minor), nil)
	}
	d.queryExtensions()
	return d, nil
}

// queryExtensions records the extensions usable on the default screen:
// those supported by both the client library and the server.
func (d *glxDisplay) queryExtensions() {
	d.ext = glattr.ParseExtensions(d.f.glXQueryExtensionsString(d.dpy, d.screen))
}

func (d *glxDisplay) close() {
	d.f.xCloseDisplay(d.dpy)
}

// glxConfig is a framebuffer configuration and the visual a window needs
// to use it.
type glxConfig struct {
	fb     uintptr
	visual xproto.Visualid
	depth  byte
}

// chooseConfig picks the best framebuffer configuration for c.
func (d *glxDisplay) chooseConfig(c gl.Config) (glxConfig, error) {
	attrs := glattr.GLXFBConfig(c, int(d.major), int(d.minor), d.ext)
	var n int32
	list := d.f.glXChooseFBConfig(d.dpy, d.screen, &attrs[0], &n)
	if list == nil || n <= 0 {
		return glxConfig{}, glErr("no matching config", nil)
	}
	defer d.f.xFree(unsafe.Pointer(list))
	fb := *list
	vi := d.f.glXGetVisualFromFBConfig(d.dpy, fb)
	if vi == nil {
		return glxConfig{}, glErr("glXGetVisualFromFBConfig failed", nil)
	}
	defer d.f.xFree(unsafe.Pointer(vi))
	return glxConfig{
		fb:     fb,
		visual: xproto.Visualid(vi.VisualID),
		depth:  byte(vi.Depth),
	}, nil
}

func newGLXContext(d *glxDisplay, cfg glxConfig, win xproto.Window, c gl.Config, log *slog.Logger) (*glxContext, error) {
	f := d.f
	var ctx uintptr
	if f.glXCreateContextAttribsARB != nil && d.ext.Has("GLX_ARB_create_context") {
		attrs, err := glattr.GLXContext(c, d.ext)
		if err != nil {
			return nil, glErr("create context", err)
		}
		ctx = f.glXCreateContextAttribsARB(d.dpy, cfg.fb, 0, 1, &attrs[0])
	} else {
		if c.Version.Profile == gl.ProfileES {
			return nil, glErr("create context", glattr.ErrNoES)
		}
		log.Info("GLX_ARB_create_context unavailable, using a legacy context")
		ctx = f.glXCreateNewContext(d.dpy, cfg.fb, _GLX_RGBA_TYPE, 0, 1)
	}
	f.xSync(d.dpy, 0)
	if err := takeGLXError(); err != nil || ctx == 0 {
		if ctx != 0 {
			f.glXDestroyContext(d.dpy, ctx)
		}
		return nil, glErr("GLX context creation failed", err)
	}
	g := &glxContext{d: d, win: uintptr(win), ctx: ctx}
	if f.glXSwapIntervalEXT != nil && g.MakeCurrent(true) {
		f.glXSwapIntervalEXT(d.dpy, g.win, 0)
		g.MakeCurrent(false)
	}
	return g, nil
}

func (g *glxContext) SwapBuffers() {
	g.d.f.glXSwapBuffers(g.d.dpy, g.win)
}

func (g *glxContext) ProcAddress(name string) uintptr {
	return g.d.f.glXGetProcAddress(name)
}

func (g *glxContext) MakeCurrent(current bool) bool {
	if current {
		return g.d.f.glXMakeCurrent(g.d.dpy, g.win, g.ctx) != 0
	}
	return g.d.f.glXMakeCurrent(g.d.dpy, 0, 0) != 0
}

// release destroys the context. The display stays open; it belongs to
// the connection.
func (g *glxContext) release() {
	g.MakeCurrent(false)
	g.d.f.glXDestroyContext(g.d.dpy, g.ctx)
	g.d.f.xSync(g.d.dpy, 0)
	// The drawable may already be destroyed by the server.
	takeGLXError()
}
