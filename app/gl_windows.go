// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"picoview.org/app/internal/glattr"
	"picoview.org/app/internal/windows"
	"picoview.org/gl"
)

// opengl32 is a reference to opengl32.dll and its WGL entry points.
type opengl32 struct {
	lib            syscall.Handle
	createContext  uintptr
	deleteContext  uintptr
	makeCurrent    uintptr
	getProcAddress uintptr
}

// wglExtensions holds the extension entry points, loaded once through a
// dummy window and context.
type wglExtensions struct {
	ext                  glattr.Extensions
	createContextAttribs uintptr
	choosePixelFormat    uintptr
	swapInterval         uintptr
}

type wglContext struct {
	gl    *opengl32
	hwnd  syscall.Handle
	hdc   syscall.Handle
	hglrc uintptr
}

var wglExt = sync.OnceValue(loadWGLExtensions)

func loadOpenGL32() (*opengl32, error) {
	lib, err := syscall.LoadLibraryEx("opengl32.dll", 0, syscall.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return nil, err
	}
	l := &opengl32{lib: lib}
	for _, p := range []struct {
		name string
		addr *uintptr
	}{
		{"wglCreateContext", &l.createContext},
		{"wglDeleteContext", &l.deleteContext},
		{"wglMakeCurrent", &l.makeCurrent},
		{"wglGetProcAddress", &l.getProcAddress},
	} {
		a, err := syscall.GetProcAddress(lib, p.name)
		if err != nil {
			syscall.FreeLibrary(lib)
			return nil, fmt.Errorf("%s: %w", p.name, err)
		}
		*p.addr = a
	}
	return l, nil
}

// proc resolves an OpenGL function through wglGetProcAddress, falling
// back to the exports of opengl32.dll.
func (l *opengl32) proc(name string) uintptr {
	cname, err := syscall.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	addr := windows.Call(l.getProcAddress, uintptr(unsafe.Pointer(cname)))
	if validProc(addr) {
		return addr
	}
	addr, err = syscall.GetProcAddress(l.lib, name)
	if err != nil || !validProc(addr) {
		return 0
	}
	return addr
}

// validProc filters the error values some drivers return from
// wglGetProcAddress.
func validProc(addr uintptr) bool {
	switch addr {
	case 0, 1, 2, 3, ^uintptr(0):
		return false
	}
	return true
}

func (l *opengl32) makeCurrentDC(hdc syscall.Handle, hglrc uintptr) bool {
	r := windows.Call(l.makeCurrent, uintptr(hdc), hglrc)
	return r != 0
}

func (l *opengl32) free() {
	syscall.FreeLibrary(l.lib)
}

func loadWGLExtensions() *wglExtensions {
	e := &wglExtensions{ext: glattr.Extensions{}}
	l, err := loadOpenGL32()
	if err != nil {
		return e
	}
	defer l.free()
	hinst, err := windows.GetModuleHandle()
	if err != nil {
		return e
	}
	guid, err := syscall.GenerateGUID()
	if err != nil {
		return e
	}
	wcls := windows.WndClassEx{
		CbSize:        uint32(unsafe.Sizeof(windows.WndClassEx{})),
		Style:         windows.CS_OWNDC,
		LpfnWndProc:   wndProc(),
		HInstance:     hinst,
		LpszClassName: syscall.StringToUTF16Ptr("picoview-dummy-" + strings.Trim(guid.String(), "{}")),
	}
	class, err := windows.RegisterClassEx(&wcls)
	if err != nil {
		return e
	}
	defer windows.UnregisterClass(class, hinst)
	hwnd, err := windows.CreateWindowEx(0, class, "", 0,
		windows.CW_USEDEFAULT, windows.CW_USEDEFAULT, windows.CW_USEDEFAULT, windows.CW_USEDEFAULT,
		0, 0, hinst, 0)
	if err != nil {
		return e
	}
	defer windows.DestroyWindow(hwnd)
	hdc, err := windows.GetDC(hwnd)
	if err != nil {
		return e
	}
	defer windows.ReleaseDC(hwnd, hdc)

	pfd := pixelFormatDescriptor(glattr.WGLFallback(gl.DefaultConfig()))
	if err := windows.SetPixelFormat(hdc, windows.ChoosePixelFormat(hdc, &pfd), &pfd); err != nil {
		return e
	}
	hglrc := windows.Call(l.createContext, uintptr(hdc))
	if hglrc == 0 {
		return e
	}
	defer windows.Call(l.deleteContext, hglrc)
	if !l.makeCurrentDC(hdc, hglrc) {
		return e
	}
	defer l.makeCurrentDC(hdc, 0)

	if f := l.proc("wglGetExtensionsStringEXT"); f != 0 {
		s := windows.Call(f)
		e.ext = glattr.ParseExtensions(cString(s))
	} else if f := l.proc("wglGetExtensionsStringARB"); f != 0 {
		s := windows.Call(f, uintptr(hdc))
		e.ext = glattr.ParseExtensions(cString(s))
	}
	e.createContextAttribs = l.proc("wglCreateContextAttribsARB")
	e.choosePixelFormat = l.proc("wglChoosePixelFormatARB")
	e.swapInterval = l.proc("wglSwapIntervalEXT")
	return e
}

func cString(p uintptr) string {
	if p == 0 {
		return ""
	}
	return syscall.BytePtrToString((*byte)(unsafe.Pointer(p)))
}

func pixelFormatDescriptor(d glattr.PixelFormatDescriptor) windows.PixelFormatDescriptor {
	pfd := windows.PixelFormatDescriptor{
		NVersion:     1,
		DwFlags:      windows.PFD_DRAW_TO_WINDOW | windows.PFD_SUPPORT_OPENGL,
		IPixelType:   windows.PFD_TYPE_RGBA,
		CColorBits:   d.ColorBits,
		CAlphaBits:   d.AlphaBits,
		CDepthBits:   d.DepthBits,
		CStencilBits: d.StencilBits,
		ILayerType:   windows.PFD_MAIN_PLANE,
	}
	pfd.NSize = uint16(unsafe.Sizeof(pfd))
	if d.DoubleBuffer {
		pfd.DwFlags |= windows.PFD_DOUBLEBUFFER
	}
	return pfd
}

func newWGLContext(hwnd syscall.Handle, c gl.Config, log *slog.Logger) (*wglContext, error) {
	e := wglExt()
	l, err := loadOpenGL32()
	if err != nil {
		return nil, glErr("load opengl32.dll", err)
	}
	hdc, err := windows.GetDC(hwnd)
	if err != nil {
		l.free()
		return nil, glErr("GetDC", err)
	}
	ctx := &wglContext{gl: l, hwnd: hwnd, hdc: hdc}

	format, pfd, ok := choosePixelFormatARB(hdc, c, e)
	if !ok {
		log.Info("WGL_ARB_pixel_format unavailable, using ChoosePixelFormat")
		pfd = pixelFormatDescriptor(glattr.WGLFallback(c))
		format = windows.ChoosePixelFormat(hdc, &pfd)
	}
	if format == 0 {
		ctx.release()
		return nil, glErr("no matching pixel format", nil)
	}
	if err := windows.SetPixelFormat(hdc, format, &pfd); err != nil {
		ctx.release()
		return nil, glErr("SetPixelFormat", err)
	}

	if e.createContextAttribs != 0 && e.ext.Has("WGL_ARB_create_context") {
		attrs, err := glattr.WGLContext(c, e.ext)
		if err != nil {
			ctx.release()
			return nil, glErr("wglCreateContextAttribsARB", err)
		}
		ctx.hglrc = windows.Call(e.createContextAttribs, uintptr(hdc), 0, uintptr(unsafe.Pointer(&attrs[0])))
	}
	if ctx.hglrc == 0 {
		log.Info("WGL_ARB_create_context unavailable, using wglCreateContext")
		ctx.hglrc = windows.Call(l.createContext, uintptr(hdc))
	}
	if ctx.hglrc == 0 {
		ctx.release()
		return nil, glErr("no context matches the configuration", nil)
	}

	if e.swapInterval != 0 && e.ext.Has("WGL_EXT_swap_control") {
		l.makeCurrentDC(hdc, ctx.hglrc)
		windows.Call(e.swapInterval, 0)
		l.makeCurrentDC(hdc, 0)
	}
	return ctx, nil
}

func choosePixelFormatARB(hdc syscall.Handle, c gl.Config, e *wglExtensions) (int32, windows.PixelFormatDescriptor, bool) {
	var pfd windows.PixelFormatDescriptor
	if e.choosePixelFormat == 0 || !e.ext.Has("WGL_ARB_pixel_format") {
		return 0, pfd, false
	}
	attrs := glattr.WGLPixelFormat(c, e.ext)
	var format int32
	var n uint32
	windows.Call(e.choosePixelFormat, uintptr(hdc),
		uintptr(unsafe.Pointer(&attrs[0])), 0, 1,
		uintptr(unsafe.Pointer(&format)), uintptr(unsafe.Pointer(&n)))
	if n == 0 || !windows.DescribePixelFormat(hdc, format, &pfd) {
		return 0, pfd, false
	}
	return format, pfd, true
}

func (c *wglContext) SwapBuffers() {
	windows.SwapBuffers(c.hdc)
}

func (c *wglContext) ProcAddress(name string) uintptr {
	return c.gl.proc(name)
}

func (c *wglContext) MakeCurrent(current bool) bool {
	if current {
		return c.gl.makeCurrentDC(c.hdc, c.hglrc)
	}
	return c.gl.makeCurrentDC(c.hdc, 0)
}

// release makes the context non-current and frees it, then releases the
// device context and the library.
func (c *wglContext) release() {
	c.gl.makeCurrentDC(0, 0)
	if c.hglrc != 0 {
		windows.Call(c.gl.deleteContext, c.hglrc)
		c.hglrc = 0
	}
	windows.ReleaseDC(c.hwnd, c.hdc)
	c.gl.free()
}
