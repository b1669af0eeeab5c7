// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin && !ios

package app

import (
	"unsafe"

	"github.com/ebitengine/purego/objc"

	"picoview.org/app/internal/glattr"
	"picoview.org/gl"
)

// NSOpenGLContextParameter values.
const (
	_NSOpenGLCPSwapInterval   = 222
	_NSOpenGLCPSurfaceOpacity = 236
)

var (
	selInitWithAttributes    = objc.RegisterName("initWithAttributes:")
	selInitWithFormat        = objc.RegisterName("initWithFormat:shareContext:")
	selSetView               = objc.RegisterName("setView:")
	selSetValuesForParameter = objc.RegisterName("setValues:forParameter:")
	selMakeCurrentContext    = objc.RegisterName("makeCurrentContext")
	selClearCurrentContext   = objc.RegisterName("clearCurrentContext")
	selClearDrawable         = objc.RegisterName("clearDrawable")
	selFlushBuffer           = objc.RegisterName("flushBuffer")
	selUpdate                = objc.RegisterName("update")
)

// nsglContext implements gl.Context.
type nsglContext struct {
	f      *appkitFuncs
	ctx    objc.ID
	bundle uintptr
}

func newNSGLContext(f *appkitFuncs, view objc.ID, c gl.Config, transparent bool) (*nsglContext, error) {
	attrs, err := glattr.NSOpenGL(c)
	if err != nil {
		return nil, glErr("pixel format", err)
	}
	pf := objc.ID(objc.GetClass("NSOpenGLPixelFormat")).Send(selAlloc).Send(selInitWithAttributes, unsafe.Pointer(&attrs[0]))
	if pf == 0 {
		return nil, glErr("no matching pixel format", nil)
	}
	defer pf.Send(selRelease)
	ctx := objc.ID(objc.GetClass("NSOpenGLContext")).Send(selAlloc).Send(selInitWithFormat, pf, objc.ID(0))
	if ctx == 0 {
		return nil, glErr("NSOpenGLContext creation failed", nil)
	}
	id := f.cfString("com.apple.opengl")
	bundle := f.cfBundleGetBundleWithIdentifier(id)
	f.cfRelease(id)
	if bundle == 0 {
		ctx.Send(selRelease)
		return nil, glErr("OpenGL framework not loaded", nil)
	}
	ctx.Send(selSetView, view)
	interval := int32(0)
	ctx.Send(selSetValuesForParameter, unsafe.Pointer(&interval), _NSOpenGLCPSwapInterval)
	if transparent {
		opacity := int32(0)
		ctx.Send(selSetValuesForParameter, unsafe.Pointer(&opacity), _NSOpenGLCPSurfaceOpacity)
	}
	return &nsglContext{f: f, ctx: ctx, bundle: bundle}, nil
}

func (g *nsglContext) SwapBuffers() {
	g.ctx.Send(selFlushBuffer)
}

func (g *nsglContext) ProcAddress(name string) uintptr {
	s := g.f.cfString(name)
	defer g.f.cfRelease(s)
	return g.f.cfBundleGetFunctionPointerForName(g.bundle, s)
}

func (g *nsglContext) MakeCurrent(current bool) bool {
	if current {
		g.ctx.Send(selMakeCurrentContext)
	} else {
		objc.ID(objc.GetClass("NSOpenGLContext")).Send(selClearCurrentContext)
	}
	return true
}

// update resizes the drawable after the view changed size.
func (g *nsglContext) update() {
	g.ctx.Send(selUpdate)
}

func (g *nsglContext) release() {
	g.MakeCurrent(false)
	g.ctx.Send(selClearDrawable)
	g.ctx.Send(selRelease)
}
