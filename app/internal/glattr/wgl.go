// SPDX-License-Identifier: Unlicense OR MIT

package glattr

import "picoview.org/gl"

const (
	wglDrawToWindow           = 0x2001
	wglAcceleration           = 0x2003
	wglSupportOpenGL          = 0x2010
	wglDoubleBuffer           = 0x2011
	wglPixelType              = 0x2013
	wglRedBits                = 0x2015
	wglGreenBits              = 0x2017
	wglBlueBits               = 0x2019
	wglAlphaBits              = 0x201B
	wglDepthBits              = 0x2022
	wglStencilBits            = 0x2023
	wglFullAcceleration       = 0x2027
	wglTypeRGBA               = 0x202B
	wglSampleBuffers          = 0x2041
	wglSamples                = 0x2042
	wglFramebufferSRGBCapable = 0x20A9
)

// WGLPixelFormat returns the wglChoosePixelFormatARB attributes for c.
func WGLPixelFormat(c gl.Config, ext Extensions) []int32 {
	b := c.Format.Bits()
	attrs := []int32{
		wglDrawToWindow, 1,
		wglAcceleration, wglFullAcceleration,
		wglSupportOpenGL, 1,
		wglDoubleBuffer, boolAttr(c.DoubleBuffer),
		wglPixelType, wglTypeRGBA,
		wglRedBits, int32(b.Red),
		wglGreenBits, int32(b.Green),
		wglBlueBits, int32(b.Blue),
		wglAlphaBits, int32(b.Alpha),
		wglDepthBits, int32(b.Depth),
		wglStencilBits, int32(b.Stencil),
	}
	if ext.Has("WGL_ARB_multisample") {
		attrs = append(attrs,
			wglSampleBuffers, boolAttr(c.MSAA > 0),
			wglSamples, int32(c.MSAA))
	}
	if ext.Has("WGL_ARB_framebuffer_sRGB", "WGL_EXT_framebuffer_sRGB") {
		attrs = append(attrs, wglFramebufferSRGBCapable, boolAttr(c.SRGB))
	}
	return append(attrs, 0)
}

// WGLContext returns the wglCreateContextAttribsARB attributes for c.
func WGLContext(c gl.Config, ext Extensions) ([]int32, error) {
	bit, err := profileBit(c.Version, ext,
		"WGL_EXT_create_context_es2_profile", "WGL_EXT_create_context_es_profile")
	if err != nil {
		return nil, err
	}
	var attrs []int32
	if c.Debug {
		attrs = append(attrs, contextFlags, contextDebugBit)
	}
	attrs = append(attrs,
		contextMajorVersion, int32(c.Version.Major),
		contextMinorVersion, int32(c.Version.Minor),
		contextProfileMask, bit,
		0)
	return attrs, nil
}

// PixelFormatDescriptor holds the fields of a PIXELFORMATDESCRIPTOR
// that ChoosePixelFormat matches on.
type PixelFormatDescriptor struct {
	DoubleBuffer bool
	ColorBits    uint8
	AlphaBits    uint8
	DepthBits    uint8
	StencilBits  uint8
}

// WGLFallback returns the legacy pixel format request for c.
func WGLFallback(c gl.Config) PixelFormatDescriptor {
	b := c.Format.Bits()
	return PixelFormatDescriptor{
		DoubleBuffer: c.DoubleBuffer,
		ColorBits:    uint8(b.Red + b.Green + b.Blue + b.Alpha),
		AlphaBits:    uint8(b.Alpha),
		DepthBits:    uint8(b.Depth),
		StencilBits:  uint8(b.Stencil),
	}
}
