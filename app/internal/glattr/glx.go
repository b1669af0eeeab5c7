// SPDX-License-Identifier: Unlicense OR MIT

package glattr

import "picoview.org/gl"

const (
	glxDoubleBuffer           = 5
	glxRedSize                = 8
	glxGreenSize              = 9
	glxBlueSize               = 10
	glxAlphaSize              = 11
	glxDepthSize              = 12
	glxStencilSize            = 13
	glxXVisualType            = 0x22
	glxTrueColor              = 0x8002
	glxDrawableType           = 0x8010
	glxRenderType             = 0x8011
	glxXRenderable            = 0x8012
	glxWindowBit              = 0x0001
	glxRGBABit                = 0x0001
	glxSampleBuffers          = 100000
	glxSamples                = 100001
	glxFramebufferSRGBCapable = 0x20B2
)

// GLXFBConfig returns the glXChooseFBConfig attributes for c. major and
// minor are the GLX version reported by glXQueryVersion.
func GLXFBConfig(c gl.Config, major, minor int, ext Extensions) []int32 {
	b := c.Format.Bits()
	attrs := []int32{
		glxXRenderable, 1,
		glxXVisualType, glxTrueColor,
		glxDrawableType, glxWindowBit,
		glxRenderType, glxRGBABit,
		glxRedSize, int32(b.Red),
		glxGreenSize, int32(b.Green),
		glxBlueSize, int32(b.Blue),
		glxAlphaSize, int32(b.Alpha),
		glxDepthSize, int32(b.Depth),
		glxStencilSize, int32(b.Stencil),
		glxDoubleBuffer, boolAttr(c.DoubleBuffer),
	}
	if c.SRGB && ext.Has("GLX_ARB_framebuffer_sRGB", "GLX_EXT_framebuffer_sRGB") {
		attrs = append(attrs, glxFramebufferSRGBCapable, 1)
	}
	multisample := major > 1 || major == 1 && minor >= 4 || ext.Has("GLX_ARB_multisample")
	if c.MSAA > 0 && multisample {
		attrs = append(attrs, glxSampleBuffers, 1, glxSamples, int32(c.MSAA))
	}
	return append(attrs, 0)
}

// GLXContext returns the glXCreateContextAttribsARB attributes for c.
func GLXContext(c gl.Config, ext Extensions) ([]int32, error) {
	bit, err := profileBit(c.Version, ext,
		"GLX_EXT_create_context_es2_profile", "GLX_EXT_create_context_es_profile")
	if err != nil {
		return nil, err
	}
	var flags int32
	if c.Debug {
		flags |= contextDebugBit
	}
	return []int32{
		contextMajorVersion, int32(c.Version.Major),
		contextMinorVersion, int32(c.Version.Minor),
		contextProfileMask, bit,
		contextFlags, flags,
		0,
	}, nil
}
